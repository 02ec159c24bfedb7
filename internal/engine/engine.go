// Package engine dispatches test specifications to the procedure that
// evaluates them.
package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"statref/domain/core"
	"statref/domain/stats"
	"statref/internal"
	"statref/internal/inference"
	"statref/internal/relationship"
)

// DefaultParallelism bounds EvaluateBatch when no limit is configured
const DefaultParallelism = 4

// Evaluator evaluates TestSpecs. It holds no per-call state and is safe
// for concurrent use.
type Evaluator struct {
	logger      *internal.Logger
	parallelism int
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithLogger sets the logger used for evaluation traces
func WithLogger(l *internal.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithParallelism bounds the number of specs evaluated at once
func WithParallelism(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// NewEvaluator creates an evaluator
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		logger:      internal.DefaultLogger,
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs the test described by spec
func (e *Evaluator) Evaluate(spec stats.TestSpec) (stats.TestResult, error) {
	if spec == nil {
		return stats.TestResult{}, core.NewDomainError("evaluate", "no test specification")
	}
	e.logger.Debug("evaluating %s at alpha=%g", stats.Describe(spec), spec.Significance())

	var (
		res stats.TestResult
		err error
	)
	switch s := spec.(type) {
	case stats.OneSampleZ:
		res, err = inference.ZTest(s)
	case stats.OneSampleT:
		res, err = inference.TTest(s)
	case stats.TwoSampleT:
		res, err = inference.TwoSampleTTest(s)
	case stats.ANOVA:
		res, err = relationship.ANOVATest(s)
	case stats.RegressionF:
		res, err = relationship.RegressionFTest(s)
	default:
		err = core.NewDomainError("evaluate", "unsupported test specification %T", spec)
	}
	if err != nil {
		e.logger.Debug("%s failed: %v", spec.Kind(), err)
		return stats.TestResult{}, err
	}

	e.logger.Debug("%s: statistic=%g p=%g -> %s", res.Kind, res.Statistic, res.PValue, res.Decision())
	return res, nil
}

// EvaluateBatch evaluates independent specs concurrently and returns the
// results in input order. The first failure cancels work not yet started
// and is returned with the index of the offending spec.
func (e *Evaluator) EvaluateBatch(ctx context.Context, specs []stats.TestSpec) ([]stats.TestResult, error) {
	results := make([]stats.TestResult, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)

	for i, spec := range specs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Evaluate(spec)
			if err != nil {
				return &BatchError{Index: i, Err: err}
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.logger.Debug("evaluated %d specifications", len(specs))
	return results, nil
}

// BatchError locates a failure inside a batch
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("spec %d: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
