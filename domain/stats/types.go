package stats

import (
	"sort"

	"statref/domain/core"
)

// ============================================================================
// SAMPLES (transient, caller-owned)
// ============================================================================

// Sample is a finite sequence of real observations
type Sample []float64

// Len returns the number of observations
func (s Sample) Len() int { return len(s) }

// Sorted returns an ascending copy; the receiver is left untouched
func (s Sample) Sorted() Sample {
	out := make(Sample, len(s))
	copy(out, s)
	sort.Float64s(out)
	return out
}

// Validate checks that the sample holds at least min finite observations
func (s Sample) Validate(op string, min int) error {
	if len(s) < min {
		return core.NewDomainError(op, "need at least %d observations, got %d", min, len(s))
	}
	return core.CheckFinite(op, "x", s...)
}

// Group is one labelled sample inside a GroupedSample
type Group struct {
	Label  string `json:"label" yaml:"label"`
	Values Sample `json:"values" yaml:"values"`
}

// GroupedSample maps group labels to samples, in a fixed order so that
// results are reproducible
type GroupedSample []Group

// TotalN returns the number of observations across all groups
func (g GroupedSample) TotalN() int {
	n := 0
	for _, grp := range g {
		n += len(grp.Values)
	}
	return n
}

// Validate enforces at least 2 groups with at least 2 observations each
func (g GroupedSample) Validate(op string) error {
	if len(g) < 2 {
		return core.NewDomainError(op, "need at least 2 groups, got %d", len(g))
	}
	for _, grp := range g {
		if len(grp.Values) < 2 {
			return core.NewDomainError(op, "group %q has %d observations, need at least 2", grp.Label, len(grp.Values))
		}
		if err := core.CheckFinite(op, grp.Label, grp.Values...); err != nil {
			return err
		}
	}
	return nil
}

// PairedSample holds two equal-length samples observed together
type PairedSample struct {
	X Sample `json:"x" yaml:"x"`
	Y Sample `json:"y" yaml:"y"`
}

// Validate checks equal lengths and the minimum number of pairs
func (p PairedSample) Validate(op string, min int) error {
	if len(p.X) != len(p.Y) {
		return core.NewDomainError(op, "paired samples differ in length: x has %d, y has %d", len(p.X), len(p.Y))
	}
	if len(p.X) < min {
		return core.NewDomainError(op, "need at least %d pairs, got %d", min, len(p.X))
	}
	if err := core.CheckFinite(op, "x", p.X...); err != nil {
		return err
	}
	return core.CheckFinite(op, "y", p.Y...)
}

// ============================================================================
// RESULTS
// ============================================================================

// Interval is a symmetric confidence interval around a point estimate
type Interval struct {
	Estimate float64 `json:"estimate" yaml:"estimate"`
	Lower    float64 `json:"lower" yaml:"lower"`
	Upper    float64 `json:"upper" yaml:"upper"`
	Margin   float64 `json:"margin" yaml:"margin"`
	Level    float64 `json:"level" yaml:"level"`
}

// Contains reports whether v lies inside the closed interval
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// Width returns Upper - Lower
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// TestResult is the immutable outcome of evaluating a TestSpec.
// DF1/DF2 are zero when the reference distribution has no such parameter.
type TestResult struct {
	Kind      TestKind `json:"kind" yaml:"kind"`
	Statistic float64  `json:"statistic" yaml:"statistic"`
	DF1       float64  `json:"df1,omitempty" yaml:"df1,omitempty"`
	DF2       float64  `json:"df2,omitempty" yaml:"df2,omitempty"`
	PValue    float64  `json:"p_value" yaml:"p_value"`
	Alpha     float64  `json:"alpha" yaml:"alpha"`
	Tail      Tail     `json:"tail" yaml:"tail"`
	Reject    bool     `json:"reject" yaml:"reject"`
}

// Decision renders the verdict in textbook wording
func (r TestResult) Decision() string {
	if r.Reject {
		return "reject H0"
	}
	return "fail to reject H0"
}
