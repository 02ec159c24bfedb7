package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statref/domain/core"
	"statref/domain/stats"
	"statref/internal"
	"statref/internal/testkit"
)

func quietEvaluator(opts ...Option) *Evaluator {
	var sink bytes.Buffer
	return NewEvaluator(append([]Option{WithLogger(internal.NewLoggerTo(internal.LogLevelError, &sink))}, opts...)...)
}

func scenarioSpecs(t *testing.T) []stats.TestSpec {
	t.Helper()
	tSpec, err := stats.NewOneSampleT(72, 8, 16, 75, 0.05, stats.TailTwoSided)
	require.NoError(t, err)
	zSpec, err := stats.NewOneSampleZ(105, 15, 36, 100, 0.05, stats.TailRight)
	require.NoError(t, err)
	twoSpec, err := stats.NewTwoSampleT(
		stats.SampleSummary{Mean: 20, SD: 4, N: 10},
		stats.SampleSummary{Mean: 17, SD: 5, N: 12},
		stats.VariancePooled, 0, 0.05, stats.TailTwoSided)
	require.NoError(t, err)
	anovaSpec, err := stats.NewANOVA(stats.GroupedSample{
		{Label: "A", Values: stats.Sample{20, 22, 19, 24, 21}},
		{Label: "B", Values: stats.Sample{28, 30, 27, 29, 31}},
		{Label: "C", Values: stats.Sample{23, 25, 22, 26, 24}},
	}, 0.05)
	require.NoError(t, err)
	regSpec, err := stats.NewRegressionF(stats.PairedSample{
		X: stats.Sample{1, 2, 3, 4, 5},
		Y: stats.Sample{2, 4, 5, 4, 5},
	}, 0.05)
	require.NoError(t, err)
	return []stats.TestSpec{tSpec, zSpec, twoSpec, anovaSpec, regSpec}
}

func TestEvaluateDispatchesEveryKind(t *testing.T) {
	e := quietEvaluator()
	specs := scenarioSpecs(t)
	want := []stats.TestKind{stats.KindOneSampleT, stats.KindOneSampleZ, stats.KindTwoSampleT, stats.KindANOVA, stats.KindRegressionF}

	for i, spec := range specs {
		res, err := e.Evaluate(spec)
		require.NoError(t, err, stats.Describe(spec))
		assert.Equal(t, want[i], res.Kind)
		assert.Equal(t, 0.05, res.Alpha)
	}

	res, err := e.Evaluate(specs[0])
	require.NoError(t, err)
	assert.InDelta(t, -1.5, res.Statistic, 1e-9)
	assert.False(t, res.Reject)

	res, err = e.Evaluate(specs[3])
	require.NoError(t, err)
	assert.True(t, res.Reject)
	assert.Equal(t, stats.TailRight, res.Tail)
}

type unknownSpec struct {
	stats.OneSampleZ
}

func TestEvaluateRejectsUnknownAndInvalidSpecs(t *testing.T) {
	e := quietEvaluator()

	_, err := e.Evaluate(nil)
	assert.True(t, core.IsDomainError(err))

	_, err = e.Evaluate(unknownSpec{})
	assert.True(t, core.IsDomainError(err))

	_, err = e.Evaluate(stats.OneSampleT{Hypothesis: stats.Hypothesis{Alpha: 0.05, Tail: stats.TailLeft}, Mean: 1, SD: 1, N: 1})
	assert.True(t, core.IsDomainError(err), "n=1 t test must be rejected")
}

func TestEvaluateBatchPreservesOrder(t *testing.T) {
	e := quietEvaluator(WithParallelism(2))
	specs := scenarioSpecs(t)

	results, err := e.EvaluateBatch(context.Background(), specs)
	require.NoError(t, err)
	require.Len(t, results, len(specs))
	for i, spec := range specs {
		single, err := e.Evaluate(spec)
		require.NoError(t, err)
		assert.Equal(t, single, results[i], "result %d out of order", i)
	}
}

func TestEvaluateBatchManySpecs(t *testing.T) {
	kit := testkit.NewKit(99)
	specs := make([]stats.TestSpec, 0, 40)
	for i := 0; i < 40; i++ {
		spec, err := stats.NewANOVA(kit.Grouped(3, 4, 10, 10, 2, float64(i%4)), 0.05)
		require.NoError(t, err)
		specs = append(specs, spec)
	}
	results, err := quietEvaluator(WithParallelism(8)).EvaluateBatch(context.Background(), specs)
	require.NoError(t, err)
	require.Len(t, results, 40)
	for _, r := range results {
		assert.Equal(t, stats.KindANOVA, r.Kind)
	}
}

func TestEvaluateBatchReportsFailingIndex(t *testing.T) {
	specs := scenarioSpecs(t)
	specs = append(specs, stats.ANOVA{Alpha: 0.05, Groups: stats.GroupedSample{
		{Label: "a", Values: stats.Sample{5, 5}},
		{Label: "b", Values: stats.Sample{5, 5}},
	}})

	_, err := quietEvaluator().EvaluateBatch(context.Background(), specs)
	require.Error(t, err)
	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, 5, batchErr.Index)
	assert.True(t, core.IsUndefinedStatistic(err))
}

func TestEvaluateBatchHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := quietEvaluator().EvaluateBatch(ctx, scenarioSpecs(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluateLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	e := NewEvaluator(WithLogger(internal.NewLoggerTo(internal.LogLevelDebug, &buf)))
	_, err := e.Evaluate(scenarioSpecs(t)[0])
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "one-sample t")
	assert.Contains(t, buf.String(), "fail to reject H0")
}
