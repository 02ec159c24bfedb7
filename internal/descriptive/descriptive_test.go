package descriptive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statref/domain/core"
	"statref/domain/stats"
	"statref/internal/testkit"
)

const tol = 1e-9

var spreadData = stats.Sample{12, 15, 11, 18, 14, 13, 20, 10, 16, 14}

func TestMeanVarianceKnownValues(t *testing.T) {
	mean, err := Mean(spreadData)
	require.NoError(t, err)
	assert.InDelta(t, 14.3, mean, tol)

	s2, err := Variance(spreadData, SampleMode)
	require.NoError(t, err)
	assert.InDelta(t, 86.1/9, s2, tol)

	pop, err := Variance(spreadData, PopulationMode)
	require.NoError(t, err)
	assert.InDelta(t, 8.61, pop, tol)

	r, err := Range(spreadData)
	require.NoError(t, err)
	assert.Equal(t, 10.0, r)

	sd, err := StdDev(stats.Sample{2, 4, 4, 4, 5, 5, 7, 9}, PopulationMode)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, sd, tol)
}

func TestVarianceEdgeCases(t *testing.T) {
	_, err := Variance(stats.Sample{5}, SampleMode)
	assert.True(t, core.IsUndefinedStatistic(err), "single observation has no sample variance, got %v", err)

	pop, err := Variance(stats.Sample{5}, PopulationMode)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pop)

	_, err = Variance(stats.Sample{}, SampleMode)
	assert.True(t, core.IsDomainError(err))

	_, err = Variance(stats.Sample{1, 2}, VarianceMode(0))
	assert.True(t, core.IsDomainError(err), "zero-value mode must be rejected")

	sd, err := StdDev(stats.Sample{0.1, 0.1, 0.1, 0.1}, SampleMode)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sd, "constant sample must give exactly zero spread")

	_, err = Mean(stats.Sample{1, math.NaN()})
	assert.True(t, core.IsDomainError(err))
}

func TestOtherCenters(t *testing.T) {
	wm, err := WeightedMean(stats.Sample{80, 70, 60}, []float64{4, 3, 2})
	require.NoError(t, err)
	assert.InDelta(t, 650.0/9, wm, tol)

	// weights are normalized internally
	wm2, err := WeightedMean(stats.Sample{80, 70, 60}, []float64{0.4, 0.3, 0.2})
	require.NoError(t, err)
	assert.InDelta(t, wm, wm2, tol)

	_, err = WeightedMean(stats.Sample{1, 2}, []float64{1})
	assert.True(t, core.IsDomainError(err))
	_, err = WeightedMean(stats.Sample{1, 2}, []float64{0, 0})
	assert.True(t, core.IsDomainError(err))
	_, err = WeightedMean(stats.Sample{1, 2}, []float64{1, -1})
	assert.True(t, core.IsDomainError(err))

	gm, err := GeometricMean(stats.Sample{1.10, 1.20, 0.90, 1.30})
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(1.10*1.20*0.90*1.30, 0.25), gm, 1e-12)

	_, err = GeometricMean(stats.Sample{1, 0, 2})
	assert.True(t, core.IsUndefinedStatistic(err))
	_, err = GeometricMean(stats.Sample{1, -3})
	assert.True(t, core.IsUndefinedStatistic(err))

	med, err := Median(stats.Sample{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2.0, med)
	med, err = Median(stats.Sample{4, 1, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, 2.5, med)

	mode, err := Mode(stats.Sample{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, mode)

	mr, err := MidRange(stats.Sample{3, 9, 5})
	require.NoError(t, err)
	assert.Equal(t, 6.0, mr)
}

func TestSpreadMeasures(t *testing.T) {
	x := stats.Sample{2, 4, 4, 4, 5, 5, 7, 9}

	cv, err := CoefficientOfVariation(x)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(32.0/7)/5*100, cv, tol)

	_, err = CoefficientOfVariation(stats.Sample{-1, 1})
	assert.True(t, core.IsUndefinedStatistic(err))

	mad, err := MeanAbsoluteDeviation(x)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, mad, tol)
}

func TestPercentileInterpolation(t *testing.T) {
	x := stats.Sample{34, 3, 7, 8, 12, 14, 18, 21, 25, 30}

	q, err := Quartiles(x)
	require.NoError(t, err)
	assert.InDelta(t, 7.75, q.Q1, tol)
	assert.InDelta(t, 16.0, q.Q2, tol)
	assert.InDelta(t, 26.25, q.Q3, tol)

	iqr, err := IQR(x)
	require.NoError(t, err)
	assert.InDelta(t, 18.5, iqr, tol)

	f := FencesFor(q)
	assert.InDelta(t, -20.0, f.MildLower, tol)
	assert.InDelta(t, 54.0, f.MildUpper, tol)
	assert.InDelta(t, -47.75, f.ExtremeLower, tol)
	assert.InDelta(t, 81.75, f.ExtremeUpper, tol)

	// clamping at the extremes
	p0, err := Percentile(x, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, p0)
	p100, err := Percentile(x, 100)
	require.NoError(t, err)
	assert.Equal(t, 34.0, p100)

	_, err = Percentile(x, 101)
	assert.True(t, core.IsDomainError(err))

	// the (n+1) median agrees with the order-statistic median
	med, _ := Median(x)
	assert.InDelta(t, med, q.Q2, tol)
}

func TestOutlierClassification(t *testing.T) {
	x := stats.Sample{1, 2, 3, 4, 5, 6, 7, 8, 9, 20, 100}

	report, err := ClassifyOutliers(x)
	require.NoError(t, err)
	assert.Equal(t, 3.0, report.Quartiles.Q1)
	assert.Equal(t, 9.0, report.Quartiles.Q3)
	assert.Equal(t, []float64{20}, report.Mild)
	assert.Equal(t, []float64{100}, report.Extreme)

	constant, err := ClassifyOutliers(stats.Sample{5, 5, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, 0.0, constant.Quartiles.IQR())
	assert.Empty(t, constant.Mild)
	assert.Empty(t, constant.Extreme)
}

func TestFiveNumberAndSkew(t *testing.T) {
	fn, err := FiveNumberSummary(stats.Sample{1, 2, 3, 4, 5, 6, 7, 8, 9, 20, 100})
	require.NoError(t, err)
	assert.Equal(t, FiveNumber{Min: 1, Q1: 3, Median: 6, Q3: 9, Max: 100}, fn)

	dir, err := Skew(stats.Sample{1, 2, 3, 4, 100})
	require.NoError(t, err)
	assert.Equal(t, SkewRight, dir)

	dir, err = Skew(stats.Sample{-100, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, SkewLeft, dir)

	dir, err = Skew(stats.Sample{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, SkewSymmetric, dir)

	ps, err := PearsonSkewness(stats.Sample{1, 2, 3, 4, 100})
	require.NoError(t, err)
	assert.Greater(t, ps, 0.0)
	s, err := StdDev(stats.Sample{1, 2, 3, 4, 100}, SampleMode)
	require.NoError(t, err)
	assert.InDelta(t, 3*(22.0-3.0)/s, ps, tol)

	_, err = PearsonSkewness(stats.Sample{7})
	assert.True(t, core.IsUndefinedStatistic(err))
	_, err = PearsonSkewness(stats.Sample{4, 4, 4})
	assert.True(t, core.IsUndefinedStatistic(err))

	sk, err := MomentSkewness(stats.Sample{1, 2, 3, 4, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sk, 1e-12)

	_, err = MomentSkewness(stats.Sample{2, 2, 2})
	assert.True(t, core.IsUndefinedStatistic(err))

	iqm, err := InterquartileMean(stats.Sample{1, 2, 3, 4, 5, 6, 7, 8, 9, 20, 100})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, iqm, tol)
}

func TestZScoresAndChebyshev(t *testing.T) {
	z, err := ZScore(90, 70, 5)
	require.NoError(t, err)
	assert.Equal(t, 4.0, z)

	_, err = ZScore(90, 70, 0)
	assert.True(t, core.IsDomainError(err))

	back, err := FromZScore(z, 70, 5)
	require.NoError(t, err)
	assert.Equal(t, 90.0, back)

	zs, err := ZScores(spreadData)
	require.NoError(t, err)
	var sum float64
	for _, v := range zs {
		sum += v
	}
	assert.InDelta(t, 0.0, sum, 1e-12)

	_, err = ZScores(stats.Sample{3, 3, 3})
	assert.True(t, core.IsUndefinedStatistic(err))

	// mu=50, sigma=10, k=2 covers at least 75%
	b, err := ChebyshevInterval(50, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.75, b.MinCoverage)
	assert.Equal(t, 30.0, b.Lower)
	assert.Equal(t, 70.0, b.Upper)
	assert.Equal(t, 0.25, b.MaxOutside)

	cov, err := ChebyshevMinCoverage(3)
	require.NoError(t, err)
	assert.InDelta(t, 8.0/9, cov, tol)

	k, err := ChebyshevK(0.96)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, k, tol)

	_, err = ChebyshevMinCoverage(1)
	assert.True(t, core.IsDomainError(err))
	_, err = ChebyshevK(1)
	assert.True(t, core.IsDomainError(err))
}

func TestFrequencyTable(t *testing.T) {
	classes, err := FrequencyTable(stats.Sample{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 3)
	require.NoError(t, err)
	require.Len(t, classes, 3)

	assert.Equal(t, 3, classes[0].Frequency)
	assert.Equal(t, 3, classes[1].Frequency)
	assert.Equal(t, 4, classes[2].Frequency)
	assert.Equal(t, 10, classes[2].Cumulative)
	assert.InDelta(t, 1.0, classes[2].CumulativeRelative, tol)
	assert.InDelta(t, 2.5, classes[0].Midpoint, tol)
	assert.Equal(t, 10.0, classes[2].Upper)

	_, err = FrequencyTable(stats.Sample{4, 4}, 2)
	assert.True(t, core.IsUndefinedStatistic(err))

	k, err := SturgesClasses(10)
	require.NoError(t, err)
	assert.Equal(t, 5, k)
	k, err = SturgesClasses(100)
	require.NoError(t, err)
	assert.Equal(t, 8, k)

	gm, err := GroupedMean([]float64{10, 20, 30}, []float64{1, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, gm, tol)

	gv, err := GroupedVariance([]float64{10, 20, 30}, []float64{1, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 200.0/3, gv, tol)

	_, err = GroupedMean([]float64{10}, []float64{1, 2})
	assert.True(t, core.IsDomainError(err))
}

// Σ(x − mean) = 0 for any sample
func TestProperty_CenteringIdentity(t *testing.T) {
	kit := testkit.NewKit(1)
	for _, x := range kit.Samples(200, 1, 150, 50, 20) {
		dev, err := Deviations(x)
		require.NoError(t, err)
		var sum float64
		for _, d := range dev {
			sum += d
		}
		assert.InDelta(t, 0.0, sum, 1e-9, "seed %d, n=%d", kit.Seed(), len(x))
	}
}

// the shortcut formula matches the definitional sample variance
func TestProperty_ShortcutVarianceMatches(t *testing.T) {
	kit := testkit.NewKit(2)
	for _, x := range kit.Samples(200, 2, 150, 10, 3) {
		direct, err := Variance(x, SampleMode)
		require.NoError(t, err)
		shortcut, err := ShortcutVariance(x)
		require.NoError(t, err)
		assert.True(t, core.ApproxEqual(direct, shortcut, 1e-8), "direct=%v shortcut=%v n=%d", direct, shortcut, len(x))
	}
}

func TestProperty_Idempotent(t *testing.T) {
	x := testkit.NewKit(3).Normal(40, 0, 1)
	q1, _ := Quartiles(x)
	q2, _ := Quartiles(x)
	assert.Equal(t, q1, q2)
	v1, _ := Variance(x, SampleMode)
	v2, _ := Variance(x, SampleMode)
	assert.Equal(t, math.Float64bits(v1), math.Float64bits(v2))
}
