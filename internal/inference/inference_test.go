package inference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statref/domain/core"
	"statref/domain/stats"
)

const tol = 1e-9

func TestPointEstimate(t *testing.T) {
	est, err := PointEstimate(stats.Sample{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.Equal(t, 8, est.N)
	assert.InDelta(t, 5.0, est.Mean, tol)
	assert.InDelta(t, 32.0/7, est.Variance, tol)
	assert.InDelta(t, math.Sqrt(32.0/7), est.SD, tol)

	_, err = PointEstimate(stats.Sample{3})
	assert.True(t, core.IsUndefinedStatistic(err))

	_, err = PointEstimate(nil)
	assert.True(t, core.IsDomainError(err))

	p, err := Proportion(30, 120)
	require.NoError(t, err)
	assert.Equal(t, 0.25, p)

	_, err = Proportion(5, 0)
	assert.True(t, core.IsDomainError(err))

	se, err := StandardError(15, 25)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, se, tol)
}

func TestMeanInterval(t *testing.T) {
	z, err := MeanInterval(50, 10, 25, 0.95, KnownSigma)
	require.NoError(t, err)
	assert.InDelta(t, 1.959964*2, z.Margin, 1e-5)
	assert.InDelta(t, 50-z.Margin, z.Lower, tol)
	assert.InDelta(t, 50+z.Margin, z.Upper, tol)
	assert.True(t, z.Contains(50))
	assert.Equal(t, 0.95, z.Level)

	tInt, err := MeanInterval(72, 8, 16, 0.95, UnknownSigma)
	require.NoError(t, err)
	assert.InDelta(t, 2.13145*2, tInt.Margin, 1e-4)
	assert.Greater(t, tInt.Width(), 2*1.959964*2, "t interval must be wider than z at the same s and n")

	_, err = MeanInterval(50, 10, 25, 0.95, SigmaMode(0))
	assert.True(t, core.IsDomainError(err), "zero-value sigma mode must be rejected")

	_, err = MeanInterval(50, 10, 1, 0.95, UnknownSigma)
	assert.True(t, core.IsDomainError(err))

	_, err = MeanInterval(50, 0, 25, 0.95, KnownSigma)
	assert.True(t, core.IsDomainError(err))

	_, err = MeanInterval(50, 10, 25, 1, KnownSigma)
	assert.True(t, core.IsDomainError(err))
}

func TestProportionInterval(t *testing.T) {
	ci, err := ProportionInterval(40, 100, 0.95)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, ci.Estimate, tol)
	assert.InDelta(t, 0.096018, ci.Margin, 1e-5)
	assert.False(t, ci.Degenerate)
	assert.False(t, ci.OutOfRange)

	rare, err := ProportionInterval(1, 20, 0.95)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, rare.Estimate, tol)
	assert.InDelta(t, 0.095517, rare.Margin, 1e-5)
	assert.InDelta(t, rare.Estimate-rare.Margin, rare.Lower, tol)
	assert.InDelta(t, rare.Estimate+rare.Margin, rare.Upper, tol)
	assert.Less(t, rare.Lower, 0.0)
	assert.True(t, rare.OutOfRange)
	assert.False(t, rare.Degenerate)

	none, err := ProportionInterval(0, 50, 0.95)
	require.NoError(t, err)
	assert.True(t, none.Degenerate)
	assert.Equal(t, 0.0, none.Width())
	assert.False(t, none.OutOfRange)

	all, err := ProportionInterval(50, 50, 0.95)
	require.NoError(t, err)
	assert.True(t, all.Degenerate)

	_, err = ProportionInterval(51, 50, 0.95)
	assert.True(t, core.IsDomainError(err))
}

func TestSampleSize(t *testing.T) {
	n, err := SampleSizeForMean(15, 5, 0.95)
	require.NoError(t, err)
	assert.Equal(t, 35, n)

	n, err = SampleSizeForProportion(0.5, 0.03, 0.95)
	require.NoError(t, err)
	assert.Equal(t, 1068, n)

	_, err = SampleSizeForMean(15, 0, 0.95)
	assert.True(t, core.IsDomainError(err))
}

func TestOneSampleTScenario(t *testing.T) {
	spec, err := stats.NewOneSampleT(72, 8, 16, 75, 0.05, stats.TailTwoSided)
	require.NoError(t, err)

	res, err := TTest(spec)
	require.NoError(t, err)
	assert.InDelta(t, -1.5, res.Statistic, tol)
	assert.Equal(t, 15.0, res.DF1)
	assert.InDelta(t, 0.1545, res.PValue, 2e-4)
	assert.False(t, res.Reject)
	assert.Equal(t, "fail to reject H0", res.Decision())

	again, err := TTest(spec)
	require.NoError(t, err)
	assert.Equal(t, res, again, "repeated evaluation must be bit-identical")
}

func TestZTest(t *testing.T) {
	spec, err := stats.NewOneSampleZ(105, 15, 36, 100, 0.05, stats.TailRight)
	require.NoError(t, err)
	res, err := ZTest(spec)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Statistic, tol)
	assert.InDelta(t, 0.02275, res.PValue, 1e-5)
	assert.True(t, res.Reject)
	assert.Equal(t, 0.0, res.DF1)

	_, err = ZTest(stats.OneSampleZ{Hypothesis: stats.Hypothesis{Alpha: 0.05, Tail: stats.TailLeft}, Mean: 1, Sigma: -1, N: 5})
	assert.True(t, core.IsDomainError(err))
}

func TestPValueTails(t *testing.T) {
	ref, err := TReference(10)
	require.NoError(t, err)
	for _, stat := range []float64{-2.5, -0.3, 0, 1.1, 3.2} {
		left, err := PValue(ref, stat, stats.TailLeft)
		require.NoError(t, err)
		right, err := PValue(ref, stat, stats.TailRight)
		require.NoError(t, err)
		two, err := PValue(ref, stat, stats.TailTwoSided)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, left+right, 1e-12, "stat=%v", stat)
		assert.InDelta(t, 2*math.Min(left, right), two, 1e-12, "stat=%v", stat)
	}

	_, err = PValue(ZReference(), 1, stats.Tail(""))
	assert.True(t, core.IsDomainError(err))

	_, err = PValue(ZReference(), math.NaN(), stats.TailLeft)
	assert.True(t, core.IsDomainError(err))

	_, err = TReference(0)
	assert.True(t, core.IsDomainError(err))
}

func TestDecideIsStrict(t *testing.T) {
	reject, err := Decide(0.05, 0.05)
	require.NoError(t, err)
	assert.False(t, reject)

	reject, err = Decide(0.0499, 0.05)
	require.NoError(t, err)
	assert.True(t, reject)

	_, err = Decide(0.01, 0)
	assert.True(t, core.IsDomainError(err))
}

func TestCriticalValues(t *testing.T) {
	z := ZReference()
	two, err := CriticalValue(z, 0.05, stats.TailTwoSided)
	require.NoError(t, err)
	assert.InDelta(t, 1.96, two, 1e-3)

	right, err := CriticalValue(z, 0.05, stats.TailRight)
	require.NoError(t, err)
	assert.InDelta(t, 1.645, right, 1e-3)

	left, err := CriticalValue(z, 0.05, stats.TailLeft)
	require.NoError(t, err)
	assert.InDelta(t, -right, left, 1e-12)

	ref, err := TReference(15)
	require.NoError(t, err)
	tc, err := CriticalValue(ref, 0.05, stats.TailTwoSided)
	require.NoError(t, err)
	assert.InDelta(t, 2.131, tc, 1e-3)
}

func TestTwoSampleT(t *testing.T) {
	a := stats.SampleSummary{Mean: 20, SD: 4, N: 10}
	b := stats.SampleSummary{Mean: 17, SD: 5, N: 12}

	pooled, err := TwoSampleT(a, b, stats.VariancePooled, 0)
	require.NoError(t, err)
	assert.Equal(t, 20.0, pooled.DF)
	sp2 := (9*16.0 + 11*25.0) / 20
	assert.InDelta(t, 3/math.Sqrt(sp2*(1.0/10+1.0/12)), pooled.Statistic, tol)

	welch, err := TwoSampleT(a, b, stats.VarianceWelch, 0)
	require.NoError(t, err)
	q1, q2 := 16.0/10, 25.0/12
	assert.InDelta(t, 3/math.Sqrt(q1+q2), welch.Statistic, tol)
	assert.InDelta(t, (q1+q2)*(q1+q2)/(q1*q1/9+q2*q2/11), welch.DF, tol)
	assert.Less(t, welch.DF, pooled.DF)

	_, err = TwoSampleT(a, b, stats.VarianceAssumption(""), 0)
	assert.True(t, core.IsDomainError(err), "variance assumption has no default")
}

func TestTwoSampleVariantsAgreeOnBalancedDesigns(t *testing.T) {
	a := stats.SampleSummary{Mean: 10, SD: 3, N: 15}
	b := stats.SampleSummary{Mean: 8, SD: 3, N: 15}
	pooled, err := TwoSampleT(a, b, stats.VariancePooled, 0)
	require.NoError(t, err)
	welch, err := TwoSampleT(a, b, stats.VarianceWelch, 0)
	require.NoError(t, err)
	assert.InDelta(t, pooled.Statistic, welch.Statistic, 1e-12)
	assert.InDelta(t, 28.0, welch.DF, 1e-9)

	spec, err := stats.NewTwoSampleT(a, b, stats.VarianceWelch, 0, 0.05, stats.TailRight)
	require.NoError(t, err)
	res, err := TwoSampleTTest(spec)
	require.NoError(t, err)
	assert.Equal(t, stats.KindTwoSampleT, res.Kind)
	assert.InDelta(t, welch.DF, res.DF1, tol)
}

func TestErrorOutcome(t *testing.T) {
	assert.Equal(t, OutcomeTypeI, ErrorOutcome(true, true))
	assert.Equal(t, OutcomeCorrectRejection, ErrorOutcome(true, false))
	assert.Equal(t, OutcomeCorrectRetention, ErrorOutcome(false, true))
	assert.Equal(t, OutcomeTypeII, ErrorOutcome(false, false))
}

func TestZTestPower(t *testing.T) {
	pw, err := ZTestPower(100, 105, 15, 36, 0.05, stats.TailRight)
	require.NoError(t, err)
	assert.InDelta(t, 0.6387, pw.Power, 1e-3)
	assert.InDelta(t, 1-pw.Power, pw.Beta, tol)

	null, err := ZTestPower(100, 100, 15, 36, 0.05, stats.TailTwoSided)
	require.NoError(t, err)
	assert.InDelta(t, 0.05, null.Power, 1e-12, "power under H0 equals alpha")

	bigger, err := ZTestPower(100, 105, 15, 100, 0.05, stats.TailRight)
	require.NoError(t, err)
	assert.Greater(t, bigger.Power, pw.Power)
}

func TestEvidenceLevel(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0.0005, "***"},
		{0.001, "***"},
		{0.004, "**"},
		{0.03, "*"},
		{0.08, "."},
		{0.4, ""},
	}
	for _, tt := range tests {
		got, err := EvidenceLevel(tt.p)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "p=%v", tt.p)
	}
	_, err := EvidenceLevel(1.5)
	assert.True(t, core.IsDomainError(err))
}
