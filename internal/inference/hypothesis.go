package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"statref/domain/core"
	"statref/domain/stats"
)

// Reference is the null distribution of a test statistic.
// distuv.Normal and distuv.StudentsT both satisfy it.
type Reference interface {
	CDF(x float64) float64
	Survival(x float64) float64
	Quantile(p float64) float64
}

// ZReference returns the standard normal reference
func ZReference() Reference {
	return distuv.UnitNormal
}

// TReference returns Student's t with df degrees of freedom; df may be
// fractional (Welch)
func TReference(df float64) (Reference, error) {
	if err := core.CheckPositive("t_reference", "df", df); err != nil {
		return nil, err
	}
	return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}, nil
}

// PValue returns the tail probability of stat under ref
func PValue(ref Reference, stat float64, tail stats.Tail) (float64, error) {
	const op = "p_value"
	if ref == nil {
		return 0, core.NewDomainError(op, "no reference distribution")
	}
	if err := tail.Validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(stat) {
		return 0, core.NewDomainError(op, "test statistic is NaN")
	}
	switch tail {
	case stats.TailLeft:
		return ref.CDF(stat), nil
	case stats.TailRight:
		return ref.Survival(stat), nil
	default:
		return math.Min(1, 2*ref.Survival(math.Abs(stat))), nil
	}
}

// Decide rejects H0 iff p < α
func Decide(p, alpha float64) (bool, error) {
	if err := core.CheckProbability("decide", "p", p); err != nil {
		return false, err
	}
	if !(alpha > 0 && alpha < 1) {
		return false, core.NewDomainError("decide", "alpha=%v must be in (0, 1)", alpha)
	}
	return p < alpha, nil
}

// CriticalValue returns the rejection boundary at level α. For a
// two-sided test it is the positive boundary; reject when |stat| exceeds it.
func CriticalValue(ref Reference, alpha float64, tail stats.Tail) (float64, error) {
	const op = "critical_value"
	if ref == nil {
		return 0, core.NewDomainError(op, "no reference distribution")
	}
	if !(alpha > 0 && alpha < 1) {
		return 0, core.NewDomainError(op, "alpha=%v must be in (0, 1)", alpha)
	}
	if err := tail.Validate(); err != nil {
		return 0, err
	}
	switch tail {
	case stats.TailLeft:
		return ref.Quantile(alpha), nil
	case stats.TailRight:
		return ref.Quantile(1 - alpha), nil
	default:
		return ref.Quantile(1 - alpha/2), nil
	}
}

// ZStatistic returns (x̄ − μ0) / (σ/√n)
func ZStatistic(mean, mu0, sigma float64, n int) (float64, error) {
	se, err := StandardError(sigma, n)
	if err != nil {
		return 0, err
	}
	return (mean - mu0) / se, nil
}

// TStatistic returns (x̄ − μ0) / (s/√n) for n >= 2
func TStatistic(mean, mu0, s float64, n int) (float64, error) {
	if n < 2 {
		return 0, core.NewDomainError("t_statistic", "n=%d must be >= 2", n)
	}
	if err := core.CheckPositive("t_statistic", "s", s); err != nil {
		return 0, err
	}
	return (mean - mu0) / (s / math.Sqrt(float64(n))), nil
}

// TwoSample is the statistic and degrees of freedom of a two-sample t
type TwoSample struct {
	Statistic     float64 `json:"statistic" yaml:"statistic"`
	DF            float64 `json:"df" yaml:"df"`
	StandardError float64 `json:"standard_error" yaml:"standard_error"`
}

// TwoSampleT computes t for H0: μ1 − μ2 = delta0. Pooled uses
// n1 + n2 − 2 degrees of freedom; Welch uses the Welch–Satterthwaite df.
func TwoSampleT(a, b stats.SampleSummary, variance stats.VarianceAssumption, delta0 float64) (TwoSample, error) {
	const op = "two_sample_t"
	if err := variance.Validate(); err != nil {
		return TwoSample{}, err
	}
	for _, arm := range []stats.SampleSummary{a, b} {
		if arm.N < 2 {
			return TwoSample{}, core.NewDomainError(op, "each sample needs n >= 2, got n=%d", arm.N)
		}
		if err := core.CheckPositive(op, "sd", arm.SD); err != nil {
			return TwoSample{}, err
		}
	}

	n1, n2 := float64(a.N), float64(b.N)
	v1, v2 := a.SD*a.SD, b.SD*b.SD
	var se, df float64
	switch variance {
	case stats.VariancePooled:
		df = n1 + n2 - 2
		sp2 := ((n1-1)*v1 + (n2-1)*v2) / df
		se = math.Sqrt(sp2 * (1/n1 + 1/n2))
	case stats.VarianceWelch:
		q1, q2 := v1/n1, v2/n2
		se = math.Sqrt(q1 + q2)
		df = (q1 + q2) * (q1 + q2) / (q1*q1/(n1-1) + q2*q2/(n2-1))
	}
	return TwoSample{
		Statistic:     (a.Mean - b.Mean - delta0) / se,
		DF:            df,
		StandardError: se,
	}, nil
}

func tested(kind stats.TestKind, stat, df, alpha float64, tail stats.Tail, ref Reference) (stats.TestResult, error) {
	p, err := PValue(ref, stat, tail)
	if err != nil {
		return stats.TestResult{}, err
	}
	reject, err := Decide(p, alpha)
	if err != nil {
		return stats.TestResult{}, err
	}
	return stats.TestResult{
		Kind:      kind,
		Statistic: stat,
		DF1:       df,
		PValue:    p,
		Alpha:     alpha,
		Tail:      tail,
		Reject:    reject,
	}, nil
}

// ZTest evaluates a one-sample z specification
func ZTest(s stats.OneSampleZ) (stats.TestResult, error) {
	if err := s.Validate(); err != nil {
		return stats.TestResult{}, err
	}
	z, err := ZStatistic(s.Mean, s.Null, s.Sigma, s.N)
	if err != nil {
		return stats.TestResult{}, err
	}
	return tested(s.Kind(), z, 0, s.Alpha, s.Tail, ZReference())
}

// TTest evaluates a one-sample t specification
func TTest(s stats.OneSampleT) (stats.TestResult, error) {
	if err := s.Validate(); err != nil {
		return stats.TestResult{}, err
	}
	t, err := TStatistic(s.Mean, s.Null, s.SD, s.N)
	if err != nil {
		return stats.TestResult{}, err
	}
	df := float64(s.N - 1)
	ref, err := TReference(df)
	if err != nil {
		return stats.TestResult{}, err
	}
	return tested(s.Kind(), t, df, s.Alpha, s.Tail, ref)
}

// TwoSampleTTest evaluates a two-sample t specification
func TwoSampleTTest(s stats.TwoSampleT) (stats.TestResult, error) {
	if err := s.Validate(); err != nil {
		return stats.TestResult{}, err
	}
	two, err := TwoSampleT(s.First, s.Second, s.Variance, s.Null)
	if err != nil {
		return stats.TestResult{}, err
	}
	ref, err := TReference(two.DF)
	if err != nil {
		return stats.TestResult{}, err
	}
	return tested(s.Kind(), two.Statistic, two.DF, s.Alpha, s.Tail, ref)
}
