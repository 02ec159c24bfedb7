package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"statref/domain/core"
	"statref/domain/stats"
)

// SigmaMode selects the reference distribution of a mean interval.
// The zero value is invalid.
type SigmaMode int

const (
	// KnownSigma uses z with the population σ
	KnownSigma SigmaMode = iota + 1
	// UnknownSigma uses t with n−1 degrees of freedom and the sample s
	UnknownSigma
)

func (m SigmaMode) String() string {
	switch m {
	case KnownSigma:
		return "known_sigma"
	case UnknownSigma:
		return "unknown_sigma"
	}
	return "invalid"
}

// MeanInterval returns x̄ ± critical·sd/√n at the given confidence level
func MeanInterval(mean, sd float64, n int, level float64, mode SigmaMode) (stats.Interval, error) {
	const op = "mean_interval"
	if err := checkLevel(op, level); err != nil {
		return stats.Interval{}, err
	}
	if err := core.CheckFinite(op, "mean", mean); err != nil {
		return stats.Interval{}, err
	}
	if err := core.CheckPositive(op, "sd", sd); err != nil {
		return stats.Interval{}, err
	}

	var critical float64
	switch mode {
	case KnownSigma:
		if n < 1 {
			return stats.Interval{}, core.NewDomainError(op, "n=%d must be >= 1", n)
		}
		critical = zCritical(level)
	case UnknownSigma:
		if n < 2 {
			return stats.Interval{}, core.NewDomainError(op, "t interval needs n >= 2, got n=%d", n)
		}
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
		critical = t.Quantile(1 - (1-level)/2)
	default:
		return stats.Interval{}, core.NewDomainError(op, "sigma mode must be KnownSigma or UnknownSigma")
	}

	margin := critical * sd / math.Sqrt(float64(n))
	return stats.Interval{
		Estimate: mean,
		Lower:    mean - margin,
		Upper:    mean + margin,
		Margin:   margin,
		Level:    level,
	}, nil
}

// ProportionEstimate is a Wald interval. Degenerate marks p̂ of 0 or 1,
// where the interval collapses to a point. OutOfRange marks a bound
// below 0 or above 1; the bounds are reported unclipped.
type ProportionEstimate struct {
	stats.Interval `yaml:",inline"`

	Degenerate bool `json:"degenerate" yaml:"degenerate"`
	OutOfRange bool `json:"out_of_range" yaml:"out_of_range"`
}

// ProportionInterval returns the Wald interval p̂ ± z·√(p̂(1−p̂)/n)
func ProportionInterval(successes, n int, level float64) (ProportionEstimate, error) {
	const op = "proportion_interval"
	if err := checkLevel(op, level); err != nil {
		return ProportionEstimate{}, err
	}
	p, err := Proportion(successes, n)
	if err != nil {
		return ProportionEstimate{}, err
	}
	margin := zCritical(level) * math.Sqrt(p*(1-p)/float64(n))
	lower, upper := p-margin, p+margin
	return ProportionEstimate{
		Interval: stats.Interval{
			Estimate: p,
			Lower:    lower,
			Upper:    upper,
			Margin:   margin,
			Level:    level,
		},
		Degenerate: p == 0 || p == 1,
		OutOfRange: lower < 0 || upper > 1,
	}, nil
}

// SampleSizeForMean returns ⌈(z·σ/E)²⌉
func SampleSizeForMean(sigma, margin, level float64) (int, error) {
	const op = "sample_size_mean"
	if err := checkLevel(op, level); err != nil {
		return 0, err
	}
	if err := core.CheckPositive(op, "sigma", sigma); err != nil {
		return 0, err
	}
	if err := core.CheckPositive(op, "margin", margin); err != nil {
		return 0, err
	}
	r := zCritical(level) * sigma / margin
	return ceilCount(r * r), nil
}

// SampleSizeForProportion returns ⌈z²·p̂(1−p̂)/E²⌉; use p̂ = 0.5 when no
// prior estimate exists
func SampleSizeForProportion(pHat, margin, level float64) (int, error) {
	const op = "sample_size_proportion"
	if err := checkLevel(op, level); err != nil {
		return 0, err
	}
	if err := core.CheckProbability(op, "p", pHat); err != nil {
		return 0, err
	}
	if err := core.CheckPositive(op, "margin", margin); err != nil {
		return 0, err
	}
	z := zCritical(level)
	return ceilCount(z * z * pHat * (1 - pHat) / (margin * margin)), nil
}

// ceilCount rounds up, absorbing float noise just above an integer
func ceilCount(v float64) int {
	r := math.Round(v)
	if math.Abs(v-r) < core.Tolerance {
		return int(math.Max(r, 1))
	}
	return int(math.Max(math.Ceil(v), 1))
}
