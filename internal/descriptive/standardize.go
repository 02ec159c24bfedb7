package descriptive

import (
	"math"

	"statref/domain/core"
	"statref/domain/stats"
)

// ZScore returns (x − mean) / sd
func ZScore(x, mean, sd float64) (float64, error) {
	const op = "z_score"
	if err := core.CheckFinite(op, "input", x, mean); err != nil {
		return 0, err
	}
	if err := core.CheckPositive(op, "sd", sd); err != nil {
		return 0, err
	}
	return (x - mean) / sd, nil
}

// FromZScore inverts ZScore: mean + z·sd
func FromZScore(z, mean, sd float64) (float64, error) {
	const op = "from_z_score"
	if err := core.CheckFinite(op, "input", z, mean); err != nil {
		return 0, err
	}
	if err := core.CheckPositive(op, "sd", sd); err != nil {
		return 0, err
	}
	return mean + z*sd, nil
}

// ZScores standardizes every observation with the sample mean and
// sample standard deviation
func ZScores(x stats.Sample) ([]float64, error) {
	s, err := StdDev(x, SampleMode)
	if err != nil {
		return nil, err
	}
	if s == 0 {
		return nil, core.NewUndefinedError("z_scores", "standard deviation is zero")
	}
	mean, err := Mean(x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - mean) / s
	}
	return out, nil
}

// ChebyshevBound is the distribution-free interval μ ± kσ
type ChebyshevBound struct {
	K           float64 `json:"k" yaml:"k"`
	Lower       float64 `json:"lower" yaml:"lower"`
	Upper       float64 `json:"upper" yaml:"upper"`
	MinCoverage float64 `json:"min_coverage" yaml:"min_coverage"` // ≥ 1 − 1/k²
	MaxOutside  float64 `json:"max_outside" yaml:"max_outside"`   // ≤ 1/k²
}

// ChebyshevMinCoverage returns 1 − 1/k², the least fraction of any
// distribution within k standard deviations of its mean (k > 1)
func ChebyshevMinCoverage(k float64) (float64, error) {
	if math.IsNaN(k) || math.IsInf(k, 0) || k <= 1 {
		return 0, core.NewDomainError("chebyshev", "k=%v must be > 1", k)
	}
	return 1 - 1/(k*k), nil
}

// ChebyshevK returns the smallest k guaranteeing the given coverage,
// k = 1/√(1 − p) for p in (0, 1)
func ChebyshevK(coverage float64) (float64, error) {
	if !(coverage > 0 && coverage < 1) {
		return 0, core.NewDomainError("chebyshev_k", "coverage=%v must be in (0, 1)", coverage)
	}
	return 1 / math.Sqrt(1-coverage), nil
}

// ChebyshevInterval returns [μ − kσ, μ + kσ] with its coverage bounds
func ChebyshevInterval(mu, sigma, k float64) (ChebyshevBound, error) {
	const op = "chebyshev_interval"
	if err := core.CheckFinite(op, "mu", mu); err != nil {
		return ChebyshevBound{}, err
	}
	if err := core.CheckPositive(op, "sigma", sigma); err != nil {
		return ChebyshevBound{}, err
	}
	cov, err := ChebyshevMinCoverage(k)
	if err != nil {
		return ChebyshevBound{}, err
	}
	return ChebyshevBound{
		K:           k,
		Lower:       mu - k*sigma,
		Upper:       mu + k*sigma,
		MinCoverage: cov,
		MaxOutside:  1 / (k * k),
	}, nil
}
