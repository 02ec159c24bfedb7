// Package inference covers point and interval estimation, sample-size
// planning and the z and t families of hypothesis tests.
package inference

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"statref/domain/core"
	"statref/domain/stats"
)

// Estimate is the point summary of a sample
type Estimate struct {
	Mean     float64 `json:"mean" yaml:"mean"`
	Variance float64 `json:"variance" yaml:"variance"`
	SD       float64 `json:"sd" yaml:"sd"`
	N        int     `json:"n" yaml:"n"`
}

// PointEstimate returns x̄, s² and s for a sample of at least 2
func PointEstimate(x stats.Sample) (Estimate, error) {
	if err := x.Validate("point_estimate", 1); err != nil {
		return Estimate{}, err
	}
	if len(x) < 2 {
		return Estimate{}, core.NewUndefinedError("point_estimate", "sample variance needs n >= 2, got n=%d", len(x))
	}
	mean, variance := stat.MeanVariance(x, nil)
	return Estimate{Mean: mean, Variance: variance, SD: math.Sqrt(variance), N: len(x)}, nil
}

// Proportion returns p̂ = successes / n
func Proportion(successes, n int) (float64, error) {
	if n <= 0 {
		return 0, core.NewDomainError("proportion", "n=%d must be > 0", n)
	}
	if successes < 0 || successes > n {
		return 0, core.NewDomainError("proportion", "successes=%d must be in [0, %d]", successes, n)
	}
	return float64(successes) / float64(n), nil
}

// StandardError returns σ/√n
func StandardError(sigma float64, n int) (float64, error) {
	if err := core.CheckPositive("standard_error", "sigma", sigma); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, core.NewDomainError("standard_error", "n=%d must be >= 1", n)
	}
	return sigma / math.Sqrt(float64(n)), nil
}

func checkLevel(op string, level float64) error {
	if !(level > 0 && level < 1) {
		return core.NewDomainError(op, "confidence level %v must be in (0, 1)", level)
	}
	return nil
}

// zCritical returns z_{α/2} for a two-sided confidence level
func zCritical(level float64) float64 {
	return distuv.UnitNormal.Quantile(1 - (1-level)/2)
}
