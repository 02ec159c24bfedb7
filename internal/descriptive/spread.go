package descriptive

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"statref/domain/core"
	"statref/domain/stats"
)

// VarianceMode selects the divisor. The zero value is invalid so the
// caller always states which one is meant.
type VarianceMode int

const (
	PopulationMode VarianceMode = iota + 1 // divide by N
	SampleMode                             // divide by n − 1
)

func (m VarianceMode) String() string {
	switch m {
	case PopulationMode:
		return "population"
	case SampleMode:
		return "sample"
	default:
		return "unknown"
	}
}

// Variance returns σ² (PopulationMode) or s² (SampleMode). A constant
// sample yields exactly 0; a single observation has no sample variance.
func Variance(x stats.Sample, mode VarianceMode) (float64, error) {
	const op = "variance"
	if err := x.Validate(op, 1); err != nil {
		return 0, err
	}
	switch mode {
	case PopulationMode:
		if isConstant(x) {
			return 0, nil
		}
		return stat.PopVariance(x, nil), nil
	case SampleMode:
		if len(x) < 2 {
			return 0, core.NewUndefinedError(op, "sample variance needs n >= 2, got n=%d", len(x))
		}
		if isConstant(x) {
			return 0, nil
		}
		return stat.Variance(x, nil), nil
	default:
		return 0, core.NewDomainError(op, "unknown variance mode %d", int(mode))
	}
}

// StdDev is the square root of Variance
func StdDev(x stats.Sample, mode VarianceMode) (float64, error) {
	v, err := Variance(x, mode)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// ShortcutVariance computes s² = (Σx² − (Σx)²/n) / (n − 1), the
// computational formula taught alongside the definitional one
func ShortcutVariance(x stats.Sample) (float64, error) {
	const op = "shortcut_variance"
	if err := x.Validate(op, 1); err != nil {
		return 0, err
	}
	if len(x) < 2 {
		return 0, core.NewUndefinedError(op, "sample variance needs n >= 2, got n=%d", len(x))
	}
	n := float64(len(x))
	var sum, sumSq float64
	for _, v := range x {
		sum += v
		sumSq += v * v
	}
	return (sumSq - sum*sum/n) / (n - 1), nil
}

// Range returns max − min
func Range(x stats.Sample) (float64, error) {
	if err := x.Validate("range", 1); err != nil {
		return 0, err
	}
	return floats.Max(x) - floats.Min(x), nil
}

// CoefficientOfVariation returns s / mean × 100 (percent)
func CoefficientOfVariation(x stats.Sample) (float64, error) {
	const op = "coefficient_of_variation"
	s, err := StdDev(x, SampleMode)
	if err != nil {
		return 0, err
	}
	mean := stat.Mean(x, nil)
	if mean == 0 {
		return 0, core.NewUndefinedError(op, "mean is zero")
	}
	return s / mean * 100, nil
}

// MeanAbsoluteDeviation returns Σ|x − mean| / n
func MeanAbsoluteDeviation(x stats.Sample) (float64, error) {
	mean, err := Mean(x)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range x {
		sum += math.Abs(v - mean)
	}
	return sum / float64(len(x)), nil
}

// Deviations returns x − mean for each observation
func Deviations(x stats.Sample) ([]float64, error) {
	mean, err := Mean(x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - mean
	}
	return out, nil
}

func isConstant(x []float64) bool {
	return floats.Max(x) == floats.Min(x)
}
