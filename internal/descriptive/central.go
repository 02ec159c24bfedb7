// Package descriptive computes summaries of a single sample: center,
// spread, position (percentiles, quartiles, fences), standardization,
// Chebyshev bounds and frequency tables.
package descriptive

import (
	"math"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"statref/domain/core"
	"statref/domain/stats"
)

// Mean returns the arithmetic mean
func Mean(x stats.Sample) (float64, error) {
	if err := x.Validate("mean", 1); err != nil {
		return 0, err
	}
	return stat.Mean(x, nil), nil
}

// WeightedMean returns Σwx / Σw. Weights need not sum to 1.
func WeightedMean(x stats.Sample, weights []float64) (float64, error) {
	const op = "weighted_mean"
	if err := x.Validate(op, 1); err != nil {
		return 0, err
	}
	if len(weights) != len(x) {
		return 0, core.NewDomainError(op, "got %d weights for %d values", len(weights), len(x))
	}
	if err := core.CheckFinite(op, "w", weights...); err != nil {
		return 0, err
	}
	for i, w := range weights {
		if w < 0 {
			return 0, core.NewDomainError(op, "weight w[%d]=%v is negative", i, w)
		}
	}
	if floats.Sum(weights) == 0 {
		return 0, core.NewDomainError(op, "weights sum to zero")
	}
	return stat.Mean(x, weights), nil
}

// GeometricMean returns (Πx)^(1/n); every value must be positive
func GeometricMean(x stats.Sample) (float64, error) {
	const op = "geometric_mean"
	if err := x.Validate(op, 1); err != nil {
		return 0, err
	}
	for i, v := range x {
		if v <= 0 {
			return 0, core.NewUndefinedError(op, "x[%d]=%v is not positive", i, v)
		}
	}
	return stat.GeometricMean(x, nil), nil
}

// Median returns the middle order statistic (mean of the two middle
// values when n is even)
func Median(x stats.Sample) (float64, error) {
	if err := x.Validate("median", 1); err != nil {
		return 0, err
	}
	return mstats.Median(mstats.Float64Data(x))
}

// Mode returns every value tied for the highest frequency, ascending.
// An empty result means no value repeats more often than the others.
func Mode(x stats.Sample) ([]float64, error) {
	if err := x.Validate("mode", 1); err != nil {
		return nil, err
	}
	m, err := mstats.Mode(mstats.Float64Data(x))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// MidRange returns (min + max) / 2
func MidRange(x stats.Sample) (float64, error) {
	if err := x.Validate("midrange", 1); err != nil {
		return 0, err
	}
	return (floats.Min(x) + floats.Max(x)) / 2, nil
}

// InterquartileMean averages the observations lying within [Q1, Q3]
func InterquartileMean(x stats.Sample) (float64, error) {
	q, err := Quartiles(x)
	if err != nil {
		return 0, err
	}
	var sum float64
	var n int
	for _, v := range x {
		if v >= q.Q1 && v <= q.Q3 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, core.NewUndefinedError("interquartile_mean", "no observations fall within [%v, %v]", q.Q1, q.Q3)
	}
	return sum / float64(n), nil
}

// SkewDirection classifies asymmetry by comparing mean and median
type SkewDirection string

const (
	SkewLeft      SkewDirection = "left"
	SkewSymmetric SkewDirection = "symmetric"
	SkewRight     SkewDirection = "right"
)

// Skew reports the direction implied by mean versus median:
// mean > median is right-skewed, mean < median left-skewed.
func Skew(x stats.Sample) (SkewDirection, error) {
	mean, err := Mean(x)
	if err != nil {
		return "", err
	}
	median, err := Median(x)
	if err != nil {
		return "", err
	}
	switch {
	case core.ApproxEqual(mean, median, core.Tolerance):
		return SkewSymmetric, nil
	case mean > median:
		return SkewRight, nil
	default:
		return SkewLeft, nil
	}
}

// PearsonSkewness returns 3(mean − median)/s
func PearsonSkewness(x stats.Sample) (float64, error) {
	const op = "pearson_skewness"
	s, err := StdDev(x, SampleMode)
	if err != nil {
		return 0, err
	}
	if s == 0 {
		return 0, core.NewUndefinedError(op, "standard deviation is zero")
	}
	mean, err := Mean(x)
	if err != nil {
		return 0, err
	}
	median, err := Median(x)
	if err != nil {
		return 0, err
	}
	return 3 * (mean - median) / s, nil
}

// MomentSkewness returns the sample skewness coefficient; needs n >= 3
// and non-zero spread
func MomentSkewness(x stats.Sample) (float64, error) {
	const op = "moment_skewness"
	if err := x.Validate(op, 3); err != nil {
		return 0, err
	}
	if floats.Max(x) == floats.Min(x) {
		return 0, core.NewUndefinedError(op, "all observations are equal")
	}
	sk := stat.Skew(x, nil)
	if math.IsNaN(sk) {
		return 0, core.NewUndefinedError(op, "skewness is not defined for this sample")
	}
	return sk, nil
}
