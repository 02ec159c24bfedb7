package descriptive

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"statref/domain/core"
	"statref/domain/stats"
)

// SturgesClasses returns ⌈1 + 3.322·log10(n)⌉
func SturgesClasses(n int) (int, error) {
	if n < 1 {
		return 0, core.NewDomainError("sturges", "n=%d must be >= 1", n)
	}
	return int(math.Ceil(1 + 3.322*math.Log10(float64(n)))), nil
}

// FrequencyClass is one row of a frequency distribution. Classes are
// half-open [Lower, Upper) except the last, which includes Upper.
type FrequencyClass struct {
	Lower              float64 `json:"lower" yaml:"lower"`
	Upper              float64 `json:"upper" yaml:"upper"`
	Midpoint           float64 `json:"midpoint" yaml:"midpoint"`
	Frequency          int     `json:"frequency" yaml:"frequency"`
	Relative           float64 `json:"relative" yaml:"relative"`
	Cumulative         int     `json:"cumulative" yaml:"cumulative"`
	CumulativeRelative float64 `json:"cumulative_relative" yaml:"cumulative_relative"`
}

// FrequencyTable bins x into k equal-width classes spanning [min, max]
func FrequencyTable(x stats.Sample, k int) ([]FrequencyClass, error) {
	const op = "frequency_table"
	if err := x.Validate(op, 1); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, core.NewDomainError(op, "k=%d classes must be >= 1", k)
	}
	min, max := floats.Min(x), floats.Max(x)
	width := (max - min) / float64(k)
	if width == 0 {
		return nil, core.NewUndefinedError(op, "class width is zero: all observations equal %v", min)
	}

	classes := make([]FrequencyClass, k)
	for i := range classes {
		lo := min + float64(i)*width
		hi := min + float64(i+1)*width
		if i == k-1 {
			hi = max
		}
		classes[i] = FrequencyClass{Lower: lo, Upper: hi, Midpoint: (lo + hi) / 2}
	}
	for _, v := range x {
		idx := int(math.Floor((v - min) / width))
		if idx >= k {
			idx = k - 1
		}
		classes[idx].Frequency++
	}

	n := float64(len(x))
	cum := 0
	for i := range classes {
		cum += classes[i].Frequency
		classes[i].Relative = float64(classes[i].Frequency) / n
		classes[i].Cumulative = cum
		classes[i].CumulativeRelative = float64(cum) / n
	}
	return classes, nil
}

func checkGrouped(op string, midpoints, freqs []float64) error {
	if len(midpoints) != len(freqs) {
		return core.NewDomainError(op, "got %d frequencies for %d midpoints", len(freqs), len(midpoints))
	}
	if len(midpoints) == 0 {
		return core.NewDomainError(op, "no classes")
	}
	if err := core.CheckFinite(op, "m", midpoints...); err != nil {
		return err
	}
	for i, f := range freqs {
		if math.IsNaN(f) || f < 0 {
			return core.NewDomainError(op, "frequency f[%d]=%v must be >= 0", i, f)
		}
	}
	return nil
}

// GroupedMean estimates the mean from class midpoints: Σf·m / Σf
func GroupedMean(midpoints, freqs []float64) (float64, error) {
	const op = "grouped_mean"
	if err := checkGrouped(op, midpoints, freqs); err != nil {
		return 0, err
	}
	if floats.Sum(freqs) == 0 {
		return 0, core.NewDomainError(op, "frequencies sum to zero")
	}
	return stat.Mean(midpoints, freqs), nil
}

// GroupedVariance estimates s² = Σf(m − mean)² / (Σf − 1)
func GroupedVariance(midpoints, freqs []float64) (float64, error) {
	const op = "grouped_variance"
	if err := checkGrouped(op, midpoints, freqs); err != nil {
		return 0, err
	}
	if floats.Sum(freqs) < 2 {
		return 0, core.NewUndefinedError(op, "need total frequency >= 2, got %v", floats.Sum(freqs))
	}
	return stat.Variance(midpoints, freqs), nil
}
