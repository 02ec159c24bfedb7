package descriptive

import (
	"math"

	mstats "github.com/montanaflynn/stats"

	"statref/domain/core"
	"statref/domain/stats"
)

// Percentile returns the p-th percentile (0 <= p <= 100) using the
// (n+1)-position rule: L = p/100·(n+1), interpolated linearly between
// the bracketing order statistics and clamped to the extremes. Every
// quartile in this package goes through here.
func Percentile(x stats.Sample, p float64) (float64, error) {
	const op = "percentile"
	if err := x.Validate(op, 1); err != nil {
		return 0, err
	}
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, core.NewDomainError(op, "p=%v must be in [0, 100]", p)
	}
	return percentileSorted(x.Sorted(), p), nil
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	pos := p / 100 * float64(n+1)
	if pos <= 1 {
		return sorted[0]
	}
	if pos >= float64(n) {
		return sorted[n-1]
	}
	i := int(math.Floor(pos))
	frac := pos - float64(i)
	lo, hi := sorted[i-1], sorted[i]
	return lo + frac*(hi-lo)
}

// QuartileSet holds Q1, Q2 (median) and Q3
type QuartileSet struct {
	Q1 float64 `json:"q1" yaml:"q1"`
	Q2 float64 `json:"q2" yaml:"q2"`
	Q3 float64 `json:"q3" yaml:"q3"`
}

// IQR returns Q3 − Q1
func (q QuartileSet) IQR() float64 {
	return q.Q3 - q.Q1
}

// Quartiles returns the 25th, 50th and 75th percentiles
func Quartiles(x stats.Sample) (QuartileSet, error) {
	if err := x.Validate("quartiles", 1); err != nil {
		return QuartileSet{}, err
	}
	sorted := x.Sorted()
	return QuartileSet{
		Q1: percentileSorted(sorted, 25),
		Q2: percentileSorted(sorted, 50),
		Q3: percentileSorted(sorted, 75),
	}, nil
}

// IQR returns the interquartile range of x
func IQR(x stats.Sample) (float64, error) {
	q, err := Quartiles(x)
	if err != nil {
		return 0, err
	}
	return q.IQR(), nil
}

// Fences are Tukey's outlier boundaries
type Fences struct {
	MildLower    float64 `json:"mild_lower" yaml:"mild_lower"`
	MildUpper    float64 `json:"mild_upper" yaml:"mild_upper"`
	ExtremeLower float64 `json:"extreme_lower" yaml:"extreme_lower"`
	ExtremeUpper float64 `json:"extreme_upper" yaml:"extreme_upper"`
}

// FencesFor derives fences from quartiles: Q1 − 1.5·IQR, Q3 + 1.5·IQR
// (mild) and Q1 − 3·IQR, Q3 + 3·IQR (extreme)
func FencesFor(q QuartileSet) Fences {
	iqr := q.IQR()
	return Fences{
		MildLower:    q.Q1 - 1.5*iqr,
		MildUpper:    q.Q3 + 1.5*iqr,
		ExtremeLower: q.Q1 - 3*iqr,
		ExtremeUpper: q.Q3 + 3*iqr,
	}
}

// OutlierReport lists observations strictly outside the fences.
// Mild holds points beyond the 1.5·IQR fences but within 3·IQR;
// Extreme holds points beyond 3·IQR.
type OutlierReport struct {
	Quartiles QuartileSet `json:"quartiles" yaml:"quartiles"`
	Fences    Fences      `json:"fences" yaml:"fences"`
	Mild      []float64   `json:"mild" yaml:"mild"`
	Extreme   []float64   `json:"extreme" yaml:"extreme"`
}

// ClassifyOutliers classifies every observation of x against Tukey's fences.
// A constant sample has IQR 0 and every point sits on the fences, so
// nothing is flagged.
func ClassifyOutliers(x stats.Sample) (OutlierReport, error) {
	q, err := Quartiles(x)
	if err != nil {
		return OutlierReport{}, err
	}
	f := FencesFor(q)
	report := OutlierReport{Quartiles: q, Fences: f, Mild: []float64{}, Extreme: []float64{}}
	for _, v := range x.Sorted() {
		switch {
		case v < f.ExtremeLower || v > f.ExtremeUpper:
			report.Extreme = append(report.Extreme, v)
		case v < f.MildLower || v > f.MildUpper:
			report.Mild = append(report.Mild, v)
		}
	}
	return report, nil
}

// FiveNumber is the box-plot summary
type FiveNumber struct {
	Min    float64 `json:"min" yaml:"min"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Median float64 `json:"median" yaml:"median"`
	Q3     float64 `json:"q3" yaml:"q3"`
	Max    float64 `json:"max" yaml:"max"`
}

// FiveNumberSummary returns {min, Q1, median, Q3, max}
func FiveNumberSummary(x stats.Sample) (FiveNumber, error) {
	q, err := Quartiles(x)
	if err != nil {
		return FiveNumber{}, err
	}
	data := mstats.Float64Data(x)
	min, err := mstats.Min(data)
	if err != nil {
		return FiveNumber{}, err
	}
	max, err := mstats.Max(data)
	if err != nil {
		return FiveNumber{}, err
	}
	return FiveNumber{Min: min, Q1: q.Q1, Median: q.Q2, Q3: q.Q3, Max: max}, nil
}
