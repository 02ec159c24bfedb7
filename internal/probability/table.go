package probability

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"statref/domain/core"
)

// ProbabilityTable is a finite discrete random variable given as a list
// of values and their probabilities
type ProbabilityTable struct {
	values []float64
	probs  []float64
}

// NewProbabilityTable validates the table: equal lengths, distinct
// finite values, probabilities in [0, 1] summing to 1 within tolerance
func NewProbabilityTable(values, probs []float64) (ProbabilityTable, error) {
	const op = "probability_table"
	if len(values) == 0 {
		return ProbabilityTable{}, core.NewDomainError(op, "table is empty")
	}
	if len(values) != len(probs) {
		return ProbabilityTable{}, core.NewDomainError(op, "got %d probabilities for %d values", len(probs), len(values))
	}
	if err := core.CheckFinite(op, "x", values...); err != nil {
		return ProbabilityTable{}, err
	}
	seen := make(map[float64]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return ProbabilityTable{}, core.NewDomainError(op, "value %v appears more than once", v)
		}
		seen[v] = true
	}
	for i, p := range probs {
		if err := core.CheckProbability(op, "p", p); err != nil {
			return ProbabilityTable{}, core.NewDomainError(op, "p(x=%v)=%v must be in [0, 1]", values[i], p)
		}
	}
	if sum := floats.Sum(probs); math.Abs(sum-1) > core.Tolerance {
		return ProbabilityTable{}, core.NewToleranceError(op, "probabilities sum to %v, not 1", sum)
	}

	t := ProbabilityTable{values: append([]float64(nil), values...), probs: append([]float64(nil), probs...)}
	sort.Sort(byValue(t))
	return t, nil
}

type byValue ProbabilityTable

func (b byValue) Len() int           { return len(b.values) }
func (b byValue) Less(i, j int) bool { return b.values[i] < b.values[j] }
func (b byValue) Swap(i, j int) {
	b.values[i], b.values[j] = b.values[j], b.values[i]
	b.probs[i], b.probs[j] = b.probs[j], b.probs[i]
}

// Mean returns E[X] = Σ x·p(x)
func (t ProbabilityTable) Mean() float64 {
	return stat.Mean(t.values, t.probs)
}

// Variance returns Σ (x − μ)²·p(x)
func (t ProbabilityTable) Variance() float64 {
	mu := t.Mean()
	var v float64
	for i, x := range t.values {
		d := x - mu
		v += d * d * t.probs[i]
	}
	return v
}

// StdDev returns √Var(X)
func (t ProbabilityTable) StdDev() float64 {
	return math.Sqrt(t.Variance())
}

// Expect returns E[g(X)] = Σ g(x)·p(x)
func (t ProbabilityTable) Expect(g func(float64) float64) float64 {
	var e float64
	for i, x := range t.values {
		e += g(x) * t.probs[i]
	}
	return e
}

// CDF returns P(X <= x)
func (t ProbabilityTable) CDF(x float64) float64 {
	var c float64
	for i, v := range t.values {
		if v > x {
			break
		}
		c += t.probs[i]
	}
	return math.Min(c, 1)
}

// LinearTransform returns the mean and variance of aX + b
func (t ProbabilityTable) LinearTransform(a, b float64) (mean, variance float64) {
	return a*t.Mean() + b, a * a * t.Variance()
}
