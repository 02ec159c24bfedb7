package probability

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"statref/domain/core"
)

// BayesResult carries the pieces of a two-hypothesis Bayes update
type BayesResult struct {
	Prior     float64 `json:"prior" yaml:"prior"`         // P(A)
	Evidence  float64 `json:"evidence" yaml:"evidence"`   // P(B), by total probability
	Posterior float64 `json:"posterior" yaml:"posterior"` // P(A|B)
}

// Posterior returns P(A|B) from P(A), P(B|A) and P(B|¬A)
func Posterior(prior, likelihood, falseAlarm float64) (BayesResult, error) {
	const op = "bayes"
	if err := core.CheckProbability(op, "P(A)", prior); err != nil {
		return BayesResult{}, err
	}
	if err := core.CheckProbability(op, "P(B|A)", likelihood); err != nil {
		return BayesResult{}, err
	}
	if err := core.CheckProbability(op, "P(B|¬A)", falseAlarm); err != nil {
		return BayesResult{}, err
	}
	evidence := likelihood*prior + falseAlarm*(1-prior)
	if evidence == 0 {
		return BayesResult{}, core.NewDomainError(op, "P(B)=0: the evidence is impossible under every hypothesis")
	}
	return BayesResult{
		Prior:     prior,
		Evidence:  evidence,
		Posterior: likelihood * prior / evidence,
	}, nil
}

// Hypothesis is one cell of a partition {A_i}: its prior P(A_i) and the
// likelihood P(B|A_i)
type Hypothesis struct {
	Label      string  `json:"label" yaml:"label"`
	Prior      float64 `json:"prior" yaml:"prior"`
	Likelihood float64 `json:"likelihood" yaml:"likelihood"`
}

func checkPartition(op string, parts []Hypothesis) error {
	if len(parts) == 0 {
		return core.NewDomainError(op, "partition is empty")
	}
	priors := make([]float64, len(parts))
	for i, h := range parts {
		if err := core.CheckProbability(op, "P(A_"+h.Label+")", h.Prior); err != nil {
			return err
		}
		if err := core.CheckProbability(op, "P(B|A_"+h.Label+")", h.Likelihood); err != nil {
			return err
		}
		priors[i] = h.Prior
	}
	if sum := floats.Sum(priors); math.Abs(sum-1) > core.Tolerance {
		return core.NewToleranceError(op, "partition priors sum to %v, not 1", sum)
	}
	return nil
}

// TotalProbability returns P(B) = Σ P(B|A_i)·P(A_i)
func TotalProbability(parts []Hypothesis) (float64, error) {
	if err := checkPartition("total_probability", parts); err != nil {
		return 0, err
	}
	var total float64
	for _, h := range parts {
		total += h.Likelihood * h.Prior
	}
	return total, nil
}

// PosteriorPartition returns P(A_i|B) for each cell, in input order.
// Priors that do not sum to 1 are reported, never renormalized.
func PosteriorPartition(parts []Hypothesis) ([]float64, error) {
	const op = "bayes_partition"
	evidence, err := TotalProbability(parts)
	if err != nil {
		return nil, err
	}
	if evidence == 0 {
		return nil, core.NewDomainError(op, "P(B)=0: the evidence is impossible under every hypothesis")
	}
	out := make([]float64, len(parts))
	for i, h := range parts {
		out[i] = h.Likelihood * h.Prior / evidence
	}
	return out, nil
}
