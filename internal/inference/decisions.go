package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"statref/domain/core"
	"statref/domain/stats"
)

// Outcome classifies a decision against the true state of H0
type Outcome string

const (
	OutcomeCorrectRejection Outcome = "correct_rejection"
	OutcomeCorrectRetention Outcome = "correct_retention"
	OutcomeTypeI            Outcome = "type_i_error"
	OutcomeTypeII           Outcome = "type_ii_error"
)

// ErrorOutcome returns which cell of the decision table applies
func ErrorOutcome(reject, h0True bool) Outcome {
	switch {
	case reject && h0True:
		return OutcomeTypeI
	case reject:
		return OutcomeCorrectRejection
	case h0True:
		return OutcomeCorrectRetention
	default:
		return OutcomeTypeII
	}
}

// Power is the probability of rejecting H0 when μ = μ1, and β = 1 − power
type Power struct {
	Power float64 `json:"power" yaml:"power"`
	Beta  float64 `json:"beta" yaml:"beta"`
}

// ZTestPower returns the power of a one-sample z test of μ0 at level α
// when the true mean is μ1
func ZTestPower(mu0, mu1, sigma float64, n int, alpha float64, tail stats.Tail) (Power, error) {
	const op = "z_power"
	se, err := StandardError(sigma, n)
	if err != nil {
		return Power{}, err
	}
	if err := core.CheckFinite(op, "mu", mu0, mu1); err != nil {
		return Power{}, err
	}
	crit, err := CriticalValue(ZReference(), alpha, tail)
	if err != nil {
		return Power{}, err
	}

	shift := (mu1 - mu0) / se
	z := distuv.UnitNormal
	var power float64
	switch tail {
	case stats.TailLeft:
		power = z.CDF(crit - shift)
	case stats.TailRight:
		power = z.Survival(crit - shift)
	default:
		power = z.Survival(crit-shift) + z.CDF(-crit-shift)
	}
	power = math.Min(1, power)
	return Power{Power: power, Beta: 1 - power}, nil
}

// EvidenceLevel maps a p-value to the conventional star notation:
// "***" p <= .001, "**" p <= .01, "*" p <= .05, "." p <= .10, "" otherwise
func EvidenceLevel(p float64) (string, error) {
	if err := core.CheckProbability("evidence_level", "p", p); err != nil {
		return "", err
	}
	switch {
	case p <= 0.001:
		return "***", nil
	case p <= 0.01:
		return "**", nil
	case p <= 0.05:
		return "*", nil
	case p <= 0.10:
		return ".", nil
	}
	return "", nil
}
