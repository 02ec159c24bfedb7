// Package probability implements event arithmetic, Bayes' rule,
// counting rules and finite random-variable tables.
package probability

import (
	"math"

	"statref/domain/core"
)

// Classical returns |A| / |S| for an equally likely finite sample space
func Classical(favorable, total int) (float64, error) {
	const op = "classical"
	if total <= 0 {
		return 0, core.NewDomainError(op, "sample space size %d must be > 0", total)
	}
	if favorable < 0 || favorable > total {
		return 0, core.NewDomainError(op, "favorable outcomes %d must be in [0, %d]", favorable, total)
	}
	return float64(favorable) / float64(total), nil
}

// Complement returns 1 − P(A)
func Complement(pA float64) (float64, error) {
	if err := core.CheckProbability("complement", "P(A)", pA); err != nil {
		return 0, err
	}
	return 1 - pA, nil
}

func checkJoint(op string, pA, pB, pAB float64) error {
	for _, c := range []struct {
		name string
		v    float64
	}{{"P(A)", pA}, {"P(B)", pB}, {"P(A∩B)", pAB}} {
		if err := core.CheckProbability(op, c.name, c.v); err != nil {
			return err
		}
	}
	if pAB > math.Min(pA, pB)+core.Tolerance {
		return core.NewDomainError(op, "P(A∩B)=%v exceeds a marginal (P(A)=%v, P(B)=%v)", pAB, pA, pB)
	}
	return nil
}

// Union returns P(A∪B) = P(A) + P(B) − P(A∩B)
func Union(pA, pB, pAB float64) (float64, error) {
	const op = "union"
	if err := checkJoint(op, pA, pB, pAB); err != nil {
		return 0, err
	}
	u := pA + pB - pAB
	if u > 1+core.Tolerance {
		return 0, core.NewDomainError(op, "P(A)+P(B)−P(A∩B)=%v exceeds 1", u)
	}
	return math.Min(u, 1), nil
}

// Triple carries the seven probabilities needed for a three-set union
type Triple struct {
	A, B, C    float64
	AB, AC, BC float64
	ABC        float64
}

// Union3 applies inclusion–exclusion to three events
func Union3(p Triple) (float64, error) {
	const op = "union3"
	pairs := []struct{ x, y, xy float64 }{{p.A, p.B, p.AB}, {p.A, p.C, p.AC}, {p.B, p.C, p.BC}}
	for _, pr := range pairs {
		if err := checkJoint(op, pr.x, pr.y, pr.xy); err != nil {
			return 0, err
		}
	}
	if err := core.CheckProbability(op, "P(A∩B∩C)", p.ABC); err != nil {
		return 0, err
	}
	if p.ABC > math.Min(p.AB, math.Min(p.AC, p.BC))+core.Tolerance {
		return 0, core.NewDomainError(op, "P(A∩B∩C)=%v exceeds a pairwise intersection", p.ABC)
	}
	u := p.A + p.B + p.C - p.AB - p.AC - p.BC + p.ABC
	if u < -core.Tolerance || u > 1+core.Tolerance {
		return 0, core.NewDomainError(op, "inclusion–exclusion gives %v, outside [0, 1]", u)
	}
	return math.Max(0, math.Min(u, 1)), nil
}

// Conditional returns P(A|B) = P(A∩B) / P(B)
func Conditional(pAB, pB float64) (float64, error) {
	const op = "conditional"
	if err := core.CheckProbability(op, "P(B)", pB); err != nil {
		return 0, err
	}
	if err := core.CheckProbability(op, "P(A∩B)", pAB); err != nil {
		return 0, err
	}
	if pB == 0 {
		return 0, core.NewDomainError(op, "P(B)=0: conditioning on an impossible event")
	}
	if pAB > pB+core.Tolerance {
		return 0, core.NewDomainError(op, "P(A∩B)=%v exceeds P(B)=%v", pAB, pB)
	}
	return math.Min(pAB/pB, 1), nil
}

// Intersection applies the multiplication rule P(A∩B) = P(A)·P(B|A)
func Intersection(pA, pBgivenA float64) (float64, error) {
	const op = "intersection"
	if err := core.CheckProbability(op, "P(A)", pA); err != nil {
		return 0, err
	}
	if err := core.CheckProbability(op, "P(B|A)", pBgivenA); err != nil {
		return 0, err
	}
	return pA * pBgivenA, nil
}

// Independent reports whether |P(A∩B) − P(A)·P(B)| < core.Tolerance
func Independent(pA, pB, pAB float64) (bool, error) {
	if err := checkJoint("independent", pA, pB, pAB); err != nil {
		return false, err
	}
	return math.Abs(pAB-pA*pB) < core.Tolerance, nil
}

// MutuallyExclusive reports whether P(A∩B) is zero within tolerance
func MutuallyExclusive(pA, pB, pAB float64) (bool, error) {
	if err := checkJoint("mutually_exclusive", pA, pB, pAB); err != nil {
		return false, err
	}
	return pAB < core.Tolerance, nil
}
