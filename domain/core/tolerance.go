package core

import "math"

// Tolerance is the absolute slack used for floating-point identities
// (probability sums, independence checks, decomposition identities).
const Tolerance = 1e-9

// ApproxEqual reports whether a and b agree within tol, scaled by their
// magnitude once they exceed 1.
func ApproxEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol*scale
}

// IsInteger reports whether x is finite and has no fractional part.
func IsInteger(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x) && x == math.Trunc(x)
}

// CheckProbability validates that p is a probability in [0, 1].
func CheckProbability(op, name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return NewDomainError(op, "%s=%v must be in [0, 1]", name, p)
	}
	return nil
}

// CheckPositive validates that v is finite and strictly positive.
func CheckPositive(op, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return NewDomainError(op, "%s=%v must be > 0", name, v)
	}
	return nil
}

// CheckFinite validates that every value is a finite real number.
func CheckFinite(op, name string, values ...float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewDomainError(op, "%s[%d]=%v is not finite", name, i, v)
		}
	}
	return nil
}
