package probability

import (
	"math"
	"math/big"

	"statref/domain/core"
)

// maxFactorial is the largest n with n! representable as a float64
const maxFactorial = 170

// AsCount converts a user-supplied number to a non-negative integer count
func AsCount(op, name string, x float64) (int, error) {
	if !core.IsInteger(x) {
		return 0, core.NewDomainError(op, "%s=%v must be an integer", name, x)
	}
	if x < 0 {
		return 0, core.NewDomainError(op, "%s=%v must be >= 0", name, x)
	}
	if x > math.MaxInt32 {
		return 0, core.NewDomainError(op, "%s=%v is too large", name, x)
	}
	return int(x), nil
}

func checkNR(op string, n, r int) error {
	if n < 0 {
		return core.NewDomainError(op, "n=%d must be >= 0", n)
	}
	if r < 0 || r > n {
		return core.NewDomainError(op, "r=%d must be in [0, n=%d]", r, n)
	}
	return nil
}

// Factorial returns n! for 0 <= n <= 170
func Factorial(n int) (float64, error) {
	const op = "factorial"
	if n < 0 {
		return 0, core.NewDomainError(op, "n=%d must be >= 0", n)
	}
	if n > maxFactorial {
		return 0, core.NewDomainError(op, "%d! exceeds the float64 range; use FactorialExact", n)
	}
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f, nil
}

// FactorialExact returns n! as an arbitrary-precision integer
func FactorialExact(n int) (*big.Int, error) {
	if n < 0 {
		return nil, core.NewDomainError("factorial", "n=%d must be >= 0", n)
	}
	return new(big.Int).MulRange(1, int64(n)), nil
}

// Permutations returns P(n, r) = n! / (n − r)!, computed as the falling
// product n·(n−1)···(n−r+1)
func Permutations(n, r int) (float64, error) {
	const op = "permutations"
	if err := checkNR(op, n, r); err != nil {
		return 0, err
	}
	p := 1.0
	for i := 0; i < r; i++ {
		p *= float64(n - i)
	}
	if math.IsInf(p, 0) {
		return 0, core.NewDomainError(op, "P(%d, %d) exceeds the float64 range", n, r)
	}
	return p, nil
}

// Combinations returns C(n, r) with the multiplicative recurrence
// C ← C·(n−r+i)/i over i = 1..min(r, n−r). Each partial product is
// itself a binomial coefficient, so results are exact below 2^53 and
// C(n, r) == C(n, n−r) bit for bit.
func Combinations(n, r int) (float64, error) {
	const op = "combinations"
	if err := checkNR(op, n, r); err != nil {
		return 0, err
	}
	if r > n-r {
		r = n - r
	}
	c := 1.0
	for i := 1; i <= r; i++ {
		c = c * float64(n-r+i) / float64(i)
	}
	if math.IsInf(c, 0) {
		return 0, core.NewDomainError(op, "C(%d, %d) exceeds the float64 range; use CombinationsExact", n, r)
	}
	return math.Round(c), nil
}

// CombinationsExact returns C(n, r) as an arbitrary-precision integer
func CombinationsExact(n, r int) (*big.Int, error) {
	if err := checkNR("combinations", n, r); err != nil {
		return nil, err
	}
	return new(big.Int).Binomial(int64(n), int64(r)), nil
}

// Multinomial returns n! / (n1!·n2!···nk!) with n = Σ ni, built as a
// product of binomial coefficients so intermediates stay small
func Multinomial(counts ...int) (float64, error) {
	const op = "multinomial"
	if len(counts) == 0 {
		return 0, core.NewDomainError(op, "no group sizes given")
	}
	result := 1.0
	total := 0
	for i, c := range counts {
		if c < 0 {
			return 0, core.NewDomainError(op, "group size n%d=%d must be >= 0", i+1, c)
		}
		total += c
		b, err := Combinations(total, c)
		if err != nil {
			return 0, err
		}
		result *= b
	}
	if math.IsInf(result, 0) {
		return 0, core.NewDomainError(op, "multinomial coefficient exceeds the float64 range")
	}
	return result, nil
}

// CircularPermutations returns (n − 1)!, arrangements of n objects
// around a circle
func CircularPermutations(n int) (float64, error) {
	if n < 1 {
		return 0, core.NewDomainError("circular_permutations", "n=%d must be >= 1", n)
	}
	return Factorial(n - 1)
}

// MultiplicationRule returns n1·n2···nk, the number of ways to perform
// k tasks in sequence
func MultiplicationRule(ways ...int) (float64, error) {
	const op = "multiplication_rule"
	if len(ways) == 0 {
		return 0, core.NewDomainError(op, "no tasks given")
	}
	total := 1.0
	for i, w := range ways {
		if w < 0 {
			return 0, core.NewDomainError(op, "task %d has %d ways; must be >= 0", i+1, w)
		}
		total *= float64(w)
	}
	return total, nil
}
