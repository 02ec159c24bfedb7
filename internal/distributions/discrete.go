package distributions

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"

	"statref/domain/core"
)

// exactBinomialLimit is the largest n whose coefficients fit an int64
const exactBinomialLimit = 60

func checkK(op string, k float64) error {
	if !core.IsInteger(k) {
		return core.NewDomainError(op, "k=%v must be an integer", k)
	}
	return nil
}

// discreteInterval sums P(a <= X <= b) for integer bounds
func discreteInterval(d Discrete, op string, a, b float64) (float64, error) {
	if err := checkInterval(op, a, b); err != nil {
		return 0, err
	}
	if err := checkK(op, a); err != nil {
		return 0, err
	}
	if err := checkK(op, b); err != nil {
		return 0, err
	}
	if a == b {
		return d.PMF(a)
	}
	upper, err := d.CDF(b)
	if err != nil {
		return 0, err
	}
	below, err := d.CDF(a - 1)
	if err != nil {
		return 0, err
	}
	return math.Max(0, upper-below), nil
}

// ============================================================================
// BERNOULLI
// ============================================================================

// Bernoulli is a single trial with success probability p
type Bernoulli struct {
	p float64
}

// NewBernoulli validates p in [0, 1]
func NewBernoulli(p float64) (Bernoulli, error) {
	if err := core.CheckProbability("bernoulli", "p", p); err != nil {
		return Bernoulli{}, err
	}
	return Bernoulli{p: p}, nil
}

func (b Bernoulli) Family() Family    { return FamilyBernoulli }
func (b Bernoulli) Mean() float64     { return b.p }
func (b Bernoulli) Variance() float64 { return b.p * (1 - b.p) }

func (b Bernoulli) Support() (lo, hi float64) { return 0, 1 }

func (b Bernoulli) PMF(k float64) (float64, error) {
	if err := checkK("bernoulli_pmf", k); err != nil {
		return 0, err
	}
	switch k {
	case 0:
		return 1 - b.p, nil
	case 1:
		return b.p, nil
	}
	return 0, nil
}

func (b Bernoulli) CDF(k float64) (float64, error) {
	if err := checkK("bernoulli_cdf", k); err != nil {
		return 0, err
	}
	switch {
	case k < 0:
		return 0, nil
	case k < 1:
		return 1 - b.p, nil
	}
	return 1, nil
}

func (b Bernoulli) IntervalProbability(lo, hi float64) (float64, error) {
	return discreteInterval(b, "bernoulli_interval", lo, hi)
}

// ============================================================================
// BINOMIAL
// ============================================================================

// Binomial counts successes in n independent Bernoulli(p) trials
type Binomial struct {
	n int
	p float64
}

// NewBinomial validates n >= 0 and p in [0, 1]
func NewBinomial(n int, p float64) (Binomial, error) {
	const op = "binomial"
	if n < 0 {
		return Binomial{}, core.NewDomainError(op, "n=%d must be >= 0", n)
	}
	if err := core.CheckProbability(op, "p", p); err != nil {
		return Binomial{}, err
	}
	return Binomial{n: n, p: p}, nil
}

func (b Binomial) Family() Family    { return FamilyBinomial }
func (b Binomial) N() int            { return b.n }
func (b Binomial) P() float64        { return b.p }
func (b Binomial) Mean() float64     { return float64(b.n) * b.p }
func (b Binomial) Variance() float64 { return float64(b.n) * b.p * (1 - b.p) }

func (b Binomial) Support() (lo, hi float64) { return 0, float64(b.n) }

// PMF returns C(n, k)·p^k·(1−p)^(n−k)
func (b Binomial) PMF(k float64) (float64, error) {
	if err := checkK("binomial_pmf", k); err != nil {
		return 0, err
	}
	if k < 0 || k > float64(b.n) {
		return 0, nil
	}
	return b.pmf(int(k)), nil
}

func (b Binomial) pmf(k int) float64 {
	switch b.p {
	case 0:
		if k == 0 {
			return 1
		}
		return 0
	case 1:
		if k == b.n {
			return 1
		}
		return 0
	}
	if b.n <= exactBinomialLimit {
		return float64(combin.Binomial(b.n, k)) * math.Pow(b.p, float64(k)) * math.Pow(1-b.p, float64(b.n-k))
	}
	logC := combin.LogGeneralizedBinomial(float64(b.n), float64(k))
	return math.Exp(logC + float64(k)*math.Log(b.p) + float64(b.n-k)*math.Log1p(-b.p))
}

func (b Binomial) CDF(k float64) (float64, error) {
	if err := checkK("binomial_cdf", k); err != nil {
		return 0, err
	}
	if k < 0 {
		return 0, nil
	}
	if k >= float64(b.n) {
		return 1, nil
	}
	var c float64
	for i := 0; i <= int(k); i++ {
		c += b.pmf(i)
	}
	return math.Min(c, 1), nil
}

func (b Binomial) IntervalProbability(lo, hi float64) (float64, error) {
	return discreteInterval(b, "binomial_interval", lo, hi)
}

// NormalApprox returns N(np, √(np(1−p))) for the continuity-free
// approximation
func (b Binomial) NormalApprox() (Normal, error) {
	v := b.Variance()
	if v == 0 {
		return Normal{}, core.NewUndefinedError("binomial_normal_approx", "variance is 0 for n=%d, p=%v", b.n, b.p)
	}
	return NewNormal(b.Mean(), math.Sqrt(v))
}

// NormalApproxAdequate applies the np >= 5 and n(1−p) >= 5 rule of thumb
func (b Binomial) NormalApproxAdequate() bool {
	n := float64(b.n)
	return n*b.p >= 5 && n*(1-b.p) >= 5
}

// PoissonApprox returns Poisson(np)
func (b Binomial) PoissonApprox() (Poisson, error) {
	if b.Mean() == 0 {
		return Poisson{}, core.NewUndefinedError("binomial_poisson_approx", "np=0 has no Poisson counterpart")
	}
	return NewPoisson(b.Mean())
}

// PoissonApproxAdequate applies the n >= 20, p <= 0.05 rule of thumb
func (b Binomial) PoissonApproxAdequate() bool {
	return b.n >= 20 && b.p <= 0.05
}

// ============================================================================
// POISSON
// ============================================================================

// Poisson counts events in a fixed interval at rate λ
type Poisson struct {
	dist distuv.Poisson
}

// NewPoisson validates λ > 0
func NewPoisson(lambda float64) (Poisson, error) {
	if err := core.CheckPositive("poisson", "lambda", lambda); err != nil {
		return Poisson{}, err
	}
	return Poisson{dist: distuv.Poisson{Lambda: lambda}}, nil
}

func (p Poisson) Family() Family            { return FamilyPoisson }
func (p Poisson) Lambda() float64           { return p.dist.Lambda }
func (p Poisson) Mean() float64             { return p.dist.Lambda }
func (p Poisson) Variance() float64         { return p.dist.Lambda }
func (p Poisson) Support() (lo, hi float64) { return 0, math.Inf(1) }

// PMF returns e^(−λ)·λ^k / k!
func (p Poisson) PMF(k float64) (float64, error) {
	if err := checkK("poisson_pmf", k); err != nil {
		return 0, err
	}
	if k < 0 {
		return 0, nil
	}
	return p.dist.Prob(k), nil
}

func (p Poisson) CDF(k float64) (float64, error) {
	if err := checkK("poisson_cdf", k); err != nil {
		return 0, err
	}
	if k < 0 {
		return 0, nil
	}
	return p.dist.CDF(k), nil
}

func (p Poisson) IntervalProbability(lo, hi float64) (float64, error) {
	return discreteInterval(p, "poisson_interval", lo, hi)
}

// ============================================================================
// DISCRETE UNIFORM
// ============================================================================

// DiscreteUniform puts equal mass on each integer in [a, b]
type DiscreteUniform struct {
	a, b int
}

// NewDiscreteUniform validates a <= b
func NewDiscreteUniform(a, b int) (DiscreteUniform, error) {
	if a > b {
		return DiscreteUniform{}, core.NewDomainError("discrete_uniform", "a=%d must be <= b=%d", a, b)
	}
	return DiscreteUniform{a: a, b: b}, nil
}

func (u DiscreteUniform) count() float64 { return float64(u.b - u.a + 1) }

func (u DiscreteUniform) Family() Family            { return FamilyDiscreteUniform }
func (u DiscreteUniform) Mean() float64             { return float64(u.a+u.b) / 2 }
func (u DiscreteUniform) Support() (lo, hi float64) { return float64(u.a), float64(u.b) }

// Variance returns ((b − a + 1)² − 1) / 12
func (u DiscreteUniform) Variance() float64 {
	m := u.count()
	return (m*m - 1) / 12
}

func (u DiscreteUniform) PMF(k float64) (float64, error) {
	if err := checkK("discrete_uniform_pmf", k); err != nil {
		return 0, err
	}
	if k < float64(u.a) || k > float64(u.b) {
		return 0, nil
	}
	return 1 / u.count(), nil
}

func (u DiscreteUniform) CDF(k float64) (float64, error) {
	if err := checkK("discrete_uniform_cdf", k); err != nil {
		return 0, err
	}
	switch {
	case k < float64(u.a):
		return 0, nil
	case k >= float64(u.b):
		return 1, nil
	}
	return (k - float64(u.a) + 1) / u.count(), nil
}

func (u DiscreteUniform) IntervalProbability(lo, hi float64) (float64, error) {
	return discreteInterval(u, "discrete_uniform_interval", lo, hi)
}

// ============================================================================
// GEOMETRIC
// ============================================================================

// Geometric counts trials up to and including the first success, so its
// support is 1, 2, 3, ...
type Geometric struct {
	p float64
}

// NewGeometric validates p in (0, 1]
func NewGeometric(p float64) (Geometric, error) {
	if err := core.CheckProbability("geometric", "p", p); err != nil {
		return Geometric{}, err
	}
	if p == 0 {
		return Geometric{}, core.NewDomainError("geometric", "p=0 never succeeds")
	}
	return Geometric{p: p}, nil
}

func (g Geometric) Family() Family            { return FamilyGeometric }
func (g Geometric) Mean() float64             { return 1 / g.p }
func (g Geometric) Variance() float64         { return (1 - g.p) / (g.p * g.p) }
func (g Geometric) Support() (lo, hi float64) { return 1, math.Inf(1) }

// PMF returns (1−p)^(k−1)·p
func (g Geometric) PMF(k float64) (float64, error) {
	if err := checkK("geometric_pmf", k); err != nil {
		return 0, err
	}
	if k < 1 {
		return 0, nil
	}
	return math.Pow(1-g.p, k-1) * g.p, nil
}

// CDF returns 1 − (1−p)^k
func (g Geometric) CDF(k float64) (float64, error) {
	if err := checkK("geometric_cdf", k); err != nil {
		return 0, err
	}
	if k < 1 {
		return 0, nil
	}
	return 1 - math.Pow(1-g.p, k), nil
}

func (g Geometric) IntervalProbability(lo, hi float64) (float64, error) {
	return discreteInterval(g, "geometric_interval", lo, hi)
}
