package distributions

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"statref/domain/core"
)

func quantile(op string, p float64, q func(float64) float64) (float64, error) {
	if err := core.CheckProbability(op, "p", p); err != nil {
		return 0, err
	}
	return q(p), nil
}

// continuousInterval returns CDF(b) − CDF(a), exactly 0 when a == b
func continuousInterval(op string, a, b float64, cdf func(float64) float64) (float64, error) {
	if err := checkInterval(op, a, b); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}
	return math.Max(0, cdf(b)-cdf(a)), nil
}

// ============================================================================
// UNIFORM
// ============================================================================

// Uniform has constant density 1/(b − a) on [a, b]
type Uniform struct {
	dist distuv.Uniform
}

// NewUniform validates a < b
func NewUniform(a, b float64) (Uniform, error) {
	const op = "uniform"
	if err := core.CheckFinite(op, "bound", a, b); err != nil {
		return Uniform{}, err
	}
	if a >= b {
		return Uniform{}, core.NewDomainError(op, "a=%v must be < b=%v", a, b)
	}
	return Uniform{dist: distuv.Uniform{Min: a, Max: b}}, nil
}

func (u Uniform) Family() Family        { return FamilyUniform }
func (u Uniform) Mean() float64         { return u.dist.Mean() }
func (u Uniform) Variance() float64     { return u.dist.Variance() }
func (u Uniform) PDF(x float64) float64 { return u.dist.Prob(x) }
func (u Uniform) CDF(x float64) float64 { return u.dist.CDF(x) }

func (u Uniform) Quantile(p float64) (float64, error) {
	return quantile("uniform_quantile", p, u.dist.Quantile)
}

func (u Uniform) IntervalProbability(a, b float64) (float64, error) {
	return continuousInterval("uniform_interval", a, b, u.CDF)
}

// ============================================================================
// EXPONENTIAL
// ============================================================================

// Exponential models waiting times at rate λ; mean 1/λ
type Exponential struct {
	dist distuv.Exponential
}

// NewExponential validates λ > 0
func NewExponential(lambda float64) (Exponential, error) {
	if err := core.CheckPositive("exponential", "lambda", lambda); err != nil {
		return Exponential{}, err
	}
	return Exponential{dist: distuv.Exponential{Rate: lambda}}, nil
}

func (e Exponential) Family() Family        { return FamilyExponential }
func (e Exponential) Rate() float64         { return e.dist.Rate }
func (e Exponential) Mean() float64         { return 1 / e.dist.Rate }
func (e Exponential) Variance() float64     { return 1 / (e.dist.Rate * e.dist.Rate) }
func (e Exponential) PDF(x float64) float64 { return e.dist.Prob(x) }
func (e Exponential) CDF(x float64) float64 { return e.dist.CDF(x) }

func (e Exponential) Quantile(p float64) (float64, error) {
	return quantile("exponential_quantile", p, e.dist.Quantile)
}

func (e Exponential) IntervalProbability(a, b float64) (float64, error) {
	return continuousInterval("exponential_interval", a, b, e.CDF)
}

// ============================================================================
// NORMAL
// ============================================================================

// Normal is N(μ, σ)
type Normal struct {
	dist distuv.Normal
}

// NewNormal validates σ > 0
func NewNormal(mu, sigma float64) (Normal, error) {
	const op = "normal"
	if err := core.CheckFinite(op, "mu", mu); err != nil {
		return Normal{}, err
	}
	if err := core.CheckPositive(op, "sigma", sigma); err != nil {
		return Normal{}, err
	}
	return Normal{dist: distuv.Normal{Mu: mu, Sigma: sigma}}, nil
}

// StandardNormal returns N(0, 1)
func StandardNormal() Normal {
	return Normal{dist: distuv.UnitNormal}
}

func (n Normal) Family() Family        { return FamilyNormal }
func (n Normal) Mu() float64           { return n.dist.Mu }
func (n Normal) Sigma() float64        { return n.dist.Sigma }
func (n Normal) Mean() float64         { return n.dist.Mu }
func (n Normal) Variance() float64     { return n.dist.Sigma * n.dist.Sigma }
func (n Normal) PDF(x float64) float64 { return n.dist.Prob(x) }
func (n Normal) CDF(x float64) float64 { return n.dist.CDF(x) }

// Survival returns P(X > x) without the cancellation of 1 − CDF(x)
func (n Normal) Survival(x float64) float64 { return n.dist.Survival(x) }

func (n Normal) Quantile(p float64) (float64, error) {
	return quantile("normal_quantile", p, n.dist.Quantile)
}

func (n Normal) IntervalProbability(a, b float64) (float64, error) {
	return continuousInterval("normal_interval", a, b, n.CDF)
}

// Standardize returns z = (x − μ)/σ
func (n Normal) Standardize(x float64) float64 {
	return (x - n.dist.Mu) / n.dist.Sigma
}

// Unstandardize returns x = μ + zσ
func (n Normal) Unstandardize(z float64) float64 {
	return n.dist.Mu + z*n.dist.Sigma
}

// WithinK returns P(|X − μ| < kσ), the empirical-rule coverage
func (n Normal) WithinK(k float64) (float64, error) {
	if math.IsNaN(k) || k < 0 {
		return 0, core.NewDomainError("normal_within_k", "k=%v must be >= 0", k)
	}
	return 1 - 2*distuv.UnitNormal.CDF(-k), nil
}
