// Package distributions evaluates the discrete and continuous families
// used throughout the course: Bernoulli, binomial, Poisson, discrete
// uniform, geometric, continuous uniform, exponential and normal.
package distributions

import (
	"fmt"
	"math"
	"strings"

	"statref/domain/core"
)

// Family identifies a distribution family
type Family int

const (
	FamilyBernoulli Family = iota + 1
	FamilyBinomial
	FamilyPoisson
	FamilyDiscreteUniform
	FamilyGeometric
	FamilyUniform
	FamilyExponential
	FamilyNormal
)

var familyNames = map[Family]string{
	FamilyBernoulli:       "bernoulli",
	FamilyBinomial:        "binomial",
	FamilyPoisson:         "poisson",
	FamilyDiscreteUniform: "discrete_uniform",
	FamilyGeometric:       "geometric",
	FamilyUniform:         "uniform",
	FamilyExponential:     "exponential",
	FamilyNormal:          "normal",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// IsDiscrete reports whether the family has integer support
func (f Family) IsDiscrete() bool {
	return f >= FamilyBernoulli && f <= FamilyGeometric
}

// ParseFamily resolves a family name such as "binomial" or "discrete-uniform"
func ParseFamily(s string) (Family, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for f, name := range familyNames {
		if name == key {
			return f, nil
		}
	}
	return 0, core.NewDomainError("parse_family", "unknown distribution family %q", s)
}

func (f Family) MarshalText() ([]byte, error) {
	if _, ok := familyNames[f]; !ok {
		return nil, core.NewDomainError("family", "unknown family %d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *Family) UnmarshalText(text []byte) error {
	parsed, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Distribution is the behaviour shared by every family
type Distribution interface {
	Family() Family
	Mean() float64
	Variance() float64
	// IntervalProbability returns P(a <= X <= b)
	IntervalProbability(a, b float64) (float64, error)
}

// Discrete is a distribution over the integers
type Discrete interface {
	Distribution
	PMF(k float64) (float64, error)
	CDF(k float64) (float64, error)
	// Support returns the smallest and largest value with positive mass;
	// hi is +Inf for unbounded families
	Support() (lo, hi float64)
}

// Continuous is a distribution with a density
type Continuous interface {
	Distribution
	PDF(x float64) float64
	CDF(x float64) float64
	Quantile(p float64) (float64, error)
}

// Params carries the parameters of any family; only the fields named by
// Family are read
type Params struct {
	Family Family  `json:"family" yaml:"family"`
	N      float64 `json:"n,omitempty" yaml:"n,omitempty"`
	P      float64 `json:"p,omitempty" yaml:"p,omitempty"`
	Lambda float64 `json:"lambda,omitempty" yaml:"lambda,omitempty"`
	A      float64 `json:"a,omitempty" yaml:"a,omitempty"`
	B      float64 `json:"b,omitempty" yaml:"b,omitempty"`
	Mu     float64 `json:"mu,omitempty" yaml:"mu,omitempty"`
	Sigma  float64 `json:"sigma,omitempty" yaml:"sigma,omitempty"`
}

// New builds a validated distribution from p
func New(p Params) (Distribution, error) {
	var (
		d   Distribution
		err error
	)
	switch p.Family {
	case FamilyBernoulli:
		d, err = NewBernoulli(p.P)
	case FamilyBinomial:
		var n int
		if n, err = integerParam("binomial", "n", p.N); err == nil {
			d, err = NewBinomial(n, p.P)
		}
	case FamilyPoisson:
		d, err = NewPoisson(p.Lambda)
	case FamilyDiscreteUniform:
		var a, b int
		if a, err = integerParam("discrete_uniform", "a", p.A); err != nil {
			break
		}
		if b, err = integerParam("discrete_uniform", "b", p.B); err != nil {
			break
		}
		d, err = NewDiscreteUniform(a, b)
	case FamilyGeometric:
		d, err = NewGeometric(p.P)
	case FamilyUniform:
		d, err = NewUniform(p.A, p.B)
	case FamilyExponential:
		d, err = NewExponential(p.Lambda)
	case FamilyNormal:
		d, err = NewNormal(p.Mu, p.Sigma)
	default:
		err = core.NewDomainError("new_distribution", "unknown family %v", p.Family)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func integerParam(op, name string, v float64) (int, error) {
	if !core.IsInteger(v) || math.Abs(v) > math.MaxInt32 {
		return 0, core.NewDomainError(op, "%s=%v must be an integer", name, v)
	}
	return int(v), nil
}

func checkInterval(op string, a, b float64) error {
	if math.IsNaN(a) || math.IsNaN(b) {
		return core.NewDomainError(op, "interval bounds must be numbers, got [%v, %v]", a, b)
	}
	if a > b {
		return core.NewDomainError(op, "lower bound %v exceeds upper bound %v", a, b)
	}
	return nil
}
