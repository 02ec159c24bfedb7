package stats

import (
	"fmt"

	"statref/domain/core"
)

// TestKind names a hypothesis-test family
type TestKind string

const (
	KindOneSampleZ  TestKind = "one_sample_z"
	KindOneSampleT  TestKind = "one_sample_t"
	KindTwoSampleT  TestKind = "two_sample_t"
	KindANOVA       TestKind = "anova"
	KindRegressionF TestKind = "regression_f"
)

// Tail is the direction of the alternative hypothesis
type Tail string

const (
	TailLeft     Tail = "left"
	TailRight    Tail = "right"
	TailTwoSided Tail = "two_sided"
)

// ParseTail accepts the canonical names plus the usual shorthands
func ParseTail(s string) (Tail, error) {
	switch s {
	case "left", "lower", "<":
		return TailLeft, nil
	case "right", "upper", ">":
		return TailRight, nil
	case "two_sided", "two-sided", "two", "!=":
		return TailTwoSided, nil
	}
	return "", core.NewDomainError("tail", "unknown tail %q (want left, right or two_sided)", s)
}

// Validate rejects the zero value and unknown tails
func (t Tail) Validate() error {
	switch t {
	case TailLeft, TailRight, TailTwoSided:
		return nil
	}
	return core.NewDomainError("tail", "unknown tail %q", string(t))
}

// VarianceAssumption selects how a two-sample t-test estimates the
// standard error. There is no default: callers must pick one.
type VarianceAssumption string

const (
	VariancePooled VarianceAssumption = "pooled"
	VarianceWelch  VarianceAssumption = "welch"
)

// Validate rejects the zero value and unknown assumptions
func (v VarianceAssumption) Validate() error {
	switch v {
	case VariancePooled, VarianceWelch:
		return nil
	}
	return core.NewDomainError("variance_assumption", "unknown variance assumption %q (want pooled or welch)", string(v))
}

// ============================================================================
// TEST SPECIFICATIONS (closed set)
// ============================================================================

// TestSpec is implemented only by the five spec types in this package
type TestSpec interface {
	Kind() TestKind
	Significance() float64
	Validate() error
	isTestSpec()
}

// Hypothesis carries the pieces shared by the z and t families
type Hypothesis struct {
	Null  float64 `json:"h0" yaml:"h0"` // hypothesized value (μ0 or Δ0)
	Alpha float64 `json:"alpha" yaml:"alpha"`
	Tail  Tail    `json:"tail" yaml:"tail"`
}

func (h Hypothesis) validate(op string) error {
	if err := checkAlpha(op, h.Alpha); err != nil {
		return err
	}
	if err := h.Tail.Validate(); err != nil {
		return err
	}
	return core.CheckFinite(op, "h0", h.Null)
}

func checkAlpha(op string, alpha float64) error {
	if !(alpha > 0 && alpha < 1) {
		return core.NewDomainError(op, "alpha=%v must be in (0, 1)", alpha)
	}
	return nil
}

// OneSampleZ tests a mean with known population σ
type OneSampleZ struct {
	Hypothesis `yaml:",inline"`

	Mean  float64 `json:"mean" yaml:"mean"`
	Sigma float64 `json:"sigma" yaml:"sigma"`
	N     int     `json:"n" yaml:"n"`
}

// NewOneSampleZ builds a validated one-sample z specification
func NewOneSampleZ(mean, sigma float64, n int, mu0, alpha float64, tail Tail) (OneSampleZ, error) {
	s := OneSampleZ{Hypothesis: Hypothesis{Null: mu0, Alpha: alpha, Tail: tail}, Mean: mean, Sigma: sigma, N: n}
	return s, s.Validate()
}

func (OneSampleZ) Kind() TestKind          { return KindOneSampleZ }
func (s OneSampleZ) Significance() float64 { return s.Alpha }
func (OneSampleZ) isTestSpec()             {}

func (s OneSampleZ) Validate() error {
	const op = "one_sample_z"
	if err := s.validate(op); err != nil {
		return err
	}
	if err := core.CheckPositive(op, "sigma", s.Sigma); err != nil {
		return err
	}
	if s.N < 1 {
		return core.NewDomainError(op, "n=%d must be >= 1", s.N)
	}
	return core.CheckFinite(op, "mean", s.Mean)
}

// OneSampleT tests a mean with σ estimated by the sample SD
type OneSampleT struct {
	Hypothesis `yaml:",inline"`

	Mean float64 `json:"mean" yaml:"mean"`
	SD   float64 `json:"sd" yaml:"sd"`
	N    int     `json:"n" yaml:"n"`
}

// NewOneSampleT builds a validated one-sample t specification
func NewOneSampleT(mean, sd float64, n int, mu0, alpha float64, tail Tail) (OneSampleT, error) {
	s := OneSampleT{Hypothesis: Hypothesis{Null: mu0, Alpha: alpha, Tail: tail}, Mean: mean, SD: sd, N: n}
	return s, s.Validate()
}

func (OneSampleT) Kind() TestKind          { return KindOneSampleT }
func (s OneSampleT) Significance() float64 { return s.Alpha }
func (OneSampleT) isTestSpec()             {}

func (s OneSampleT) Validate() error {
	const op = "one_sample_t"
	if err := s.validate(op); err != nil {
		return err
	}
	if err := core.CheckPositive(op, "s", s.SD); err != nil {
		return err
	}
	if s.N < 2 {
		return core.NewDomainError(op, "n=%d must be >= 2", s.N)
	}
	return core.CheckFinite(op, "mean", s.Mean)
}

// SampleSummary is (mean, SD, n) for one arm of a two-sample test
type SampleSummary struct {
	Mean float64 `json:"mean" yaml:"mean"`
	SD   float64 `json:"sd" yaml:"sd"`
	N    int     `json:"n" yaml:"n"`
}

func (s SampleSummary) validate(op, arm string) error {
	if err := core.CheckPositive(op, arm+".sd", s.SD); err != nil {
		return err
	}
	if s.N < 2 {
		return core.NewDomainError(op, "%s.n=%d must be >= 2", arm, s.N)
	}
	return core.CheckFinite(op, arm+".mean", s.Mean)
}

// TwoSampleT tests a difference of means; Null is the hypothesized μ1 − μ2
type TwoSampleT struct {
	Hypothesis `yaml:",inline"`

	First    SampleSummary      `json:"first" yaml:"first"`
	Second   SampleSummary      `json:"second" yaml:"second"`
	Variance VarianceAssumption `json:"variance" yaml:"variance"`
}

// NewTwoSampleT builds a validated two-sample t specification
func NewTwoSampleT(first, second SampleSummary, variance VarianceAssumption, delta0, alpha float64, tail Tail) (TwoSampleT, error) {
	s := TwoSampleT{
		Hypothesis: Hypothesis{Null: delta0, Alpha: alpha, Tail: tail},
		First:      first,
		Second:     second,
		Variance:   variance,
	}
	return s, s.Validate()
}

func (TwoSampleT) Kind() TestKind          { return KindTwoSampleT }
func (s TwoSampleT) Significance() float64 { return s.Alpha }
func (TwoSampleT) isTestSpec()             {}

func (s TwoSampleT) Validate() error {
	const op = "two_sample_t"
	if err := s.validate(op); err != nil {
		return err
	}
	if err := s.Variance.Validate(); err != nil {
		return err
	}
	if err := s.First.validate(op, "first"); err != nil {
		return err
	}
	return s.Second.validate(op, "second")
}

// ANOVA is a one-way analysis of variance; always right-tailed
type ANOVA struct {
	Alpha  float64       `json:"alpha" yaml:"alpha"`
	Groups GroupedSample `json:"groups" yaml:"groups"`
}

// NewANOVA builds a validated one-way ANOVA specification
func NewANOVA(groups GroupedSample, alpha float64) (ANOVA, error) {
	s := ANOVA{Alpha: alpha, Groups: groups}
	return s, s.Validate()
}

func (ANOVA) Kind() TestKind          { return KindANOVA }
func (s ANOVA) Significance() float64 { return s.Alpha }
func (ANOVA) isTestSpec()             {}

func (s ANOVA) Validate() error {
	const op = "anova"
	if err := checkAlpha(op, s.Alpha); err != nil {
		return err
	}
	return s.Groups.Validate(op)
}

// RegressionF tests overall significance of a simple linear regression
type RegressionF struct {
	Alpha float64      `json:"alpha" yaml:"alpha"`
	Data  PairedSample `json:"data" yaml:"data"`
}

// NewRegressionF builds a validated regression F specification
func NewRegressionF(data PairedSample, alpha float64) (RegressionF, error) {
	s := RegressionF{Alpha: alpha, Data: data}
	return s, s.Validate()
}

func (RegressionF) Kind() TestKind          { return KindRegressionF }
func (s RegressionF) Significance() float64 { return s.Alpha }
func (RegressionF) isTestSpec()             {}

func (s RegressionF) Validate() error {
	const op = "regression_f"
	if err := checkAlpha(op, s.Alpha); err != nil {
		return err
	}
	return s.Data.Validate(op, 3)
}

// Describe returns a one-line label for logs and CLI headers
func Describe(spec TestSpec) string {
	switch s := spec.(type) {
	case OneSampleZ:
		return fmt.Sprintf("one-sample z (H0: mu=%g, %s)", s.Null, s.Tail)
	case OneSampleT:
		return fmt.Sprintf("one-sample t (H0: mu=%g, %s)", s.Null, s.Tail)
	case TwoSampleT:
		return fmt.Sprintf("two-sample t, %s variance (H0: mu1-mu2=%g, %s)", s.Variance, s.Null, s.Tail)
	case ANOVA:
		return fmt.Sprintf("one-way ANOVA (%d groups)", len(s.Groups))
	case RegressionF:
		return fmt.Sprintf("regression F (%d pairs)", len(s.Data.X))
	default:
		return fmt.Sprintf("unknown test %T", spec)
	}
}
