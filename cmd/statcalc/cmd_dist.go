package main

import (
	"math"

	"github.com/spf13/cobra"

	"statref/domain/core"
	"statref/internal/distributions"
)

type pointReport struct {
	X       float64 `json:"x" yaml:"x"`
	Density float64 `json:"density" yaml:"density"` // PMF for discrete families, PDF otherwise
	CDF     float64 `json:"cdf" yaml:"cdf"`
}

type approximationReport struct {
	Family   distributions.Family `json:"family" yaml:"family"`
	Adequate bool                 `json:"adequate" yaml:"adequate"`
	Interval float64              `json:"interval" yaml:"interval"`
}

type distReport struct {
	Params         distributions.Params  `json:"params" yaml:"params"`
	Mean           float64               `json:"mean" yaml:"mean"`
	Variance       float64               `json:"variance" yaml:"variance"`
	StdDev         float64               `json:"sd" yaml:"sd"`
	At             *pointReport          `json:"at,omitempty" yaml:"at,omitempty"`
	Interval       *float64              `json:"interval,omitempty" yaml:"interval,omitempty"`
	Quantile       *float64              `json:"quantile,omitempty" yaml:"quantile,omitempty"`
	Approximations []approximationReport `json:"approximations,omitempty" yaml:"approximations,omitempty"`
}

func newDistCmd(a *app) *cobra.Command {
	var family string
	var params distributions.Params
	var at, from, to, quantile float64
	var approx bool

	cmd := &cobra.Command{
		Use:   "dist",
		Short: "Probabilities, moments and quantiles of a named distribution",
		Long: `Evaluate a distribution.

Families: bernoulli (p), binomial (n, p), poisson (lambda),
discrete_uniform (a, b), geometric (p), uniform (a, b),
exponential (lambda), normal (mu, sigma).

--at gives the PMF or PDF and the CDF at x; --from/--to give
P(from <= X <= to); --quantile inverts the CDF of a continuous family.

Example: statcalc dist --family binomial --n 15 --p 0.08 --at 2
         statcalc dist --family normal --mu 100 --sigma 15 --from 85 --to 115`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := distributions.ParseFamily(family)
			if err != nil {
				return err
			}
			params.Family = f
			d, err := distributions.New(params)
			if err != nil {
				return err
			}

			report := distReport{Params: params, Mean: d.Mean(), Variance: d.Variance(), StdDev: math.Sqrt(d.Variance())}
			flags := cmd.Flags()
			if flags.Changed("at") {
				if report.At, err = evaluateAt(d, at); err != nil {
					return err
				}
			}
			if flags.Changed("from") || flags.Changed("to") {
				lo, hi := from, to
				if !flags.Changed("from") {
					lo = math.Inf(-1)
				}
				if !flags.Changed("to") {
					hi = math.Inf(1)
				}
				v, err := intervalProbability(d, lo, hi)
				if err != nil {
					return err
				}
				report.Interval = &v
				if approx {
					if report.Approximations, err = approximate(d, lo, hi); err != nil {
						return err
					}
				}
			}
			if flags.Changed("quantile") {
				c, ok := d.(distributions.Continuous)
				if !ok {
					return core.NewDomainError("quantile", "%s is discrete; quantiles are reported for continuous families only", f)
				}
				q, err := c.Quantile(quantile)
				if err != nil {
					return err
				}
				report.Quantile = &q
			}

			return a.emit(cmd.OutOrStdout(), report, func(p *printer) { printDist(p, report, quantile) })
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&family, "family", "", "Distribution family")
	flags.Float64Var(&params.N, "n", 0, "Trials (binomial)")
	flags.Float64Var(&params.P, "p", 0, "Success probability (bernoulli, binomial, geometric)")
	flags.Float64Var(&params.Lambda, "lambda", 0, "Rate (poisson, exponential)")
	flags.Float64Var(&params.A, "a", 0, "Lower bound (uniform, discrete_uniform)")
	flags.Float64Var(&params.B, "b", 0, "Upper bound (uniform, discrete_uniform)")
	flags.Float64Var(&params.Mu, "mu", 0, "Mean (normal)")
	flags.Float64Var(&params.Sigma, "sigma", 1, "Standard deviation (normal)")
	flags.Float64Var(&at, "at", 0, "Point at which to evaluate the PMF/PDF and CDF")
	flags.Float64Var(&from, "from", 0, "Lower bound of P(from <= X <= to)")
	flags.Float64Var(&to, "to", 0, "Upper bound of P(from <= X <= to)")
	flags.Float64Var(&quantile, "quantile", 0, "Probability to invert (continuous families)")
	flags.BoolVar(&approx, "approx", false, "Also report normal and Poisson approximations of a binomial interval")
	return cmd
}

func evaluateAt(d distributions.Distribution, x float64) (*pointReport, error) {
	switch dist := d.(type) {
	case distributions.Discrete:
		pmf, err := dist.PMF(x)
		if err != nil {
			return nil, err
		}
		cdf, err := dist.CDF(x)
		if err != nil {
			return nil, err
		}
		return &pointReport{X: x, Density: pmf, CDF: cdf}, nil
	case distributions.Continuous:
		return &pointReport{X: x, Density: dist.PDF(x), CDF: dist.CDF(x)}, nil
	}
	return nil, core.NewDomainError("dist", "family %s has neither a PMF nor a PDF", d.Family())
}

// intervalProbability clamps open-ended bounds to the support of a
// discrete family, whose IntervalProbability wants whole numbers.
// Reversed bounds are left for the family to reject.
func intervalProbability(d distributions.Distribution, lo, hi float64) (float64, error) {
	if lo > hi {
		return d.IntervalProbability(lo, hi)
	}
	if disc, ok := d.(distributions.Discrete); ok {
		sLo, sHi := disc.Support()
		lo = math.Max(lo, sLo)
		if math.IsInf(hi, 1) && !math.IsInf(sHi, 1) {
			hi = sHi
		}
		if math.IsInf(hi, 1) {
			below, err := disc.CDF(lo - 1)
			if lo <= sLo {
				below, err = 0, nil
			}
			return 1 - below, err
		}
		if hi < lo {
			return 0, nil
		}
	}
	return d.IntervalProbability(lo, hi)
}

// approximate reports the textbook approximations of a binomial interval,
// using the continuity correction for the normal
func approximate(d distributions.Distribution, lo, hi float64) ([]approximationReport, error) {
	b, ok := d.(distributions.Binomial)
	if !ok {
		return nil, core.NewDomainError("dist", "approximations apply to the binomial family only")
	}
	lo = math.Max(lo, 0)
	hi = math.Min(hi, float64(b.N()))

	var out []approximationReport
	if normal, err := b.NormalApprox(); err == nil {
		v, err := normal.IntervalProbability(lo-0.5, hi+0.5)
		if err != nil {
			return nil, err
		}
		out = append(out, approximationReport{Family: distributions.FamilyNormal, Adequate: b.NormalApproxAdequate(), Interval: v})
	} else if !core.IsUndefinedStatistic(err) {
		return nil, err
	}
	poisson, err := b.PoissonApprox()
	if err != nil {
		return out, nil
	}
	v, err := intervalProbability(poisson, lo, hi)
	if err != nil {
		return nil, err
	}
	out = append(out, approximationReport{Family: distributions.FamilyPoisson, Adequate: b.PoissonApproxAdequate(), Interval: v})
	return out, nil
}

func printDist(p *printer, r distReport, quantile float64) {
	p.text("family", r.Params.Family.String())
	p.field("mean", r.Mean)
	p.field("variance", r.Variance)
	p.field("sd", r.StdDev)
	if r.At != nil {
		if r.Params.Family.IsDiscrete() {
			p.field("P(X = x)", r.At.Density)
		} else {
			p.field("f(x)", r.At.Density)
		}
		p.field("P(X <= x)", r.At.CDF)
	}
	if r.Interval != nil {
		p.field("P(a <= X <= b)", *r.Interval)
		for _, ap := range r.Approximations {
			label := ap.Family.String() + " approx"
			if !ap.Adequate {
				label += " (poor)"
			}
			p.field(label, ap.Interval)
		}
	}
	if r.Quantile != nil {
		p.field("quantile("+p.num(quantile)+")", *r.Quantile)
	}
}
