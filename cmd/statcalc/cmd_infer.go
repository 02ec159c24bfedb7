package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"statref/adapters/specfile"
	"statref/domain/stats"
	"statref/internal/engine"
	"statref/internal/errors"
	"statref/internal/inference"
)

// summaryFlags collects (mean, sd, n) either directly or from raw data
type summaryFlags struct {
	mean, sd float64
	n        int
	data     sampleSource
}

func (s *summaryFlags) register(cmd *cobra.Command, sdName, sdUsage string) {
	cmd.Flags().Float64Var(&s.mean, "mean", 0, "Sample mean")
	cmd.Flags().Float64Var(&s.sd, sdName, 0, sdUsage)
	cmd.Flags().IntVar(&s.n, "n", 0, "Sample size")
	s.data.register(cmd)
}

// resolve replaces the summary with the sample estimate when data is given.
// A known σ passed on the command line is kept.
func (s *summaryFlags) resolve(a *app, cmd *cobra.Command, sdName string, keepSD bool) error {
	if s.data.values == "" && s.data.file == "" {
		return nil
	}
	x, err := s.data.load(a)
	if err != nil {
		return err
	}
	est, err := inference.PointEstimate(x)
	if err != nil {
		return err
	}
	s.mean, s.n = est.Mean, est.N
	if !(keepSD && cmd.Flags().Changed(sdName)) {
		s.sd = est.SD
	}
	return nil
}

func newCICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ci",
		Short: "Confidence intervals and sample-size planning",
	}
	cmd.AddCommand(newMeanCICmd(a), newProportionCICmd(a), newSampleSizeCmd(a))
	return cmd
}

func printInterval(p *printer, iv stats.Interval) {
	p.field("estimate", iv.Estimate)
	p.field("margin", iv.Margin)
	p.text(fmt.Sprintf("%s%% interval", p.num(iv.Level*100)), "["+p.num(iv.Lower)+", "+p.num(iv.Upper)+"]")
}

func newMeanCICmd(a *app) *cobra.Command {
	var s summaryFlags
	var level float64
	var knownSigma bool

	cmd := &cobra.Command{
		Use:   "mean",
		Short: "Interval for a population mean (z with known sigma, t otherwise)",
		Long: `Confidence interval for a mean.

Example: statcalc ci mean --mean 72 --sd 8 --n 16 --level 0.95
         statcalc ci mean --values 4.1,3.9,4.4,4.0 --sd 0.2 --known-sigma`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.resolve(a, cmd, "sd", knownSigma); err != nil {
				return err
			}
			mode := inference.UnknownSigma
			if knownSigma {
				mode = inference.KnownSigma
			}
			iv, err := inference.MeanInterval(s.mean, s.sd, s.n, level, mode)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), iv, func(p *printer) {
				p.text("method", mode.String())
				printInterval(p, iv)
			})
		},
	}
	s.register(cmd, "sd", "Standard deviation (population sigma with --known-sigma)")
	cmd.Flags().Float64Var(&level, "level", a.cfg.Defaults.Confidence, "Confidence level in (0, 1)")
	cmd.Flags().BoolVar(&knownSigma, "known-sigma", false, "Treat --sd as the known population sigma (z interval)")
	return cmd
}

func newProportionCICmd(a *app) *cobra.Command {
	var successes, n int
	var level float64

	cmd := &cobra.Command{
		Use:   "proportion",
		Short: "Wald interval for a population proportion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := inference.ProportionInterval(successes, n, level)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), est, func(p *printer) {
				printInterval(p, est.Interval)
				if est.Degenerate {
					p.text("note", "p-hat is 0 or 1; the interval collapses to a point")
				}
				if est.OutOfRange {
					p.text("note", "a bound lies outside [0, 1]; the normal approximation is poor here")
				}
			})
		},
	}
	cmd.Flags().IntVar(&successes, "successes", 0, "Number of successes")
	cmd.Flags().IntVar(&n, "n", 0, "Number of trials")
	cmd.Flags().Float64Var(&level, "level", a.cfg.Defaults.Confidence, "Confidence level in (0, 1)")
	return cmd
}

type sampleSizeReport struct {
	Target string  `json:"target" yaml:"target"`
	Margin float64 `json:"margin" yaml:"margin"`
	Level  float64 `json:"level" yaml:"level"`
	N      int     `json:"n" yaml:"n"`
}

func newSampleSizeCmd(a *app) *cobra.Command {
	var sigma, pHat, margin, level float64

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Smallest n achieving a margin of error",
		Long: `Sample size for estimating a mean (--sigma) or a proportion (--p).

Example: statcalc ci size --sigma 15 --margin 5
         statcalc ci size --p 0.5 --margin 0.03`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := sampleSizeReport{Margin: margin, Level: level}
			var err error
			switch {
			case cmd.Flags().Changed("sigma") && cmd.Flags().Changed("p"):
				return errors.InvalidInput("give either --sigma (mean) or --p (proportion), not both")
			case cmd.Flags().Changed("sigma"):
				report.Target = "mean"
				report.N, err = inference.SampleSizeForMean(sigma, margin, level)
			default:
				report.Target = "proportion"
				report.N, err = inference.SampleSizeForProportion(pHat, margin, level)
			}
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), report, func(p *printer) {
				p.text("target", report.Target)
				p.text("n", fmt.Sprint(report.N))
			})
		},
	}
	cmd.Flags().Float64Var(&sigma, "sigma", 0, "Population standard deviation (mean)")
	cmd.Flags().Float64Var(&pHat, "p", 0.5, "Planning value of the proportion")
	cmd.Flags().Float64Var(&margin, "margin", 0, "Margin of error")
	cmd.Flags().Float64Var(&level, "level", a.cfg.Defaults.Confidence, "Confidence level in (0, 1)")
	return cmd
}

// testReport decorates a result with its critical value and evidence band
type testReport struct {
	Test     string           `json:"test" yaml:"test"`
	Result   stats.TestResult `json:"result" yaml:"result"`
	Critical *float64         `json:"critical,omitempty" yaml:"critical,omitempty"`
	Evidence string           `json:"evidence" yaml:"evidence"`
	Decision string           `json:"decision" yaml:"decision"`
}

func newTestReport(spec stats.TestSpec, res stats.TestResult, ref inference.Reference) (testReport, error) {
	evidence, err := inference.EvidenceLevel(res.PValue)
	if err != nil {
		return testReport{}, err
	}
	r := testReport{Test: stats.Describe(spec), Result: res, Evidence: evidence, Decision: res.Decision()}
	if ref != nil {
		c, err := inference.CriticalValue(ref, res.Alpha, res.Tail)
		if err != nil {
			return testReport{}, err
		}
		r.Critical = &c
	}
	return r, nil
}

func printTest(p *printer, r testReport) {
	p.line("%s", r.Test)
	p.field("statistic", r.Result.Statistic)
	if r.Result.DF1 != 0 {
		p.field("df", r.Result.DF1)
	}
	if r.Result.DF2 != 0 {
		p.field("df2", r.Result.DF2)
	}
	if r.Critical != nil {
		p.field("critical value", *r.Critical)
	}
	p.text("p-value", p.num(r.Result.PValue)+" "+r.Evidence)
	p.field("alpha", r.Result.Alpha)
	p.text("decision", r.Decision)
}

func newTestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Hypothesis tests about means",
	}
	cmd.AddCommand(
		newOneSampleCmd(a, stats.KindOneSampleZ),
		newOneSampleCmd(a, stats.KindOneSampleT),
		newTwoSampleCmd(a),
		newPowerCmd(a),
		newSpecCmd(a),
	)
	return cmd
}

func newOneSampleCmd(a *app, kind stats.TestKind) *cobra.Command {
	var s summaryFlags
	var h0, alpha float64
	var tail string

	use, short, sdName, sdUsage := "t", "One-sample t test (sigma estimated by s)", "sd", "Sample standard deviation"
	if kind == stats.KindOneSampleZ {
		use, short, sdName, sdUsage = "z", "One-sample z test (known sigma)", "sigma", "Population standard deviation"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

Example: statcalc test t --mean 72 --sd 8 --n 16 --h0 75 --tail two_sided
         statcalc test z --mean 105 --sigma 15 --n 36 --h0 100 --tail right`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.resolve(a, cmd, sdName, kind == stats.KindOneSampleZ); err != nil {
				return err
			}
			t, err := stats.ParseTail(tail)
			if err != nil {
				return err
			}

			var (
				spec stats.TestSpec
				res  stats.TestResult
				ref  inference.Reference
			)
			if kind == stats.KindOneSampleZ {
				z := stats.OneSampleZ{Hypothesis: stats.Hypothesis{Null: h0, Alpha: alpha, Tail: t}, Mean: s.mean, Sigma: s.sd, N: s.n}
				spec, ref = z, inference.ZReference()
				res, err = inference.ZTest(z)
			} else {
				ts := stats.OneSampleT{Hypothesis: stats.Hypothesis{Null: h0, Alpha: alpha, Tail: t}, Mean: s.mean, SD: s.sd, N: s.n}
				spec = ts
				if res, err = inference.TTest(ts); err == nil {
					ref, err = inference.TReference(res.DF1)
				}
			}
			if err != nil {
				return err
			}
			report, err := newTestReport(spec, res, ref)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), report, func(p *printer) { printTest(p, report) })
		},
	}
	s.register(cmd, sdName, sdUsage)
	cmd.Flags().Float64Var(&h0, "h0", 0, "Hypothesized mean")
	cmd.Flags().Float64Var(&alpha, "alpha", a.cfg.Defaults.Alpha, "Significance level")
	cmd.Flags().StringVar(&tail, "tail", string(stats.TailTwoSided), "Alternative: left|right|two_sided")
	return cmd
}

func newTwoSampleCmd(a *app) *cobra.Command {
	var first, second stats.SampleSummary
	var delta0, alpha float64
	var tail, variance string

	cmd := &cobra.Command{
		Use:   "two-sample",
		Short: "Two-sample t test for a difference of means",
		Long: `Two-sample t test. --variance is required: pooled assumes equal
population variances, welch does not.

Example: statcalc test two-sample --mean1 20 --sd1 4 --n1 10 --mean2 17 --sd2 5 --n2 12 --variance welch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := stats.ParseTail(tail)
			if err != nil {
				return err
			}
			spec, err := stats.NewTwoSampleT(first, second, stats.VarianceAssumption(variance), delta0, alpha, t)
			if err != nil {
				return err
			}
			res, err := inference.TwoSampleTTest(spec)
			if err != nil {
				return err
			}
			ref, err := inference.TReference(res.DF1)
			if err != nil {
				return err
			}
			report, err := newTestReport(spec, res, ref)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), report, func(p *printer) { printTest(p, report) })
		},
	}
	f := cmd.Flags()
	f.Float64Var(&first.Mean, "mean1", 0, "First sample mean")
	f.Float64Var(&first.SD, "sd1", 0, "First sample standard deviation")
	f.IntVar(&first.N, "n1", 0, "First sample size")
	f.Float64Var(&second.Mean, "mean2", 0, "Second sample mean")
	f.Float64Var(&second.SD, "sd2", 0, "Second sample standard deviation")
	f.IntVar(&second.N, "n2", 0, "Second sample size")
	f.Float64Var(&delta0, "delta0", 0, "Hypothesized difference mu1 - mu2")
	f.StringVar(&variance, "variance", "", "Variance assumption: pooled|welch")
	f.Float64Var(&alpha, "alpha", a.cfg.Defaults.Alpha, "Significance level")
	f.StringVar(&tail, "tail", string(stats.TailTwoSided), "Alternative: left|right|two_sided")
	return cmd
}

func newPowerCmd(a *app) *cobra.Command {
	var mu0, mu1, sigma, alpha float64
	var n int
	var tail string

	cmd := &cobra.Command{
		Use:   "power",
		Short: "Power and type II error of a one-sample z test",
		Long: `Probability of rejecting H0: mu = mu0 when the true mean is mu1.

Example: statcalc test power --mu0 100 --mu1 105 --sigma 15 --n 36 --tail right`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := stats.ParseTail(tail)
			if err != nil {
				return err
			}
			pw, err := inference.ZTestPower(mu0, mu1, sigma, n, alpha, t)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), pw, func(p *printer) {
				p.field("power", pw.Power)
				p.field("beta", pw.Beta)
			})
		},
	}
	cmd.Flags().Float64Var(&mu0, "mu0", 0, "Hypothesized mean")
	cmd.Flags().Float64Var(&mu1, "mu1", 0, "True mean")
	cmd.Flags().Float64Var(&sigma, "sigma", 0, "Population standard deviation")
	cmd.Flags().IntVar(&n, "n", 0, "Sample size")
	cmd.Flags().Float64Var(&alpha, "alpha", a.cfg.Defaults.Alpha, "Significance level")
	cmd.Flags().StringVar(&tail, "tail", string(stats.TailTwoSided), "Alternative: left|right|two_sided")
	return cmd
}

func newSpecCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spec FILE",
		Short: "Evaluate every test described in a YAML file",
		Long: `Evaluate a batch of tests read from YAML. Each document (or list item)
names its test with kind: one_sample_z, one_sample_t, two_sample_t, anova
or regression_f. Specs without alpha use the configured default.

Example: statcalc test spec tests.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := specfile.NewLoader(a.cfg.Defaults.Alpha).LoadFile(args[0])
			if err != nil {
				return err
			}
			ev := engine.NewEvaluator(engine.WithLogger(a.logger), engine.WithParallelism(a.cfg.Engine.Parallelism))
			results, err := ev.EvaluateBatch(cmd.Context(), specs)
			if err != nil {
				return err
			}

			reports := make([]testReport, len(results))
			for i, res := range results {
				if reports[i], err = newTestReport(specs[i], res, nil); err != nil {
					return err
				}
			}
			return a.emit(cmd.OutOrStdout(), reports, func(p *printer) {
				for i, r := range reports {
					if i > 0 {
						p.line("")
					}
					printTest(p, r)
				}
			})
		},
	}
}
