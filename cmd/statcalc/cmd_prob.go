package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"statref/internal/errors"
	"statref/internal/probability"
)

func newProbCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prob",
		Short: "Event probability rules, Bayes' theorem and probability tables",
	}
	cmd.AddCommand(
		newConditionalCmd(a),
		newUnionCmd(a),
		newBayesCmd(a),
		newPartitionCmd(a),
		newTableCmd(a),
	)
	return cmd
}

type probabilityValue struct {
	Rule  string  `json:"rule" yaml:"rule"`
	Value float64 `json:"value" yaml:"value"`
}

func (a *app) emitProbability(cmd *cobra.Command, rule string, v float64) error {
	out := probabilityValue{Rule: rule, Value: v}
	return a.emit(cmd.OutOrStdout(), out, func(p *printer) { p.field(rule, v) })
}

func newConditionalCmd(a *app) *cobra.Command {
	var pAB, pB float64

	cmd := &cobra.Command{
		Use:   "conditional",
		Short: "P(A|B) = P(A and B) / P(B)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := probability.Conditional(pAB, pB)
			if err != nil {
				return err
			}
			return a.emitProbability(cmd, "P(A|B)", v)
		},
	}
	cmd.Flags().Float64Var(&pAB, "ab", 0, "P(A and B)")
	cmd.Flags().Float64Var(&pB, "b", 0, "P(B)")
	return cmd
}

func newUnionCmd(a *app) *cobra.Command {
	var pA, pB, pAB float64

	cmd := &cobra.Command{
		Use:   "union",
		Short: "P(A or B) = P(A) + P(B) - P(A and B)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := probability.Union(pA, pB, pAB)
			if err != nil {
				return err
			}
			return a.emitProbability(cmd, "P(A or B)", v)
		},
	}
	cmd.Flags().Float64Var(&pA, "a", 0, "P(A)")
	cmd.Flags().Float64Var(&pB, "b", 0, "P(B)")
	cmd.Flags().Float64Var(&pAB, "ab", 0, "P(A and B)")
	return cmd
}

func newBayesCmd(a *app) *cobra.Command {
	var prior, likelihood, falseAlarm float64

	cmd := &cobra.Command{
		Use:   "bayes",
		Short: "Posterior P(A|B) from P(A), P(B|A) and P(B|not A)",
		Long: `Bayes' theorem for two complementary hypotheses.

Example: statcalc prob bayes --prior 0.01 --likelihood 0.95 --false-alarm 0.1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := probability.Posterior(prior, likelihood, falseAlarm)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), res, func(p *printer) {
				p.field("P(A)", res.Prior)
				p.field("P(B)", res.Evidence)
				p.field("P(A|B)", res.Posterior)
			})
		},
	}
	cmd.Flags().Float64Var(&prior, "prior", 0, "P(A)")
	cmd.Flags().Float64Var(&likelihood, "likelihood", 0, "P(B|A)")
	cmd.Flags().Float64Var(&falseAlarm, "false-alarm", 0, "P(B|not A)")
	return cmd
}

type partitionReport struct {
	Evidence   float64                  `json:"evidence" yaml:"evidence"`
	Hypotheses []probability.Hypothesis `json:"hypotheses" yaml:"hypotheses"`
	Posteriors []float64                `json:"posteriors" yaml:"posteriors"`
}

func newPartitionCmd(a *app) *cobra.Command {
	var parts []string

	cmd := &cobra.Command{
		Use:   "partition",
		Short: "Total probability and posteriors over a partition of hypotheses",
		Long: `Bayes' theorem over an exhaustive set of hypotheses.

Each --part is label=prior:likelihood; the priors must sum to 1.

Example: statcalc prob partition --part A=0.5:0.02 --part B=0.3:0.03 --part C=0.2:0.05`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hyps := make([]probability.Hypothesis, 0, len(parts))
			for _, raw := range parts {
				h, err := parsePart(raw)
				if err != nil {
					return err
				}
				hyps = append(hyps, h)
			}
			evidence, err := probability.TotalProbability(hyps)
			if err != nil {
				return err
			}
			post, err := probability.PosteriorPartition(hyps)
			if err != nil {
				return err
			}
			report := partitionReport{Evidence: evidence, Hypotheses: hyps, Posteriors: post}
			return a.emit(cmd.OutOrStdout(), report, func(p *printer) {
				p.field("P(B)", evidence)
				for i, h := range hyps {
					p.field(fmt.Sprintf("P(%s|B)", h.Label), post[i])
				}
			})
		},
	}
	cmd.Flags().StringArrayVar(&parts, "part", nil, "Hypothesis as label=prior:likelihood (repeatable)")
	return cmd
}

func parsePart(raw string) (probability.Hypothesis, error) {
	label, body, ok := strings.Cut(raw, "=")
	if !ok {
		return probability.Hypothesis{}, errors.InvalidInputf("--part %q must be label=prior:likelihood", raw)
	}
	values, err := parseValues(strings.ReplaceAll(body, ":", ","))
	if err != nil {
		return probability.Hypothesis{}, errors.Wrapf(err, "--part %q", raw)
	}
	if len(values) != 2 {
		return probability.Hypothesis{}, errors.InvalidInputf("--part %q must be label=prior:likelihood", raw)
	}
	return probability.Hypothesis{Label: strings.TrimSpace(label), Prior: values[0], Likelihood: values[1]}, nil
}

type tableReport struct {
	Mean     float64 `json:"mean" yaml:"mean"`
	Variance float64 `json:"variance" yaml:"variance"`
	StdDev   float64 `json:"sd" yaml:"sd"`
}

func newTableCmd(a *app) *cobra.Command {
	var values, probs string
	var scale, shift float64

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Mean and variance of a finite random variable",
		Long: `Expected value and variance of a discrete table of values and probabilities.

With --scale or --shift the moments of aX + b are reported instead.

Example: statcalc prob table --values 0,1,2,3 --probs 0.1,0.3,0.4,0.2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, err := parseValues(values)
			if err != nil {
				return err
			}
			ps, err := parseValues(probs)
			if err != nil {
				return err
			}
			table, err := probability.NewProbabilityTable(xs, ps)
			if err != nil {
				return err
			}
			mean, variance := table.LinearTransform(scale, shift)
			report := tableReport{Mean: mean, Variance: variance, StdDev: math.Sqrt(variance)}
			return a.emit(cmd.OutOrStdout(), report, func(p *printer) {
				p.field("E[X]", report.Mean)
				p.field("Var(X)", report.Variance)
				p.field("SD(X)", report.StdDev)
			})
		},
	}
	cmd.Flags().StringVar(&values, "values", "", "Comma-separated outcomes")
	cmd.Flags().StringVar(&probs, "probs", "", "Comma-separated probabilities, one per outcome")
	cmd.Flags().Float64Var(&scale, "scale", 1, "a in aX + b")
	cmd.Flags().Float64Var(&shift, "shift", 0, "b in aX + b")
	return cmd
}
