package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"statref/internal/probability"
)

type countReport struct {
	Rule   string  `json:"rule" yaml:"rule"`
	Inputs []int   `json:"inputs" yaml:"inputs"`
	Value  float64 `json:"value" yaml:"value"`
	Exact  string  `json:"exact,omitempty" yaml:"exact,omitempty"`
}

func newCountCmd(a *app) *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Counting rules: factorials, permutations, combinations",
		Long: `Counting rules.

Example: statcalc count comb 49 6
         statcalc count factorial 30 --exact
         statcalc count multinomial 4 3 3`,
	}
	cmd.PersistentFlags().BoolVar(&exact, "exact", false, "Also print the exact integer (factorial and comb only)")

	sub := func(use, short string, args cobra.PositionalArgs, rule func(n []int) (countReport, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseInts(args)
				if err != nil {
					return err
				}
				report, err := rule(n)
				if err != nil {
					return err
				}
				report.Inputs = n
				return a.emit(cmd.OutOrStdout(), report, func(p *printer) {
					p.line("%s = %s", report.Rule, p.num(report.Value))
					if report.Exact != "" {
						p.text("exact", report.Exact)
					}
				})
			},
		}
	}

	cmd.AddCommand(
		sub("factorial n", "n!", cobra.ExactArgs(1), func(n []int) (countReport, error) {
			r := countReport{Rule: fmt.Sprintf("%d!", n[0])}
			v, err := probability.Factorial(n[0])
			if err != nil && !exact {
				return r, err
			}
			r.Value = v
			if exact {
				return r, withExact(&r, func() (*big.Int, error) { return probability.FactorialExact(n[0]) })
			}
			return r, nil
		}),
		sub("perm n r", "Ordered arrangements P(n, r)", cobra.ExactArgs(2), func(n []int) (countReport, error) {
			v, err := probability.Permutations(n[0], n[1])
			return countReport{Rule: fmt.Sprintf("P(%d, %d)", n[0], n[1]), Value: v}, err
		}),
		sub("comb n r", "Unordered selections C(n, r)", cobra.ExactArgs(2), func(n []int) (countReport, error) {
			r := countReport{Rule: fmt.Sprintf("C(%d, %d)", n[0], n[1])}
			v, err := probability.Combinations(n[0], n[1])
			if err != nil && !exact {
				return r, err
			}
			r.Value = v
			if exact {
				return r, withExact(&r, func() (*big.Int, error) { return probability.CombinationsExact(n[0], n[1]) })
			}
			return r, nil
		}),
		sub("multinomial n1 n2 ...", "Arrangements of groups of identical items", cobra.MinimumNArgs(1), func(n []int) (countReport, error) {
			v, err := probability.Multinomial(n...)
			return countReport{Rule: fmt.Sprintf("multinomial%v", n), Value: v}, err
		}),
		sub("circular n", "Arrangements of n items around a circle, (n-1)!", cobra.ExactArgs(1), func(n []int) (countReport, error) {
			v, err := probability.CircularPermutations(n[0])
			return countReport{Rule: fmt.Sprintf("circular(%d)", n[0]), Value: v}, err
		}),
		sub("product w1 w2 ...", "Multiplication rule for sequential tasks", cobra.MinimumNArgs(1), func(n []int) (countReport, error) {
			v, err := probability.MultiplicationRule(n...)
			return countReport{Rule: fmt.Sprintf("product%v", n), Value: v}, err
		}),
	)
	return cmd
}

// withExact fills the exact digits; a float64 overflow is then reported
// as +Inf beside them rather than failing
func withExact(r *countReport, exact func() (*big.Int, error)) error {
	v, err := exact()
	if err != nil {
		return err
	}
	r.Exact = v.String()
	if r.Value == 0 {
		f, _ := new(big.Float).SetInt(v).Float64()
		r.Value = f
	}
	return nil
}
