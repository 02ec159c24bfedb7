package main

import (
	"github.com/spf13/cobra"

	"statref/internal/descriptive"
)

func newChebyshevCmd(a *app) *cobra.Command {
	var k, coverage, mean, sd float64

	cmd := &cobra.Command{
		Use:   "chebyshev",
		Short: "Distribution-free coverage bound 1 - 1/k^2",
		Long: `Chebyshev's theorem for any distribution.

Give --k for the guaranteed coverage, or --coverage for the k that
guarantees it. With --mean and --sd the interval itself is reported.

Example: statcalc chebyshev --k 2 --mean 50 --sd 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("coverage") {
				var err error
				if k, err = descriptive.ChebyshevK(coverage); err != nil {
					return err
				}
			}
			bound, err := descriptive.ChebyshevInterval(mean, sd, k)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), bound, func(p *printer) {
				p.field("k", bound.K)
				p.field("min coverage", bound.MinCoverage)
				p.field("max outside", bound.MaxOutside)
				if cmd.Flags().Changed("sd") {
					p.text("interval", "["+p.num(bound.Lower)+", "+p.num(bound.Upper)+"]")
				}
			})
		},
	}

	cmd.Flags().Float64Var(&k, "k", 2, "Number of standard deviations (> 1)")
	cmd.Flags().Float64Var(&coverage, "coverage", 0, "Required coverage in (0, 1); overrides --k")
	cmd.Flags().Float64Var(&mean, "mean", 0, "Population mean")
	cmd.Flags().Float64Var(&sd, "sd", 1, "Population standard deviation")
	return cmd
}
