package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"statref/adapters/excel"
	"statref/domain/stats"
	"statref/internal/errors"
	"statref/internal/inference"
	"statref/internal/relationship"
)

type anovaReport struct {
	Table    relationship.ANOVATable `json:"table" yaml:"table"`
	Alpha    float64                 `json:"alpha" yaml:"alpha"`
	Evidence string                  `json:"evidence" yaml:"evidence"`
	Reject   bool                    `json:"reject" yaml:"reject"`
}

func newANOVACmd(a *app) *cobra.Command {
	var groups []string
	var file string
	var columns []string
	var alpha float64

	cmd := &cobra.Command{
		Use:   "anova",
		Short: "One-way analysis of variance",
		Long: `One-way ANOVA across two or more groups.

Groups come from repeated --group label=v1,v2,... flags, or from
--file with one column per group (--columns picks a subset).

Example: statcalc anova --group A=20,22,19,24,21 --group B=28,30,27,29,31 --group C=23,25,22,26,24
         statcalc anova --file yields.xlsx --columns north,south,east`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGroups(a, groups, file, columns)
			if err != nil {
				return err
			}
			table, err := relationship.OneWayANOVA(g)
			if err != nil {
				return err
			}
			reject, err := inference.Decide(table.PValue, alpha)
			if err != nil {
				return err
			}
			evidence, err := inference.EvidenceLevel(table.PValue)
			if err != nil {
				return err
			}
			report := anovaReport{Table: table, Alpha: alpha, Evidence: evidence, Reject: reject}
			return a.emit(cmd.OutOrStdout(), report, func(p *printer) { printANOVA(p, report) })
		},
	}
	cmd.Flags().StringArrayVar(&groups, "group", nil, "Group as label=v1,v2,... (repeatable)")
	cmd.Flags().StringVar(&file, "file", "", "Spreadsheet (.xlsx) or CSV file, one column per group")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns of --file to use (default: all)")
	cmd.Flags().Float64Var(&alpha, "alpha", a.cfg.Defaults.Alpha, "Significance level")
	return cmd
}

func loadGroups(a *app, raw []string, file string, columns []string) (stats.GroupedSample, error) {
	switch {
	case file != "" && len(raw) > 0:
		return nil, errors.InvalidInput("use either --group or --file, not both")
	case file != "":
		return excel.NewDataReader(file).WithLogger(a.logger).Grouped(columns...)
	}
	g := make(stats.GroupedSample, 0, len(raw))
	for i, s := range raw {
		grp, err := parseGroup(s, i)
		if err != nil {
			return nil, err
		}
		g = append(g, grp)
	}
	return g, nil
}

func printANOVA(p *printer, r anovaReport) {
	t := r.Table
	for _, g := range t.Groups {
		p.line("%-12s n=%-4d mean=%s", g.Label, g.N, p.num(g.Mean))
	}
	p.field("grand mean", t.GrandMean)
	p.line("")
	p.line("%-10s %14s %5s %14s %12s", "source", "SS", "df", "MS", "F")
	p.line("%-10s %14s %5d %14s %12s", "between", p.num(t.SSTR), t.DFBetween, p.num(t.MSTR), p.num(t.F))
	p.line("%-10s %14s %5d %14s", "within", p.num(t.SSE), t.DFWithin, p.num(t.MSE))
	p.line("%-10s %14s %5d", "total", p.num(t.SST), t.DFBetween+t.DFWithin)
	p.line("")
	p.text("p-value", p.num(t.PValue)+" "+r.Evidence)
	decision := "fail to reject H0"
	if r.Reject {
		decision = "reject H0"
	}
	p.text("decision", fmt.Sprintf("%s at alpha=%s", decision, p.num(r.Alpha)))
}

type regressReport struct {
	Fit         relationship.Regression  `json:"fit" yaml:"fit"`
	Correlation relationship.Correlation `json:"correlation" yaml:"correlation"`
	Alpha       float64                  `json:"alpha" yaml:"alpha"`
	Reject      bool                     `json:"reject" yaml:"reject"`
	Prediction  *float64                 `json:"prediction,omitempty" yaml:"prediction,omitempty"`
}

func newRegressCmd(a *app) *cobra.Command {
	var xs, ys, file, xCol, yCol string
	var alpha, at float64

	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Simple linear regression and Pearson correlation",
		Long: `Least-squares line y = b0 + b1 x with its F test and the Pearson r.

Example: statcalc regress --x 1,2,3,4,5 --y 2,4,5,4,5 --predict 6
         statcalc regress --file ads.csv --x-column spend --y-column sales`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadPairs(a, xs, ys, file, xCol, yCol)
			if err != nil {
				return err
			}
			fit, err := relationship.Regress(data)
			if err != nil {
				return err
			}
			corr, err := relationship.Pearson(data)
			if err != nil {
				return err
			}
			reject, err := inference.Decide(fit.PValue, alpha)
			if err != nil {
				return err
			}
			report := regressReport{Fit: fit, Correlation: corr, Alpha: alpha, Reject: reject}
			if cmd.Flags().Changed("predict") {
				y := fit.Predict(at)
				report.Prediction = &y
			}
			return a.emit(cmd.OutOrStdout(), report, func(p *printer) { printRegress(p, report, at) })
		},
	}
	cmd.Flags().StringVar(&xs, "x", "", "Comma-separated x values")
	cmd.Flags().StringVar(&ys, "y", "", "Comma-separated y values")
	cmd.Flags().StringVar(&file, "file", "", "Spreadsheet (.xlsx) or CSV file")
	cmd.Flags().StringVar(&xCol, "x-column", "x", "Column of --file holding x")
	cmd.Flags().StringVar(&yCol, "y-column", "y", "Column of --file holding y")
	cmd.Flags().Float64Var(&alpha, "alpha", a.cfg.Defaults.Alpha, "Significance level")
	cmd.Flags().Float64Var(&at, "predict", 0, "Report the fitted value at this x")
	return cmd
}

func loadPairs(a *app, xs, ys, file, xCol, yCol string) (stats.PairedSample, error) {
	if file != "" {
		if xs != "" || ys != "" {
			return stats.PairedSample{}, errors.InvalidInput("use either --x/--y or --file, not both")
		}
		return excel.NewDataReader(file).WithLogger(a.logger).Paired(xCol, yCol)
	}
	x, err := parseValues(xs)
	if err != nil {
		return stats.PairedSample{}, errors.Wrap(err, "--x")
	}
	y, err := parseValues(ys)
	if err != nil {
		return stats.PairedSample{}, errors.Wrap(err, "--y")
	}
	return stats.PairedSample{X: x, Y: y}, nil
}

func printRegress(p *printer, r regressReport, at float64) {
	f := r.Fit
	p.line("y = %s + %s x", p.num(f.Intercept), p.num(f.Slope))
	p.text("n", fmt.Sprint(f.N))
	p.field("r", r.Correlation.R)
	p.field("r squared", f.RSquared)
	p.field("std err estimate", f.StdErrEstimate)
	p.field("slope std err", f.SlopeStdErr)
	p.line("%-10s %14s %5s", "source", "SS", "df")
	p.line("%-10s %14s %5d", "regression", p.num(f.SSR), f.DF1)
	p.line("%-10s %14s %5d", "residual", p.num(f.SSE), f.DF2)
	p.line("%-10s %14s %5d", "total", p.num(f.SST), f.DF1+f.DF2)
	p.field("F", f.F)
	p.field("p-value", f.PValue)
	decision := "fail to reject H0"
	if r.Reject {
		decision = "reject H0"
	}
	p.text("decision", decision+": slope = 0")
	if r.Prediction != nil {
		p.field("y at x="+p.num(at), *r.Prediction)
	}
}
