package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"statref/domain/core"
	"statref/domain/stats"
	"statref/internal/descriptive"
)

// describeReport is the full single-sample summary. Statistics that are
// undefined for the sample (a CV with mean 0, say) are left nil.
type describeReport struct {
	N              int                          `json:"n" yaml:"n"`
	Mode           string                       `json:"variance_mode" yaml:"variance_mode"`
	Mean           float64                      `json:"mean" yaml:"mean"`
	Median         float64                      `json:"median" yaml:"median"`
	Modes          []float64                    `json:"modes" yaml:"modes"`
	MidRange       float64                      `json:"mid_range" yaml:"mid_range"`
	Range          float64                      `json:"range" yaml:"range"`
	Variance       *float64                     `json:"variance,omitempty" yaml:"variance,omitempty"`
	StdDev         *float64                     `json:"sd,omitempty" yaml:"sd,omitempty"`
	CV             *float64                     `json:"cv_percent,omitempty" yaml:"cv_percent,omitempty"`
	MAD            float64                      `json:"mean_absolute_deviation" yaml:"mean_absolute_deviation"`
	Skew           descriptive.SkewDirection    `json:"skew" yaml:"skew"`
	PearsonSkew    *float64                     `json:"pearson_skewness,omitempty" yaml:"pearson_skewness,omitempty"`
	FiveNumber     descriptive.FiveNumber       `json:"five_number" yaml:"five_number"`
	IQR            float64                      `json:"iqr" yaml:"iqr"`
	Outliers       descriptive.OutlierReport    `json:"outliers" yaml:"outliers"`
	FrequencyTable []descriptive.FrequencyClass `json:"frequency_table,omitempty" yaml:"frequency_table,omitempty"`
}

func newDescribeCmd(a *app) *cobra.Command {
	var src sampleSource
	var population bool
	var classes int

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Summarize one sample: center, spread, quartiles and outliers",
		Long: `Summarize one sample.

Example: statcalc describe --values 12,15,11,18,15,22,14 --classes 3
         statcalc describe --file scores.xlsx --column score --population`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := src.load(a)
			if err != nil {
				return err
			}
			mode := descriptive.SampleMode
			if population {
				mode = descriptive.PopulationMode
			}
			report, err := describe(x, mode, classes)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), report, func(p *printer) { printDescribe(p, report) })
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&population, "population", false, "Treat the data as a whole population (divide by N)")
	cmd.Flags().IntVar(&classes, "classes", -1, "Frequency table classes; 0 picks Sturges' rule, negative skips the table")
	return cmd
}

func describe(x stats.Sample, mode descriptive.VarianceMode, classes int) (describeReport, error) {
	if err := x.Validate("describe", 1); err != nil {
		return describeReport{}, err
	}
	r := describeReport{N: len(x), Mode: mode.String()}

	var err error
	if r.Mean, err = descriptive.Mean(x); err != nil {
		return r, err
	}
	if r.Median, err = descriptive.Median(x); err != nil {
		return r, err
	}
	if r.Modes, err = descriptive.Mode(x); err != nil {
		return r, err
	}
	if r.MidRange, err = descriptive.MidRange(x); err != nil {
		return r, err
	}
	if r.Range, err = descriptive.Range(x); err != nil {
		return r, err
	}
	if r.MAD, err = descriptive.MeanAbsoluteDeviation(x); err != nil {
		return r, err
	}
	if r.Skew, err = descriptive.Skew(x); err != nil {
		return r, err
	}
	if r.FiveNumber, err = descriptive.FiveNumberSummary(x); err != nil {
		return r, err
	}
	r.IQR = r.FiveNumber.Q3 - r.FiveNumber.Q1
	if r.Outliers, err = descriptive.ClassifyOutliers(x); err != nil {
		return r, err
	}

	if r.Variance, err = optional(descriptive.Variance(x, mode)); err != nil {
		return r, err
	}
	if r.StdDev, err = optional(descriptive.StdDev(x, mode)); err != nil {
		return r, err
	}
	if r.CV, err = optional(descriptive.CoefficientOfVariation(x)); err != nil {
		return r, err
	}
	if r.PearsonSkew, err = optional(descriptive.PearsonSkewness(x)); err != nil {
		return r, err
	}

	if classes >= 0 {
		if classes == 0 {
			if classes, err = descriptive.SturgesClasses(len(x)); err != nil {
				return r, err
			}
		}
		if r.FrequencyTable, err = descriptive.FrequencyTable(x, classes); err != nil {
			return r, err
		}
	}
	return r, nil
}

// optional drops an undefined statistic instead of failing the summary
func optional(v float64, err error) (*float64, error) {
	if core.IsUndefinedStatistic(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func printDescribe(p *printer, r describeReport) {
	p.text("n", fmt.Sprint(r.N))
	p.field("mean", r.Mean)
	p.field("median", r.Median)
	p.text("mode", p.list(r.Modes))
	p.field("mid-range", r.MidRange)
	p.field("range", r.Range)
	optionalField(p, r.Mode+" variance", r.Variance)
	optionalField(p, r.Mode+" sd", r.StdDev)
	optionalField(p, "cv %", r.CV)
	p.field("mean abs dev", r.MAD)
	p.text("skew", string(r.Skew))
	optionalField(p, "pearson skewness", r.PearsonSkew)
	p.text("five-number", p.list([]float64{r.FiveNumber.Min, r.FiveNumber.Q1, r.FiveNumber.Median, r.FiveNumber.Q3, r.FiveNumber.Max}))
	p.field("iqr", r.IQR)
	p.text("mild outliers", p.list(r.Outliers.Mild))
	p.text("extreme outliers", p.list(r.Outliers.Extreme))

	if len(r.FrequencyTable) > 0 {
		p.line("")
		p.line("%-24s %9s %5s %8s %5s", "class", "midpoint", "f", "rel", "cum")
		for _, c := range r.FrequencyTable {
			p.line("%-24s %9s %5d %8s %5d",
				fmt.Sprintf("[%s, %s)", p.num(c.Lower), p.num(c.Upper)),
				p.num(c.Midpoint), c.Frequency, p.num(c.Relative), c.Cumulative)
		}
	}
}

func optionalField(p *printer, label string, v *float64) {
	if v == nil {
		p.text(label, "undefined")
		return
	}
	p.field(label, *v)
}
