// Package relationship holds the multi-sample procedures: one-way ANOVA,
// Pearson correlation and simple linear regression.
package relationship

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"statref/domain/core"
	"statref/domain/stats"
)

// GroupSummary is one row of the ANOVA group table
type GroupSummary struct {
	Label string  `json:"label" yaml:"label"`
	N     int     `json:"n" yaml:"n"`
	Mean  float64 `json:"mean" yaml:"mean"`
}

// ANOVATable is the full one-way ANOVA decomposition
type ANOVATable struct {
	Groups    []GroupSummary `json:"groups" yaml:"groups"`
	GrandMean float64        `json:"grand_mean" yaml:"grand_mean"`
	SSTR      float64        `json:"sstr" yaml:"sstr"`
	SSE       float64        `json:"sse" yaml:"sse"`
	SST       float64        `json:"sst" yaml:"sst"`
	DFBetween int            `json:"df_between" yaml:"df_between"`
	DFWithin  int            `json:"df_within" yaml:"df_within"`
	MSTR      float64        `json:"mstr" yaml:"mstr"`
	MSE       float64        `json:"mse" yaml:"mse"`
	F         float64        `json:"f" yaml:"f"`
	PValue    float64        `json:"p_value" yaml:"p_value"`
}

// OneWayANOVA partitions total variation into between-group (SSTR) and
// within-group (SSE) parts. SST is computed on its own and must match
// SSTR + SSE.
func OneWayANOVA(groups stats.GroupedSample) (ANOVATable, error) {
	const op = "anova"
	if err := groups.Validate(op); err != nil {
		return ANOVATable{}, err
	}
	k := len(groups)
	nT := groups.TotalN()
	if nT <= k {
		return ANOVATable{}, core.NewDomainError(op, "total n=%d must exceed the number of groups k=%d", nT, k)
	}

	// Sums are taken about a pivot so a large common offset does not
	// swamp the deviations; every sum of squares is shift-invariant.
	pivot := groups[0].Values[0]
	shifted := make([][]float64, k)
	all := make([]float64, 0, nT)
	for i, g := range groups {
		shifted[i] = make([]float64, len(g.Values))
		for j, x := range g.Values {
			shifted[i][j] = x - pivot
		}
		all = append(all, shifted[i]...)
	}
	grand := stat.Mean(all, nil)

	table := ANOVATable{
		Groups:    make([]GroupSummary, k),
		GrandMean: grand + pivot,
		DFBetween: k - 1,
		DFWithin:  nT - k,
	}
	for i, g := range groups {
		m := stat.Mean(shifted[i], nil)
		table.Groups[i] = GroupSummary{Label: g.Label, N: len(g.Values), Mean: m + pivot}
		d := m - grand
		table.SSTR += float64(len(g.Values)) * d * d
		for _, x := range shifted[i] {
			e := x - m
			table.SSE += e * e
		}
	}
	for _, x := range all {
		d := x - grand
		table.SST += d * d
	}

	if !core.ApproxEqual(table.SST, table.SSTR+table.SSE, core.Tolerance) {
		return ANOVATable{}, core.NewToleranceError(op, "SST=%v differs from SSTR+SSE=%v", table.SST, table.SSTR+table.SSE)
	}

	table.MSTR = table.SSTR / float64(table.DFBetween)
	table.MSE = table.SSE / float64(table.DFWithin)
	switch {
	case table.MSE == 0 && table.SSTR == 0:
		return ANOVATable{}, core.NewUndefinedError(op, "every observation is identical; F is 0/0")
	case table.MSE == 0:
		table.F = math.Inf(1)
		table.PValue = 0
	default:
		table.F = table.MSTR / table.MSE
		table.PValue = fSurvival(table.F, float64(table.DFBetween), float64(table.DFWithin))
	}
	return table, nil
}

// fSurvival returns P(F > f) for F(d1, d2)
func fSurvival(f, d1, d2 float64) float64 {
	dist := distuv.F{D1: d1, D2: d2}
	return math.Max(0, 1-dist.CDF(f))
}

// ANOVATest evaluates an ANOVA specification; F tests are right-tailed
func ANOVATest(s stats.ANOVA) (stats.TestResult, error) {
	if err := s.Validate(); err != nil {
		return stats.TestResult{}, err
	}
	table, err := OneWayANOVA(s.Groups)
	if err != nil {
		return stats.TestResult{}, err
	}
	return stats.TestResult{
		Kind:      s.Kind(),
		Statistic: table.F,
		DF1:       float64(table.DFBetween),
		DF2:       float64(table.DFWithin),
		PValue:    table.PValue,
		Alpha:     s.Alpha,
		Tail:      stats.TailRight,
		Reject:    table.PValue < s.Alpha,
	}, nil
}
