package relationship

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"statref/domain/core"
	"statref/domain/stats"
)

// Regression is the least-squares fit ŷ = b0 + b1·x and its diagnostics
type Regression struct {
	N              int     `json:"n" yaml:"n"`
	Intercept      float64 `json:"intercept" yaml:"intercept"`
	Slope          float64 `json:"slope" yaml:"slope"`
	RSquared       float64 `json:"r_squared" yaml:"r_squared"`
	R              float64 `json:"r" yaml:"r"`
	SSR            float64 `json:"ssr" yaml:"ssr"`
	SSE            float64 `json:"sse" yaml:"sse"`
	SST            float64 `json:"sst" yaml:"sst"`
	StdErrEstimate float64 `json:"std_err_estimate" yaml:"std_err_estimate"`
	SlopeStdErr    float64 `json:"slope_std_err" yaml:"slope_std_err"`
	F              float64 `json:"f" yaml:"f"`
	DF1            int     `json:"df1" yaml:"df1"`
	DF2            int     `json:"df2" yaml:"df2"`
	PValue         float64 `json:"p_value" yaml:"p_value"`
}

// Predict returns b0 + b1·x
func (r Regression) Predict(x float64) float64 {
	return r.Intercept + r.Slope*x
}

func sumSquares(x []float64, mean float64) float64 {
	var s float64
	for _, v := range x {
		d := v - mean
		s += d * d
	}
	return s
}

// Regress fits a simple linear regression on at least 3 pairs.
// Constant x has no slope (DomainError); constant y leaves R² and r
// undefined (UndefinedStatistic).
func Regress(data stats.PairedSample) (Regression, error) {
	const op = "regression"
	if err := data.Validate(op, 3); err != nil {
		return Regression{}, err
	}
	n := len(data.X)
	xbar := stat.Mean(data.X, nil)
	ybar := stat.Mean(data.Y, nil)
	sxx := sumSquares(data.X, xbar)
	syy := sumSquares(data.Y, ybar)
	if sxx == 0 || floats.Max(data.X) == floats.Min(data.X) {
		return Regression{}, core.NewDomainError(op, "all x values are equal; the slope is not identifiable")
	}
	if syy == 0 || floats.Max(data.Y) == floats.Min(data.Y) {
		return Regression{}, core.NewUndefinedError(op, "all y values are equal; R² and r are 0/0")
	}

	b0, b1 := stat.LinearRegression(data.X, data.Y, nil, false)

	var sse, ssr float64
	for i, x := range data.X {
		fit := b0 + b1*x
		e := data.Y[i] - fit
		sse += e * e
		d := fit - ybar
		ssr += d * d
	}

	df2 := n - 2
	sx := math.Sqrt(sxx / float64(n-1))
	sy := math.Sqrt(syy / float64(n-1))
	see := math.Sqrt(sse / float64(df2))
	reg := Regression{
		N:              n,
		Intercept:      b0,
		Slope:          b1,
		RSquared:       ssr / syy,
		R:              b1 * sx / sy,
		SSR:            ssr,
		SSE:            sse,
		SST:            syy,
		StdErrEstimate: see,
		SlopeStdErr:    see / math.Sqrt(sxx),
		DF1:            1,
		DF2:            df2,
	}
	if sse == 0 {
		reg.F = math.Inf(1)
		reg.PValue = 0
		return reg, nil
	}
	reg.F = ssr / (sse / float64(df2))
	reg.PValue = fSurvival(reg.F, 1, float64(df2))
	return reg, nil
}

// RegressionFTest evaluates a regression F specification
func RegressionFTest(s stats.RegressionF) (stats.TestResult, error) {
	if err := s.Validate(); err != nil {
		return stats.TestResult{}, err
	}
	reg, err := Regress(s.Data)
	if err != nil {
		return stats.TestResult{}, err
	}
	return stats.TestResult{
		Kind:      s.Kind(),
		Statistic: reg.F,
		DF1:       float64(reg.DF1),
		DF2:       float64(reg.DF2),
		PValue:    reg.PValue,
		Alpha:     s.Alpha,
		Tail:      stats.TailRight,
		Reject:    reg.PValue < s.Alpha,
	}, nil
}

// Correlation is Pearson's r with its t test of H0: ρ = 0
type Correlation struct {
	R      float64 `json:"r" yaml:"r"`
	T      float64 `json:"t" yaml:"t"`
	DF     int     `json:"df" yaml:"df"`
	PValue float64 `json:"p_value" yaml:"p_value"`
}

// Pearson returns the sample correlation and its two-sided p-value
func Pearson(data stats.PairedSample) (Correlation, error) {
	const op = "pearson"
	if err := data.Validate(op, 3); err != nil {
		return Correlation{}, err
	}
	if floats.Max(data.X) == floats.Min(data.X) || floats.Max(data.Y) == floats.Min(data.Y) {
		return Correlation{}, core.NewUndefinedError(op, "a constant variable has no correlation")
	}
	r := stat.Correlation(data.X, data.Y, nil)
	r = math.Max(-1, math.Min(1, r))
	df := len(data.X) - 2

	c := Correlation{R: r, DF: df}
	if math.Abs(r) == 1 {
		c.T = math.Copysign(math.Inf(1), r)
		return c, nil
	}
	c.T = r * math.Sqrt(float64(df)/(1-r*r))
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	c.PValue = math.Min(1, 2*t.Survival(math.Abs(c.T)))
	return c, nil
}
