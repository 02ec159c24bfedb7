package main

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"statref/domain/stats"
	"statref/internal"
	"statref/internal/config"
)

func testApp() *app {
	var sink bytes.Buffer
	cfg := &config.Config{
		Defaults: config.DefaultsConfig{Alpha: 0.05, Confidence: 0.95},
		Output:   config.OutputConfig{Format: config.OutputText, Precision: 4},
		Engine:   config.EngineConfig{Parallelism: 2},
		LogLevel: internal.LogLevelError,
	}
	return newApp(cfg, internal.NewLoggerTo(internal.LogLevelError, &sink))
}

func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(testApp(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestParseValues(t *testing.T) {
	got, err := parseValues("1, 2.5;3\t-4 1e3")
	require.NoError(t, err)
	assert.Equal(t, stats.Sample{1, 2.5, 3, -4, 1000}, got)

	got, err = parseValues("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = parseValues("1,two,3")
	assert.Error(t, err)
}

func TestParseIntsAndGroups(t *testing.T) {
	n, err := parseInts([]string{"49", "6"})
	require.NoError(t, err)
	assert.Equal(t, []int{49, 6}, n)

	_, err = parseInts([]string{"2.5"})
	assert.Error(t, err)
	_, err = parseInts([]string{"-3"})
	assert.Error(t, err)

	g, err := parseGroup("north=1,2,3", 0)
	require.NoError(t, err)
	assert.Equal(t, "north", g.Label)
	assert.Equal(t, stats.Sample{1, 2, 3}, g.Values)

	g, err = parseGroup("4,5", 2)
	require.NoError(t, err)
	assert.Equal(t, "group3", g.Label)
}

func TestPrinterFormatsNumbers(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf, precision: 3}
	assert.Equal(t, "0.123", p.num(0.12345))
	assert.Equal(t, "+Inf", p.num(math.Inf(1)))
	assert.Equal(t, "none", p.list(nil))
	assert.Equal(t, "1.000, 2.500", p.list([]float64{1, 2.5}))
	p.field("mean", 2)
	assert.Contains(t, buf.String(), "mean:")
	assert.Contains(t, buf.String(), "2.000")
}

func TestOneSampleTCommand(t *testing.T) {
	out, _, code := execute(t, "test", "t", "--mean", "72", "--sd", "8", "--n", "16", "--h0", "75")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "-1.5000")
	assert.Contains(t, out, "fail to reject H0")
}

func TestOneSampleTFromValues(t *testing.T) {
	out, _, code := execute(t, "-o", "json", "test", "t", "--values", "2,4,4,4,5,5,7,9", "--h0", "5")
	require.Equal(t, 0, code)
	var report testReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.InDelta(t, 0, report.Result.Statistic, 1e-12)
	assert.Equal(t, 7.0, report.Result.DF1)
}

func TestDistCommandJSON(t *testing.T) {
	out, _, code := execute(t, "-o", "json", "dist", "--family", "binomial", "--n", "15", "--p", "0.08", "--at", "2")
	require.Equal(t, 0, code)
	var report distReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.At)
	assert.InDelta(t, 0.2273, report.At.Density, 1e-4)
	assert.InDelta(t, 1.2, report.Mean, 1e-12)
}

func TestDistOpenInterval(t *testing.T) {
	out, _, code := execute(t, "-o", "json", "dist", "--family", "poisson", "--lambda", "3", "--from", "0")
	require.Equal(t, 0, code)
	var report distReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Interval)
	assert.InDelta(t, 1, *report.Interval, 1e-12)
}

func TestDistBoundBelowSupport(t *testing.T) {
	out, _, code := execute(t, "-o", "json", "dist", "--family", "poisson", "--lambda", "3", "--to", "-2")
	require.Equal(t, 0, code)
	var report distReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Interval)
	assert.Equal(t, 0.0, *report.Interval)
}

func TestCountCommandYAML(t *testing.T) {
	out, _, code := execute(t, "-o", "yaml", "count", "comb", "49", "6")
	require.Equal(t, 0, code)
	var report countReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, 13983816.0, report.Value)
	assert.Equal(t, []int{49, 6}, report.Inputs)
}

func TestCountExactFactorial(t *testing.T) {
	out, _, code := execute(t, "-o", "json", "count", "factorial", "25", "--exact")
	require.Equal(t, 0, code)
	var report countReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "15511210043330985984000000", report.Exact)
}

func TestDescribeCommand(t *testing.T) {
	out, _, code := execute(t, "-o", "json", "describe", "--values", "12,15,11,18,15,22,14")
	require.Equal(t, 0, code)
	var report describeReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 7, report.N)
	assert.InDelta(t, 107.0/7, report.Mean, 1e-12)
	assert.Equal(t, 15.0, report.Median)
	assert.Equal(t, []float64{15}, report.Modes)
	require.NotNil(t, report.Variance)
	assert.Nil(t, report.FrequencyTable)
}

func TestANOVACommand(t *testing.T) {
	out, _, code := execute(t, "-o", "json", "anova",
		"--group", "A=20,22,19,24,21",
		"--group", "B=28,30,27,29,31",
		"--group", "C=23,25,22,26,24")
	require.Equal(t, 0, code)
	var report anovaReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.InDelta(t, 26.92, report.Table.F, 0.01)
	assert.True(t, report.Reject)
}

func TestRegressFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,2\n2,4\n3,5\n4,4\n5,5\n"), 0o644))
	out, _, code := execute(t, "-o", "json", "regress", "--file", path, "--predict", "6")
	require.Equal(t, 0, code)
	var report regressReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.InDelta(t, 0.6, report.Fit.Slope, 1e-9)
	require.NotNil(t, report.Prediction)
	assert.InDelta(t, 5.8, *report.Prediction, 1e-9)
}

func TestSpecCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tests.yaml")
	doc := "- {kind: one_sample_t, mean: 72, sd: 8, n: 16, h0: 75}\n" +
		"- {kind: one_sample_z, mean: 105, sigma: 15, n: 36, h0: 100, tail: right}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, _, code := execute(t, "-o", "json", "test", "spec", path)
	require.Equal(t, 0, code)
	var reports []testReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, stats.KindOneSampleT, reports[0].Result.Kind)
	assert.InDelta(t, 2, reports[1].Result.Statistic, 1e-12)
	assert.True(t, reports[1].Result.Reject)
}

func TestErrorsAreCodedOnStderr(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"domain", []string{"test", "t", "--mean", "1", "--sd", "1", "--n", "1"}, "DOMAIN_ERROR"},
		{"undefined", []string{"regress", "--x", "1,2,3", "--y", "4,4,4"}, "UNDEFINED_STATISTIC"},
		{"tolerance", []string{"prob", "table", "--values", "0,1", "--probs", "0.5,0.4"}, "TOLERANCE_VIOLATION"},
		{"input", []string{"describe", "--values", "1,x"}, "INVALID_INPUT"},
		{"output flag", []string{"-o", "xml", "count", "factorial", "3"}, "INVALID_INPUT"},
		{"reversed discrete bounds", []string{"dist", "--family", "binomial", "--n", "10", "--p", "0.5", "--from", "5", "--to", "2"}, "DOMAIN_ERROR"},
		{"reversed continuous bounds", []string{"dist", "--family", "normal", "--from", "1", "--to", "-1"}, "DOMAIN_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := execute(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.code)
		})
	}
}
