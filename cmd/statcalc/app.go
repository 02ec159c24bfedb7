package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"statref/adapters/excel"
	"statref/domain/core"
	"statref/domain/stats"
	"statref/internal"
	"statref/internal/config"
	"statref/internal/errors"
)

// app carries what every subcommand needs: configuration, the logger and
// the output settings the root flags may override
type app struct {
	cfg       *config.Config
	logger    *internal.Logger
	format    string
	precision int
}

func newApp(cfg *config.Config, logger *internal.Logger) *app {
	return &app{
		cfg:       cfg,
		logger:    logger,
		format:    cfg.Output.Format,
		precision: cfg.Output.Precision,
	}
}

// emit writes v as JSON or YAML, or calls text for the plain format
func (a *app) emit(w io.Writer, v interface{}, text func(p *printer)) error {
	switch a.format {
	case config.OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(errors.WithCode(errors.CodeInternalError, err), "encoding JSON output")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(errors.WithCode(errors.CodeInternalError, err), "encoding YAML output")
		}
		_, err = w.Write(data)
		return err
	case config.OutputText:
		p := &printer{w: w, precision: a.precision}
		text(p)
		return p.err
	}
	return errors.InvalidInputf("unknown output format %q (want text, json or yaml)", a.format)
}

// printer renders aligned "label: value" lines at a fixed precision
type printer struct {
	w         io.Writer
	precision int
	err       error
}

func (p *printer) line(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) num(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "+Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	case math.IsNaN(x):
		return "NaN"
	}
	return strconv.FormatFloat(x, 'f', p.precision, 64)
}

func (p *printer) field(label string, x float64) {
	p.line("%-18s %s", label+":", p.num(x))
}

func (p *printer) text(label, value string) {
	p.line("%-18s %s", label+":", value)
}

func (p *printer) list(xs []float64) string {
	if len(xs) == 0 {
		return "none"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = p.num(x)
	}
	return strings.Join(parts, ", ")
}

// parseValues splits a list on commas, semicolons or whitespace
func parseValues(s string) (stats.Sample, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make(stats.Sample, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.InvalidInputf("%q is not a number", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseInts parses whole-number arguments such as counting inputs
func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.InvalidInputf("%q is not a number", s)
		}
		if !core.IsInteger(v) || v < 0 || v > math.MaxInt32 {
			return nil, core.NewDomainError("count", "%q must be a non-negative whole number", s)
		}
		out[i] = int(math.Round(v))
	}
	return out, nil
}

// parseGroup reads "label=v1,v2,..."; an unlabelled group is named by
// its position
func parseGroup(s string, index int) (stats.Group, error) {
	label := fmt.Sprintf("group%d", index+1)
	body := s
	if i := strings.Index(s, "="); i >= 0 {
		label = strings.TrimSpace(s[:i])
		body = s[i+1:]
	}
	values, err := parseValues(body)
	if err != nil {
		return stats.Group{}, errors.Wrapf(err, "group %q", label)
	}
	return stats.Group{Label: label, Values: values}, nil
}

// sampleSource is the --values / --file / --column flag trio
type sampleSource struct {
	values string
	file   string
	column string
}

func (s *sampleSource) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.values, "values", "", "Comma-separated observations")
	cmd.Flags().StringVar(&s.file, "file", "", "Spreadsheet (.xlsx) or CSV file to read from")
	cmd.Flags().StringVar(&s.column, "column", "", "Column to read from --file")
}

func (s *sampleSource) load(a *app) (stats.Sample, error) {
	switch {
	case s.file != "" && s.values != "":
		return nil, errors.InvalidInput("use either --values or --file, not both")
	case s.file != "":
		if s.column == "" {
			return nil, errors.InvalidInput("--file needs --column")
		}
		return excel.NewDataReader(s.file).WithLogger(a.logger).Sample(s.column)
	case s.values != "":
		return parseValues(s.values)
	}
	return nil, errors.InvalidInput("no data: pass --values or --file with --column")
}
