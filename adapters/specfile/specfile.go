// Package specfile decodes YAML documents into validated test specifications.
//
// Each document is either one mapping or a list of mappings. The kind key
// selects the test:
//
//	kind: one_sample_t
//	mean: 72
//	sd: 8
//	n: 16
//	h0: 75
//	tail: two-sided
//	---
//	- kind: anova
//	  groups:
//	    - {label: A, values: [20, 22, 19, 24, 21]}
//	    - {label: B, values: [28, 30, 27, 29, 31]}
package specfile

import (
	stderrors "errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"statref/domain/stats"
	"statref/internal/errors"
)

// Loader decodes spec files. Alpha fills in specs that omit alpha; an
// omitted tail means two-sided.
type Loader struct {
	Alpha float64
}

// NewLoader returns a loader with the given default significance level
func NewLoader(alpha float64) *Loader {
	return &Loader{Alpha: alpha}
}

type header struct {
	Kind stats.TestKind `yaml:"kind"`
}

// LoadFile reads every spec in the file at path
func (l *Loader) LoadFile(path string) ([]stats.TestSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.WithCode(errors.CodeInvalidInput, err), "opening spec file %s", path)
	}
	defer f.Close()
	return l.Load(f)
}

// Load reads every document from r, in order
func (l *Loader) Load(r io.Reader) ([]stats.TestSpec, error) {
	dec := yaml.NewDecoder(r)
	var specs []stats.TestSpec
	for doc := 0; ; doc++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.InvalidInputf("document %d: %v", doc+1, err)
		}
		root := &node
		if root.Kind == yaml.DocumentNode {
			if len(root.Content) == 0 {
				continue
			}
			root = root.Content[0]
		}

		switch root.Kind {
		case yaml.SequenceNode:
			for i, item := range root.Content {
				spec, err := l.decode(item)
				if err != nil {
					return nil, errors.Wrapf(err, "document %d item %d", doc+1, i+1)
				}
				specs = append(specs, spec)
			}
		case yaml.MappingNode:
			spec, err := l.decode(root)
			if err != nil {
				return nil, errors.Wrapf(err, "document %d", doc+1)
			}
			specs = append(specs, spec)
		default:
			return nil, errors.InvalidInputf("document %d: expected a mapping or a list of mappings", doc+1)
		}
	}
	if len(specs) == 0 {
		return nil, errors.InvalidInput("no test specifications found")
	}
	return specs, nil
}

func (l *Loader) decode(node *yaml.Node) (stats.TestSpec, error) {
	var h header
	if err := node.Decode(&h); err != nil {
		return nil, errors.InvalidInputf("line %d: %v", node.Line, err)
	}

	var (
		spec stats.TestSpec
		err  error
	)
	switch h.Kind {
	case stats.KindOneSampleZ:
		var s stats.OneSampleZ
		err = node.Decode(&s)
		l.hypothesis(&s.Hypothesis)
		spec = s
	case stats.KindOneSampleT:
		var s stats.OneSampleT
		err = node.Decode(&s)
		l.hypothesis(&s.Hypothesis)
		spec = s
	case stats.KindTwoSampleT:
		var s stats.TwoSampleT
		err = node.Decode(&s)
		l.hypothesis(&s.Hypothesis)
		spec = s
	case stats.KindANOVA:
		var s stats.ANOVA
		err = node.Decode(&s)
		s.Alpha = l.alpha(s.Alpha)
		spec = s
	case stats.KindRegressionF:
		var s stats.RegressionF
		err = node.Decode(&s)
		s.Alpha = l.alpha(s.Alpha)
		spec = s
	case "":
		return nil, errors.InvalidInputf("line %d: missing kind", node.Line)
	default:
		return nil, errors.InvalidInputf("line %d: unknown kind %q", node.Line, h.Kind)
	}
	if err != nil {
		return nil, errors.InvalidInputf("line %d: %v", node.Line, err)
	}

	if err := spec.Validate(); err != nil {
		return nil, errors.Wrapf(err, "line %d: invalid %s", node.Line, h.Kind)
	}
	return spec, nil
}

// hypothesis fills defaults and canonicalizes tail shorthands. An
// unrecognized tail is left as written for Validate to report.
func (l *Loader) hypothesis(h *stats.Hypothesis) {
	h.Alpha = l.alpha(h.Alpha)
	if h.Tail == "" {
		h.Tail = stats.TailTwoSided
		return
	}
	if tail, err := stats.ParseTail(string(h.Tail)); err == nil {
		h.Tail = tail
	}
}

func (l *Loader) alpha(a float64) float64 {
	if a == 0 {
		return l.Alpha
	}
	return a
}
