// Package describe reads matrix description files (tests.yaml)
//
//	tests:
//	  sanity_check:
//	    axis: [device, mode]
//	    variants:
//	      - device: [cpu, gpu]
//	      - mode: [train, eval]
//	    excludes:
//	      - device: [gpu]
//	        mode: [train]
//	    jobs_per_config: 4
package describe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"slices"

	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/platform/logger"
	"confmatrix/internal/platform/net/http/bind"
	"confmatrix/internal/services/matrix/domain"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// File is a parsed description file
type File struct {
	Tests map[string]*Test `yaml:"tests" validate:"required,min=1,dive,required"`
}

// Test is one named matrix
type Test struct {
	Name          string    `yaml:"-"`
	Axis          []string  `yaml:"axis" validate:"required,min=1,dive,axis_name"`
	Variants      []Variant `yaml:"variants" validate:"required,min=1,dive"`
	Excludes      []Rule    `yaml:"excludes"`
	JobsPerConfig int       `yaml:"jobs_per_config" validate:"min=0"`
}

// Variant is one single-key entry of a variants list
type Variant struct {
	Axis   string `validate:"axis_name"`
	Values Values
}

// Rule is one exclude entry, axis to forbidden values
type Rule map[string]Values

// Values is a list of scalars kept as their literal text
// a single scalar is read as a one element list
type Values []string

// UnmarshalYAML reads a sequence of scalars or a single scalar
func (v *Values) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*v = Values{nfc(n.Value)}
		return nil
	case yaml.SequenceNode:
		out := make(Values, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: variant values must be scalars", c.Line)
			}
			out = append(out, nfc(c.Value))
		}
		*v = out
		return nil
	default:
		return fmt.Errorf("line %d: expected a list of values", n.Line)
	}
}

// UnmarshalYAML reads a mapping with exactly one key
func (v *Variant) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return fmt.Errorf("line %d: each variants entry must map exactly one axis to its values", n.Line)
	}
	var vals Values
	if err := n.Content[1].Decode(&vals); err != nil {
		return err
	}
	v.Axis = nfc(n.Content[0].Value)
	v.Values = vals
	return nil
}

func nfc(s string) string { return norm.NFC.String(s) }

// Load reads and parses path
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, perr.WithField(perr.NotFoundf("description file %s not found", path), "path")
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "read %s", path)
	}
	f, err := Parse(b)
	if err != nil {
		return nil, perr.WithOp(err, path)
	}
	return f, nil
}

// Parse decodes and validates a description
// unknown keys are rejected
func Parse(b []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, perr.New(perr.ErrorCodeValidation, "description is empty")
		}
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "invalid yaml")
	}

	normalized := make(map[string]*Test, len(f.Tests))
	for name, t := range f.Tests {
		if t == nil {
			return nil, perr.WithField(perr.New(perr.ErrorCodeValidation, "test has no body"), "tests."+name)
		}
		name = nfc(name)
		t.Name = name
		for i := range t.Axis {
			t.Axis[i] = nfc(t.Axis[i])
		}
		for i, r := range t.Excludes {
			nr := make(Rule, len(r))
			for k, v := range r {
				nr[nfc(k)] = v
			}
			t.Excludes[i] = nr
		}
		normalized[name] = t
	}
	f.Tests = normalized

	if err := bind.Struct(f); err != nil {
		return nil, err
	}
	for _, name := range f.Names() {
		if err := f.Tests[name].check(); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// check rejects an axis given variants twice
func (t *Test) check() error {
	seen := make(map[string]bool, len(t.Variants))
	for i, v := range t.Variants {
		if seen[v.Axis] {
			return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "axis %q has more than one variants entry", v.Axis), fmt.Sprintf("tests.%s.variants[%d]", t.Name, i))
		}
		seen[v.Axis] = true
	}
	return nil
}

// Names returns the test names sorted
func (f *File) Names() []string { return slices.Sorted(maps.Keys(f.Tests)) }

// Test returns the named test
func (f *File) Test(name string) (*Test, error) {
	t, ok := f.Tests[nfc(name)]
	if !ok {
		return nil, perr.WithField(perr.NotFoundf("test %q not found (have %v)", name, f.Names()), "test")
	}
	return t, nil
}

// Input returns the planner input for t; bound 0 falls back to jobs_per_config
// warnings are logged, never returned
func (t *Test) Input(bound int) domain.PlanInput {
	if bound == 0 {
		bound = t.JobsPerConfig
	}
	in := domain.PlanInput{
		Test:     t.Name,
		Axes:     slices.Clone(t.Axis),
		Variants: make(map[string][]string, len(t.Variants)),
		Excludes: make([]map[string][]string, len(t.Excludes)),
		Bound:    bound,
	}
	for _, v := range t.Variants {
		in.Variants[v.Axis] = slices.Clone(v.Values)
	}
	for i, r := range t.Excludes {
		m := make(map[string][]string, len(r))
		for k, v := range r {
			m[k] = slices.Clone(v)
		}
		in.Excludes[i] = m
	}

	log := logger.Named("describe").With().Str("test", t.Name).Logger()
	for _, w := range t.Warnings() {
		log.Warn().Msg(w)
	}
	return in
}

// Warnings lists rules that will not behave the way they read
func (t *Test) Warnings() []string {
	declared := make(map[string][]string, len(t.Variants))
	for _, v := range t.Variants {
		declared[v.Axis] = v.Values
	}

	var out []string
	for i, r := range t.Excludes {
		if len(r) == 0 {
			out = append(out, fmt.Sprintf("excludes[%d] names no axis and removes every configuration", i))
			continue
		}
		for _, axis := range slices.Sorted(maps.Keys(r)) {
			values, ok := declared[axis]
			if !ok {
				continue
			}
			for _, v := range r[axis] {
				if !slices.Contains(values, v) {
					out = append(out, fmt.Sprintf("excludes[%d]: %s=%s is not a declared variant", i, axis, v))
				}
			}
		}
	}
	return out
}
