// Package matrix holds the axis space of a run matrix and the exclude filter over it
package matrix

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
	"strings"
)

// Axis is a named dimension with its ordered variant values
// value order is significant, it defines the index -> value mapping
type Axis struct {
	Name   string
	Values []string
}

// Index is a configuration index, one per-axis value index in axis order
type Index []int

// Configuration is an Index resolved to values
type Configuration []string

// Space is the ordered list of axes and the cartesian product over them
// it is immutable after BuildAxisSpace
type Space struct {
	axes    []Axis
	byName  map[string]int
	pos     []map[string]int // per axis value -> index
	strides []int            // row-major, last axis has stride 1
	size    int
}

// BuildAxisSpace validates the declaration and returns the axis space
// axisNames fixes the axis order, variantsByAxis supplies the ordered values of each axis
func BuildAxisSpace(axisNames []string, variantsByAxis map[string][]string) (*Space, error) {
	const op = "BuildAxisSpace"
	if len(axisNames) == 0 {
		return nil, configErr(op, "", ErrNoAxes)
	}

	byName := make(map[string]int, len(axisNames))
	for i, name := range axisNames {
		if strings.TrimSpace(name) == "" {
			return nil, configErr(op, name, ErrBlankAxisName)
		}
		if _, dup := byName[name]; dup {
			return nil, configErr(op, name, ErrDuplicateAxis)
		}
		byName[name] = i
	}

	// sorted so the reported axis does not depend on map order
	for _, name := range slices.Sorted(maps.Keys(variantsByAxis)) {
		if _, ok := byName[name]; !ok {
			return nil, configErr(op, name, ErrUndeclaredAxis)
		}
	}

	s := &Space{
		axes:    make([]Axis, len(axisNames)),
		byName:  byName,
		pos:     make([]map[string]int, len(axisNames)),
		strides: make([]int, len(axisNames)),
		size:    1,
	}
	for i, name := range axisNames {
		values, declared := variantsByAxis[name]
		if !declared {
			return nil, configErr(op, name, ErrMissingVariants)
		}
		if len(values) == 0 {
			return nil, configErr(op, name, ErrEmptyAxis)
		}
		pos := make(map[string]int, len(values))
		for j, v := range values {
			if _, dup := pos[v]; dup {
				return nil, &ConfigurationError{Op: op, Axis: name, Err: fmt.Errorf("%w: %q", ErrDuplicateValue, v)}
			}
			pos[v] = j
		}
		if s.size > math.MaxInt/len(values) {
			return nil, configErr(op, name, ErrSpaceTooLarge)
		}
		s.size *= len(values)
		s.axes[i] = Axis{Name: name, Values: slices.Clone(values)}
		s.pos[i] = pos
	}

	stride := 1
	for i := len(s.axes) - 1; i >= 0; i-- {
		s.strides[i] = stride
		stride *= len(s.axes[i].Values)
	}
	return s, nil
}

// NumAxes returns the number of axes
func (s *Space) NumAxes() int { return len(s.axes) }

// Size returns the number of configurations in the full product
func (s *Space) Size() int { return s.size }

// Names returns the axis names in declaration order
func (s *Space) Names() []string {
	out := make([]string, len(s.axes))
	for i, a := range s.axes {
		out[i] = a.Name
	}
	return out
}

// Axes returns a copy of the axes
func (s *Space) Axes() []Axis {
	out := make([]Axis, len(s.axes))
	for i, a := range s.axes {
		out[i] = Axis{Name: a.Name, Values: slices.Clone(a.Values)}
	}
	return out
}

// AxisIndex returns the position of the named axis
func (s *Space) AxisIndex(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// Cardinality returns the number of variant values on the named axis
func (s *Space) Cardinality(name string) (int, error) {
	i, ok := s.byName[name]
	if !ok {
		return 0, fmt.Errorf("matrix: unknown axis %q", name)
	}
	return len(s.axes[i].Values), nil
}

// Value returns the value at index i of axis a, both must be in range
func (s *Space) Value(a, i int) string { return s.axes[a].Values[i] }

// Position returns the declaration index of value on axis a
func (s *Space) Position(a int, value string) (int, bool) {
	i, ok := s.pos[a][value]
	return i, ok
}

// Resolve maps an index tuple to its configuration
func (s *Space) Resolve(idx Index) (Configuration, error) {
	if err := s.check(idx); err != nil {
		return nil, err
	}
	out := make(Configuration, len(idx))
	for a, i := range idx {
		out[a] = s.axes[a].Values[i]
	}
	return out, nil
}

// Ordinal returns the row-major position of idx in the full product
// it is a bijection between valid index tuples and [0, Size)
// idx must have one in-range component per axis, see Resolve for a checked lookup
func (s *Space) Ordinal(idx Index) int {
	ord := 0
	for a, i := range idx {
		ord += i * s.strides[a]
	}
	return ord
}

// IndexAt is the inverse of Ordinal
func (s *Space) IndexAt(ord int) Index {
	out := make(Index, len(s.axes))
	for a := range s.axes {
		out[a] = ord / s.strides[a]
		ord %= s.strides[a]
	}
	return out
}

// Enumerate yields every configuration index of the full product in row-major order:
// the first axis varies slowest and the last axis fastest
// each yielded Index is freshly allocated and may be retained
func (s *Space) Enumerate() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		cur := make(Index, len(s.axes))
		for {
			if !yield(slices.Clone(cur)) {
				return
			}
			// odometer step from the last axis
			a := len(cur) - 1
			for ; a >= 0; a-- {
				cur[a]++
				if cur[a] < len(s.axes[a].Values) {
					break
				}
				cur[a] = 0
			}
			if a < 0 {
				return
			}
		}
	}
}

func (s *Space) check(idx Index) error {
	if len(idx) != len(s.axes) {
		return fmt.Errorf("matrix: index has %d components, space has %d axes", len(idx), len(s.axes))
	}
	for a, i := range idx {
		if i < 0 || i >= len(s.axes[a].Values) {
			return fmt.Errorf("matrix: index %d out of range for axis %q", i, s.axes[a].Name)
		}
	}
	return nil
}
