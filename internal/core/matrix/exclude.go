package matrix

import (
	"iter"
	"maps"
	"slices"
)

// Rule forbids every configuration whose value on each named axis is one of the listed values
// axes the rule does not name are unconstrained
type Rule map[string][]string

// Filter decides exclusion against a precomputed set of excluded configurations
// a nil *Filter excludes nothing
type Filter struct {
	space    *Space
	excluded map[int]struct{} // keyed by Space.Ordinal
}

// BuildExcludeFilter validates rules against space and precomputes the exclude set
// each rule contributes the cartesian product of the forbidden indices on its named axes
// and all indices on the others; the exclude set is the union over rules
func BuildExcludeFilter(space *Space, rules []Rule) (*Filter, error) {
	const op = "BuildExcludeFilter"

	for _, r := range rules {
		for _, name := range slices.Sorted(maps.Keys(r)) {
			if _, ok := space.byName[name]; !ok {
				return nil, configErr(op, name, ErrUnknownExcludeAxis)
			}
		}
	}

	f := &Filter{space: space, excluded: make(map[int]struct{})}
	for _, r := range rules {
		choices := make([][]int, len(space.axes))
		for a, ax := range space.axes {
			forbidden, named := r[ax.Name]
			if !named {
				choices[a] = allIndices(len(ax.Values))
				continue
			}
			for _, v := range forbidden {
				if i, ok := space.pos[a][v]; ok && !slices.Contains(choices[a], i) {
					choices[a] = append(choices[a], i)
				}
			}
		}
		f.addProduct(choices)
	}
	return f, nil
}

// addProduct inserts the cartesian product of choices into the exclude set
func (f *Filter) addProduct(choices [][]int) {
	for _, c := range choices {
		if len(c) == 0 {
			return
		}
	}
	pick := make([]int, len(choices))
	for {
		ord := 0
		for a, k := range pick {
			ord += choices[a][k] * f.space.strides[a]
		}
		f.excluded[ord] = struct{}{}

		a := len(pick) - 1
		for ; a >= 0; a-- {
			pick[a]++
			if pick[a] < len(choices[a]) {
				break
			}
			pick[a] = 0
		}
		if a < 0 {
			return
		}
	}
}

// Space returns the axis space the filter was built for
func (f *Filter) Space() *Space {
	if f == nil {
		return nil
	}
	return f.space
}

// Len returns the size of the exclude set
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.excluded)
}

// IsExcluded reports whether idx is forbidden by any rule
// an index that does not address a configuration of the space is never excluded
func (f *Filter) IsExcluded(idx Index) bool {
	if f == nil || f.space.check(idx) != nil {
		return false
	}
	_, ok := f.excluded[f.space.Ordinal(idx)]
	return ok
}

// Filter drops excluded indices from seq, preserving order
func (f *Filter) Filter(seq iter.Seq[Index]) iter.Seq[Index] {
	return func(yield func(Index) bool) {
		for idx := range seq {
			if f.IsExcluded(idx) {
				continue
			}
			if !yield(idx) {
				return
			}
		}
	}
}

// Valid yields every non-excluded configuration index of the filter's space in enumeration order
func (f *Filter) Valid() iter.Seq[Index] {
	return f.Filter(f.space.Enumerate())
}

// Entry is one row of a full listing
type Entry struct {
	Index    Index
	Values   Configuration
	Excluded bool
}

// Listing yields every configuration of space, excluded ones included and flagged
// filter may be nil
func Listing(space *Space, filter *Filter) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for idx := range space.Enumerate() {
			values := make(Configuration, len(idx))
			for a, i := range idx {
				values[a] = space.axes[a].Values[i]
			}
			if !yield(Entry{Index: idx, Values: values, Excluded: filter.IsExcluded(idx)}) {
				return
			}
		}
	}
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
