package batch

import (
	"confmatrix/internal/core/matrix"
)

// AxisValues is one axis of a descriptor
type AxisValues struct {
	Axis   string   `json:"axis" yaml:"axis"`
	Values []string `json:"values" yaml:"values"`
}

// Descriptor is the serialised form of a batch, one entry per axis in axis order
type Descriptor struct {
	Axes []AxisValues `json:"axes" yaml:"axes"`
}

// Serialize maps batch to the distinct values present on each axis
// values follow the axis declaration order
func Serialize(b Batch, space *matrix.Space) Descriptor {
	d := Descriptor{Axes: make([]AxisValues, len(b.sets))}
	names := space.Names()
	for a, set := range b.sets {
		values := make([]string, len(set))
		for k, i := range set {
			values[k] = space.Value(a, i)
		}
		d.Axes[a] = AxisValues{Axis: names[a], Values: values}
	}
	return d
}

// SerializeAll serialises batches in order
func SerializeAll(batches []Batch, space *matrix.Space) []Descriptor {
	out := make([]Descriptor, len(batches))
	for i, b := range batches {
		out[i] = Serialize(b, space)
	}
	return out
}

// Map returns the descriptor keyed by axis name
func (d Descriptor) Map() map[string][]string {
	out := make(map[string][]string, len(d.Axes))
	for _, av := range d.Axes {
		out[av.Axis] = av.Values
	}
	return out
}

// Weight is the product of the per-axis value counts
func (d Descriptor) Weight() int {
	if len(d.Axes) == 0 {
		return 0
	}
	w := 1
	for _, av := range d.Axes {
		w *= len(av.Values)
	}
	return w
}
