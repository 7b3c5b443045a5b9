// Package batch compresses the valid configurations of a run matrix into batches
// whose weight stays within a bound
package batch

import (
	"slices"

	"confmatrix/internal/core/matrix"
)

// Batch is an emitted group of configurations, immutable once returned
type Batch struct {
	configs []matrix.Index
	sets    [][]int // per axis, sorted distinct value indices
}

// Len returns the number of configurations in the batch
func (b Batch) Len() int { return len(b.configs) }

// Configurations returns the member indices in admission order
func (b Batch) Configurations() []matrix.Index {
	out := make([]matrix.Index, len(b.configs))
	for i, c := range b.configs {
		out[i] = slices.Clone(c)
	}
	return out
}

// Weight is the product over axes of the number of distinct values in the batch
func (b Batch) Weight() int {
	if len(b.sets) == 0 {
		return 0
	}
	w := 1
	for _, s := range b.sets {
		w *= len(s)
	}
	return w
}

// Signature returns the per-axis distinct value indices in declaration order
func (b Batch) Signature() [][]int {
	out := make([][]int, len(b.sets))
	for a, s := range b.sets {
		out[a] = slices.Clone(s)
	}
	return out
}

// Batcher is the streaming form of GenerateBatches
// configurations are pushed in order and batches are cut greedily
type Batcher struct {
	space   *matrix.Space
	bound   int
	configs []matrix.Index
	sets    []map[int]struct{}
	out     []Batch
}

// NewBatcher returns a batcher over space with weight bound
func NewBatcher(space *matrix.Space, bound int) (*Batcher, error) {
	if bound <= 0 {
		return nil, &matrix.ConfigurationError{Op: "NewBatcher", Err: matrix.ErrNonPositiveBound}
	}
	b := &Batcher{space: space, bound: bound}
	b.reset()
	return b, nil
}

func (b *Batcher) reset() {
	b.configs = nil
	b.sets = make([]map[int]struct{}, b.space.NumAxes())
	for a := range b.sets {
		b.sets[a] = make(map[int]struct{})
	}
}

// Push admits idx into the open batch, or closes it and opens a new one when
// admitting idx would push the weight over the bound
// idx must be a valid index of the batcher's space
func (b *Batcher) Push(idx matrix.Index) {
	if len(b.configs) > 0 && b.candidateWeight(idx) > b.bound {
		b.emit()
	}
	for a, i := range idx {
		b.sets[a][i] = struct{}{}
	}
	b.configs = append(b.configs, slices.Clone(idx))
}

// Close emits the open batch, if any, and returns every batch in emission order
// the batcher must not be used afterwards
func (b *Batcher) Close() []Batch {
	if len(b.configs) > 0 {
		b.emit()
	}
	out := b.out
	b.out = nil
	return out
}

func (b *Batcher) candidateWeight(idx matrix.Index) int {
	w := 1
	for a, i := range idx {
		n := len(b.sets[a])
		if _, ok := b.sets[a][i]; !ok {
			n++
		}
		w *= n
	}
	return w
}

func (b *Batcher) emit() {
	sets := make([][]int, len(b.sets))
	for a, s := range b.sets {
		idx := make([]int, 0, len(s))
		for i := range s {
			idx = append(idx, i)
		}
		slices.Sort(idx)
		sets[a] = idx
	}
	b.out = append(b.out, Batch{configs: b.configs, sets: sets})
	b.reset()
}

// GenerateBatches runs the greedy batcher over the configurations filter leaves valid
// filter may be nil, in which case every configuration of space is valid
// bound is checked before anything else; an empty valid set yields no batches
func GenerateBatches(space *matrix.Space, filter *matrix.Filter, bound int) ([]Batch, error) {
	const op = "GenerateBatches"
	if bound <= 0 {
		return nil, &matrix.ConfigurationError{Op: op, Err: matrix.ErrNonPositiveBound}
	}
	if filter != nil && filter.Space() != space {
		return nil, &matrix.ConfigurationError{Op: op, Err: matrix.ErrSpaceMismatch}
	}

	b, err := NewBatcher(space, bound)
	if err != nil {
		return nil, err
	}
	for idx := range filter.Filter(space.Enumerate()) {
		b.Push(idx)
	}
	return b.Close(), nil
}
