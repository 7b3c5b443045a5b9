package matrix

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExcludeFilter_UnknownAxis(t *testing.T) {
	s := deviceMode(t)

	f, err := BuildExcludeFilter(s, []Rule{
		{"device": {"gpu"}},
		{"precision": {"fp16"}, "device": {"cpu"}},
	})
	require.Error(t, err)
	assert.Nil(t, f)
	assert.True(t, IsConfigurationError(err))
	assert.ErrorIs(t, err, ErrUnknownExcludeAxis)
	assert.Contains(t, err.Error(), "precision")
}

func TestBuildExcludeFilter_SingleRule(t *testing.T) {
	s := deviceMode(t)

	f, err := BuildExcludeFilter(s, []Rule{{"device": {"gpu"}, "mode": {"train"}}})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())
	assert.True(t, f.IsExcluded(Index{1, 0}))

	valid := slices.Collect(f.Valid())
	assert.Equal(t, []Index{{0, 0}, {0, 1}, {1, 1}}, valid)
}

func TestFilter_IsExcludedRejectsForeignIndices(t *testing.T) {
	s := deviceMode(t)

	f, err := BuildExcludeFilter(s, []Rule{{"device": {"gpu"}, "mode": {"train"}}})
	require.NoError(t, err)
	require.True(t, f.IsExcluded(Index{1, 0}))

	for _, idx := range []Index{{1}, {0, 0, 0}, {2, 0}, {1, -1}, {}, nil} {
		assert.NotPanics(t, func() {
			assert.False(t, f.IsExcluded(idx), "%v", idx)
		})
	}
}

func TestBuildExcludeFilter_Semantics(t *testing.T) {
	s, err := BuildAxisSpace(
		[]string{"device", "mode", "precision"},
		map[string][]string{
			"device":    {"cpu", "gpu", "tpu"},
			"mode":      {"train", "eval"},
			"precision": {"fp32", "fp16", "bf16"},
		},
	)
	require.NoError(t, err)

	tests := []struct {
		name  string
		rules []Rule
		want  int
	}{
		{name: "no rules", rules: nil, want: 0},
		{name: "unnamed axes unconstrained", rules: []Rule{{"device": {"cpu"}}}, want: 6},
		{name: "product of named axes", rules: []Rule{{"device": {"cpu", "gpu"}, "precision": {"fp16"}}}, want: 4},
		{name: "union of overlapping rules", rules: []Rule{{"device": {"cpu"}}, {"mode": {"eval"}}}, want: 6 + 9 - 3},
		{name: "undeclared value contributes nothing", rules: []Rule{{"device": {"npu"}}}, want: 0},
		{name: "repeated forbidden value", rules: []Rule{{"mode": {"eval", "eval"}}}, want: 9},
		{name: "empty rule matches everything", rules: []Rule{{}}, want: 18},
		{name: "named axis with empty list matches nothing", rules: []Rule{{"device": {}}}, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := BuildExcludeFilter(s, tc.rules)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.Len())

			// cross-check against the rule definition
			for idx := range s.Enumerate() {
				cfg, err := s.Resolve(idx)
				require.NoError(t, err)
				assert.Equal(t, matchesAny(s, tc.rules, cfg), f.IsExcluded(idx), "config %v", cfg)
			}
			assert.Len(t, slices.Collect(f.Valid()), s.Size()-tc.want)
		})
	}
}

func matchesAny(s *Space, rules []Rule, cfg Configuration) bool {
	names := s.Names()
	for _, r := range rules {
		hit := true
		for a, name := range names {
			forbidden, named := r[name]
			if named && !slices.Contains(forbidden, cfg[a]) {
				hit = false
				break
			}
		}
		if hit {
			return true
		}
	}
	return false
}

func TestFilter_NilExcludesNothing(t *testing.T) {
	s := deviceMode(t)
	var f *Filter

	assert.False(t, f.IsExcluded(Index{0, 0}))
	assert.Equal(t, 0, f.Len())
	assert.Nil(t, f.Space())
	assert.Len(t, slices.Collect(f.Filter(s.Enumerate())), 4)
}

func TestFilter_PreservesOrderAndStopsEarly(t *testing.T) {
	s := deviceMode(t)
	f, err := BuildExcludeFilter(s, []Rule{{"mode": {"train"}}})
	require.NoError(t, err)

	in := []Index{{1, 1}, {0, 0}, {0, 1}}
	got := slices.Collect(f.Filter(slices.Values(in)))
	assert.Equal(t, []Index{{1, 1}, {0, 1}}, got)

	n := 0
	for range f.Valid() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestListing(t *testing.T) {
	s := deviceMode(t)
	f, err := BuildExcludeFilter(s, []Rule{{"device": {"gpu"}, "mode": {"train"}}})
	require.NoError(t, err)

	var rows []Entry
	for e := range Listing(s, f) {
		rows = append(rows, e)
	}
	require.Len(t, rows, 4)
	assert.Equal(t, Configuration{"cpu", "train"}, rows[0].Values)
	assert.Equal(t, Configuration{"gpu", "train"}, rows[2].Values)
	assert.True(t, rows[2].Excluded)
	assert.False(t, rows[3].Excluded)

	for e := range Listing(s, nil) {
		assert.False(t, e.Excluded)
	}
}
