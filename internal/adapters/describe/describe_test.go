package describe

import (
	"testing"

	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/platform/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testsYAML = `
tests:
  sanity_check:
    axis: [device, mode]
    variants:
      - device: [cpu, gpu]
      - mode: [train, eval]
    excludes:
      - device: [gpu]
        mode: [train]
    jobs_per_config: 4
  numbers:
    axis: [lr, amp]
    variants:
      - lr: [0.1, 1e-3, 1]
      - amp: true
`

func TestParse(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(testsYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"numbers", "sanity_check"}, f.Names())

	tt, err := f.Test("sanity_check")
	require.NoError(t, err)
	assert.Equal(t, "sanity_check", tt.Name)
	assert.Equal(t, []string{"device", "mode"}, tt.Axis)
	assert.Equal(t, 4, tt.JobsPerConfig)
	require.Len(t, tt.Excludes, 1)
	assert.Equal(t, Values{"gpu"}, tt.Excludes[0]["device"])

	in := tt.Input(0)
	assert.Equal(t, 4, in.Bound)
	assert.Equal(t, "sanity_check", in.Test)
	assert.Equal(t, map[string][]string{"device": {"cpu", "gpu"}, "mode": {"train", "eval"}}, in.Variants)
	assert.Equal(t, []map[string][]string{{"device": {"gpu"}, "mode": {"train"}}}, in.Excludes)
	assert.Equal(t, 2, tt.Input(2).Bound)
}

func TestParse_ScalarsKeepLiteralText(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(testsYAML))
	require.NoError(t, err)
	tt, err := f.Test("numbers")
	require.NoError(t, err)

	in := tt.Input(0)
	assert.Equal(t, []string{"0.1", "1e-3", "1"}, in.Variants["lr"])
	assert.Equal(t, []string{"true"}, in.Variants["amp"])
	assert.Equal(t, 0, in.Bound)
	assert.Empty(t, in.Excludes)
}

func TestParse_NFC(t *testing.T) {
	t.Parallel()

	// decomposed e + combining acute
	f, err := Parse([]byte("tests:\n  t:\n    axis: [lang]\n    variants:\n      - lang: [\"cafe\u0301\"]\n"))
	require.NoError(t, err)
	tt, err := f.Test("t")
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", tt.Variants[0].Values[0])
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		code perr.ErrorCode
		msg  string
	}{
		{"empty", ``, perr.ErrorCodeValidation, "empty"},
		{"not yaml", "tests: [", perr.ErrorCodeInvalidArgument, "invalid yaml"},
		{"unknown key", "tests:\n  t:\n    axes: [a]\n", perr.ErrorCodeInvalidArgument, "axes"},
		{"two keys", "tests:\n  t:\n    axis: [a, b]\n    variants:\n      - {a: [1], b: [2]}\n", perr.ErrorCodeInvalidArgument, "exactly one axis"},
		{"nested values", "tests:\n  t:\n    axis: [a]\n    variants:\n      - a: [[1]]\n", perr.ErrorCodeInvalidArgument, "scalars"},
		{"no tests", "tests: {}\n", perr.ErrorCodeValidation, "tests"},
		{"no body", "tests:\n  t:\n", perr.ErrorCodeValidation, "no body"},
		{"no axis", "tests:\n  t:\n    variants:\n      - a: [1]\n", perr.ErrorCodeValidation, "axis"},
		{"bad axis name", "tests:\n  t:\n    axis: [\"a=b\"]\n    variants:\n      - a: [1]\n", perr.ErrorCodeValidation, "axis"},
		{"negative jobs", "tests:\n  t:\n    axis: [a]\n    variants:\n      - a: [1]\n    jobs_per_config: -1\n", perr.ErrorCodeValidation, "jobs_per_config"},
		{"repeated axis", "tests:\n  t:\n    axis: [a]\n    variants:\n      - a: [1]\n      - a: [2]\n", perr.ErrorCodeValidation, "more than one"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.body))
			require.Error(t, err)
			assert.Equal(t, c.code, perr.CodeOf(err), err.Error())
			testkit.MustContain(t, err.Error(), c.msg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := testkit.WriteFile(t, "tests.yaml", testsYAML)
	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Tests, 2)

	_, err = Load(path + ".missing")
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))

	bad := testkit.WriteFile(t, "bad.yaml", "tests: [")
	_, err = Load(bad)
	e, ok := perr.As(err)
	require.True(t, ok)
	assert.Equal(t, bad, e.Op())
}

func TestFile_TestNotFound(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(testsYAML))
	require.NoError(t, err)
	_, err = f.Test("nightly")
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))
	testkit.MustContain(t, err.Error(), "sanity_check")
}

func TestWarnings(t *testing.T) {
	t.Parallel()

	f, err := Parse([]byte(`
tests:
  t:
    axis: [device, mode]
    variants:
      - device: [cpu, gpu]
      - mode: [train]
    excludes:
      - device: [tpu]
      - {}
      - mode: [train]
`))
	require.NoError(t, err)
	tt, err := f.Test("t")
	require.NoError(t, err)

	w := tt.Warnings()
	require.Len(t, w, 2)
	testkit.MustContain(t, w[0], "device=tpu")
	testkit.MustContain(t, w[1], "names no axis")

	testkit.MustNotPanic(t, func() { tt.Input(1) })
}
