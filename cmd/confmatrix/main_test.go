package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"confmatrix/internal/adapters/reportout"
	perr "confmatrix/internal/platform/errors"
	"confmatrix/internal/platform/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
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
  singles:
    axis: [device, mode]
    variants:
      - device: [cpu, gpu]
      - mode: [train, eval]
`

const expsJSON = `[
  {"params": {"lr": 0.1, "steps": 1}, "metrics": {"acc": 0.5}},
  {"params": {"lr": 0.1, "steps": 2}, "metrics": {"acc": 0.6}},
  {"params": {"lr": 0.2, "steps": 1}, "metrics": {"acc": 0.7}}
]`

const queryYAML = `
x_axis: params.steps
y_axis: metrics.acc
`

// run executes the root command with args, returning stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "disabled")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBatches_Stdout(t *testing.T) {
	in := testkit.WriteFile(t, "tests.yaml", testsYAML)

	out, err := run(t, "batches", "-i", in, "-t", "sanity_check", "-o", "-")
	require.NoError(t, err)

	var got []string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{`-S device="cpu,gpu" -S mode="train,eval"`}, got)
}

func TestBatches_FileAndBound(t *testing.T) {
	in := testkit.WriteFile(t, "tests.yaml", testsYAML)
	dst := filepath.Join(t.TempDir(), "dvc_configuration_strings.yaml")

	_, err := run(t, "batches", "-i", in, "-t", "singles", "-b", "1", "-o", dst)
	require.NoError(t, err)

	var got []string
	require.NoError(t, yaml.Unmarshal([]byte(testkit.ReadFile(t, dst)), &got))
	require.Len(t, got, 4)
	assert.Equal(t, `-S device="cpu" -S mode="train"`, got[0])
}

func TestBatches_Lines(t *testing.T) {
	in := testkit.WriteFile(t, "tests.yaml", testsYAML)

	out, err := run(t, "batches", "-i", in, "-t", "sanity_check", "-o", "-", "-f", "lines")
	require.NoError(t, err)
	assert.Equal(t, "device=cpu,gpu mode=train,eval\n", out)
}

func TestBatches_Errors(t *testing.T) {
	in := testkit.WriteFile(t, "tests.yaml", testsYAML)

	_, err := run(t, "batches", "-i", in, "-t", "nope", "-o", "-")
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))

	_, err = run(t, "batches", "-i", filepath.Join(t.TempDir(), "missing.yaml"), "-o", "-")
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))

	_, err = run(t, "batches", "-i", in, "-o", "-", "-f", "xml")
	assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))

	_, err = run(t, "batches", "-i", in, "-b", "-2", "-o", "-")
	assert.Equal(t, perr.ErrorCodeValidation, perr.CodeOf(err))
}

func TestBatches_UnknownFormatKeepsOutput(t *testing.T) {
	in := testkit.WriteFile(t, "tests.yaml", testsYAML)
	dst := testkit.WriteFile(t, "existing.yaml", "- keep me\n")

	_, err := run(t, "batches", "-i", in, "-f", "xml", "-o", dst)
	assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))
	assert.Equal(t, "- keep me\n", testkit.ReadFile(t, dst))
}

func TestPrint(t *testing.T) {
	in := testkit.WriteFile(t, "tests.yaml", testsYAML)

	out, err := run(t, "print", "-i", in, "-t", "sanity_check")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "     0  device=cpu mode=train", lines[0])
	assert.Equal(t, "x    2  device=gpu mode=train", lines[2])
	assert.Equal(t, "4 configurations, 1 excluded", lines[4])
}

func TestTests(t *testing.T) {
	in := testkit.WriteFile(t, "tests.yaml", testsYAML)

	out, err := run(t, "tests", "-i", in)
	require.NoError(t, err)
	assert.Equal(t, "sanity_check\taxes=2\tjobs_per_config=4\nsingles\taxes=2\tjobs_per_config=0\n", out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	testkit.MustContain(t, out, "confmatrix")
}

func TestReport_File(t *testing.T) {
	t.Setenv("CORE_REPORT_SOURCE", "")
	data := testkit.WriteFile(t, "exps.json", expsJSON)
	q := testkit.WriteFile(t, "visualize_config.yaml", queryYAML)
	dir := filepath.Join(t.TempDir(), "out")

	out, err := run(t, "report", "-c", q, "--data", data, "-o", dir)
	require.NoError(t, err)
	testkit.MustContain(t, out, "3 experiments loaded, 3 matched, 0 skipped")
	testkit.MustContain(t, out, filepath.Join(dir, reportout.LegendFile))
	testkit.MustContain(t, testkit.ReadFile(t, filepath.Join(dir, reportout.ConfigFile)), "x_axis: params.steps")
}

func TestReport_DefaultDir(t *testing.T) {
	data := testkit.WriteFile(t, "exps.json", expsJSON)
	q := testkit.WriteFile(t, "visualize_config.yaml", queryYAML)
	t.Chdir(t.TempDir())

	cmd := newReportCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetContext(context.Background())
	now := func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	err := runReport(cmd, reportFlags{config: q, data: data, source: "file"}, now)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join("output", "2026-01-02_03-04-05", reportout.DataFile))
}

func TestReport_Errors(t *testing.T) {
	data := testkit.WriteFile(t, "exps.json", expsJSON)
	q := testkit.WriteFile(t, "visualize_config.yaml", queryYAML)
	bad := testkit.WriteFile(t, "bad.yaml", "x_axis: a\nunknown: 1\n")

	_, err := run(t, "report", "-c", bad, "--data", data, "-o", t.TempDir())
	assert.Equal(t, perr.ErrorCodeInvalidArgument, perr.CodeOf(err))

	_, err = run(t, "report", "-c", filepath.Join(t.TempDir(), "none.yaml"), "-o", t.TempDir())
	assert.Equal(t, perr.ErrorCodeNotFound, perr.CodeOf(err))

	t.Setenv("SERVICE_PGSQL_DBURL", "")
	_, err = run(t, "report", "-c", q, "--source", "pg", "-o", t.TempDir())
	assert.Equal(t, perr.ErrorCodeConfiguration, perr.CodeOf(err))
}
