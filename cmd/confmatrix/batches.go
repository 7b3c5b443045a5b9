package main

import (
	"strings"

	"confmatrix/internal/adapters/describe"
	"confmatrix/internal/adapters/dvc"
	"confmatrix/internal/modkit/module"
	"confmatrix/internal/platform/logger"
	matrixmod "confmatrix/internal/services/matrix/module"
	matrixsvc "confmatrix/internal/services/matrix/service"

	"github.com/spf13/cobra"
)

type batchesFlags struct {
	input  string
	test   string
	bound  int
	output string
	format string
}

func newBatchesCmd() *cobra.Command {
	var f batchesFlags
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Write one configuration string per batch",
		Example: `  confmatrix batches -i tests.yaml -t sanity_check
  confmatrix batches -t sanity_check -b 8 -f lines -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error { return runBatches(cmd, f) },
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "tests.yaml", "description file")
	fl.StringVarP(&f.test, "test", "t", "sanity_check", "test to expand")
	fl.IntVarP(&f.bound, "bound", "b", 0, "max batch weight, 0 uses jobs_per_config then CORE_MATRIX_DEFAULT_BOUND")
	fl.StringVarP(&f.output, "output", "o", "dvc_configuration_strings.yaml", "output file, - for stdout")
	fl.StringVarP(&f.format, "format", "f", string(dvc.FormatDVC), "output format: "+strings.Join(dvc.Formats(), ", "))
	return cmd
}

func runBatches(cmd *cobra.Command, f batchesFlags) error {
	// checked before the output file is created so a typo never truncates it
	format, err := dvc.ParseFormat(f.format)
	if err != nil {
		return err
	}

	file, err := describe.Load(f.input)
	if err != nil {
		return err
	}
	test, err := file.Test(f.test)
	if err != nil {
		return err
	}

	mm := matrixmod.New(deps(), matrixmod.Options{})
	plan, err := module.MustPortsOf[matrixmod.Ports](mm).Planner.Plan(cmd.Context(), test.Input(f.bound))
	if err != nil {
		return err
	}

	w, closeOut, err := openOut(cmd, f.output)
	if err != nil {
		return err
	}
	if err := dvc.Write(w, format, matrixsvc.Descriptors(plan)); err != nil {
		_ = closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}

	logger.Named("cli").Info().
		Str("test", plan.Test).
		Int("batches", plan.Stats.Batches).
		Int("configs", plan.Stats.Valid).
		Str("output", f.output).
		Msg("batches written")
	return nil
}
