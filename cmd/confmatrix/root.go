package main

import (
	"io"
	"os"

	"confmatrix/internal/modkit"
	"confmatrix/internal/platform/config"
	"confmatrix/internal/platform/logger"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "confmatrix",
		Short: "Generate batched experiment configurations from a variant matrix",
		Long: `confmatrix expands the axes and variants of a test description into every
configuration, drops the excluded ones and packs the rest into batches whose
per-axis value product stays within a bound. Each batch becomes one dvc
set-parameter string.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			opt := logger.FromEnv()
			if opt.Service == "" {
				opt.Service = "confmatrix"
			}
			logger.Init(opt)
		},
	}
	root.AddCommand(
		newBatchesCmd(),
		newPrintCmd(),
		newReportCmd(),
		newTestsCmd(),
		newVersionCmd(),
	)
	return root
}

// deps builds module deps from the environment
func deps() modkit.Deps {
	return modkit.Deps{Log: *logger.Named("cli"), Cfg: config.New()}
}

// openOut returns stdout for "-" and a created file otherwise
func openOut(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
