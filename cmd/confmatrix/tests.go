package main

import (
	"fmt"

	"confmatrix/internal/adapters/describe"

	"github.com/spf13/cobra"
)

func newTestsCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "tests",
		Short: "List the tests of a description file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := describe.Load(input)
			if err != nil {
				return err
			}
			for _, name := range file.Names() {
				t, _ := file.Test(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\taxes=%d\tjobs_per_config=%d\n", name, len(t.Axis), t.JobsPerConfig)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "tests.yaml", "description file")
	return cmd
}
