package main

import (
	"fmt"
	"strings"

	"confmatrix/internal/adapters/describe"
	"confmatrix/internal/modkit/module"
	matrixmod "confmatrix/internal/services/matrix/module"

	"github.com/spf13/cobra"
)

func newPrintCmd() *cobra.Command {
	var input, test string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "List every configuration of a test, excluded ones marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := describe.Load(input)
			if err != nil {
				return err
			}
			t, err := file.Test(test)
			if err != nil {
				return err
			}

			mm := matrixmod.New(deps(), matrixmod.Options{})
			l, err := module.MustPortsOf[matrixmod.Ports](mm).Planner.Configurations(cmd.Context(), t.Input(0))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range l.Rows {
				pairs := make([]string, len(r.Values))
				for i, v := range r.Values {
					pairs[i] = l.Axes[i] + "=" + v
				}
				mark := " "
				if r.Excluded {
					mark = "x"
				}
				fmt.Fprintf(out, "%s %4d  %s\n", mark, r.Ordinal, strings.Join(pairs, " "))
			}
			fmt.Fprintf(out, "%d configurations, %d excluded\n", l.Stats.Space, l.Stats.Excluded)
			return nil
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "tests.yaml", "description file")
	cmd.Flags().StringVarP(&test, "test", "t", "sanity_check", "test to list")
	return cmd
}
