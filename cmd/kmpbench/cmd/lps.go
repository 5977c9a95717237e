package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coregx/kmp"
)

func newLPSCmd(g *globals) *cobra.Command {
	var byteUnits bool
	cmd := &cobra.Command{
		Use:   "lps PATTERN",
		Short: "Print the prefix table of a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				table []int
				steps uint64
				err   error
			)
			if byteUnits {
				table, steps, err = kmp.BuildLPS(append([]byte{}, args[0]...))
			} else {
				table, steps, err = kmp.BuildLPS(append([]rune{}, []rune(args[0])...))
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lps: %v\n", table)
			fmt.Fprintf(out, "steps: %d\n", steps)
			return nil
		},
	}
	cmd.Flags().BoolVar(&byteUnits, "bytes", false, "use bytes instead of code points")
	return cmd
}
