package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/coregx/kmp/dataset"
)

func newGenerateCmd(g *globals) *cobra.Command {
	var (
		pattern string
		size    int
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "generate NAME",
		Short: "Write a reproducible random dataset into the input directory",
		Long: "Generates size random lowercase letters with the pattern inserted at one third,\n" +
			"one half and near the end of the text, and saves it as <input>/<NAME>.json.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("input") {
				g.cfg.Input, _ = cmd.Flags().GetString("input")
			}
			if size < 0 {
				return fmt.Errorf("size must not be negative, got %d", size)
			}
			if err := os.MkdirAll(g.cfg.Input, 0o755); err != nil {
				return fmt.Errorf("create input directory: %w", err)
			}
			d := dataset.Synthetic(args[0], pattern, size, seed)
			path := filepath.Join(g.cfg.Input, dataset.SafeName(args[0])+".json")
			if err := d.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s (%d code points)\n", path, d.TextLen())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&pattern, "pattern", "abcab", "pattern to insert")
	f.IntVar(&size, "size", 3000, "number of random letters")
	f.Int64Var(&seed, "seed", 42, "random seed")
	f.String("input", "", "directory to write the dataset into")
	return cmd
}
