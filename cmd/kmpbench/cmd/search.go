package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/kmp"
)

func newSearchCmd(g *globals) *cobra.Command {
	var (
		text, textFile, pattern string
		byteUnits, asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search one text for one pattern",
		Long: "Runs a single instrumented search. The text comes from --text or --text-file;\n" +
			"omitting both (or --pattern) is reported as an invalid argument.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var textIn, patternIn *string
			switch {
			case cmd.Flags().Changed("text"):
				textIn = &text
			case textFile != "":
				data, err := os.ReadFile(textFile)
				if err != nil {
					return fmt.Errorf("read text: %w", err)
				}
				s := string(data)
				textIn = &s
			}
			if cmd.Flags().Changed("pattern") {
				patternIn = &pattern
			}

			var (
				res kmp.Result
				err error
			)
			if byteUnits {
				res, err = kmp.Search(toBytes(textIn), toBytes(patternIn))
			} else {
				res, err = kmp.Search(toRunes(textIn), toRunes(patternIn))
			}
			if err != nil {
				return err
			}
			return printResult(cmd, res, asJSON)
		},
	}
	f := cmd.Flags()
	f.StringVar(&text, "text", "", "text to search")
	f.StringVar(&textFile, "text-file", "", "read the text from a file")
	f.StringVar(&pattern, "pattern", "", "pattern to find")
	f.BoolVar(&byteUnits, "bytes", false, "compare bytes instead of code points")
	f.BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func printResult(cmd *cobra.Command, res kmp.Result, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Matches []int `json:"matches"`
			kmp.Counters
		}{res.Matches, res.Counters})
	}
	fmt.Fprintf(out, "matches: %v\n", res.Matches)
	fmt.Fprintf(out, "count: %d\n", res.Count())
	fmt.Fprintf(out, "%s\n", res.Counters)
	return nil
}

// toRunes converts s to code points, keeping absence as nil.
func toRunes(s *string) []rune {
	if s == nil {
		return nil
	}
	return append([]rune{}, []rune(*s)...)
}

// toBytes converts s to bytes, keeping absence as nil.
func toBytes(s *string) []byte {
	if s == nil {
		return nil
	}
	return append([]byte{}, *s...)
}
