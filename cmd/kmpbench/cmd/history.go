package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coregx/kmp/internal/store"
	"github.com/coregx/kmp/report"
)

func newHistoryCmd(g *globals) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [DATASET]",
		Short: "List recorded runs of a dataset, newest first",
		Long:  "Without a dataset name, lists every dataset that has recorded runs.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("store") {
				g.cfg.Store, _ = cmd.Flags().GetString("store")
			}
			s, err := store.NewStore(g.cfg.Store)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				names, err := s.Datasets()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			runs, err := s.History(args[0], limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				return fmt.Errorf("no recorded runs for %q", args[0])
			}
			headers := []string{"at", "matchCount", "charComparisons", "fallbackSteps", "lpsComputations", "matchResets", "elapsedTime"}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				rows = append(rows, []string{
					r.At.Local().Format("2006-01-02 15:04:05"),
					strconv.Itoa(r.MatchCount),
					strconv.FormatUint(r.Counters.CharComparisons, 10),
					strconv.FormatUint(r.Counters.MismatchFallbacks, 10),
					strconv.FormatUint(r.Counters.LPSSteps, 10),
					strconv.FormatUint(r.Counters.MatchResets, 10),
					strconv.FormatFloat(r.ElapsedMillis, 'f', 3, 64),
				})
			}
			return report.Grid(out, headers, rows, resolveColor(g.cfg.Color, out))
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum runs to list (0 for all)")
	cmd.Flags().String("store", "", "run history database")
	return cmd
}
