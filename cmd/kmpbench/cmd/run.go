package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/coregx/kmp/dataset"
	"github.com/coregx/kmp/internal/logging"
	"github.com/coregx/kmp/report"
	"github.com/coregx/kmp/runner"
)

func newRunCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Search every dataset in the input directory",
		Long: "Discovers *.json datasets in the input directory, searches each one, writes\n" +
			"output_<dataset>.json per dataset and summary.csv, and prints a summary table.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyDirFlags(cmd, g)
			_, err := runBatch(cmd.Context(), g, cmd)
			return err
		},
	}
	addDirFlags(cmd)
	return cmd
}

// addDirFlags registers the flags shared by run and watch.
func addDirFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("input", "", "directory holding *.json datasets")
	f.String("output", "", "directory for result records and summary.csv")
	f.Int("workers", 0, "concurrent searches")
	f.String("store", "", "run history database")
	f.Bool("no-store", false, "do not record run history")
}

// applyDirFlags overrides configuration values with flags the user set.
func applyDirFlags(cmd *cobra.Command, g *globals) {
	f := cmd.Flags()
	if f.Changed("input") {
		g.cfg.Input, _ = f.GetString("input")
	}
	if f.Changed("output") {
		g.cfg.Output, _ = f.GetString("output")
	}
	if f.Changed("workers") {
		g.cfg.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("store") {
		g.cfg.Store, _ = f.GetString("store")
	}
	if f.Changed("no-store") {
		g.cfg.NoStore, _ = f.GetBool("no-store")
	}
}

// runBatch processes every dataset once and returns the successful records.
func runBatch(ctx context.Context, g *globals, cmd *cobra.Command) ([]runner.Record, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}
	paths, err := dataset.Discover(g.cfg.Input)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", g.cfg.Input, errNoDatasets)
	}

	p, err := openPipeline(g.cfg, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	defer p.Close()

	log := logging.From(ctx)
	log.Info("running", "datasets", len(paths), "workers", g.cfg.Workers)

	outcomes, err := runner.RunFiles(ctx, paths, g.cfg.Workers)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	var recs []runner.Record
	for _, o := range outcomes {
		err := o.Err
		if err == nil {
			err = p.emit(ctx, o.Record, at)
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Failed processing %s: %v\n", o.Path, err)
			continue
		}
		recs = append(recs, o.Record)
	}
	if len(recs) == 0 {
		return nil, errNoResults
	}

	summary, err := report.WriteSummaryFile(g.cfg.Output, recs)
	if err != nil {
		return recs, err
	}
	out := cmd.OutOrStdout()
	if err := report.Table(out, recs, resolveColor(g.cfg.Color, out)); err != nil {
		return recs, err
	}
	if abs, err := filepath.Abs(summary); err == nil {
		summary = abs
	}
	fmt.Fprintf(out, "Summary written to: %s\n", summary)

	total := runner.Totals(recs)
	log.Info("run complete",
		"succeeded", len(recs),
		"failed", len(outcomes)-len(recs),
		"comparisons", total.CharComparisons,
		"lps", total.LPSSteps)
	return recs, nil
}
