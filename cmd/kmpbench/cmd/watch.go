package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/coregx/kmp/internal/logging"
	"github.com/coregx/kmp/internal/watch"
	"github.com/coregx/kmp/report"
	"github.com/coregx/kmp/runner"
)

func newWatchCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run all datasets, then re-run each one when its file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyDirFlags(cmd, g)
			return watchInput(cmd.Context(), g, cmd)
		},
	}
	addDirFlags(cmd)
	return cmd
}

// latest keeps the newest record per dataset file and rewrites the summary
// whenever one changes.
type latest struct {
	mu     sync.Mutex
	output string
	recs   map[string]runner.Record
}

func newLatest(output string) *latest {
	return &latest{output: output, recs: make(map[string]runner.Record)}
}

// sourceKey identifies a dataset file regardless of whether it was reached
// through a relative or an absolute path.
func sourceKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// put stores rec and returns the records ordered by file. l.mu must be held.
func (l *latest) put(rec runner.Record) []runner.Record {
	l.recs[sourceKey(rec.Source)] = rec

	keys := make([]string, 0, len(l.recs))
	for k := range l.recs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]runner.Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, l.recs[k])
	}
	return out
}

// seed records the results of the initial batch without writing a summary.
func (l *latest) seed(recs []runner.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, rec := range recs {
		l.put(rec)
	}
}

// update stores rec and writes the summary of every known dataset. The lock
// is held across the write so summaries land in update order.
func (l *latest) update(rec runner.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := report.WriteSummaryFile(l.output, l.put(rec))
	return err
}

func watchInput(ctx context.Context, g *globals, cmd *cobra.Command) error {
	state := newLatest(g.cfg.Output)

	recs, err := runBatch(ctx, g, cmd)
	if err != nil && !errors.Is(err, errNoDatasets) && !errors.Is(err, errNoResults) {
		return err
	}
	state.seed(recs)

	p, err := openPipeline(g.cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer p.Close()

	w, err := watch.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Stop()

	log := logging.From(ctx, "input", g.cfg.Input)
	log.Info("watching for dataset changes")

	err = w.Watch(ctx, g.cfg.Input, func(path string) {
		rec, err := runner.RunFile(ctx, path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Failed processing %s: %v\n", path, err)
			return
		}
		if err := p.emit(ctx, rec, time.Now()); err != nil {
			log.Error("emit failed", "file", path, "err", err)
			return
		}
		if err := state.update(rec); err != nil {
			log.Error("summary failed", "err", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
