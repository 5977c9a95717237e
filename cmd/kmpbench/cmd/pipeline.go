package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/coregx/kmp/internal/config"
	"github.com/coregx/kmp/internal/logging"
	"github.com/coregx/kmp/internal/store"
	"github.com/coregx/kmp/report"
	"github.com/coregx/kmp/runner"
)

// pipeline writes finished records to the output directory and, unless
// disabled, to the run history.
type pipeline struct {
	output string
	store  *store.Store
	out    io.Writer
}

func openPipeline(cfg config.Config, out io.Writer) (*pipeline, error) {
	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	p := &pipeline{output: cfg.Output, out: out}
	if !cfg.NoStore {
		s, err := store.NewStore(cfg.Store)
		if err != nil {
			return nil, err
		}
		p.store = s
	}
	return p, nil
}

func (p *pipeline) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// emit persists one record and reports where it went.
func (p *pipeline) emit(ctx context.Context, rec runner.Record, at time.Time) error {
	path, err := report.WriteRecord(p.output, rec)
	if err != nil {
		return err
	}
	if p.store != nil {
		p.checkDeterminism(ctx, rec)
		if err := p.store.Save(rec, at); err != nil {
			return fmt.Errorf("save history of %s: %w", rec.Dataset, err)
		}
	}
	fmt.Fprintf(p.out, "Processed: %s -> %s\n", displayName(rec), path)
	return nil
}

// checkDeterminism warns when identical content produced different counters
// than the previous stored run.
func (p *pipeline) checkDeterminism(ctx context.Context, rec runner.Record) {
	prev, ok, err := p.store.Latest(rec.Dataset)
	if err != nil || !ok || prev.Digest != rec.Digest {
		return
	}
	if prev.Counters != rec.Counters || prev.MatchCount != rec.MatchCount() {
		logging.From(ctx).Warn("counters differ from previous run of identical input",
			"dataset", rec.Dataset,
			"previous", prev.Counters.String(),
			"current", rec.Counters.String())
	}
}

func displayName(rec runner.Record) string {
	if rec.Source != "" {
		return rec.Source
	}
	return rec.Dataset
}
