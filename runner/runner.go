// Package runner times instrumented searches over datasets and turns them
// into result records.
//
// A single dataset is processed with Run. Many dataset files are processed
// with RunFiles on a bounded worker pool; because every search owns its
// counters, workers never interfere with each other's measurements.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/kmp"
	"github.com/coregx/kmp/dataset"
	"github.com/coregx/kmp/internal/logging"
)

// Record is the measured outcome of one dataset.
type Record struct {
	Dataset       string `json:"dataset"`
	Pattern       string `json:"pattern"`
	TextLength    int    `json:"textLength"`
	PatternLength int    `json:"patternLength"`
	Matches       []int  `json:"matches"`
	kmp.Counters
	ElapsedMillis float64 `json:"elapsedMillis"`

	// Elapsed is the wall-clock duration of the search call.
	Elapsed time.Duration `json:"-"`

	// Digest identifies the (pattern, text) content.
	Digest uint64 `json:"-"`

	Source string `json:"-"`
}

// MatchCount returns the number of occurrences found.
func (r Record) MatchCount() int {
	return len(r.Matches)
}

// Outcome pairs a dataset file with its record or the error that prevented it.
type Outcome struct {
	Path   string
	Record Record
	Err    error
}

// Run searches d and measures the search call alone; decoding the inputs
// into code points happens before the timer starts.
//
// An absent pattern or text surfaces as an error wrapping
// kmp.ErrInvalidArgument.
func Run(ctx context.Context, d dataset.Dataset) (Record, error) {
	text, pattern := d.TextUnits(), d.PatternUnits()

	start := time.Now()
	res, err := kmp.Search(text, pattern)
	elapsed := time.Since(start)
	if err != nil {
		return Record{}, fmt.Errorf("dataset %s: %w", d.Name, err)
	}

	rec := Record{
		Dataset:       d.Name,
		Pattern:       d.PatternString(),
		TextLength:    len(text),
		PatternLength: len(pattern),
		Matches:       res.Matches,
		Counters:      res.Counters,
		ElapsedMillis: float64(elapsed.Nanoseconds()) / 1e6,
		Elapsed:       elapsed,
		Digest:        Digest(d),
		Source:        d.Source,
	}
	logging.From(ctx).Debug("searched",
		"dataset", rec.Dataset,
		"matches", rec.MatchCount(),
		"comparisons", rec.CharComparisons,
		"elapsed", elapsed)
	return rec, nil
}

// RunFile loads the dataset at path and runs it.
func RunFile(ctx context.Context, path string) (Record, error) {
	d, err := dataset.Load(path)
	if err != nil {
		return Record{}, err
	}
	return Run(logging.With(ctx, "file", path), d)
}

// RunFiles processes every path with at most workers concurrent searches.
// Outcomes are returned in the order of paths. Failures of individual files
// are reported in their Outcome; the returned error is non-nil only when ctx
// was cancelled before every file was started.
func RunFiles(ctx context.Context, paths []string, workers int) ([]Outcome, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]Outcome, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		out[i].Path = path
		if err := gctx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			rec, err := RunFile(gctx, path)
			out[i].Record, out[i].Err = rec, err
			if err != nil {
				logging.From(gctx).Warn("dataset failed", "file", path, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out, ctx.Err()
}

// Records returns the successful records of outcomes, in order.
func Records(outcomes []Outcome) []Record {
	recs := make([]Record, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			recs = append(recs, o.Record)
		}
	}
	return recs
}

// Totals sums the counters of recs.
func Totals(recs []Record) kmp.Counters {
	var c kmp.Counters
	for _, r := range recs {
		c.Add(r.Counters)
	}
	return c
}

// Digest hashes the pattern and text of d. Absent and empty inputs hash
// differently.
func Digest(d dataset.Dataset) uint64 {
	h := xxhash.New()
	writeField(h, d.Pattern)
	writeField(h, d.Text)
	return h.Sum64()
}

func writeField(h *xxhash.Digest, s *string) {
	if s == nil {
		_, _ = h.Write([]byte{0})
		return
	}
	_, _ = h.Write([]byte{1})
	_, _ = h.WriteString(*s)
	_, _ = h.Write([]byte{0})
}
