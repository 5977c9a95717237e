// Package report writes result records: one indented JSON file per dataset,
// a CSV summary of all datasets, and a table for the terminal.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/coregx/kmp/dataset"
	"github.com/coregx/kmp/runner"
)

// SummaryFile is the name of the CSV summary inside the output directory.
const SummaryFile = "summary.csv"

// SummaryHeader lists the CSV summary columns in order.
var SummaryHeader = []string{
	"dataset",
	"textLength",
	"patternLength",
	"matchCount",
	"charComparisons",
	"fallbackSteps",
	"lpsComputations",
	"elapsedTime",
}

// RecordPath returns where the record of the named dataset is written.
func RecordPath(dir, name string) string {
	return filepath.Join(dir, "output_"+dataset.SafeName(name)+".json")
}

// WriteRecord writes rec as indented JSON into dir and returns the path.
func WriteRecord(dir string, rec runner.Record) (string, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode record %s: %w", rec.Dataset, err)
	}
	path := RecordPath(dir, rec.Dataset)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write record %s: %w", path, err)
	}
	return path, nil
}

// ReadRecord loads a record written by WriteRecord.
func ReadRecord(path string) (runner.Record, error) {
	var rec runner.Record
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("read record %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("parse record %s: %w", path, err)
	}
	return rec, nil
}

// SummaryRow formats rec as one summary row, elapsed time in milliseconds
// with three decimals.
func SummaryRow(rec runner.Record) []string {
	return []string{
		rec.Dataset,
		strconv.Itoa(rec.TextLength),
		strconv.Itoa(rec.PatternLength),
		strconv.Itoa(rec.MatchCount()),
		strconv.FormatUint(rec.CharComparisons, 10),
		strconv.FormatUint(rec.MismatchFallbacks, 10),
		strconv.FormatUint(rec.LPSSteps, 10),
		strconv.FormatFloat(rec.ElapsedMillis, 'f', 3, 64),
	}
}

// WriteSummary writes the CSV header and one row per record.
func WriteSummary(w io.Writer, recs []runner.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := cw.Write(SummaryRow(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryFile writes the CSV summary into dir and returns the path.
func WriteSummaryFile(dir string, recs []runner.Record) (string, error) {
	path := filepath.Join(dir, SummaryFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create summary: %w", err)
	}
	if err := WriteSummary(f, recs); err != nil {
		f.Close()
		return "", fmt.Errorf("write summary %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close summary %s: %w", path, err)
	}
	return path, nil
}
