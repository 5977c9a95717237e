// Package store keeps a history of benchmark runs in an embedded bbolt
// database.
//
// Each dataset gets its own top-level bucket. Within it, run metadata is
// stored as JSON under an 8-byte big-endian timestamp key, and the match
// positions of the same run live in the "matches" sub-bucket under the same
// key in a compact binary form (see encoding.go). Writes are transactional,
// so an interrupted run never leaves half a record behind.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/coregx/kmp"
	"github.com/coregx/kmp/runner"
)

var bucketMatches = []byte("matches")

// Run is one stored measurement of a dataset.
type Run struct {
	At            time.Time    `json:"at"`
	Digest        uint64       `json:"digest"`
	Pattern       string       `json:"pattern"`
	TextLength    int          `json:"textLength"`
	PatternLength int          `json:"patternLength"`
	MatchCount    int          `json:"matchCount"`
	Counters      kmp.Counters `json:"counters"`
	ElapsedMillis float64      `json:"elapsedMillis"`

	// Matches is filled from the matches sub-bucket.
	Matches []int `json:"-"`
}

// Store is a bbolt-backed run history.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at path, creating its
// directory if needed.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

func timeKey(at time.Time) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(at.UnixNano()))
	return key
}

// Save records rec as a run of its dataset taken at at. A second save of the
// same dataset at the same instant replaces the first.
func (s *Store) Save(rec runner.Record, at time.Time) error {
	run := Run{
		At:            at.UTC(),
		Digest:        rec.Digest,
		Pattern:       rec.Pattern,
		TextLength:    rec.TextLength,
		PatternLength: rec.PatternLength,
		MatchCount:    rec.MatchCount(),
		Counters:      rec.Counters,
		ElapsedMillis: rec.ElapsedMillis,
	}
	meta, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	positions, err := encodePositions(rec.Matches)
	if err != nil {
		return fmt.Errorf("encode matches of %s: %w", rec.Dataset, err)
	}

	key := timeKey(at)
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(rec.Dataset))
		if err != nil {
			return err
		}
		mb, err := b.CreateBucketIfNotExists(bucketMatches)
		if err != nil {
			return err
		}
		if err := b.Put(key, meta); err != nil {
			return err
		}
		return mb.Put(key, positions)
	})
}

// History returns up to limit runs of dataset, newest first. A limit of zero
// or less returns every run. An unknown dataset yields no runs and no error.
func (s *Store) History(name string, limit int) ([]Run, error) {
	var runs []Run
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(name))
		if b == nil {
			return nil
		}
		mb := b.Bucket(bucketMatches)

		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if v == nil {
				continue // nested bucket
			}
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("decode run %x: %w", k, err)
			}
			if mb != nil {
				// decodePositions copies out of the transaction's memory.
				matches, err := decodePositions(mb.Get(k))
				if err != nil {
					return fmt.Errorf("decode matches %x: %w", k, err)
				}
				run.Matches = matches
			}
			runs = append(runs, run)
			if limit > 0 && len(runs) == limit {
				break
			}
		}
		return nil
	})
	return runs, err
}

// Latest returns the newest run of dataset, if any.
func (s *Store) Latest(name string) (Run, bool, error) {
	runs, err := s.History(name, 1)
	if err != nil || len(runs) == 0 {
		return Run{}, false, err
	}
	return runs[0], true, nil
}

// Datasets lists every dataset with at least one run, in key order.
func (s *Store) Datasets() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	return names, err
}
