// Package dataset loads and discovers benchmark datasets.
//
// A dataset is a JSON document naming a label, a pattern and a text:
//
//	{"dataset": "footballSmall", "pattern": "goal", "text": "..."}
//
// The pattern and text are kept as pointers so a missing key (or JSON null)
// stays distinguishable from an empty string. Absent inputs are not rejected
// here; they are handed to the search, which reports them as invalid
// arguments.
package dataset

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// Dataset is one (pattern, text) pair under a label.
type Dataset struct {
	Name    string  `json:"dataset"`
	Pattern *string `json:"pattern"`
	Text    *string `json:"text"`

	// Source is the file the dataset was loaded from, if any.
	Source string `json:"-"`
}

// New returns a dataset with both inputs present.
func New(name, pattern, text string) Dataset {
	return Dataset{Name: name, Pattern: &pattern, Text: &text}
}

// Load reads a dataset from a JSON file. When the document carries no
// label, the file name without its extension is used, or "unknown" when that
// is blank too.
func Load(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if strings.TrimSpace(d.Name) == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if strings.TrimSpace(d.Name) == "" {
		d.Name = SafeName(d.Name)
	}
	d.Source = path
	return d, nil
}

// Save writes d to path as indented JSON.
func (d Dataset) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset %s: %w", d.Name, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	return nil
}

// PatternUnits returns the pattern as code points, or nil when absent.
func (d Dataset) PatternUnits() []rune {
	return units(d.Pattern)
}

// TextUnits returns the text as code points, or nil when absent.
func (d Dataset) TextUnits() []rune {
	return units(d.Text)
}

// PatternString returns the pattern, or "" when absent.
func (d Dataset) PatternString() string {
	if d.Pattern == nil {
		return ""
	}
	return *d.Pattern
}

// TextLen returns the text length in code points.
func (d Dataset) TextLen() int {
	if d.Text == nil {
		return 0
	}
	return utf8.RuneCountInString(*d.Text)
}

// PatternLen returns the pattern length in code points.
func (d Dataset) PatternLen() int {
	return utf8.RuneCountInString(d.PatternString())
}

func units(s *string) []rune {
	if s == nil {
		return nil
	}
	out := make([]rune, 0, utf8.RuneCountInString(*s))
	for _, r := range *s {
		out = append(out, r)
	}
	return out
}

// Discover returns the regular files in dir whose name ends in ".json"
// (case-insensitively), sorted by path. Subdirectories are not descended.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input directory %s: not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsDatasetFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// IsDatasetFile reports whether name looks like a dataset file.
func IsDatasetFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".json")
}

// SafeName makes a dataset label usable as a file name suffix: every
// character outside [a-zA-Z0-9._-] becomes '_', and a blank label becomes
// "unknown".
func SafeName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "unknown"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Synthetic builds a reproducible dataset of size random lowercase letters
// with pattern inserted at one third, one half and near the end of the text.
// Texts of 20 letters or fewer get no insertions.
func Synthetic(name, pattern string, size int, seed int64) Dataset {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, size)
	for i := range b {
		b[i] = byte('a' + rng.Intn(26))
	}
	if size <= 20 {
		return New(name, pattern, string(b))
	}
	// Offsets index the random letters; inserting from the last one backwards
	// keeps the earlier offsets valid and every copy of pattern intact.
	offsets := []int{size / 3, size / 2, size - 10}
	var sb strings.Builder
	sb.Grow(size + len(offsets)*len(pattern))
	prev := 0
	for _, at := range offsets {
		sb.Write(b[prev:at])
		sb.WriteString(pattern)
		prev = at
	}
	sb.Write(b[prev:])
	return New(name, pattern, sb.String())
}
