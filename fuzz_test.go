// Fuzz tests comparing Search against a brute-force reference.
//
// Run with:
//
//	go test -fuzz=FuzzSearch -fuzztime=30s
package kmp

import (
	"reflect"
	"testing"
)

func FuzzSearch(f *testing.F) {
	seeds := []struct{ text, pattern string }{
		{"needle", "needle"},
		{"abc needle def needle xyz", "needle"},
		{"aaaa", "aa"},
		{"aaaaaaaaaaaaaaaaaa", "aaaaa"},
		{"short", "muchlongerpattern"},
		{"abababacaba", "ababaca"},
		{"αβγ-αβγ-αβ", "αβγ"},
		{"", "a"},
		{"a", ""},
	}
	for _, s := range seeds {
		f.Add(s.text, s.pattern)
	}

	f.Fuzz(func(t *testing.T, text, pattern string) {
		tb, pb := append([]byte{}, text...), append([]byte{}, pattern...)
		res, err := Search(tb, pb)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := bruteForce(tb, pb); !reflect.DeepEqual(res.Matches, want) {
			t.Fatalf("Search(%q, %q) = %v, want %v", text, pattern, res.Matches, want)
		}

		c := res.Counters
		if len(tb) > 0 && len(pb) > 0 && c.CharComparisons != uint64(len(tb))+c.MismatchFallbacks {
			t.Fatalf("comparisons %d != n + fallbacks %d", c.CharComparisons, c.MismatchFallbacks)
		}

		runes := SearchString(text, pattern)
		if want := bruteForce([]rune(text), []rune(pattern)); !reflect.DeepEqual(runes.Matches, want) {
			t.Fatalf("SearchString(%q, %q) = %v, want %v", text, pattern, runes.Matches, want)
		}
	})
}
