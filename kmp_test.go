package kmp

import (
	"bytes"
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

// bruteForce returns every start index of pattern in text by checking each
// position directly. It is the reference for soundness and completeness.
func bruteForce[T comparable](text, pattern []T) []int {
	out := []int{}
	if len(pattern) == 0 {
		return out
	}
	for i := 0; i+len(pattern) <= len(text); i++ {
		ok := true
		for j := range pattern {
			if text[i+j] != pattern[j] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// stdlibAll finds overlapping occurrences by restarting bytes.Index one past
// each hit.
func stdlibAll(text, pattern []byte) []int {
	out := []int{}
	if len(pattern) == 0 {
		return out
	}
	for start := 0; start <= len(text); {
		idx := bytes.Index(text[start:], pattern)
		if idx < 0 {
			break
		}
		out = append(out, start+idx)
		start += idx + 1
	}
	return out
}

func TestSearchBasic(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    []int
	}{
		{"exact", "needle", "needle", []int{0}},
		{"no_match", "abcdef", "xyz", []int{}},
		{"multiple", "abc needle def needle xyz", "needle", []int{4, 15}},
		{"overlapping", "aaaa", "aa", []int{0, 1, 2}},
		{"start_middle_end", "startXYZmiddleXYZendXYZ", "XYZ", []int{5, 14, 20}},
		{"pattern_longer", "short", "muchlongerpattern", []int{}},
		{"empty_pattern", "anything", "", []int{}},
		{"empty_text", "", "abc", []int{}},
		{"both_empty", "", "", []int{}},
		{"single_char", "banana", "a", []int{1, 3, 5}},
		{"periodic_overlap", "abababab", "abab", []int{0, 2, 4}},
		{"repetitive_18_5", strings.Repeat("a", 18), strings.Repeat("a", 5), seq(0, 14)},
		{"fallback_then_match", "aab", "ab", []int{1}},
		{"ababaca", "abababacaba", "ababaca", []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Search(present(tt.text), present(tt.pattern))
			if err != nil {
				t.Fatalf("Search(%q, %q) error: %v", tt.text, tt.pattern, err)
			}
			if !reflect.DeepEqual(res.Matches, tt.want) {
				t.Errorf("Search(%q, %q) = %v, want %v", tt.text, tt.pattern, res.Matches, tt.want)
			}
			if res.Count() != len(tt.want) {
				t.Errorf("Count() = %d, want %d", res.Count(), len(tt.want))
			}

			str := SearchString(tt.text, tt.pattern)
			if !reflect.DeepEqual(str.Matches, tt.want) {
				t.Errorf("SearchString(%q, %q) = %v, want %v", tt.text, tt.pattern, str.Matches, tt.want)
			}
		})
	}
}

// present returns s as a non-nil byte slice, even when s is empty.
func present(s string) []byte {
	return append([]byte{}, s...)
}

func seq(from, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = from + i
	}
	return out
}

func TestSearchCounters(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    Counters
	}{
		{
			name:    "exact",
			text:    "needle",
			pattern: "needle",
			want:    Counters{CharComparisons: 6, LPSSteps: 5},
		},
		{
			name:    "overlap_resets",
			text:    "aaaa",
			pattern: "aa",
			want:    Counters{CharComparisons: 4, LPSSteps: 1, MatchResets: 3},
		},
		{
			name:    "repetitive",
			text:    strings.Repeat("a", 18),
			pattern: strings.Repeat("a", 5),
			want:    Counters{CharComparisons: 18, LPSSteps: 4, MatchResets: 14},
		},
		{
			name:    "single_fallback",
			text:    "aab",
			pattern: "ab",
			want:    Counters{CharComparisons: 4, LPSSteps: 1, MismatchFallbacks: 1},
		},
		{
			name:    "two_matches_no_partials",
			text:    "abc needle def needle xyz",
			pattern: "needle",
			want:    Counters{CharComparisons: 25, LPSSteps: 5},
		},
		{
			name:    "empty_pattern",
			text:    "anything",
			pattern: "",
			want:    Counters{},
		},
		{
			name:    "empty_text",
			text:    "",
			pattern: "abc",
			want:    Counters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Search(present(tt.text), present(tt.pattern))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Counters != tt.want {
				t.Errorf("counters = %+v, want %+v", res.Counters, tt.want)
			}
		})
	}
}

// TestSearchCounterInvariants checks the accounting identities that hold for
// every input: each comparison either advances the text cursor or is a
// mismatch fallback, and neither loop can exceed twice its input length.
func TestSearchCounterInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 500; iter++ {
		text := randomBytes(rng, rng.Intn(200)+1, 3)
		pattern := randomBytes(rng, rng.Intn(8)+1, 3)

		res, err := Search(text, pattern)
		if err != nil {
			t.Fatal(err)
		}
		c := res.Counters
		n, m := uint64(len(text)), uint64(len(pattern))

		if c.CharComparisons != n+c.MismatchFallbacks {
			t.Fatalf("text=%q pattern=%q: comparisons %d != n %d + fallbacks %d",
				text, pattern, c.CharComparisons, n, c.MismatchFallbacks)
		}
		if c.CharComparisons > 2*n {
			t.Fatalf("text=%q pattern=%q: comparisons %d exceed 2n", text, pattern, c.CharComparisons)
		}
		if c.LPSSteps > 2*m {
			t.Fatalf("pattern=%q: lps steps %d exceed 2m", pattern, c.LPSSteps)
		}
		if c.MatchResets > uint64(res.Count()) {
			t.Fatalf("text=%q pattern=%q: resets %d exceed matches %d",
				text, pattern, c.MatchResets, res.Count())
		}
	}
}

func TestSearchAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 2000; iter++ {
		alphabet := rng.Intn(4) + 1
		text := randomBytes(rng, rng.Intn(64), alphabet)
		pattern := randomBytes(rng, rng.Intn(6), alphabet)

		res, err := Search(text, pattern)
		if err != nil {
			t.Fatal(err)
		}
		want := bruteForce(text, pattern)
		if !reflect.DeepEqual(res.Matches, want) {
			t.Fatalf("Search(%q, %q) = %v, brute force %v", text, pattern, res.Matches, want)
		}
		if std := stdlibAll(text, pattern); !reflect.DeepEqual(res.Matches, std) {
			t.Fatalf("Search(%q, %q) = %v, stdlib %v", text, pattern, res.Matches, std)
		}
		for k := 1; k < len(res.Matches); k++ {
			if res.Matches[k] <= res.Matches[k-1] {
				t.Fatalf("positions not strictly ascending: %v", res.Matches)
			}
		}
	}
}

func randomBytes(rng *rand.Rand, n, alphabet int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + rng.Intn(alphabet))
	}
	return b
}

func TestSearchAbsentInput(t *testing.T) {
	tests := []struct {
		name    string
		text    []byte
		pattern []byte
		arg     string
	}{
		{"nil_text", nil, []byte("abc"), "text"},
		{"nil_pattern", []byte("abc"), nil, "pattern"},
		{"both_nil", nil, nil, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Search(tt.text, tt.pattern)
			if err == nil {
				t.Fatal("expected an error for absent input")
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("errors.Is(err, ErrInvalidArgument) = false for %v", err)
			}
			var kerr *Error
			if !errors.As(err, &kerr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if kerr.Kind != InvalidArgument || kerr.Arg != tt.arg {
				t.Errorf("got kind=%v arg=%q, want InvalidArgument %q", kerr.Kind, kerr.Arg, tt.arg)
			}
			if res.Matches == nil || len(res.Matches) != 0 {
				t.Errorf("Matches = %#v, want empty non-nil", res.Matches)
			}
		})
	}
}

// TestSearchEmptyIsNotAbsent distinguishes a present-but-empty slice from nil.
func TestSearchEmptyIsNotAbsent(t *testing.T) {
	if _, err := Search([]byte{}, []byte("a")); err != nil {
		t.Errorf("empty text: unexpected error %v", err)
	}
	if _, err := Search([]byte("a"), []byte{}); err != nil {
		t.Errorf("empty pattern: unexpected error %v", err)
	}
}

func TestSearchUnicode(t *testing.T) {
	res := SearchString("αβγ-αβγ-αβ", "αβγ")
	if want := []int{0, 4}; !reflect.DeepEqual(res.Matches, want) {
		t.Errorf("SearchString = %v, want %v", res.Matches, want)
	}

	// Byte code units report byte offsets instead.
	b, err := SearchBytes([]byte("αβγ-αβγ-αβ"), []byte("αβγ"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 7}; !reflect.DeepEqual(b.Matches, want) {
		t.Errorf("SearchBytes = %v, want %v", b.Matches, want)
	}
}

func TestSearchGenericElements(t *testing.T) {
	type token struct {
		kind  string
		value int
	}
	text := []token{{"a", 1}, {"b", 2}, {"a", 1}, {"b", 2}, {"a", 1}}
	pattern := []token{{"a", 1}, {"b", 2}, {"a", 1}}

	res, err := Search(text, pattern)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{0, 2}; !reflect.DeepEqual(res.Matches, want) {
		t.Errorf("Search = %v, want %v", res.Matches, want)
	}
	if res.Counters.MatchResets != 2 {
		t.Errorf("MatchResets = %d, want 2", res.Counters.MatchResets)
	}
}

func TestSearchDeterministic(t *testing.T) {
	text := []byte(strings.Repeat("abcab", 200) + "abcabd")
	pattern := []byte("abcabd")

	first, err := Search(text, pattern)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Search(text, pattern)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, again, first)
		}
	}
}

// TestSearchConcurrent runs many searches in parallel; per-call counters
// must not bleed into one another.
func TestSearchConcurrent(t *testing.T) {
	want := SearchString(strings.Repeat("a", 18), strings.Repeat("a", 5))

	done := make(chan Result)
	for g := 0; g < 16; g++ {
		go func() {
			done <- SearchString(strings.Repeat("a", 18), strings.Repeat("a", 5))
		}()
	}
	for g := 0; g < 16; g++ {
		got := <-done
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("concurrent result %+v, want %+v", got, want)
		}
	}
}

// TestComparisonsScaleWithText checks that comparisons grow with the text
// rather than with wall-clock noise: on random text they stay within a
// constant factor of n and double when n doubles.
func TestComparisonsScaleWithText(t *testing.T) {
	pattern := "abcab"
	sizes := []int{3000, 6000, 12000}

	comps := make([]uint64, len(sizes))
	for i, size := range sizes {
		text := scalingText(size, pattern, 42)
		res := SearchString(text, pattern)
		if res.Count() < 3 {
			t.Fatalf("size %d: expected the inserted pattern at least 3 times, got %d", size, res.Count())
		}

		n := uint64(len(text))
		c := res.Counters.CharComparisons
		if c < n/3 || c > 5*n {
			t.Errorf("size %d: comparisons %d outside [%d, %d]", size, c, n/3, 5*n)
		}
		comps[i] = c
	}

	for i := 1; i < len(sizes); i++ {
		sizeRatio := float64(sizes[i]) / float64(sizes[i-1])
		actual := float64(comps[i]) / float64(comps[i-1])
		if actual < 0.75*sizeRatio {
			t.Errorf("comparisons did not scale: prev=%d now=%d sizeRatio=%.2f actual=%.2f",
				comps[i-1], comps[i], sizeRatio, actual)
		}
	}
}

func scalingText(size int, pattern string, seed int64) string {
	rng := rand.New(rand.NewSource(seed))
	b := make([]byte, size)
	for i := range b {
		b[i] = byte('a' + rng.Intn(26))
	}
	s := string(b)
	insert := func(at int) {
		s = s[:at] + pattern + s[at:]
	}
	insert(size / 3)
	insert(size / 2)
	insert(len(s) - len(pattern) - 10)
	return s
}

func BenchmarkSearch(b *testing.B) {
	text := []byte(scalingText(1<<20, "abcab", 1))
	pattern := []byte("abcab")
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Search(text, pattern); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSearchRepetitive(b *testing.B) {
	text := bytes.Repeat([]byte("a"), 1<<20)
	pattern := bytes.Repeat([]byte("a"), 64)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Search(text, pattern); err != nil {
			b.Fatal(err)
		}
	}
}
