// Package kmp provides instrumented exact substring search based on the
// Knuth-Morris-Pratt algorithm.
//
// Every search reports two things: where all occurrences of the pattern
// start (overlapping occurrences included) and how much work the algorithm
// performed to find them. The work is broken down into four counters
// (see Counters) that are scoped to a single call and returned with the
// match list, so concurrent searches never share instrumentation state.
//
// Basic usage:
//
//	res := kmp.SearchString("abc needle def needle xyz", "needle")
//	fmt.Println(res.Matches)                  // [4 15]
//	fmt.Println(res.Counters.CharComparisons) // 25
//
// Generic usage over any comparable code unit:
//
//	res, err := kmp.Search([]byte("aaaa"), []byte("aa"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Matches) // [0 1 2]
//
// Input policy:
//   - A nil text or pattern is absent and rejected with ErrInvalidArgument
//   - An empty (non-nil) text or pattern is valid and yields no matches
//   - A pattern longer than the text is valid and yields no matches
//
// Performance characteristics:
//   - Time: O(n + m), with CharComparisons <= 2n and LPSSteps <= 2m
//   - Space: O(m) for the prefix table, plus the match list
package kmp

import "unicode/utf8"

// Result is the outcome of a single search.
type Result struct {
	// Matches holds the 0-based start index of every occurrence, in strictly
	// ascending order. It is never nil.
	Matches []int

	// Counters holds the work performed by this search only.
	Counters Counters
}

// Count returns the number of occurrences found.
func (r Result) Count() int {
	return len(r.Matches)
}

// Search returns the start index of every occurrence of pattern in text,
// including overlapping occurrences, together with the counters for this call.
//
// Positions are expressed in code units of T. Both slices must be non-nil;
// a nil slice is reported as an *Error of kind InvalidArgument.
//
// Algorithm:
//  1. Build the prefix table for pattern (see BuildLPS)
//  2. Walk text with cursor i and pattern cursor j, counting one comparison per step
//  3. On a full match record i-j and fall back to lps[j-1] to allow overlaps
//  4. On a mismatch with j > 0 fall back to lps[j-1] without advancing i
//
// Example:
//
//	res, _ := kmp.Search([]rune("aaaa"), []rune("aa"))
//	// res.Matches == [0 1 2]
//	// res.Counters.MatchResets == 3
func Search[T comparable](text, pattern []T) (Result, error) {
	if text == nil {
		return Result{Matches: []int{}}, invalidArgument("text")
	}
	if pattern == nil {
		return Result{Matches: []int{}}, invalidArgument("pattern")
	}
	return search(text, pattern), nil
}

// SearchBytes is Search specialised to byte code units.
func SearchBytes(text, pattern []byte) (Result, error) {
	return Search(text, pattern)
}

// SearchString searches text for pattern using Unicode code points as the
// code unit. Strings are never absent, so no error is returned.
//
// Example:
//
//	res := kmp.SearchString("αβγ-αβγ-αβ", "αβγ")
//	// res.Matches == [0 4]
func SearchString(text, pattern string) Result {
	return search(runes(text), runes(pattern))
}

// search runs the scan on validated inputs.
func search[T comparable](text, pattern []T) Result {
	res := Result{Matches: []int{}}
	n, m := len(text), len(pattern)
	if n == 0 || m == 0 {
		return res
	}

	lps := buildLPS(pattern, &res.Counters)
	c := &res.Counters

	i, j := 0, 0
	for i < n {
		c.CharComparisons++
		if text[i] == pattern[j] {
			i++
			j++
			if j == m {
				res.Matches = append(res.Matches, i-j)
				j = lps[j-1]
				// Only a reset that keeps part of the pattern enables an overlap.
				if j != 0 {
					c.MatchResets++
				}
			}
			continue
		}
		if j != 0 {
			c.MismatchFallbacks++
			j = lps[j-1]
		} else {
			i++
		}
	}
	return res
}

// runes decodes s into a non-nil slice of code points.
func runes(s string) []rune {
	out := make([]rune, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, r)
	}
	return out
}
