package kmp

import "fmt"

// Counters records the work performed by one search.
//
// The four counters are independent:
//   - CharComparisons: text-versus-pattern code unit comparisons during the scan
//   - LPSSteps: passes through the prefix table construction loop
//   - MismatchFallbacks: pattern cursor moves via the table after a failed comparison
//   - MatchResets: pattern cursor moves via the table after a full match that
//     keep a nonzero prefix (the moves that make overlapping matches visible)
//
// A post-match reset to zero is not counted, while every mismatch fallback is
// counted regardless of the value it falls back to.
//
// Counters is a plain value. Search creates a fresh one per call, so it needs
// no synchronisation unless a caller shares one while aggregating.
type Counters struct {
	CharComparisons   uint64 `json:"charComparisons"`
	LPSSteps          uint64 `json:"lpsComputations"`
	MismatchFallbacks uint64 `json:"fallbackSteps"`
	MatchResets       uint64 `json:"matchResets"`
}

// Reset zeroes all counters.
func (c *Counters) Reset() {
	*c = Counters{}
}

// Add accumulates other into c.
func (c *Counters) Add(other Counters) {
	c.CharComparisons += other.CharComparisons
	c.LPSSteps += other.LPSSteps
	c.MismatchFallbacks += other.MismatchFallbacks
	c.MatchResets += other.MatchResets
}

// Total returns the sum of all four counters.
func (c Counters) Total() uint64 {
	return c.CharComparisons + c.LPSSteps + c.MismatchFallbacks + c.MatchResets
}

// String returns a compact human-readable form.
func (c Counters) String() string {
	return fmt.Sprintf("comparisons=%d lps=%d fallbacks=%d resets=%d",
		c.CharComparisons, c.LPSSteps, c.MismatchFallbacks, c.MatchResets)
}
