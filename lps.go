package kmp

// BuildLPS returns the prefix table of pattern together with the number of
// construction steps it took.
//
// Entry i of the table is the length of the longest proper prefix of
// pattern[:i+1] that is also a suffix of it. The table always satisfies
// lps[0] == 0 and 0 <= lps[i] <= i. An empty pattern yields an empty table
// and zero steps; a nil pattern is rejected with ErrInvalidArgument.
//
// Example:
//
//	table, steps, _ := kmp.BuildLPS([]byte("ababaca"))
//	// table == [0 0 1 2 3 0 1]
//	// steps == 8
func BuildLPS[T comparable](pattern []T) (table []int, steps uint64, err error) {
	if pattern == nil {
		return nil, 0, invalidArgument("pattern")
	}
	var c Counters
	table = buildLPS(pattern, &c)
	return table, c.LPSSteps, nil
}

// BuildLPSString is BuildLPS over the code points of pattern.
func BuildLPSString(pattern string) (table []int, steps uint64) {
	var c Counters
	table = buildLPS(runes(pattern), &c)
	return table, c.LPSSteps
}

// buildLPS fills the prefix table, counting one LPS step per loop pass.
//
// A fallback (length = lps[length-1]) does not advance i, so the same
// position is visited again and counted again. length only grows by one per
// advance of i, which bounds the total number of passes by 2m.
func buildLPS[T comparable](pattern []T, c *Counters) []int {
	m := len(pattern)
	lps := make([]int, m)

	length := 0
	for i := 1; i < m; {
		c.LPSSteps++
		switch {
		case pattern[i] == pattern[length]:
			length++
			lps[i] = length
			i++
		case length != 0:
			length = lps[length-1]
		default:
			lps[i] = 0
			i++
		}
	}
	return lps
}
