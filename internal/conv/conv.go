// Package conv provides checked integer conversions for the binary encodings
// used by the history store.
//
// Match positions are ints in memory and fixed-width uint32 on disk. The
// conversions below check bounds before narrowing so that an oversized
// position is reported instead of silently wrapping.
package conv

import (
	"errors"
	"math"
	"math/bits"
)

// ErrOverflow indicates a value that does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// IntToUint32 converts n to uint32.
// Fails if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) (uint32, error) {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		return 0, ErrOverflow
	}
	return uint32(n), nil
}

// Uint32ToInt converts v to int.
// Fails only on 32-bit platforms when v > math.MaxInt32.
func Uint32ToInt(v uint32) (int, error) {
	if bits.UintSize == 32 && v > math.MaxInt32 {
		return 0, ErrOverflow
	}
	return int(v), nil
}
