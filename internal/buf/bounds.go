// Package buf holds overflow-safe range arithmetic shared by the region and
// allocator packages.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckRange validates that n units starting at off fit in a space of length
// units. Returns the end offset if valid, or an error describing the specific
// failure (negative input, overflow or out of bounds).
//
//	end, err := buf.CheckRange(r.Size(), off, n)
//	if err != nil {
//	    return fmt.Errorf("%w: %w", ErrOutOfRange, err)
//	}
//	// [off, end) is addressable
func CheckRange(length, off, n int) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count: %d", n)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + count=%d", off, n)
	}
	if end > length {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, length)
	}
	return end, nil
}

// Has reports whether [off, off+n) is within [0, length).
func Has(length, off, n int) bool {
	_, err := CheckRange(length, off, n)
	return err == nil
}
