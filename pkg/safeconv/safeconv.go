// Package safeconv provides integer conversions that check bounds instead of
// silently wrapping.
package safeconv

import "math"

// MaxInt is the maximum value for int type (platform-dependent).
const MaxInt = int(^uint(0) >> 1)

// MustIntToUint32 converts int to uint32, panics on bounds violation.
// Use only when the value was validated beforehand.
func MustIntToUint32(v int) uint32 {
	if v < 0 || v > math.MaxUint32 {
		panic("safeconv: int to uint32 out of bounds")
	}

	return uint32(v)
}

// Uint64ToInt64 converts v, saturating at math.MaxInt64.
func Uint64ToInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(v)
}

// Uint64ToInt converts v, saturating at MaxInt.
func Uint64ToInt(v uint64) int {
	if v > uint64(MaxInt) {
		return MaxInt
	}

	return int(v)
}
