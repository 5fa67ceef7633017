package safeconv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustIntToUint32(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(0), MustIntToUint32(0))
	assert.Equal(t, uint32(3), MustIntToUint32(3))
	assert.Equal(t, uint32(math.MaxUint32), MustIntToUint32(math.MaxUint32))

	assert.Panics(t, func() { MustIntToUint32(-1) })
	assert.Panics(t, func() { MustIntToUint32(math.MaxUint32 + 1) })
}

func TestUint64ToInt64(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   uint64
		want int64
	}{
		{"zero", 0, 0},
		{"small", 31, 31},
		{"max", math.MaxInt64, math.MaxInt64},
		{"saturates", math.MaxUint64, math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Uint64ToInt64(tt.in))
		})
	}
}

func TestUint64ToInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 11, Uint64ToInt(11))
	assert.Equal(t, MaxInt, Uint64ToInt(math.MaxUint64))
}
