package terminal //nolint:testpackage // testing internal implementation.

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectWidth(t *testing.T) {
	tests := []struct {
		columns string
		want    int
	}{
		{columns: "", want: DefaultWidth},
		{columns: "100", want: 100},
		{columns: "invalid", want: DefaultWidth},
		{columns: "-5", want: DefaultWidth},
		{columns: "20", want: MinWidth},
		{columns: "400", want: MaxWidth},
	}

	for _, tt := range tests {
		t.Run("columns="+tt.columns, func(t *testing.T) {
			t.Setenv("COLUMNS", tt.columns)
			assert.Equal(t, tt.want, DetectWidth())
		})
	}
}

func TestNewConfig_NoColorEnv(t *testing.T) {
	t.Setenv("COLUMNS", "")
	t.Setenv("NO_COLOR", "1")

	cfg := NewConfig()
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.True(t, cfg.NoColor)
}

func TestColorize(t *testing.T) {
	t.Parallel()

	plain := Config{NoColor: true}
	assert.Equal(t, "safe", plain.Colorize("safe", ColorGreen))

	colored := Config{}
	out := colored.Colorize("safe", ColorGreen)
	assert.Contains(t, out, "\x1b[32m")
	assert.Contains(t, out, "safe")

	assert.Equal(t, "safe", colored.Colorize("safe", ColorNone))
}

func TestColorForRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ColorGreen, ColorForRatio(0.9))
	assert.Equal(t, ColorGreen, ColorForRatio(RatioThresholdGood))
	assert.Equal(t, ColorYellow, ColorForRatio(0.6))
	assert.Equal(t, ColorRed, ColorForRatio(0.1))
}

func TestPad(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "   ab", PadLeft("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
}

func TestDrawHeader(t *testing.T) {
	t.Parallel()

	header := DrawHeader("SAFETY", "6 reports", 40)
	lines := strings.Split(header, "\n")

	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], BoxHeavyTopLeft))
	assert.Contains(t, lines[1], "SAFETY")
	assert.Contains(t, lines[1], "6 reports")
	assert.True(t, strings.HasSuffix(lines[2], BoxHeavyBottomRight))
}

func TestDrawHeader_GrowsWhenNarrow(t *testing.T) {
	t.Parallel()

	header := DrawHeader("A LONG TITLE", "right", 5)
	assert.Contains(t, header, "A LONG TITLE")
	assert.Contains(t, header, "right")
}

func TestDrawProgressBar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "███████░░░", DrawProgressBar(0.7, 10))
	assert.Equal(t, "░░░░", DrawProgressBar(-1, 4))
	assert.Equal(t, "████", DrawProgressBar(2, 4))
	assert.Empty(t, DrawProgressBar(0.5, 0))
}

func TestDrawPercentBar(t *testing.T) {
	t.Parallel()

	bar := DrawPercentBar("Safe", 0.5, 12345, 8, 10)
	assert.Equal(t, "Safe     █████░░░░░  50%  (12,345)", bar)
}

func TestRatio(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.25, Ratio(1, 4), 1e-9)
	assert.Zero(t, Ratio(3, 0))
}

func TestDrawSeparator(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "───", DrawSeparator(3))
	assert.Empty(t, DrawSeparator(0))
}
