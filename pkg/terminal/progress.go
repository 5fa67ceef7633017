package terminal

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Progress bar characters.
const (
	ProgressFilled = "█"
	ProgressEmpty  = "░"
)

// PercentMultiplier converts 0-1 to 0-100.
const PercentMultiplier = 100

// DrawProgressBar draws a bar of the given width. Value is clamped to [0, 1].
func DrawProgressBar(value float64, width int) string {
	value = min(max(value, 0), 1)
	width = max(width, 0)

	filled := int(value * float64(width))

	return strings.Repeat(ProgressFilled, filled) + strings.Repeat(ProgressEmpty, width-filled)
}

// Ratio returns part/whole, or 0 when whole is zero.
func Ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole)
}

// DrawPercentBar draws a labelled percentage bar with a thousands-separated count.
// Example: "Safe        ████████░░  40%  (2)".
func DrawPercentBar(label string, ratio float64, count, labelWidth, barWidth int) string {
	bar := DrawProgressBar(ratio, barWidth)
	pct := int(min(max(ratio, 0), 1) * PercentMultiplier)

	return fmt.Sprintf("%s %s %3d%%  (%s)", PadRight(label, labelWidth), bar, pct, humanize.Comma(int64(count)))
}
