package terminal

import "github.com/fatih/color"

// Color names a palette entry.
type Color int

// Palette.
const (
	ColorNone Color = iota
	ColorGreen
	ColorYellow
	ColorRed
	ColorBlue
	ColorGray
)

// Ratio thresholds for colour assignment.
const (
	RatioThresholdGood = 0.8
	RatioThresholdFair = 0.5
)

func (c Color) attribute() (color.Attribute, bool) {
	switch c {
	case ColorGreen:
		return color.FgGreen, true
	case ColorYellow:
		return color.FgYellow, true
	case ColorRed:
		return color.FgRed, true
	case ColorBlue:
		return color.FgBlue, true
	case ColorGray:
		return color.FgHiBlack, true
	default:
		return 0, false
	}
}

// Colorize wraps text in the colour's escape codes unless NoColor is set.
// Colour is forced on otherwise, so output piped to a file still carries it
// when the caller asked for it.
func (c Config) Colorize(text string, col Color) string {
	if c.NoColor {
		return text
	}

	attr, ok := col.attribute()
	if !ok {
		return text
	}

	painter := color.New(attr)
	painter.EnableColor()

	return painter.Sprint(text)
}

// ColorForRatio returns green, yellow or red for a 0-1 ratio.
func ColorForRatio(ratio float64) Color {
	if ratio >= RatioThresholdGood {
		return ColorGreen
	}

	if ratio >= RatioThresholdFair {
		return ColorYellow
	}

	return ColorRed
}
