package terminal

import "strings"

// PadRight pads s with spaces on the right to reach width.
func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}

// PadLeft pads s with spaces on the left to reach width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return strings.Repeat(" ", width-len(s)) + s
}
