package terminal

import "strings"

// Box drawing characters.
const (
	BoxHorizontal       = "─"
	BoxHeavyHorizontal  = "━"
	BoxHeavyVertical    = "┃"
	BoxHeavyTopLeft     = "┏"
	BoxHeavyTopRight    = "┓"
	BoxHeavyBottomLeft  = "┗"
	BoxHeavyBottomRight = "┛"
)

// HeaderPadding is the space around header content.
const HeaderPadding = 1

// DrawSeparator draws a thin horizontal line.
func DrawSeparator(width int) string {
	if width <= 0 {
		return ""
	}

	return strings.Repeat(BoxHorizontal, width)
}

// DrawHeader draws a heavy-bordered section header with title on the left
// and rightText on the right. The box grows when width is too small.
func DrawHeader(title, rightText string, width int) string {
	minRequired := len(title) + len(rightText) + 4 + (HeaderPadding * 2)
	width = max(width, minRequired)

	innerWidth := width - 2
	contentWidth := innerWidth - (HeaderPadding * 2)

	var content string

	if rightText == "" {
		content = PadRight(title, contentWidth)
	} else {
		gap := max(contentWidth-len(title)-len(rightText), 1)
		content = title + strings.Repeat(" ", gap) + rightText
	}

	pad := strings.Repeat(" ", HeaderPadding)

	var sb strings.Builder

	sb.WriteString(BoxHeavyTopLeft + strings.Repeat(BoxHeavyHorizontal, innerWidth) + BoxHeavyTopRight + "\n")
	sb.WriteString(BoxHeavyVertical + pad + content + pad + BoxHeavyVertical + "\n")
	sb.WriteString(BoxHeavyBottomLeft + strings.Repeat(BoxHeavyHorizontal, innerWidth) + BoxHeavyBottomRight)

	return sb.String()
}
