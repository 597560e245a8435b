package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// spaces backs Pad for the widths dialogs actually use.
var spaces = strings.Repeat(" ", 128)

// Pad returns a string of n spaces.
func Pad(n int) string {
	switch {
	case n <= 0:
		return ""
	case n <= len(spaces):
		return spaces[:n]
	default:
		return strings.Repeat(" ", n)
	}
}

// PadRight pads s with spaces to the given display width.
func PadRight(s string, width int) string {
	return s + Pad(width-lipgloss.Width(s))
}
