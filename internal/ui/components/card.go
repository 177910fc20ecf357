package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/stratiz/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards and text blocks so
// that long lines stay readable on wide terminals.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 4
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card of the given outer width.
func Card(content string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width).
		Padding(0, 1).
		Render(content)
}

// Center places content in the middle of a width x height box.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Wrap word-wraps text to width.
func Wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}
