// Package header provides the breaking news ticker shown above the panes.
package header

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Props defines the properties for the header component.
type Props struct {
	Badge  string
	Text   string
	Offset int
	Width  int
	Color  lipgloss.Color
}

// Render renders the ticker: a badge followed by a scrolling window over Text.
func Render(p Props) string {
	if p.Width <= 0 {
		return ""
	}
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("231")).
		Background(p.Color).
		Padding(0, 1).
		Render(p.Badge)

	available := p.Width - lipgloss.Width(badge) - 1
	if available <= 0 {
		return ansi.Truncate(badge, p.Width, "")
	}
	window := ansi.Truncate(Window(p.Text, p.Offset, available), available, "")
	return badge + " " + lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Render(window)
}

// Window returns width runes of text starting at offset, wrapping around so the
// ticker loops continuously. Callers truncate to display cells.
func Window(text string, offset, width int) string {
	runes := []rune(text)
	if len(runes) == 0 || width <= 0 {
		return ""
	}
	if len(runes) <= width {
		return text
	}
	start := offset % len(runes)
	if start < 0 {
		start += len(runes)
	}
	loop := slices.Concat(runes[start:], runes[:start])
	for len(loop) < width {
		loop = append(loop, runes...)
	}
	return string(loop[:width])
}
