// Package textutil provides small formatting helpers for TUI text.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// SingleLine collapses whitespace, newlines included, into single spaces.
// Provider summaries sometimes arrive wrapped across several lines.
func SingleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Clip flattens text to one line and trims it to width display cells.
func Clip(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(SingleLine(text), width, ellipsis)
}
