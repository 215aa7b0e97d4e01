// Package layout arranges the ticker, panes and footer.
package layout

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the rendered regions.
type Props struct {
	Header  string
	Sidebar string
	Main    string
	Footer  string
}

// Render stacks the header above the side-by-side panes and the footer below.
func Render(p Props) string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, p.Sidebar, p.Main)
	parts := make([]string, 0, 3)
	if p.Header != "" {
		parts = append(parts, p.Header)
	}
	parts = append(parts, body)
	if p.Footer != "" {
		parts = append(parts, p.Footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
