// Package mainview provides the main content area component.
package mainview

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the main view component.
type Props struct {
	Width  int
	Height int
	Title  string
	Body   string
	Accent lipgloss.Color
}

// Render renders the main view component.
func Render(p Props) string {
	mainStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		PaddingLeft(1)

	content := p.Body
	if p.Title != "" {
		title := lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render(p.Title)
		if p.Body != "" {
			content = title + "\n\n" + p.Body
		} else {
			content = title
		}
	}
	return mainStyle.Render(content)
}
