// Package modal provides centered dialog overlays.
package modal

import (
	"github.com/charmbracelet/lipgloss"
)

// Kind identifies the dialog.
type Kind int

const (
	Quit Kind = iota
	Help
)

// Props defines the properties for the modal component.
type Props struct {
	Visible bool
	Kind    Kind
	Body    string
	Width   int
	Height  int
	Accent  lipgloss.Color
}

// Render draws the dialog centered in the terminal.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}
	border := lipgloss.RoundedBorder()
	box := lipgloss.NewStyle().
		Border(border).
		BorderForeground(p.Accent).
		Padding(1, 2)
	if p.Kind == Quit {
		box = box.Align(lipgloss.Center)
	}
	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, box.Render(p.Body))
}
