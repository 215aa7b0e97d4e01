// Package intent parses user input into UI intents.
package intent

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/headlines/internal/presentation/tui/state"
)

// Type represents a user intent.
type Type int

const (
	None Type = iota
	Quit
	ToggleHelp
	Toggle
	Clear
	Open
	Back
	Focus
	SwitchPane
	Refresh
	Speak
	OpenImage
	OpenSource
)

// Intent represents a parsed user intent.
type Intent struct {
	Type Type
}

// FromKeyMsg maps a key message to an intent.
func FromKeyMsg(msg tea.KeyMsg, keys state.KeyMap) Intent {
	switch {
	case key.Matches(msg, keys.Quit):
		return Intent{Type: Quit}
	case key.Matches(msg, keys.Help):
		return Intent{Type: ToggleHelp}
	case key.Matches(msg, keys.Toggle):
		return Intent{Type: Toggle}
	case key.Matches(msg, keys.Clear):
		return Intent{Type: Clear}
	case key.Matches(msg, keys.Open):
		return Intent{Type: Open}
	case key.Matches(msg, keys.Right):
		return Intent{Type: Focus}
	case key.Matches(msg, keys.Left) || key.Matches(msg, keys.Back):
		return Intent{Type: Back}
	case key.Matches(msg, keys.ToggleFocus):
		return Intent{Type: SwitchPane}
	case key.Matches(msg, keys.Refresh):
		return Intent{Type: Refresh}
	case key.Matches(msg, keys.Speak):
		return Intent{Type: Speak}
	case key.Matches(msg, keys.OpenImage):
		return Intent{Type: OpenImage}
	case key.Matches(msg, keys.OpenSource):
		return Intent{Type: OpenSource}
	default:
		return Intent{Type: None}
	}
}
