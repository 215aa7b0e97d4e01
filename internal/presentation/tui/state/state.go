// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/headlines/internal/application/settings"
)

// Session represents the current view state.
type Session int

const (
	CategoryView Session = iota
	ArticleView
	DetailView
	QuitView
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	UpPage      key.Binding
	DownPage    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Open        key.Binding
	Toggle      key.Binding
	Clear       key.Binding
	Back        key.Binding
	Quit        key.Binding
	Refresh     key.Binding
	Speak       key.Binding
	OpenImage   key.Binding
	OpenSource  key.Binding
	ToggleFocus key.Binding
	Help        key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.Toggle, k.Open, k.Speak, k.Refresh}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Top, k.Bottom, k.UpPage, k.DownPage},
		{k.Toggle, k.Clear, k.ToggleFocus, k.Refresh},
		{k.Open, k.Back, k.OpenImage, k.OpenSource},
		{k.Speak, k.Help, k.Quit},
	}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up:          binding(cfg.Up, "up"),
		Down:        binding(cfg.Down, "down"),
		Left:        binding(cfg.Left, "categories"),
		Right:       binding(cfg.Right, "articles"),
		UpPage:      binding(cfg.UpPage, "pgup"),
		DownPage:    binding(cfg.DownPage, "pgdn"),
		Top:         binding(cfg.Top, "top"),
		Bottom:      binding(cfg.Bottom, "bottom"),
		Open:        binding(cfg.Open, "open"),
		Toggle:      binding(cfg.Toggle, "toggle category"),
		Clear:       binding(cfg.Clear, "reset categories"),
		Back:        binding(cfg.Back, "back"),
		Quit:        binding(cfg.Quit, "quit"),
		Refresh:     binding(cfg.Refresh, "refresh"),
		Speak:       binding(cfg.Speak, "read aloud"),
		OpenImage:   binding(cfg.OpenImage, "open image"),
		OpenSource:  binding(cfg.OpenSource, "open source"),
		ToggleFocus: binding(cfg.ToggleFocus, "switch pane"),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(splitKeys(keys)...),
		key.WithHelp(keys, desc),
	)
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		out = append(out, keyName)
		switch keyName {
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		case "space":
			out = append(out, " ")
		}
	}
	return out
}
