package state

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/dustin/go-humanize"
)

// FooterText returns the footer content: a status line above the help text.
func FooterText(loading, loadingMore bool, updatedAt, now time.Time, statusMessage, helpText string) string {
	var parts []string
	switch {
	case loading:
		parts = append(parts, "fetching headlines...")
	case loadingMore:
		parts = append(parts, "loading more...")
	case !updatedAt.IsZero():
		parts = append(parts, "updated "+humanize.RelTime(updatedAt, now, "ago", "from now"))
	}
	if msg := strings.TrimSpace(statusMessage); msg != "" {
		parts = append(parts, msg)
	}
	status := strings.Join(parts, " · ")
	if status == "" {
		return helpText
	}
	if helpText == "" {
		return status
	}
	return status + "\n" + helpText
}

// FooterHelpText renders the short help for the key map.
func FooterHelpText(h help.Model, keys KeyMap) string {
	return h.ShortHelpView(keys.ShortHelp())
}
