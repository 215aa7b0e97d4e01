// Package news defines the core news reading models.
package news

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCategory is the category a selection falls back to when it would become empty.
const DefaultCategory = "World"

// DefaultSourceLabel is displayed for items without a source name.
const DefaultSourceLabel = "News"

// Categories lists the known category labels in display order.
var Categories = []string{"World", "Technology", "Science", "Business", "Sports", "Health", "Entertainment"}

// Item is one news entry.
type Item struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	Category   string `json:"category"`
	Timestamp  string `json:"timestamp,omitempty"`
	SourceURL  string `json:"sourceUrl,omitempty"`
	SourceName string `json:"sourceName,omitempty"`
}

// SourceLabel returns the source name or the generic label.
func (i Item) SourceLabel() string {
	if name := strings.TrimSpace(i.SourceName); name != "" {
		return name
	}
	return DefaultSourceLabel
}

// Titles returns the set of item titles.
func Titles(items []Item) map[string]struct{} {
	titles := make(map[string]struct{}, len(items))
	for _, item := range items {
		titles[item.Title] = struct{}{}
	}
	return titles
}

var titleCaser = cases.Title(language.English)

// NormalizeCategory trims a label and matches it against the known categories.
// Unknown labels are title-cased and kept.
func NormalizeCategory(label string) string {
	label = strings.Join(strings.Fields(label), " ")
	if label == "" {
		return ""
	}
	for _, known := range Categories {
		if strings.EqualFold(known, label) {
			return known
		}
	}
	return titleCaser.String(label)
}
