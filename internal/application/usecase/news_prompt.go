package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tesso57/headlines/internal/domain/news"
)

func buildNewsPrompt(categories []string) string {
	return strings.Join([]string{
		fmt.Sprintf("Provide exactly %d of the most recent and trending news headlines across these categories: %s.", ItemsPerRequest, strings.Join(categories, ", ")),
		"Distribute the headlines reasonably across the requested categories.",
		"If this is an update, try to find headlines different from generic top stories.",
		"For each headline, provide a short 1-sentence summary and the news source name.",
		`Format as a JSON array of objects with keys: "title", "summary", "category", "sourceName".`,
		"Make sure the news is real and current. Use a live web search to verify.",
	}, "\n")
}

// parseNewsItems decodes the first JSON array found in raw provider text.
// Anything that cannot be decoded yields no items.
func parseNewsItems(raw string) []news.Item {
	span := extractJSONArray(raw)
	if span == "" {
		return nil
	}
	var items []news.Item
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil
	}
	return items
}

// extractJSONArray returns the first balanced [...] span, ignoring brackets inside string literals.
func extractJSONArray(text string) string {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
