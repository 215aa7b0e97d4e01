// Package presenter builds view models for the TUI.
package presenter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/tesso57/headlines/internal/domain/news"
)

// CategoryItem is a view model for one row of the category sidebar.
type CategoryItem struct {
	Label  string
	Active bool
}

// FilterValue implements list.Item.
func (c *CategoryItem) FilterValue() string { return c.Label }

// Title returns the label with its selection marker.
func (c *CategoryItem) Title() string {
	if c.Active {
		return "● " + c.Label
	}
	return "○ " + c.Label
}

// Description implements list.DefaultItem.
func (c *CategoryItem) Description() string { return "" }

// IsActive reports whether the category is selected.
func (c *CategoryItem) IsActive() bool { return c.Active }

// BuildCategoryListItems lists the known categories followed by any selected custom ones.
func BuildCategoryListItems(selection *news.Selection) []list.Item {
	labels := slices.Clone(news.Categories)
	if selection != nil {
		for _, category := range selection.Categories() {
			if !slices.Contains(labels, category) {
				labels = append(labels, category)
			}
		}
	}
	items := make([]list.Item, len(labels))
	for i, label := range labels {
		items[i] = &CategoryItem{Label: label, Active: selection != nil && selection.IsActive(label)}
	}
	return items
}

// ApplyCategoryList updates the sidebar with the current selection.
func ApplyCategoryList(model *list.Model, selection *news.Selection) {
	model.SetItems(BuildCategoryListItems(selection))
}

// ArticleItem is a view model for one news item.
type ArticleItem struct {
	news.Item
}

// FilterValue implements list.Item.
func (a *ArticleItem) FilterValue() string { return a.Item.Title }

// Title returns the category-tagged headline.
func (a *ArticleItem) Title() string {
	if a.Category == "" {
		return a.Item.Title
	}
	return fmt.Sprintf("[%s] %s", a.Category, a.Item.Title)
}

// Description returns the timestamp, source and summary line.
func (a *ArticleItem) Description() string {
	parts := make([]string, 0, 3)
	if a.Timestamp != "" {
		parts = append(parts, a.Timestamp)
	}
	parts = append(parts, a.SourceLabel())
	if a.Summary != "" {
		parts = append(parts, a.Summary)
	}
	return strings.Join(parts, " · ")
}

// BuildArticleListItems wraps news items for the article list.
func BuildArticleListItems(items []news.Item) []list.Item {
	result := make([]list.Item, len(items))
	for i, item := range items {
		result[i] = &ArticleItem{Item: item}
	}
	return result
}

// ApplyArticleList replaces the article list contents, keeping the cursor in range.
func ApplyArticleList(model *list.Model, items []news.Item) {
	index := model.Index()
	model.SetItems(BuildArticleListItems(items))
	if len(items) == 0 {
		return
	}
	model.Select(min(index, len(items)-1))
}

// TickerText joins the headlines into one breaking news line.
func TickerText(items []news.Item) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "[%s] %s  •  ", item.SourceLabel(), item.Title)
	}
	return b.String()
}
