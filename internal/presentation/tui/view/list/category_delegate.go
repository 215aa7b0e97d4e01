package listview

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CategoryItem interface for items that can be rendered by CategoryDelegate.
type CategoryItem interface {
	list.Item
	Title() string
	IsActive() bool
}

// CategoryDelegate handles rendering of category rows.
type CategoryDelegate struct {
	Styles list.DefaultItemStyles
	Theme  lipgloss.Color
}

// NewCategoryDelegate creates a new CategoryDelegate.
func NewCategoryDelegate(themeColor lipgloss.Color) *CategoryDelegate {
	return &CategoryDelegate{
		Styles: withItemPadding(list.NewDefaultItemStyles()),
		Theme:  themeColor,
	}
}

// Height returns the height of the item.
func (d CategoryDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between items.
func (d CategoryDelegate) Spacing() int {
	return 0
}

// Update handles messages for the delegate.
func (d CategoryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item.
func (d CategoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(CategoryItem)
	if !ok {
		return
	}

	style, _ := itemStyles(d.Styles, m, index)
	if i.IsActive() {
		style = style.Foreground(d.Theme).Bold(true)
	}
	renderRow(w, m, style, i.Title())
}
