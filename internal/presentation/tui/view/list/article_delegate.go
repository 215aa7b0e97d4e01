// Package listview provides list item delegates for the view layer.
package listview

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ArticleItem interface for items that can be rendered by ArticleDelegate.
type ArticleItem interface {
	list.Item
	Title() string
	Description() string
}

// ArticleDelegate renders a headline with its metadata line underneath.
type ArticleDelegate struct {
	Styles list.DefaultItemStyles
}

// NewArticleDelegate creates a new ArticleDelegate.
func NewArticleDelegate() *ArticleDelegate {
	return &ArticleDelegate{
		Styles: withItemPadding(list.NewDefaultItemStyles()),
	}
}

// Height returns the height of the item.
func (d *ArticleDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between items.
func (d *ArticleDelegate) Spacing() int {
	return 1
}

// Update handles messages for the delegate.
func (d *ArticleDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item.
func (d *ArticleDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(ArticleItem)
	if !ok {
		return
	}

	titleStyle, descStyle := itemStyles(d.Styles, m, index)
	renderRow(w, m, titleStyle, i.Title())
	_, _ = io.WriteString(w, "\n")
	renderRow(w, m, descStyle, i.Description())
}
