package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/tesso57/headlines/internal/application/usecase"
	"github.com/tesso57/headlines/internal/domain/news"
)

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Session       Session
	Previous      Session
	CategoryList  list.Model
	ArticleList   list.Model
	Viewport      viewport.Model
	Help          help.Model
	Spinner       spinner.Model
	Keys          KeyMap
	Width         int
	Height        int
	Selection     *news.Selection
	News          usecase.NewsState
	Ticker        Ticker
	Detail        Detail
	Speaking      bool
	StatusMessage string
	Err           error
}

// Detail is the article currently open in the detail pane.
type Detail struct {
	Item         news.Item
	Image        usecase.ArticleImage
	ImageLoading bool
	// Seq identifies the open request so late image results for another article are dropped.
	Seq int
}

// Ticker is the scroll position of the breaking news line.
type Ticker struct {
	Offset int
}
