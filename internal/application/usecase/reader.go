package usecase

import (
	"context"

	"github.com/tesso57/headlines/internal/domain/news"
)

// Reader ties the category selection to the news service: every selection change refreshes.
type Reader struct {
	Selection *news.Selection
	News      *NewsService
}

// NewReader constructs a Reader over the given selection and news service.
func NewReader(selection *news.Selection, newsSvc *NewsService) *Reader {
	if selection == nil {
		selection = news.NewSelection()
	}
	return new(Reader{Selection: selection, News: newsSvc})
}

// Toggle flips one category and refreshes.
func (r *Reader) Toggle(ctx context.Context, category string) {
	r.Selection.Toggle(category)
	r.Refresh(ctx)
}

// Clear resets the selection and refreshes.
func (r *Reader) Clear(ctx context.Context) {
	r.Selection.Clear()
	r.Refresh(ctx)
}

// Refresh replaces the displayed items for the current selection.
func (r *Reader) Refresh(ctx context.Context) {
	r.News.Refresh(ctx, r.Selection.Categories())
}

// LoadMore appends items when no fetch is in flight. It reports whether a fetch ran.
func (r *Reader) LoadMore(ctx context.Context) bool {
	if !r.News.CanLoadMore() {
		return false
	}
	r.News.LoadMore(ctx, r.Selection.Categories())
	return true
}
