package update

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/headlines/internal/presentation/tui/metrics"
	"github.com/tesso57/headlines/internal/presentation/tui/state"
)

const minSidebarWidth = 18

type layoutMetrics struct {
	sidebarWidth      int
	mainWidth         int
	sidebarListHeight int
	mainListHeight    int
	viewportHeight    int
}

// UpdateListSizes fits the lists and viewport to the terminal.
func UpdateListSizes(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	layout := buildLayoutMetrics(s)
	s.CategoryList.SetSize(layout.sidebarWidth, layout.sidebarListHeight)
	s.ArticleList.SetSize(layout.mainWidth, layout.mainListHeight)
	s.Viewport.Width = layout.mainWidth
	s.Viewport.Height = layout.viewportHeight
}

func buildLayoutMetrics(s *state.ModelState) layoutMetrics {
	availableHeight := clampMin(s.Height-footerHeight(s)-metrics.TickerLines, 1)

	sidebarWidth := clampMin(s.Width/4, minSidebarWidth)
	// Main pane has one column of left padding.
	mainWidth := clampMin(s.Width-sidebarWidth-metrics.SidebarRightBorderWidth-1, 1)

	paneHeight := clampMin(availableHeight-metrics.MainTitleLines, 1)
	mainListHeight := clampMin(paneHeight-statusLines(s), 1)
	sidebarListHeight := clampMin(availableHeight-metrics.SidebarTitleLines, 1)

	return layoutMetrics{
		sidebarWidth:      sidebarWidth,
		mainWidth:         mainWidth,
		sidebarListHeight: reservePaginationSpace(s.CategoryList, sidebarListHeight),
		mainListHeight:    reservePaginationSpace(s.ArticleList, mainListHeight),
		viewportHeight:    paneHeight,
	}
}

// statusLines counts the rows shown around the article list: the error banner and the load-more row.
func statusLines(s *state.ModelState) int {
	lines := 0
	if s.News.Err != "" {
		lines += 2
	}
	if s.News.LoadingMore {
		lines++
	}
	return lines
}

// footerHeight reserves the status line above the help text.
func footerHeight(s *state.ModelState) int {
	s.Help.Width = s.Width
	return lipgloss.Height(state.FooterHelpText(s.Help, s.Keys)) + 1
}

func reservePaginationSpace(m list.Model, height int) int {
	if height <= 1 || !m.ShowPagination() {
		return height
	}

	statusHeight := 0
	if m.ShowStatusBar() {
		statusHeight = 1
	}

	availHeight := height - statusHeight
	if availHeight < 1 {
		return height
	}

	if len(m.VisibleItems()) > availHeight {
		return height - 1
	}
	return height
}

func clampMin(value, minimum int) int {
	return max(value, minimum)
}
