// Package tui provides the main user interface model and view components.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/headlines/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/headlines/internal/presentation/tui/components/main"
	"github.com/tesso57/headlines/internal/presentation/tui/components/modal"
	"github.com/tesso57/headlines/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/headlines/internal/presentation/tui/metrics"
	"github.com/tesso57/headlines/internal/presentation/tui/presenter"
	"github.com/tesso57/headlines/internal/presentation/tui/state"
	"github.com/tesso57/headlines/internal/presentation/tui/textutil"
	"github.com/tesso57/headlines/internal/presentation/tui/view"
)

const (
	tickerBadge       = "BREAKING"
	tickerPlaceholder = "Fetching the latest headlines  •  "
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

func (m *Model) render() string {
	return view.Render(m.buildProps())
}

func (m *Model) buildProps() view.Props {
	return view.Props{
		Sidebar: m.buildSidebarProps(),
		Header:  m.buildHeaderProps(),
		Main:    m.buildMainProps(),
		Modal:   m.buildModalProps(),
		Footer:  m.buildFooterProps(),
	}
}

func (m *Model) accent() lipgloss.Color {
	return lipgloss.Color(m.settings.Theme.Accent)
}

func (m *Model) buildSidebarProps() sidebar.Props {
	return sidebar.Props{
		View:     m.state.CategoryList.View(),
		Width:    m.state.CategoryList.Width(),
		Height:   m.state.CategoryList.Height() + metrics.SidebarTitleLines,
		Title:    "Categories",
		Subtitle: fmt.Sprintf("%d active", m.state.Selection.ActiveCount()),
		Active:   m.state.Session == state.CategoryView,
		Accent:   m.accent(),
	}
}

func (m *Model) buildHeaderProps() header.Props {
	text := presenter.TickerText(m.state.News.Items)
	if text == "" {
		text = tickerPlaceholder
	}
	return header.Props{
		Badge:  tickerBadge,
		Text:   text,
		Offset: m.state.Ticker.Offset,
		Width:  m.state.Width,
		Color:  lipgloss.Color(m.settings.Theme.Ticker),
	}
}

func (m *Model) buildMainProps() mainview.Props {
	mainWidth := m.state.ArticleList.Width()
	title := "Top Stories · " + strings.Join(m.state.Selection.Categories(), ", ")

	var body string
	switch {
	case m.state.Session == state.DetailView:
		title = "Article"
		if m.state.Detail.ImageLoading {
			title += " " + m.state.Spinner.View()
		}
		body = m.state.Viewport.View()
	case m.state.News.Loading:
		body = fmt.Sprintf("\n   %s Fetching the latest headlines...", m.state.Spinner.View())
	case len(m.state.News.Items) == 0:
		body = fmt.Sprintf("No stories yet. Press %s to refresh.", m.state.Keys.Refresh.Help().Key)
	default:
		body = m.state.ArticleList.View()
		if m.state.News.LoadingMore {
			body += fmt.Sprintf("\n%s Loading more stories...", m.state.Spinner.View())
		}
	}

	if m.state.Session != state.DetailView && !m.state.News.Loading && m.state.News.Err != "" {
		body = errorStyle.Render(m.state.News.Err) + "\n\n" + body
	}
	if m.state.Err != nil {
		body = errorStyle.Render(fmt.Sprintf("Error: %v", m.state.Err)) + "\n" + body
	}

	return mainview.Props{
		Width:  mainWidth,
		Height: m.state.CategoryList.Height() + metrics.SidebarTitleLines,
		Title:  textutil.Clip(title, mainWidth),
		Body:   body,
		Accent: m.accent(),
	}
}

func (m *Model) buildModalProps() modal.Props {
	if m.state.Session == state.QuitView {
		return modal.Props{
			Visible: true,
			Kind:    modal.Quit,
			Body:    "Quit headlines?\n\n(y/n)",
			Width:   m.state.Width,
			Height:  m.state.Height,
			Accent:  m.accent(),
		}
	}
	if m.state.Help.ShowAll {
		return modal.Props{
			Visible: true,
			Kind:    modal.Help,
			Body:    m.state.Help.View(&m.state.Keys),
			Width:   m.state.Width,
			Height:  m.state.Height,
			Accent:  m.accent(),
		}
	}
	return modal.Props{Visible: false}
}

func (m *Model) buildFooterProps() string {
	helpText := state.FooterHelpText(m.state.Help, m.state.Keys)
	errText := ""
	if m.state.Err == nil {
		errText = m.state.StatusMessage
	}
	return state.FooterText(
		m.state.News.Loading,
		m.state.News.LoadingMore,
		m.state.News.UpdatedAt,
		m.now(),
		errText,
		helpText,
	)
}
