// Package update holds UI update logic for the TUI.
package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/headlines/internal/application/usecase"
	"github.com/tesso57/headlines/internal/domain/news"
	"github.com/tesso57/headlines/internal/presentation/tui/intent"
	"github.com/tesso57/headlines/internal/presentation/tui/metrics"
	"github.com/tesso57/headlines/internal/presentation/tui/presenter"
	"github.com/tesso57/headlines/internal/presentation/tui/state"
)

// Deps groups external dependencies for updates.
type Deps struct {
	News         *usecase.NewsService
	Articles     *usecase.ArticleService
	Narrator     *usecase.Narrator
	Markdown     *MarkdownRenderer
	OpenBrowser  func(string) error
	TickInterval time.Duration
}

// NewsFetchedMsg is emitted after a replace or append fetch finishes.
type NewsFetchedMsg struct {
	State  usecase.NewsState
	Append bool
}

// ImageReadyMsg is emitted once the illustration for an opened article resolves.
type ImageReadyMsg struct {
	Seq   int
	Image usecase.ArticleImage
}

// SpeechEndedMsg is emitted when a readout finishes, fails or is stopped.
type SpeechEndedMsg struct {
	Err error
}

// TickerTickMsg advances the breaking news ticker.
type TickerTickMsg struct{}

// FetchNewsCmd runs one fetch and reports the resulting state.
func FetchNewsCmd(newsSvc *usecase.NewsService, categories []string, appendMode bool) tea.Cmd {
	return func() tea.Msg {
		newsSvc.Request(context.Background(), categories, appendMode)
		return NewsFetchedMsg{State: newsSvc.Snapshot(), Append: appendMode}
	}
}

// IllustrateCmd resolves the image for an article.
func IllustrateCmd(articles *usecase.ArticleService, seq int, item news.Item) tea.Cmd {
	return func() tea.Msg {
		return ImageReadyMsg{Seq: seq, Image: articles.Illustrate(context.Background(), item)}
	}
}

// WaitSpeechCmd waits for a readout to end.
func WaitSpeechCmd(u *usecase.Utterance) tea.Cmd {
	return func() tea.Msg {
		return SpeechEndedMsg{Err: u.Wait()}
	}
}

// TickerCmd schedules the next ticker step.
func TickerCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return TickerTickMsg{} })
}

// StartRefresh marks the list as loading and fetches a fresh set for the selection.
func StartRefresh(s *state.ModelState, deps Deps) tea.Cmd {
	s.News.Loading = true
	s.News.Err = ""
	return tea.Batch(s.Spinner.Tick, FetchNewsCmd(deps.News, s.Selection.Categories(), false))
}

// MaybeLoadMore appends more stories when the cursor sits on the last rows of the list.
func MaybeLoadMore(s *state.ModelState, deps Deps) tea.Cmd {
	if s.Session != state.ArticleView || !s.News.CanLoadMore() {
		return nil
	}
	total := len(s.ArticleList.Items())
	if total == 0 || s.ArticleList.Index() < total-metrics.LoadMoreThreshold {
		return nil
	}
	s.News.LoadingMore = true
	return tea.Batch(s.Spinner.Tick, FetchNewsCmd(deps.News, s.Selection.Categories(), true))
}

// HandleNewsFetchedMsg applies the service state to the view.
func HandleNewsFetchedMsg(s *state.ModelState, msg NewsFetchedMsg) {
	s.News = msg.State
	presenter.ApplyArticleList(&s.ArticleList, s.News.Items)
	UpdateListSizes(s)
}

// HandleImageReadyMsg stores the illustration when it belongs to the open article.
func HandleImageReadyMsg(s *state.ModelState, msg ImageReadyMsg, deps Deps) {
	if msg.Seq != s.Detail.Seq {
		return
	}
	s.Detail.Image = msg.Image
	s.Detail.ImageLoading = false
	if s.Session == state.DetailView {
		refreshDetailViewport(s, deps, false)
	}
}

// HandleSpeechEndedMsg syncs the speaking flag after a readout ends.
func HandleSpeechEndedMsg(s *state.ModelState, msg SpeechEndedMsg, deps Deps) {
	s.Speaking = deps.Narrator.Speaking()
	switch {
	case msg.Err != nil:
		s.StatusMessage = fmt.Sprintf("Read aloud failed: %v", msg.Err)
	case !s.Speaking && s.StatusMessage == statusReading:
		s.StatusMessage = ""
	}
	if s.Session == state.DetailView {
		refreshDetailViewport(s, deps, false)
	}
}

// HandleTickerTick scrolls the ticker by one step.
func HandleTickerTick(s *state.ModelState, deps Deps) tea.Cmd {
	s.Ticker.Offset++
	return TickerCmd(deps.TickInterval)
}

// HandleWindowSize updates layout sizing based on terminal size.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg, deps Deps) {
	s.Width = msg.Width
	s.Height = msg.Height

	UpdateListSizes(s)
	if s.Session == state.DetailView {
		refreshDetailViewport(s, deps, false)
	}
}

// HandleKeyMsg processes key input based on the current session.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if s.Session == state.QuitView {
		return handleQuitView(s, msg, deps)
	}

	s.Err = nil
	parsed := intent.FromKeyMsg(msg, s.Keys)
	if s.Help.ShowAll {
		if parsed.Type == intent.ToggleHelp || parsed.Type == intent.Back {
			s.Help.ShowAll = false
		}
		return nil, true
	}
	switch parsed.Type {
	case intent.Quit:
		s.Previous = s.Session
		s.Session = state.QuitView
		return nil, true
	case intent.ToggleHelp:
		s.Help.ShowAll = true
		return nil, true
	}

	switch s.Session {
	case state.CategoryView:
		return handleCategoryViewIntent(s, parsed, deps)
	case state.ArticleView:
		return handleArticleViewIntent(s, parsed, deps)
	case state.DetailView:
		return handleDetailViewIntent(s, parsed, deps)
	default:
		return nil, false
	}
}

func handleQuitView(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		deps.Narrator.Stop()
		return tea.Quit, true
	case "n", "N", "esc", "q", "Q":
		s.Session = s.Previous
		return nil, true
	}
	return nil, true
}

func handleCategoryViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Toggle, intent.Open:
		item, ok := s.CategoryList.SelectedItem().(*presenter.CategoryItem)
		if !ok {
			return nil, true
		}
		s.Selection.Toggle(item.Label)
		presenter.ApplyCategoryList(&s.CategoryList, s.Selection)
		return StartRefresh(s, deps), true
	case intent.Clear:
		return clearSelection(s, deps), true
	case intent.Refresh:
		return StartRefresh(s, deps), true
	case intent.Focus, intent.SwitchPane:
		s.Session = state.ArticleView
		return nil, true
	case intent.Back:
		return nil, true
	}
	return nil, false
}

func handleArticleViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Open, intent.Focus:
		return openDetail(s, deps), true
	case intent.Back, intent.SwitchPane:
		s.Session = state.CategoryView
		return nil, true
	case intent.Clear:
		return clearSelection(s, deps), true
	case intent.Refresh:
		return StartRefresh(s, deps), true
	case intent.Speak:
		if item, ok := selectedArticle(s); ok {
			return toggleSpeech(s, deps, item), true
		}
		return nil, true
	case intent.OpenSource:
		if item, ok := selectedArticle(s); ok {
			openSource(s, deps, item)
		}
		return nil, true
	}
	return nil, false
}

func handleDetailViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Back:
		deps.Narrator.Stop()
		s.Speaking = false
		if s.StatusMessage == statusReading {
			s.StatusMessage = ""
		}
		s.Session = state.ArticleView
		return nil, true
	case intent.Speak:
		cmd := toggleSpeech(s, deps, s.Detail.Item)
		refreshDetailViewport(s, deps, false)
		return cmd, true
	case intent.OpenImage:
		openImage(s, deps)
		return nil, true
	case intent.Open, intent.OpenSource:
		openSource(s, deps, s.Detail.Item)
		return nil, true
	case intent.Toggle, intent.Clear, intent.Refresh, intent.SwitchPane, intent.Focus:
		return nil, true
	}
	return nil, false
}

func clearSelection(s *state.ModelState, deps Deps) tea.Cmd {
	s.Selection.Clear()
	presenter.ApplyCategoryList(&s.CategoryList, s.Selection)
	return StartRefresh(s, deps)
}

func openDetail(s *state.ModelState, deps Deps) tea.Cmd {
	item, ok := selectedArticle(s)
	if !ok {
		return nil
	}
	s.Detail = state.Detail{
		Item:         item,
		ImageLoading: true,
		Seq:          s.Detail.Seq + 1,
	}
	s.Err = nil
	s.Session = state.DetailView
	refreshDetailViewport(s, deps, true)
	return tea.Batch(s.Spinner.Tick, IllustrateCmd(deps.Articles, s.Detail.Seq, item))
}

const statusReading = "Reading aloud..."

func toggleSpeech(s *state.ModelState, deps Deps, item news.Item) tea.Cmd {
	if !deps.Narrator.Enabled() {
		s.StatusMessage = "Read aloud unavailable: no speech command found"
		return nil
	}
	utterance, err := deps.Narrator.Toggle(SpeechText(item))
	s.Speaking = deps.Narrator.Speaking()
	if err != nil {
		s.StatusMessage = fmt.Sprintf("Read aloud failed: %v", err)
		return nil
	}
	if utterance == nil {
		s.StatusMessage = "Stopped reading"
		return nil
	}
	s.StatusMessage = statusReading
	return WaitSpeechCmd(utterance)
}

// SpeechText is what gets read aloud for an item.
func SpeechText(item news.Item) string {
	if item.Summary == "" {
		return item.Title
	}
	return item.Title + ". " + item.Summary
}

func openImage(s *state.ModelState, deps Deps) {
	if s.Detail.ImageLoading {
		s.StatusMessage = "Illustration is still being generated"
		return
	}
	ref, err := s.Detail.Image.WriteTemp()
	if err != nil {
		s.Err = err
		return
	}
	if err := deps.OpenBrowser(ref); err != nil {
		s.Err = err
		return
	}
	s.StatusMessage = "Opened illustration"
}

func openSource(s *state.ModelState, deps Deps, item news.Item) {
	if item.SourceURL == "" {
		s.StatusMessage = "No source link for this story"
		return
	}
	if err := deps.OpenBrowser(item.SourceURL); err != nil {
		s.Err = err
		return
	}
	s.StatusMessage = "Opened " + item.SourceLabel()
}

func selectedArticle(s *state.ModelState) (news.Item, bool) {
	item, ok := s.ArticleList.SelectedItem().(*presenter.ArticleItem)
	if !ok || item == nil {
		return news.Item{}, false
	}
	return item.Item, true
}
