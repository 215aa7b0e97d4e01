package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/headlines/internal/application/settings"
	"github.com/tesso57/headlines/internal/application/usecase"
	"github.com/tesso57/headlines/internal/domain/news"
	"github.com/tesso57/headlines/internal/presentation/tui/presenter"
	"github.com/tesso57/headlines/internal/presentation/tui/state"
	"github.com/tesso57/headlines/internal/presentation/tui/update"
	listview "github.com/tesso57/headlines/internal/presentation/tui/view/list"
)

// Services are the application services the UI drives.
type Services struct {
	News      *usecase.NewsService
	Articles  *usecase.ArticleService
	Narrator  *usecase.Narrator
	Selection *news.Selection
}

// Model represents the main application state.
type Model struct {
	settings settings.Settings
	deps     update.Deps
	now      func() time.Time
	state    *state.ModelState
}

// NewModel creates a new application model.
func NewModel(cfg settings.Settings, svc Services) *Model {
	if svc.Selection == nil {
		svc.Selection = news.NewSelection(cfg.Categories...)
	}
	return &Model{
		settings: cfg,
		deps: update.Deps{
			News:         svc.News,
			Articles:     svc.Articles,
			Narrator:     svc.Narrator,
			Markdown:     update.NewMarkdownRenderer(cfg.Theme.Glamour),
			OpenBrowser:  openExternal,
			TickInterval: time.Duration(cfg.Ticker.IntervalMS) * time.Millisecond,
		},
		now:   time.Now,
		state: newModelState(cfg, svc.Selection),
	}
}

// Init starts the first fetch, the spinner and the ticker.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		update.StartRefresh(m.state, m.deps),
		update.TickerCmd(m.deps.TickInterval),
	)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps)
		if handled {
			update.UpdateListSizes(m.state)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg, m.deps)
	case update.NewsFetchedMsg:
		update.HandleNewsFetchedMsg(m.state, msg)
	case update.ImageReadyMsg:
		update.HandleImageReadyMsg(m.state, msg, m.deps)
	case update.SpeechEndedMsg:
		update.HandleSpeechEndedMsg(m.state, msg, m.deps)
	case update.TickerTickMsg:
		return m, update.HandleTickerTick(m.state, m.deps)
	}

	if m.busy() {
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch m.state.Session {
	case state.CategoryView:
		m.state.CategoryList, cmd = m.state.CategoryList.Update(msg)
		cmds = append(cmds, cmd)
	case state.ArticleView:
		m.state.ArticleList, cmd = m.state.ArticleList.Update(msg)
		cmds = append(cmds, cmd)
		if _, ok := msg.(tea.KeyMsg); ok {
			cmds = append(cmds, update.MaybeLoadMore(m.state, m.deps))
		}
	case state.DetailView:
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return m.render()
}

func (m *Model) busy() bool {
	return m.state.News.Loading || m.state.News.LoadingMore ||
		(m.state.Session == state.DetailView && m.state.Detail.ImageLoading)
}

func newModelState(cfg settings.Settings, selection *news.Selection) *state.ModelState {
	st := &state.ModelState{
		Session:      state.ArticleView,
		CategoryList: newCategoryList(cfg),
		ArticleList:  newArticleList(),
		Viewport:     newViewport(),
		Help:         help.New(),
		Spinner:      newSpinner(cfg),
		Keys:         state.NewKeyMap(cfg.KeyMap),
		Selection:    selection,
	}

	for _, l := range []*list.Model{&st.CategoryList, &st.ArticleList} {
		l.KeyMap.CursorUp = st.Keys.Up
		l.KeyMap.CursorDown = st.Keys.Down
		l.KeyMap.PrevPage = st.Keys.UpPage
		l.KeyMap.NextPage = st.Keys.DownPage
		l.KeyMap.GoToStart = st.Keys.Top
		l.KeyMap.GoToEnd = st.Keys.Bottom
	}

	presenter.ApplyCategoryList(&st.CategoryList, selection)
	return st
}

func newCategoryList(cfg settings.Settings) list.Model {
	l := list.New([]list.Item{}, listview.NewCategoryDelegate(lipgloss.Color(cfg.Theme.Accent)), 0, 0)
	l.Title = "Categories"
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newArticleList() list.Model {
	l := list.New([]list.Item{}, listview.NewArticleDelegate(), 0, 0)
	l.Title = "Top Stories"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newSpinner(cfg settings.Settings) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Accent))
	return s
}

func newViewport() viewport.Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().PaddingRight(1)
	return vp
}
