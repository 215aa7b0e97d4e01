package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/tesso57/headlines/internal/application/settings"
	"github.com/tesso57/headlines/internal/application/usecase"
	"github.com/tesso57/headlines/internal/domain/news"
	"github.com/tesso57/headlines/internal/presentation/tui/update"
)

type mockTextProvider struct {
	mock.Mock
}

func (m *mockTextProvider) SendTextPrompt(_ context.Context, req usecase.TextRequest) (usecase.TextResponse, error) {
	args := m.Called(req.Categories)
	resp, _ := args.Get(0).(usecase.TextResponse)
	return resp, args.Error(1)
}

type mockImageProvider struct {
	mock.Mock
}

func (m *mockImageProvider) GenerateImage(_ context.Context, prompt string, opts usecase.ImageOptions) ([]usecase.GeneratedImage, error) {
	args := m.Called(prompt, opts)
	images, _ := args.Get(0).([]usecase.GeneratedImage)
	return images, args.Error(1)
}

type fakePlayback struct {
	done chan struct{}
	once sync.Once
}

func (p *fakePlayback) Wait() error {
	<-p.done
	return nil
}

func (p *fakePlayback) Stop() {
	p.once.Do(func() { close(p.done) })
}

type fakeSynth struct {
	mu     sync.Mutex
	texts  []string
	active []*fakePlayback
}

func (s *fakeSynth) Start(text string, _ usecase.Voice) (usecase.Playback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &fakePlayback{done: make(chan struct{})}
	s.texts = append(s.texts, text)
	s.active = append(s.active, p)
	return p, nil
}

func testSettings() settings.Settings {
	return settings.Settings{
		Categories: []string{news.DefaultCategory},
		KeyMap: settings.KeyMapConfig{
			Up:          "k,up",
			Down:        "j,down",
			Left:        "h,left",
			Right:       "l,right",
			UpPage:      "ctrl+u",
			DownPage:    "ctrl+d",
			Top:         "g",
			Bottom:      "G",
			Open:        "enter",
			Toggle:      "space",
			Clear:       "c",
			Back:        "esc",
			Quit:        "q",
			Refresh:     "r",
			Speak:       "p",
			OpenImage:   "i",
			OpenSource:  "o",
			ToggleFocus: "tab",
		},
		Theme: settings.ThemeConfig{
			Accent:   "205",
			Ticker:   "124",
			Category: "244",
			Glamour:  "notty",
		},
	}
}

type testEnv struct {
	model  *Model
	text   *mockTextProvider
	images *mockImageProvider
	synth  *fakeSynth
	opened []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger, _ := test.NewNullLogger()
	env := &testEnv{
		text:   &mockTextProvider{},
		images: &mockImageProvider{},
		synth:  &fakeSynth{},
	}
	newsSvc := usecase.NewNewsService(env.text, logger, func() time.Time {
		return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	})
	env.model = NewModel(testSettings(), Services{
		News:     newsSvc,
		Articles: usecase.NewArticleService(env.images, logger),
		Narrator: usecase.NewNarrator(env.synth, usecase.DefaultVoice),
	})
	env.model.deps.OpenBrowser = func(target string) error {
		env.opened = append(env.opened, target)
		return nil
	}
	env.model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return env
}

func jsonResponse(category string, titles ...string) usecase.TextResponse {
	items := make([]news.Item, len(titles))
	citations := make([]usecase.Citation, len(titles))
	for i, title := range titles {
		items[i] = news.Item{
			Title:      title,
			Summary:    "Summary of " + title + ".",
			Category:   category,
			SourceName: "Wire",
		}
		citations[i] = usecase.Citation{URI: fmt.Sprintf("https://wire.example/%d", i)}
	}
	body, _ := json.Marshal(items)
	return usecase.TextResponse{Text: "Here you go:\n" + string(body), Citations: citations}
}

// run executes cmd and feeds the application messages it produces back into the model.
func (e *testEnv) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			e.run(c)
		}
	case update.NewsFetchedMsg, update.ImageReadyMsg, update.SpeechEndedMsg:
		_, next := e.model.Update(msg)
		e.run(next)
	}
}

func (e *testEnv) press(keys ...tea.KeyMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, k := range keys {
		_, cmd := e.model.Update(k)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
)
