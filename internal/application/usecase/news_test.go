package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/headlines/internal/domain/news"
)

type mockTextProvider struct {
	mock.Mock
}

func (m *mockTextProvider) SendTextPrompt(ctx context.Context, req TextRequest) (TextResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(TextResponse)
	return resp, args.Error(1)
}

type recordingObserver struct {
	modes    []FetchMode
	outcomes []FetchOutcome
	added    []int
}

func (o *recordingObserver) ObserveFetch(mode FetchMode, outcome FetchOutcome, added int) {
	o.modes = append(o.modes, mode)
	o.outcomes = append(o.outcomes, outcome)
	o.added = append(o.added, added)
}

var fixedNow = func() time.Time { return time.Date(2026, 10, 19, 9, 5, 0, 0, time.UTC) }

func newTestNewsService(provider TextProvider) *NewsService {
	log, _ := logtest.NewNullLogger()
	return NewNewsService(provider, log, fixedNow)
}

func titlesOf(items []news.Item) []string {
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
	}
	return titles
}

func TestNewsService_RefreshReplacesInProviderOrder(t *testing.T) {
	provider := &mockTextProvider{}
	provider.On("SendTextPrompt", mock.Anything, mock.AnythingOfType("usecase.TextRequest")).Return(TextResponse{
		Text: `Here you go:
[{"title":"Z","summary":"z.","category":"World","sourceName":"Wire"},{"title":"Y","summary":"y.","category":"Science"}]
Hope that helps!`,
		Citations: []Citation{{URI: "https://example.com/z"}, {Title: "no uri"}},
	}, nil).Once()

	svc := newTestNewsService(provider)
	svc.state.Items = []news.Item{{Title: "old"}}

	svc.Refresh(context.Background(), []string{"World", "Science"})

	state := svc.Snapshot()
	require.Equal(t, []string{"Z", "Y"}, titlesOf(state.Items))
	require.Equal(t, "09:05", state.Items[0].Timestamp)
	require.Equal(t, "09:05", state.Items[1].Timestamp)
	require.Equal(t, "https://example.com/z", state.Items[0].SourceURL)
	require.Empty(t, state.Items[1].SourceURL)
	require.Empty(t, state.Err)
	require.False(t, state.Loading)
	require.False(t, state.LoadingMore)
	require.Equal(t, fixedNow(), state.UpdatedAt)

	req, _ := provider.Calls[0].Arguments.Get(1).(TextRequest)
	require.True(t, req.WebGrounding)
	require.Equal(t, ItemsPerRequest, req.Count)
	require.Equal(t, []string{"World", "Science"}, req.Categories)
	require.Contains(t, req.Prompt, "World, Science")
	require.Contains(t, req.Prompt, "exactly 6")
	provider.AssertExpectations(t)
}

func TestNewsService_AppendDedupesByTitle(t *testing.T) {
	provider := &mockTextProvider{}
	provider.On("SendTextPrompt", mock.Anything, mock.Anything).Return(TextResponse{
		Text: `[{"title":"B"},{"title":"C"}]`,
	}, nil).Once()

	svc := newTestNewsService(provider)
	svc.state.Items = []news.Item{{Title: "A"}, {Title: "B", Summary: "original"}}

	svc.LoadMore(context.Background(), []string{"World"})

	items := svc.Items()
	require.Equal(t, []string{"A", "B", "C"}, titlesOf(items))
	require.Equal(t, "original", items[1].Summary)
	provider.AssertExpectations(t)
}

func TestNewsService_AppendAllDuplicatesLeavesCollectionUnchanged(t *testing.T) {
	provider := &mockTextProvider{}
	provider.On("SendTextPrompt", mock.Anything, mock.Anything).Return(TextResponse{
		Text: `[{"title":"A","summary":"new"},{"title":"B"}]`,
	}, nil).Once()

	svc := newTestNewsService(provider)
	before := []news.Item{{Title: "A", Summary: "a"}, {Title: "B", Summary: "b"}}
	svc.state.Items = append([]news.Item(nil), before...)

	svc.LoadMore(context.Background(), []string{"World"})

	require.Equal(t, before, svc.Items())
}

func TestNewsService_AppendIsCaseSensitive(t *testing.T) {
	provider := &mockTextProvider{}
	provider.On("SendTextPrompt", mock.Anything, mock.Anything).Return(TextResponse{
		Text: `[{"title":"a"}]`,
	}, nil).Once()

	svc := newTestNewsService(provider)
	svc.state.Items = []news.Item{{Title: "A"}}

	svc.LoadMore(context.Background(), []string{"World"})

	require.Equal(t, []string{"A", "a"}, titlesOf(svc.Items()))
}

func TestNewsService_EmptyResponses(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no array", text: "Sorry, I could not find any news."},
		{name: "malformed array", text: `[{"title": "broken",]`},
		{name: "empty array", text: "[]"},
		{name: "empty text", text: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/replace", func(t *testing.T) {
			provider := &mockTextProvider{}
			provider.On("SendTextPrompt", mock.Anything, mock.Anything).Return(TextResponse{Text: tt.text}, nil).Once()
			svc := newTestNewsService(provider)
			svc.state.Items = []news.Item{{Title: "old"}}

			svc.Refresh(context.Background(), []string{"World"})

			state := svc.Snapshot()
			require.Equal(t, news.FallbackItems(), state.Items)
			require.Empty(t, state.Err)
		})
		t.Run(tt.name+"/append", func(t *testing.T) {
			provider := &mockTextProvider{}
			provider.On("SendTextPrompt", mock.Anything, mock.Anything).Return(TextResponse{Text: tt.text}, nil).Once()
			svc := newTestNewsService(provider)
			svc.state.Items = []news.Item{{Title: "old"}}
			svc.state.Err = LoadFailedMessage

			svc.LoadMore(context.Background(), []string{"World"})

			state := svc.Snapshot()
			require.Equal(t, []string{"old"}, titlesOf(state.Items))
			require.Empty(t, state.Err)
		})
	}
}

func TestNewsService_RefreshFailureFallsBackWithError(t *testing.T) {
	provider := &mockTextProvider{}
	provider.On("SendTextPrompt", mock.Anything, mock.Anything).Return(TextResponse{}, errors.New("503 unavailable")).Once()

	log, hook := logtest.NewNullLogger()
	observer := &recordingObserver{}
	svc := NewNewsService(provider, log, fixedNow)
	svc.Observer = observer
	svc.state.Items = []news.Item{{Title: "old"}}

	svc.Refresh(context.Background(), []string{"World"})

	state := svc.Snapshot()
	require.Equal(t, news.FallbackItems(), state.Items)
	require.Equal(t, LoadFailedMessage, state.Err)
	require.False(t, state.Loading)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.ErrorLevel, entry.Level)
	err, _ := entry.Data[logrus.ErrorKey].(error)
	require.ErrorIs(t, err, ErrProviderRequestFailed)

	require.Equal(t, []FetchOutcome{OutcomeFailed}, observer.outcomes)
	require.Equal(t, []FetchMode{ModeReplace}, observer.modes)
}

func TestNewsService_AppendFailureIsSilent(t *testing.T) {
	provider := &mockTextProvider{}
	provider.On("SendTextPrompt", mock.Anything, mock.Anything).Return(TextResponse{}, errors.New("network down")).Once()

	svc := newTestNewsService(provider)
	svc.state.Items = []news.Item{{Title: "A"}, {Title: "B"}}
	svc.state.Err = "previous error"

	svc.LoadMore(context.Background(), []string{"World"})

	state := svc.Snapshot()
	require.Equal(t, []string{"A", "B"}, titlesOf(state.Items))
	require.Equal(t, "previous error", state.Err)
	require.False(t, state.LoadingMore)
}

func TestNewsService_NoProviderFallsBack(t *testing.T) {
	svc := newTestNewsService(nil)
	svc.Refresh(context.Background(), []string{"World"})

	state := svc.Snapshot()
	require.Len(t, state.Items, 6)
	require.Equal(t, LoadFailedMessage, state.Err)
}

type blockingProvider struct {
	entered chan struct{}
	release chan struct{}
	resp    TextResponse
	err     error
}

func (p *blockingProvider) SendTextPrompt(_ context.Context, _ TextRequest) (TextResponse, error) {
	p.entered <- struct{}{}
	<-p.release
	return p.resp, p.err
}

func TestNewsService_FlagHygiene(t *testing.T) {
	tests := []struct {
		name   string
		append bool
		err    error
	}{
		{name: "replace success"},
		{name: "replace failure", err: errors.New("boom")},
		{name: "append success", append: true},
		{name: "append failure", append: true, err: errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &blockingProvider{
				entered: make(chan struct{}),
				release: make(chan struct{}),
				resp:    TextResponse{Text: `[{"title":"N"}]`},
				err:     tt.err,
			}
			svc := newTestNewsService(provider)
			svc.state.Items = []news.Item{{Title: "A"}}

			before := svc.Snapshot()
			require.False(t, before.Loading)
			require.False(t, before.LoadingMore)

			done := make(chan struct{})
			go func() {
				svc.Request(context.Background(), []string{"World"}, tt.append)
				close(done)
			}()

			<-provider.entered
			during := svc.Snapshot()
			require.Equal(t, !tt.append, during.Loading)
			require.Equal(t, tt.append, during.LoadingMore)
			require.False(t, svc.CanLoadMore())

			close(provider.release)
			<-done

			after := svc.Snapshot()
			require.False(t, after.Loading)
			require.False(t, after.LoadingMore)
		})
	}
}

func TestNewsService_CanLoadMore(t *testing.T) {
	svc := newTestNewsService(nil)
	require.False(t, svc.CanLoadMore(), "empty collection")

	svc.state.Items = []news.Item{{Title: "A"}}
	require.True(t, svc.CanLoadMore())
}

func TestNewsService_SnapshotIsCopy(t *testing.T) {
	svc := newTestNewsService(nil)
	svc.state.Items = []news.Item{{Title: "A"}}

	snapshot := svc.Snapshot()
	snapshot.Items[0].Title = "changed"

	require.Equal(t, "A", svc.Items()[0].Title)
}

func TestAppendUnseen(t *testing.T) {
	existing := []news.Item{{Title: "A"}, {Title: "B"}}
	got := AppendUnseen(existing, []news.Item{{Title: "B"}, {Title: "C"}})
	require.Equal(t, []string{"A", "B", "C"}, titlesOf(got))
	require.Len(t, existing, 2, "existing slice must not be modified")
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "plain", text: `[1,2]`, want: `[1,2]`},
		{name: "wrapped", text: "```json\n[{\"a\":1}]\n```", want: `[{"a":1}]`},
		{name: "nested", text: `x [[1],[2]] y [3]`, want: `[[1],[2]]`},
		{name: "bracket in string", text: `[{"title":"a ] b"}] tail`, want: `[{"title":"a ] b"}]`},
		{name: "escaped quote", text: `[{"title":"say \"]\""}]`, want: `[{"title":"say \"]\""}]`},
		{name: "unbalanced", text: `[{"title":"x"}`, want: ""},
		{name: "none", text: `{"title":"x"}`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONArray(tt.text); got != tt.want {
				t.Fatalf("extractJSONArray() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildNewsPrompt(t *testing.T) {
	prompt := buildNewsPrompt([]string{"Technology", "Health"})
	for _, want := range []string{"Technology, Health", `"title", "summary", "category", "sourceName"`, "web search", "different from generic top stories"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q: %q", want, prompt)
		}
	}
}
