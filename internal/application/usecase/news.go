package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tesso57/headlines/internal/domain/news"
)

const (
	// ItemsPerRequest is the number of items asked from the provider per call.
	ItemsPerRequest = 6

	// LoadFailedMessage is shown when a replace-mode fetch fails.
	LoadFailedMessage = "Failed to load news. Please try again."

	timestampLayout = "15:04"
)

// ErrProviderRequestFailed wraps transport and provider errors.
var ErrProviderRequestFailed = errors.New("provider request failed")

// FetchMode distinguishes replace and append fetches.
type FetchMode string

const (
	ModeReplace FetchMode = "replace"
	ModeAppend  FetchMode = "append"
)

// FetchOutcome classifies how a fetch ended.
type FetchOutcome string

const (
	OutcomeReplaced FetchOutcome = "replaced"
	OutcomeAppended FetchOutcome = "appended"
	OutcomeFallback FetchOutcome = "fallback"
	OutcomeEmpty    FetchOutcome = "empty"
	OutcomeFailed   FetchOutcome = "failed"
)

// NewsState is a snapshot of the displayed collection and fetch flags.
type NewsState struct {
	Items       []news.Item
	Loading     bool
	LoadingMore bool
	Err         string
	UpdatedAt   time.Time
}

// CanLoadMore reports whether an append fetch may start: nothing is in flight
// and there is a non-empty list to extend.
func (st NewsState) CanLoadMore() bool {
	return !st.Loading && !st.LoadingMore && len(st.Items) > 0
}

// NewsService fetches news from a text provider and owns the displayed collection.
// Overlapping requests are not serialized; the last one to finish wins.
type NewsService struct {
	Provider TextProvider
	Observer FetchObserver
	Log      logrus.FieldLogger
	Now      func() time.Time

	mu    sync.Mutex
	state NewsState
}

// NewNewsService constructs a NewsService.
func NewNewsService(provider TextProvider, log logrus.FieldLogger, now func() time.Time) *NewsService {
	return new(NewsService{
		Provider: provider,
		Log:      log,
		Now:      now,
	})
}

// Snapshot returns a copy of the current state.
func (s *NewsService) Snapshot() NewsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state
	snapshot.Items = slices.Clone(s.state.Items)
	return snapshot
}

// Items returns a copy of the displayed collection.
func (s *NewsService) Items() []news.Item {
	return s.Snapshot().Items
}

// CanLoadMore reports whether an append fetch may start.
func (s *NewsService) CanLoadMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CanLoadMore()
}

// Refresh replaces the displayed collection with fresh items.
func (s *NewsService) Refresh(ctx context.Context, categories []string) {
	s.Request(ctx, categories, false)
}

// LoadMore appends unseen items to the displayed collection.
func (s *NewsService) LoadMore(ctx context.Context, categories []string) {
	s.Request(ctx, categories, true)
}

// Request fetches items for the categories and merges them into the displayed collection.
func (s *NewsService) Request(ctx context.Context, categories []string, appendMode bool) {
	mode := ModeReplace
	if appendMode {
		mode = ModeAppend
	}
	log := s.logger().WithFields(logrus.Fields{
		"mode":       string(mode),
		"categories": strings.Join(categories, ","),
	})

	s.begin(appendMode)
	defer s.finish()

	candidates, err := s.fetchCandidates(ctx, categories)
	if err != nil {
		if appendMode {
			log.WithError(err).Warn("load more failed")
			s.observe(mode, OutcomeFailed, 0)
			return
		}
		log.WithError(err).Error("news fetch failed, using fallback")
		s.mu.Lock()
		s.state.Err = LoadFailedMessage
		s.state.Items = news.FallbackItems()
		s.mu.Unlock()
		s.observe(mode, OutcomeFailed, 0)
		return
	}

	s.mu.Lock()
	// Any completed fetch clears the error, appends included.
	s.state.Err = ""
	outcome, added := s.merge(candidates, appendMode)
	s.mu.Unlock()

	log.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"added":      added,
		"outcome":    string(outcome),
	}).Info("news fetch finished")
	s.observe(mode, outcome, added)
}

func (s *NewsService) begin(appendMode bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if appendMode {
		s.state.LoadingMore = true
		return
	}
	s.state.Loading = true
	s.state.Err = ""
}

func (s *NewsService) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	s.state.LoadingMore = false
}

func (s *NewsService) fetchCandidates(ctx context.Context, categories []string) ([]news.Item, error) {
	if s.Provider == nil {
		return nil, fmt.Errorf("%w: no text provider configured", ErrProviderRequestFailed)
	}
	resp, err := s.Provider.SendTextPrompt(ctx, TextRequest{
		Prompt:       buildNewsPrompt(categories),
		Categories:   slices.Clone(categories),
		Count:        ItemsPerRequest,
		WebGrounding: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderRequestFailed, err)
	}

	items := parseNewsItems(resp.Text)
	stamp := s.now().Format(timestampLayout)
	for i := range items {
		items[i].Timestamp = stamp
		if i < len(resp.Citations) && resp.Citations[i].URI != "" {
			items[i].SourceURL = resp.Citations[i].URI
		}
	}
	return items, nil
}

// merge must be called with mu held.
func (s *NewsService) merge(candidates []news.Item, appendMode bool) (FetchOutcome, int) {
	switch {
	case len(candidates) > 0 && !appendMode:
		s.state.Items = candidates
		s.state.UpdatedAt = s.now()
		return OutcomeReplaced, len(candidates)
	case len(candidates) > 0:
		fresh := AppendUnseen(s.state.Items, candidates)
		added := len(fresh) - len(s.state.Items)
		s.state.Items = fresh
		if added > 0 {
			s.state.UpdatedAt = s.now()
		}
		return OutcomeAppended, added
	case !appendMode:
		s.state.Items = news.FallbackItems()
		return OutcomeFallback, 0
	default:
		return OutcomeEmpty, 0
	}
}

// AppendUnseen returns existing followed by the candidates whose titles are not already present.
func AppendUnseen(existing, candidates []news.Item) []news.Item {
	seen := news.Titles(existing)
	merged := slices.Clone(existing)
	for _, item := range candidates {
		if _, dup := seen[item.Title]; dup {
			continue
		}
		merged = append(merged, item)
	}
	return merged
}

func (s *NewsService) observe(mode FetchMode, outcome FetchOutcome, added int) {
	if s.Observer != nil {
		s.Observer.ObserveFetch(mode, outcome, added)
	}
}

func (s *NewsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *NewsService) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	return discardLogger
}

var discardLogger = func() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
