// Package feed provides a keyless news provider backed by RSS/Atom feeds.
package feed

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"
	"github.com/tesso57/headlines/internal/application/usecase"
	"github.com/tesso57/headlines/internal/domain/news"
)

const (
	feedAcceptHeader = "application/atom+xml, application/rss+xml, application/feed+json, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"
	defaultTimeout   = 10 * time.Second
	maxSummaryRunes  = 240
)

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// ParserFunc is exposed for testing.
// It allows mocking the feed parsing logic.
var ParserFunc = defaultParser

func defaultParser(ctx context.Context, url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "Headlines/1.0"
	fp.Client = &http.Client{Transport: acceptTransport{base: http.DefaultTransport}}
	return fp.ParseURLWithContext(url, ctx)
}

type entry struct {
	item news.Item
	link string
	date time.Time
}

// Provider answers news prompts from configured feeds.
// It implements usecase.TextProvider and remembers which headlines it has
// already returned so repeated calls surface fresh stories.
type Provider struct {
	Sources map[string][]string
	Timeout time.Duration
	Log     logrus.FieldLogger

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewProvider creates a feed provider over category-keyed sources.
func NewProvider(sources map[string][]string, timeout time.Duration, log logrus.FieldLogger) *Provider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		log = logger
	}
	return new(Provider{
		Sources: sources,
		Timeout: timeout,
		Log:     log,
		seen:    make(map[string]struct{}),
	})
}

// SendTextPrompt ignores the prompt text and reads the feeds of the requested
// categories. The reply is a JSON array of items with item links as citations.
func (p *Provider) SendTextPrompt(ctx context.Context, req usecase.TextRequest) (usecase.TextResponse, error) {
	byCategory, err := p.fetchCategories(ctx, req.Categories)
	if err != nil {
		return usecase.TextResponse{}, err
	}

	count := req.Count
	if count <= 0 {
		count = usecase.ItemsPerRequest
	}
	picked := p.pick(req.Categories, byCategory, count)

	items := make([]news.Item, len(picked))
	citations := make([]usecase.Citation, len(picked))
	for i, e := range picked {
		items[i] = e.item
		citations[i] = usecase.Citation{URI: e.link, Title: e.item.Title}
	}
	body, err := json.Marshal(items)
	if err != nil {
		return usecase.TextResponse{}, fmt.Errorf("encode feed items: %w", err)
	}
	return usecase.TextResponse{Text: string(body), Citations: citations}, nil
}

func (p *Provider) fetchCategories(ctx context.Context, categories []string) (map[string][]entry, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		requested int
		errs      []error
	)
	byCategory := make(map[string][]entry, len(categories))

	for _, category := range categories {
		for _, source := range p.Sources[category] {
			source := strings.TrimSpace(source)
			if source == "" {
				continue
			}
			requested++
			wg.Go(func() {
				entries, err := fetchSource(ctx, category, source)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					p.Log.WithError(err).WithField("source", source).Warn("feed fetch failed")
					errs = append(errs, fmt.Errorf("%s: %w", source, err))
					return
				}
				byCategory[category] = append(byCategory[category], entries...)
			})
		}
	}
	wg.Wait()

	if requested == 0 {
		return nil, fmt.Errorf("no feed sources configured for %s", strings.Join(categories, ", "))
	}
	if len(errs) == requested {
		return nil, fmt.Errorf("all %d feed sources failed: %w", requested, errors.Join(errs...))
	}
	for category := range byCategory {
		slices.SortStableFunc(byCategory[category], func(a, b entry) int {
			return b.date.Compare(a.date)
		})
	}
	return byCategory, nil
}

// pick fills count slots round-robin across categories, newest first. Entries not
// returned by an earlier call come first; already returned ones fill what is left so
// a refresh over a quiet feed still answers with real headlines.
func (p *Provider) pick(categories []string, byCategory map[string][]entry, count int) []entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	taken := make(map[string]struct{}, count)
	take := func(e entry) bool {
		key := titleKey(e)
		if _, dup := taken[key]; dup {
			return false
		}
		taken[key] = struct{}{}
		return true
	}

	picked := roundRobin(categories, byCategory, count, func(e entry) bool {
		if _, seen := p.seen[titleKey(e)]; seen {
			return false
		}
		return take(e)
	})
	if len(picked) < count {
		picked = append(picked, roundRobin(categories, byCategory, count-len(picked), take)...)
	}
	for _, e := range picked {
		p.seen[titleKey(e)] = struct{}{}
	}
	return picked
}

func roundRobin(categories []string, byCategory map[string][]entry, count int, accept func(entry) bool) []entry {
	cursor := make(map[string]int, len(categories))
	picked := make([]entry, 0, count)
	for len(picked) < count {
		progressed := false
		for _, category := range categories {
			if len(picked) == count {
				break
			}
			entries := byCategory[category]
			for cursor[category] < len(entries) {
				e := entries[cursor[category]]
				cursor[category]++
				if !accept(e) {
					continue
				}
				picked = append(picked, e)
				progressed = true
				break
			}
		}
		if !progressed {
			break
		}
	}
	return picked
}

func titleKey(e entry) string {
	return strings.ToLower(e.item.Title)
}

func fetchSource(ctx context.Context, category, source string) ([]entry, error) {
	parsed, err := ParserFunc(ctx, source)
	if err != nil {
		return nil, err
	}
	if parsed == nil {
		return nil, errors.New("empty feed")
	}

	feedName := strings.TrimSpace(parsed.Title)
	entries := make([]entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		title := collapseSpace(item.Title)
		if title == "" {
			continue
		}
		var date time.Time
		if item.PublishedParsed != nil {
			date = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			date = *item.UpdatedParsed
		}
		entries = append(entries, entry{
			item: news.Item{
				Title:      title,
				Summary:    Summarize(cmp.Or(item.Description, item.Content)),
				Category:   category,
				SourceName: cmp.Or(feedName, hostOf(item.Link)),
			},
			link: strings.TrimSpace(item.Link),
			date: date,
		})
	}
	return entries, nil
}

// Summarize strips markup and trims the text to its first sentence.
func Summarize(raw string) string {
	text := StripHTML(raw)
	if idx := strings.Index(text, ". "); idx >= 0 {
		text = text[:idx+1]
	}
	if utf8.RuneCountInString(text) > maxSummaryRunes {
		runes := []rune(text)
		text = strings.TrimSpace(string(runes[:maxSummaryRunes-1])) + "…"
	}
	return text
}

// StripHTML returns the visible text of an HTML fragment.
func StripHTML(raw string) string {
	if !strings.ContainsAny(raw, "<&") {
		return collapseSpace(raw)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return collapseSpace(raw)
	}
	doc.Find("script, style").Remove()
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hostOf(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
