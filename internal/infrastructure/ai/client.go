// Package ai wires the configured news and image providers.
package ai

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tesso57/headlines/internal/application/settings"
	"github.com/tesso57/headlines/internal/application/usecase"
	"github.com/tesso57/headlines/internal/infrastructure/ai/codexcli"
	"github.com/tesso57/headlines/internal/infrastructure/ai/gemini"
	"github.com/tesso57/headlines/internal/infrastructure/feed"
)

// Providers groups the text provider used for news and the optional image provider.
// Image is nil when no image backend is configured; callers fall back to placeholders.
type Providers struct {
	Text  usecase.TextProvider
	Image usecase.ImageProvider
}

// NewProviders builds providers from settings.
func NewProviders(ctx context.Context, cfg settings.Settings, log logrus.FieldLogger) (Providers, error) {
	var images usecase.ImageProvider
	var geminiClient *gemini.Client
	if strings.TrimSpace(cfg.Gemini.APIKey) != "" {
		client, err := gemini.NewClient(ctx, geminiConfig(cfg.Gemini))
		if err != nil {
			return Providers{}, err
		}
		geminiClient = client
		images = client
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case settings.ProviderGemini, "":
		if geminiClient == nil {
			// Start without providers so the reader shows the load error over the fallback set.
			logger(log).Warnf("provider %q needs gemini.api_key or GEMINI_API_KEY; headlines will not load", settings.ProviderGemini)
			return Providers{}, nil
		}
		return Providers{Text: geminiClient, Image: images}, nil
	case settings.ProviderCodex:
		return Providers{Text: codexcli.NewClient(codexConfig(cfg.Codex)), Image: images}, nil
	case settings.ProviderFeed:
		sources := cfg.FeedSources(feedCategories(cfg))
		timeout := time.Duration(cfg.Feed.TimeoutSeconds) * time.Second
		return Providers{Text: feed.NewProvider(sources, timeout, log), Image: images}, nil
	default:
		return Providers{}, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func logger(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func feedCategories(cfg settings.Settings) []string {
	categories := make([]string, 0, len(cfg.Feed.Sources))
	for category := range cfg.Feed.Sources {
		categories = append(categories, category)
	}
	return categories
}

func geminiConfig(cfg settings.GeminiConfig) gemini.Config {
	return gemini.Config{
		APIKey:     cfg.APIKey,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

func codexConfig(cfg settings.CodexConfig) codexcli.Config {
	return codexcli.Config{
		Command:         cfg.Command,
		Model:           cfg.Model,
		ReasoningEffort: cfg.ReasoningEffort,
		Verbosity:       cfg.Verbosity,
		Sandbox:         cfg.Sandbox,
		Timeout:         time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}
