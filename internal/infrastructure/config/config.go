// Package config handles configuration loading and saving.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tesso57/headlines/internal/application/settings"
	"github.com/tesso57/headlines/internal/domain/news"
	"gopkg.in/yaml.v3"
)

// DefaultFeedSources maps categories to public feeds used by the feed provider.
var DefaultFeedSources = map[string][]string{
	"World":         {"https://feeds.bbci.co.uk/news/world/rss.xml"},
	"Technology":    {"https://feeds.bbci.co.uk/news/technology/rss.xml"},
	"Science":       {"https://feeds.bbci.co.uk/news/science_and_environment/rss.xml"},
	"Business":      {"https://feeds.bbci.co.uk/news/business/rss.xml"},
	"Sports":        {"https://feeds.bbci.co.uk/sport/rss.xml"},
	"Health":        {"https://feeds.bbci.co.uk/news/health/rss.xml"},
	"Entertainment": {"https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml"},
}

// Store holds the loaded application settings.
type Store struct {
	Settings   settings.Settings
	configPath string
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.configPath
}

// Load loads the configuration from the specified path or default location.
func Load(customPath ...string) (*Store, error) {
	var configPath string
	if len(customPath) > 0 && customPath[0] != "" {
		configPath = customPath[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(home, ".config", "headlines", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := settings.Settings{}
	store := &Store{Settings: cfg, configPath: configPath}

	var options []kong.Option
	exists := false
	if _, err := os.Stat(configPath); err == nil {
		exists = true
		options = append(options, kong.Configuration(yamlKongLoader, configPath))
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse([]string{}); err != nil {
		return nil, err
	}

	if exists {
		sources, err := loadFeedSources(configPath)
		if err != nil {
			return nil, err
		}
		cfg.Feed.Sources = sources
	}

	store.Settings = cfg
	store.Settings.Categories = normalizeCategories(store.Settings.Categories)
	store.Settings.Provider = strings.ToLower(strings.TrimSpace(store.Settings.Provider))
	store.Settings.Feed.Sources = normalizeSources(store.Settings.Feed.Sources)
	if len(store.Settings.Feed.Sources) == 0 {
		store.Settings.Feed.Sources = cloneSources(DefaultFeedSources)
	}
	if store.Settings.Log.File == "" {
		store.Settings.Log.File = filepath.Join(defaultStateHome(), "headlines", "headlines.log")
	}

	if !exists {
		// Keys picked up from the environment stay out of the file.
		defaults := Store{Settings: store.Settings, configPath: configPath}
		defaults.Settings.Gemini.APIKey = ""
		if err := defaults.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return store, nil
}

func loadFeedSources(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var doc struct {
		Feed struct {
			Sources map[string][]string `yaml:"sources"`
		} `yaml:"feed"`
	}
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read feed sources: %w", err)
	}
	return doc.Feed.Sources, nil
}

func normalizeCategories(categories []string) []string {
	normalized := make([]string, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))
	for _, entry := range categories {
		for item := range strings.SplitSeq(entry, ",") {
			label := news.NormalizeCategory(item)
			if label == "" {
				continue
			}
			if _, dup := seen[label]; dup {
				continue
			}
			seen[label] = struct{}{}
			normalized = append(normalized, label)
		}
	}
	if len(normalized) == 0 {
		return []string{news.DefaultCategory}
	}
	return normalized
}

func normalizeSources(sources map[string][]string) map[string][]string {
	if len(sources) == 0 {
		return nil
	}
	normalized := make(map[string][]string, len(sources))
	for category, urls := range sources {
		label := news.NormalizeCategory(category)
		if label == "" {
			continue
		}
		for _, url := range urls {
			for item := range strings.FieldsSeq(url) {
				normalized[label] = append(normalized[label], item)
			}
		}
	}
	return normalized
}

func cloneSources(sources map[string][]string) map[string][]string {
	cloned := make(map[string][]string, len(sources))
	for category, urls := range sources {
		cloned[category] = append([]string(nil), urls...)
	}
	return cloned
}

func defaultStateHome() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return stateHome
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return nil, nil // Return nil resolver (no op)
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		names := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}
		for _, name := range names {
			if v, ok := values[name]; ok {
				return v, nil
			}

			// Nested dot-notation, e.g. "gemini.text_model".
			parts := strings.Split(name, ".")
			if len(parts) > 1 {
				curr := values
				for i, part := range parts {
					if i == len(parts)-1 {
						if v, ok := curr[part]; ok {
							return v, nil
						}
					} else {
						if nextMap, ok := curr[part].(map[string]any); ok {
							curr = nextMap
						} else {
							break
						}
					}
				}
			}
		}
		return nil, nil
	}
	return f, nil
}

// Save writes the current settings to the config file.
func (s *Store) Save() error {
	f, err := os.Create(s.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return yaml.NewEncoder(f).Encode(s.Settings)
}
