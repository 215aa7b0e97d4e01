package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(store.Settings.Categories) != 1 || store.Settings.Categories[0] != "World" {
		t.Errorf("Expected default categories [World], got %#v", store.Settings.Categories)
	}
	if store.Settings.Provider != "gemini" {
		t.Errorf("Expected default provider 'gemini', got %q", store.Settings.Provider)
	}
	if store.Settings.Gemini.TextModel != "gemini-2.5-flash" {
		t.Errorf("Expected default text model, got %q", store.Settings.Gemini.TextModel)
	}
	if store.Settings.Gemini.ImageModel != "imagen-4.0-generate-001" {
		t.Errorf("Expected default image model, got %q", store.Settings.Gemini.ImageModel)
	}
	if store.Settings.Speech.Rate != 1.0 || store.Settings.Speech.Pitch != 1.0 {
		t.Errorf("Expected default speech rate/pitch 1.0, got %v/%v", store.Settings.Speech.Rate, store.Settings.Speech.Pitch)
	}
	if store.Settings.Ticker.IntervalMS != 150 {
		t.Errorf("Expected default ticker interval 150, got %d", store.Settings.Ticker.IntervalMS)
	}
	if store.Settings.KeyMap.Toggle != "space" {
		t.Errorf("Expected default KeyMap.Toggle 'space', got %q", store.Settings.KeyMap.Toggle)
	}
	if store.Settings.KeyMap.Speak != "p" {
		t.Errorf("Expected default KeyMap.Speak 'p', got %q", store.Settings.KeyMap.Speak)
	}
	if len(store.Settings.Feed.Sources["Technology"]) == 0 {
		t.Errorf("Expected default feed sources, got %#v", store.Settings.Feed.Sources)
	}
	if filepath.Base(store.Settings.Log.File) != "headlines.log" {
		t.Errorf("Expected default log file, got %q", store.Settings.Log.File)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file not created")
	}
	if store.Path() != configPath {
		t.Errorf("Path() = %q, want %q", store.Path(), configPath)
	}
}

func TestLoad_DoesNotPersistEnvAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret-key")
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Settings.Gemini.APIKey != "secret-key" {
		t.Fatalf("APIKey = %q, want env value", store.Settings.Gemini.APIKey)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "secret-key") {
		t.Fatalf("config file must not contain the env API key:\n%s", data)
	}
}

func TestLoad_FromFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `categories:
  - technology
  - " science "
  - Technology
provider: Feed
gemini:
  text_model: gemini-test
ticker:
  interval_ms: 80
feed:
  timeout_seconds: 3
  sources:
    sports:
      - " https://example.com/sport.xml "
      - |
          https://example.com/one.atom
          https://example.com/two.atom
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wantCategories := []string{"Technology", "Science"}
	if len(store.Settings.Categories) != len(wantCategories) {
		t.Fatalf("Categories = %#v, want %#v", store.Settings.Categories, wantCategories)
	}
	for i, want := range wantCategories {
		if store.Settings.Categories[i] != want {
			t.Fatalf("Categories[%d] = %q, want %q", i, store.Settings.Categories[i], want)
		}
	}
	if store.Settings.Provider != "feed" {
		t.Errorf("Provider = %q, want feed", store.Settings.Provider)
	}
	if store.Settings.Gemini.TextModel != "gemini-test" {
		t.Errorf("TextModel = %q, want gemini-test", store.Settings.Gemini.TextModel)
	}
	if store.Settings.Ticker.IntervalMS != 80 {
		t.Errorf("IntervalMS = %d, want 80", store.Settings.Ticker.IntervalMS)
	}
	if store.Settings.Feed.TimeoutSeconds != 3 {
		t.Errorf("Feed.TimeoutSeconds = %d, want 3", store.Settings.Feed.TimeoutSeconds)
	}

	wantSources := []string{
		"https://example.com/sport.xml",
		"https://example.com/one.atom",
		"https://example.com/two.atom",
	}
	got := store.Settings.Feed.Sources["Sports"]
	if len(got) != len(wantSources) {
		t.Fatalf("Sports sources = %#v, want %#v", got, wantSources)
	}
	for i := range wantSources {
		if got[i] != wantSources[i] {
			t.Fatalf("Sports[%d] = %q, want %q", i, got[i], wantSources[i])
		}
	}
	if _, ok := store.Settings.Feed.Sources["World"]; ok {
		t.Error("configured sources must replace the defaults")
	}
}

func TestLoad_Corrupt(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	_ = os.WriteFile(configPath, []byte("invalid_yaml: ["), 0600)

	if _, err := Load(configPath); err == nil {
		t.Error("Expected error for corrupt config read, got nil")
	}
}

func TestNormalizeCategories(t *testing.T) {
	got := normalizeCategories([]string{"world, sports", "", "WORLD"})
	if len(got) != 2 || got[0] != "World" || got[1] != "Sports" {
		t.Fatalf("normalizeCategories() = %#v", got)
	}
	if got := normalizeCategories(nil); len(got) != 1 || got[0] != "World" {
		t.Fatalf("normalizeCategories(nil) = %#v, want [World]", got)
	}
}
