// Package settings defines application-level configuration data.
package settings

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up          string `yaml:"up" kong:"help='Up key',default='k,up'"`
	Down        string `yaml:"down" kong:"help='Down key',default='j,down'"`
	Left        string `yaml:"left" kong:"help='Categories pane key',default='h,left'"`
	Right       string `yaml:"right" kong:"help='Articles pane key',default='l,right'"`
	UpPage      string `yaml:"up_page" kong:"help='Page Up key',default='ctrl+u'"`
	DownPage    string `yaml:"down_page" kong:"help='Page Down key',default='ctrl+d'"`
	Top         string `yaml:"top" kong:"help='Top key',default='g'"`
	Bottom      string `yaml:"bottom" kong:"help='Bottom key',default='G'"`
	Open        string `yaml:"open" kong:"help='Open article key',default='enter'"`
	Toggle      string `yaml:"toggle" kong:"help='Toggle category key',default='space'"`
	Clear       string `yaml:"clear" kong:"help='Reset categories key',default='c'"`
	Back        string `yaml:"back" kong:"help='Back key',default='esc'"`
	Quit        string `yaml:"quit" kong:"help='Quit key',default='q'"`
	Refresh     string `yaml:"refresh" kong:"help='Refresh key',default='r'"`
	Speak       string `yaml:"speak" kong:"help='Read aloud key',default='p'"`
	OpenImage   string `yaml:"open_image" kong:"help='Open illustration key',default='i'"`
	OpenSource  string `yaml:"open_source" kong:"help='Open source link key',default='o'"`
	ToggleFocus string `yaml:"toggle_focus" kong:"help='Switch pane key',default='tab'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	Accent   string `yaml:"accent" kong:"help='Accent color',default='205'"`
	Ticker   string `yaml:"ticker" kong:"help='Ticker background color',default='124'"`
	Category string `yaml:"category" kong:"help='Category label color',default='244'"`
	Glamour  string `yaml:"glamour" kong:"help='Glamour style for article details',default='dark'"`
}

// GeminiConfig defines Gemini API settings.
type GeminiConfig struct {
	APIKey         string `yaml:"api_key,omitempty" kong:"help='Gemini API key',env='GEMINI_API_KEY,GOOGLE_API_KEY'"`
	TextModel      string `yaml:"text_model" kong:"help='Text model',default='gemini-2.5-flash'"`
	ImageModel     string `yaml:"image_model" kong:"help='Image model',default='imagen-4.0-generate-001'"`
	TimeoutSeconds int    `yaml:"timeout_seconds" kong:"help='Request timeout in seconds',default='60'"`
}

// CodexConfig defines Codex CLI integration settings.
type CodexConfig struct {
	Command         string `yaml:"command" kong:"help='Codex command',default='codex'"`
	Model           string `yaml:"model" kong:"help='Codex model',default='gpt-5'"`
	ReasoningEffort string `yaml:"reasoning_effort" kong:"help='Reasoning effort (none/minimal/low/medium/high/xhigh)',default='low'"`
	Verbosity       string `yaml:"verbosity" kong:"help='Model verbosity (low/medium/high)',default='low'"`
	TimeoutSeconds  int    `yaml:"timeout_seconds" kong:"help='Timeout in seconds',default='90'"`
	Sandbox         string `yaml:"sandbox" kong:"help='Sandbox mode (read-only/workspace-write/danger-full-access)',default='read-only'"`
}

// FeedConfig defines the RSS/Atom backed provider.
type FeedConfig struct {
	Sources        map[string][]string `yaml:"sources" kong:"-"`
	TimeoutSeconds int                 `yaml:"timeout_seconds" kong:"help='Per-feed timeout in seconds',default='10'"`
}

// SpeechConfig defines read-aloud settings.
type SpeechConfig struct {
	Command string  `yaml:"command" kong:"help='Speech command (espeak-ng, espeak, say, spd-say); empty picks the first available'"`
	Rate    float64 `yaml:"rate" kong:"help='Speech rate multiplier',default='1.0'"`
	Pitch   float64 `yaml:"pitch" kong:"help='Speech pitch multiplier',default='1.0'"`
}

// TickerConfig defines the breaking news ticker.
type TickerConfig struct {
	IntervalMS int `yaml:"interval_ms" kong:"help='Ticker scroll interval in milliseconds',default='150'"`
}

// LogConfig defines log output.
type LogConfig struct {
	File  string `yaml:"file" kong:"help='Log file path'"`
	Level string `yaml:"level" kong:"help='Log level',default='info'"`
}

// MetricsConfig defines the optional Prometheus listener.
type MetricsConfig struct {
	Listen string `yaml:"listen" kong:"help='Address for the /metrics listener; empty disables it'"`
}

// Provider names.
const (
	ProviderGemini = "gemini"
	ProviderCodex  = "codex"
	ProviderFeed   = "feed"
)

// Settings represents the application configuration.
type Settings struct {
	Categories []string      `yaml:"categories" kong:"help='Initially selected categories',default='World'"`
	Provider   string        `yaml:"provider" kong:"help='News provider (gemini/codex/feed)',default='gemini'"`
	Gemini     GeminiConfig  `yaml:"gemini" kong:"embed,prefix='gemini.'"`
	Codex      CodexConfig   `yaml:"codex" kong:"embed,prefix='codex.'"`
	Feed       FeedConfig    `yaml:"feed" kong:"embed,prefix='feed.'"`
	Speech     SpeechConfig  `yaml:"speech" kong:"embed,prefix='speech.'"`
	Ticker     TickerConfig  `yaml:"ticker" kong:"embed,prefix='ticker.'"`
	KeyMap     KeyMapConfig  `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme      ThemeConfig   `yaml:"theme" kong:"embed,prefix='theme.'"`
	Log        LogConfig     `yaml:"log" kong:"embed,prefix='log.'"`
	Metrics    MetricsConfig `yaml:"metrics" kong:"embed,prefix='metrics.'"`
}

// FeedSources returns the feed URLs configured for the categories, in category order.
func (s Settings) FeedSources(categories []string) map[string][]string {
	result := make(map[string][]string, len(categories))
	for _, category := range categories {
		if urls := s.Feed.Sources[category]; len(urls) > 0 {
			result[category] = append([]string(nil), urls...)
		}
	}
	return result
}
