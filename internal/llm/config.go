package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	Provider string

	Anthropic  Settings
	OpenAI     Settings
	Gemini     Settings
	OpenRouter Settings
	Retry      RetryConfig

	// Timeout bounds a whole Generate call including retries.
	Timeout time.Duration
}

// Settings configures one provider. BaseURL is honoured by the
// OpenAI-compatible providers only.
type Settings struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  Settings{Model: "claude-haiku"},
		OpenAI:     Settings{Model: "gpt-4o-mini"},
		Gemini:     Settings{Model: "gemini-flash"},
		OpenRouter: Settings{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// discoveryOrder lists the standard API key variables probed by
// DiscoverConfig, highest priority first.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DiscoverConfig returns a Config for the first provider whose standard
// API key variable is set.
func DiscoverConfig() (Config, bool) {
	for _, d := range discoveryOrder {
		key := os.Getenv(d.env)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = d.provider
		cfg.settings(d.provider).APIKey = key
		return cfg, true
	}
	return Config{}, false
}

func (c *Config) settings(provider string) *Settings {
	switch provider {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	s := c.settings(c.Provider)
	if s == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if s.APIKey == "" {
		return fmt.Errorf("RESILIO_LLM_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}

// Active returns the settings of the selected provider.
func (c Config) Active() Settings {
	if s := c.settings(c.Provider); s != nil {
		return *s
	}
	return Settings{}
}
