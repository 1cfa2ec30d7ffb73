// Package config loads resilio settings from an optional YAML file and
// RESILIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/resilio/internal/llm"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "RESILIO"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env     string  `mapstructure:"env"` // local, production
	Log     Log     `mapstructure:"log"`
	Content Content `mapstructure:"content"`
	Timing  Timing  `mapstructure:"timing"`
	LLM     LLM     `mapstructure:"llm"`
}

type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty disables logging
}

type Content struct {
	Path string `mapstructure:"path"` // empty uses the embedded module
}

// Timing holds the delays that drive the timed exercises. A zero
// countdown or cycle count keeps the value from the content file.
type Timing struct {
	FeedbackDelay   time.Duration `mapstructure:"feedback_delay"`
	StressCountdown time.Duration `mapstructure:"stress_countdown"`
	BreathingCycles int           `mapstructure:"breathing_cycles"`
}

// LLM configures the optional debrief provider.
type LLM struct {
	Provider string        `mapstructure:"provider"`
	Timeout  time.Duration `mapstructure:"timeout"`

	Anthropic  Provider `mapstructure:"anthropic"`
	OpenAI     Provider `mapstructure:"openai"`
	Gemini     Provider `mapstructure:"gemini"`
	OpenRouter Provider `mapstructure:"openrouter"`
}

type Provider struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Load reads configuration. path may be empty, in which case
// $XDG_CONFIG_HOME/resilio/config.yaml is used if it exists.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := defaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var fileLookupErr viper.ConfigFileNotFoundError
			if !errors.As(err, &fileLookupErr) {
				return nil, fmt.Errorf("error loading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()

	v.SetDefault("env", "local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("content.path", "")
	v.SetDefault("timing.feedback_delay", "3s")
	// Zero defers to the content file.
	v.SetDefault("timing.stress_countdown", "0s")
	v.SetDefault("timing.breathing_cycles", 0)

	// Every key needs a default for AutomaticEnv to see it on Unmarshal.
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", def.Timeout.String())
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", def.Anthropic.Model)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", def.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", def.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", def.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
}

func defaultDir() (string, error) {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "resilio"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "resilio"), nil
}

// Validate rejects settings the exercises cannot run with.
func (c *Config) Validate() error {
	if c.Timing.FeedbackDelay < 0 {
		return fmt.Errorf("timing.feedback_delay must not be negative, got %s", c.Timing.FeedbackDelay)
	}
	if c.Timing.StressCountdown != 0 && c.Timing.StressCountdown < time.Second {
		return fmt.Errorf("timing.stress_countdown must be 0 or at least 1s, got %s", c.Timing.StressCountdown)
	}
	if c.Timing.BreathingCycles < 0 {
		return fmt.Errorf("timing.breathing_cycles must not be negative, got %d", c.Timing.BreathingCycles)
	}
	return nil
}

// LLMConfig translates the llm section into a provider configuration.
// ok is false when no provider is configured and none can be discovered
// from the standard API key variables.
func (c *Config) LLMConfig() (llm.Config, bool) {
	if c.LLM.Provider == "" {
		cfg, ok := llm.DiscoverConfig()
		if ok && c.LLM.Timeout > 0 {
			cfg.Timeout = c.LLM.Timeout
		}
		return cfg, ok
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	cfg.Anthropic.APIKey = c.LLM.Anthropic.APIKey
	cfg.Anthropic.Model = c.LLM.Anthropic.Model
	cfg.OpenAI.APIKey = c.LLM.OpenAI.APIKey
	cfg.OpenAI.Model = c.LLM.OpenAI.Model
	cfg.OpenAI.BaseURL = c.LLM.OpenAI.BaseURL
	cfg.Gemini.APIKey = c.LLM.Gemini.APIKey
	cfg.Gemini.Model = c.LLM.Gemini.Model
	cfg.OpenRouter.APIKey = c.LLM.OpenRouter.APIKey
	cfg.OpenRouter.Model = c.LLM.OpenRouter.Model
	if c.LLM.OpenRouter.BaseURL != "" {
		cfg.OpenRouter.BaseURL = c.LLM.OpenRouter.BaseURL
	}
	return cfg, true
}
