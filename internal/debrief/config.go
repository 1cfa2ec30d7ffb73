package debrief

import "time"

// Config holds debrief generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   768,
		Temperature: 0.6,
		Timeout:     30 * time.Second,
	}
}
