package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/journal"
)

// NewProvider builds the configured provider wrapped as
// caller → retry → recording → provider.
func NewProvider(ctx context.Context, cfg Config, repo journal.EventRepo, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	recorded := WithRecording(base, cfg.Provider, repo, logger)
	return WithRetry(recorded, cfg.Retry), nil
}
