package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/app"
	"github.com/abhisek/resilio/internal/config"
	"github.com/abhisek/resilio/internal/content"
	"github.com/abhisek/resilio/internal/debrief"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/llm"
	"github.com/abhisek/resilio/internal/logging"
	"github.com/abhisek/resilio/internal/screen"
)

// runApp loads configuration and content, builds dependencies, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log, cfg.Env)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	module, err := content.Load(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	j, err := journal.Open(ctx)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	provider, llmCfg := buildProvider(ctx, cfg, j, logger)
	if provider == nil {
		fmt.Fprintln(os.Stderr, "No LLM provider configured; the wrap-up uses the built-in debrief.")
	}

	return app.Run(app.Options{
		Module:  module,
		Journal: j,
		Debrief: newDebriefService(provider, llmCfg, logger),
		Logger:  logger.With(zap.String("run_id", j.RunID())),
		Timing:  screenTiming(cfg),
	})
}

// screenTiming maps config timing onto the screens. Zero values are left
// for the content file to fill.
func screenTiming(cfg *config.Config) screen.Timing {
	return screen.Timing{
		FeedbackDelay:   cfg.Timing.FeedbackDelay,
		StressCountdown: cfg.Timing.StressCountdown,
		BreathingCycles: cfg.Timing.BreathingCycles,
	}
}

// buildProvider returns the configured provider, or nil when none is
// configured or it fails to initialize.
func buildProvider(ctx context.Context, cfg *config.Config, repo journal.EventRepo, logger *zap.Logger) (llm.Provider, llm.Config) {
	llmCfg, ok := cfg.LLMConfig()
	if !ok {
		return nil, llmCfg
	}
	provider, err := llm.NewProvider(ctx, llmCfg, repo, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		logger.Warn("llm provider unavailable", zap.Error(err))
		return nil, llmCfg
	}
	logger.Info("llm provider ready",
		zap.String("provider", llmCfg.Provider),
		zap.String("model", provider.ModelID()))
	return provider, llmCfg
}

func newDebriefService(provider llm.Provider, llmCfg llm.Config, logger *zap.Logger) *debrief.Service {
	dc := debrief.DefaultConfig()
	if llmCfg.Timeout > 0 {
		dc.Timeout = llmCfg.Timeout
	}
	return debrief.NewService(provider, dc, logger)
}
