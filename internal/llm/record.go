package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/journal"
)

// RecordingProvider writes every request to the journal and the log.
type RecordingProvider struct {
	inner    Provider
	provider string
	repo     journal.EventRepo
	logger   *zap.Logger
}

// WithRecording wraps p. repo and logger may be nil.
func WithRecording(p Provider, provider string, repo journal.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordingProvider{inner: p, provider: provider, repo: repo, logger: logger}
}

func (l *RecordingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := journal.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	fields := []zap.Field{
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", data.Purpose),
		zap.Int64("latency_ms", data.LatencyMs),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if err != nil {
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("llm request", fields...)
	}

	if l.repo != nil {
		if jerr := l.repo.AppendLLMRequest(ctx, data); jerr != nil {
			l.logger.Warn("failed to journal llm request", zap.Error(jerr))
		}
	}
	return resp, err
}
