package debrief

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/llm"
)

// ErrNoProvider is returned by Generate when no model is configured.
var ErrNoProvider = errors.New("debrief: no LLM provider configured")

// Service builds debriefs, preferring the model and falling back to the
// rule-based debrief. A nil provider is allowed.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

func NewService(provider llm.Provider, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

// HasProvider reports whether Generate can reach a model.
func (s *Service) HasProvider() bool {
	return s != nil && s.provider != nil
}

type debriefOutput struct {
	Headline  string   `json:"headline"`
	Strengths []string `json:"strengths"`
	NextSteps []string `json:"next_steps"`
}

// Generate asks the model for a debrief.
func (s *Service) Generate(ctx context.Context, in Input) (Debrief, error) {
	if !s.HasProvider() {
		return Debrief{}, ErrNoProvider
	}
	ctx = llm.WithPurpose(ctx, "debrief")
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.UserPrompt(systemPrompt, buildUserMessage(in))
	req.Schema = Schema
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return Debrief{}, fmt.Errorf("debrief generation: %w", err)
	}

	var out debriefOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Debrief{}, fmt.Errorf("parse debrief response: %w", err)
	}
	return Debrief{
		Headline:  out.Headline,
		Strengths: out.Strengths,
		NextSteps: out.NextSteps,
		Source:    SourceLLM,
	}, nil
}

// Build returns the model's debrief, or the rule-based one when the model
// is unavailable. It never fails.
func (s *Service) Build(ctx context.Context, in Input) Debrief {
	if !s.HasProvider() {
		return Fallback(in)
	}
	d, err := s.Generate(ctx, in)
	if err != nil {
		s.logger.Warn("falling back to rule-based debrief", zap.Error(err))
		return Fallback(in)
	}
	return d
}

// ModelID returns the configured model, or "" without a provider.
func (s *Service) ModelID() string {
	if !s.HasProvider() {
		return ""
	}
	return s.provider.ModelID()
}
