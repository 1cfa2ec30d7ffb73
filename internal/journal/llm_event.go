package journal

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// LLMUsage aggregates the LLM calls made during the run.
type LLMUsage struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

func (j *Journal) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	success := 0
	if data.Success {
		success = 1
	}
	q, args := j.builder().Insert("llm_requests").
		Columns("run_id", "provider", "model", "purpose", "input_tokens",
			"output_tokens", "latency_ms", "success", "error_message", "at_ms").
		Values(j.runID, data.Provider, data.Model, data.Purpose, data.InputTokens,
			data.OutputTokens, data.LatencyMs, success, data.ErrorMessage, j.now().UnixMilli()).
		Query()
	if err := j.exec(ctx, q, args); err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}

// LLMUsage sums token usage over every recorded request.
func (j *Journal) LLMUsage(ctx context.Context) (LLMUsage, error) {
	b := j.builder()
	q, args := b.Select("success", "input_tokens", "output_tokens").
		From(b.Table("llm_requests")).
		Where(entsql.EQ("run_id", j.runID)).
		Query()

	rows, err := j.query(ctx, q, args)
	if err != nil {
		return LLMUsage{}, fmt.Errorf("query llm usage: %w", err)
	}
	defer rows.Close()

	var u LLMUsage
	for rows.Next() {
		var success, in, out int
		if err := rows.Scan(&success, &in, &out); err != nil {
			return LLMUsage{}, fmt.Errorf("scan llm usage: %w", err)
		}
		u.Requests++
		if success == 0 {
			u.Failures++
		}
		u.InputTokens += in
		u.OutputTokens += out
	}
	return u, rows.Err()
}

// LLMRequest is one stored LLM call.
type LLMRequest struct {
	ID int64
	At time.Time
	LLMRequestEventData
}

// LLMRequests returns this run's LLM calls, newest first. limit <= 0
// returns all of them.
func (j *Journal) LLMRequests(ctx context.Context, limit int) ([]LLMRequest, error) {
	b := j.builder()
	sel := b.Select("id", "provider", "model", "purpose", "input_tokens", "output_tokens",
		"latency_ms", "success", "error_message", "at_ms").
		From(b.Table("llm_requests")).
		Where(entsql.EQ("run_id", j.runID)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	rows, err := j.query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("query llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequest
	for rows.Next() {
		var (
			r       LLMRequest
			success int
			atMs    int64
		)
		if err := rows.Scan(&r.ID, &r.Provider, &r.Model, &r.Purpose, &r.InputTokens,
			&r.OutputTokens, &r.LatencyMs, &success, &r.ErrorMessage, &atMs); err != nil {
			return nil, fmt.Errorf("scan llm request: %w", err)
		}
		r.Success = success != 0
		r.At = time.UnixMilli(atMs)
		out = append(out, r)
	}
	return out, rows.Err()
}
