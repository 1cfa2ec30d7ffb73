package journal

import (
	"context"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open test journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpenClose(t *testing.T) {
	j := openTestJournal(t)
	if j.RunID() == "" {
		t.Fatal("expected a run id")
	}
	if j.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	j := openTestJournal(t)

	tests := []struct {
		pragma string
		want   string
	}{
		{"foreign_keys", "1"},
		{"synchronous", "1"},
		{"busy_timeout", "5000"},
	}
	for _, tt := range tests {
		var got string
		if err := j.DB().QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestJournalsAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := openTestJournal(t)
	b := openTestJournal(t)

	if err := a.Record(ctx, Event{Section: "stress", Kind: KindSimulation}); err != nil {
		t.Fatalf("record: %v", err)
	}
	events, err := b.Events(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("second journal sees %d events, want 0", len(events))
	}
}

func TestRecordAndQuery(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return base }

	seed := []Event{
		{Section: "assessment", Kind: KindAnswer, Detail: "emotion=4"},
		{Section: "assessment", Kind: KindAnswer, Detail: "energy=3"},
		{Section: "priorities", Kind: KindDrop, Detail: "t1->q3"},
		{Section: "assessment", Kind: KindComplete, At: base.Add(time.Minute)},
	}
	for _, e := range seed {
		if err := j.Record(ctx, e); err != nil {
			t.Fatalf("record %+v: %v", e, err)
		}
	}

	all, err := j.Events(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d events, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Sequence <= all[i-1].Sequence {
			t.Errorf("sequence not increasing at %d", i)
		}
	}
	if !all[0].At.Equal(base) {
		t.Errorf("At = %v, want %v", all[0].At, base)
	}
	if !all[3].At.Equal(base.Add(time.Minute)) {
		t.Errorf("explicit At not kept: %v", all[3].At)
	}

	answers, err := j.Events(ctx, QueryOpts{Section: "assessment", Kind: KindAnswer})
	if err != nil {
		t.Fatalf("filtered events: %v", err)
	}
	if len(answers) != 2 || answers[1].Detail != "energy=3" {
		t.Errorf("filtered events = %+v", answers)
	}

	limited, err := j.Events(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("limited events: %v", err)
	}
	if len(limited) != 1 || limited[0].Detail != "emotion=4" {
		t.Errorf("limited events = %+v", limited)
	}
}

func TestCountsBySection(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	for _, s := range []string{"stress", "stress", "breathing"} {
		if err := j.Record(ctx, Event{Section: s, Kind: KindNavigate}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	counts, err := j.CountsBySection(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts["stress"] != 2 || counts["breathing"] != 1 || len(counts) != 2 {
		t.Errorf("counts = %v", counts)
	}
}

func TestLLMUsage(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	var repo EventRepo = j

	calls := []LLMRequestEventData{
		{Provider: "mock", Model: "m", Purpose: "debrief", InputTokens: 100, OutputTokens: 40, Success: true},
		{Provider: "mock", Model: "m", Purpose: "debrief", InputTokens: 90, Success: false, ErrorMessage: "rate limited"},
	}
	for _, c := range calls {
		if err := repo.AppendLLMRequest(ctx, c); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	u, err := j.LLMUsage(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	want := LLMUsage{Requests: 2, Failures: 1, InputTokens: 190, OutputTokens: 40}
	if u != want {
		t.Errorf("usage = %+v, want %+v", u, want)
	}
}

func TestLLMRequests(t *testing.T) {
	ctx := context.Background()
	j := openTestJournal(t)
	for _, c := range []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "debrief", InputTokens: 120, OutputTokens: 60, LatencyMs: 800, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "ping", Success: false, ErrorMessage: "timeout"},
	} {
		if err := j.AppendLLMRequest(ctx, c); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := j.LLMRequests(ctx, 0)
	if err != nil {
		t.Fatalf("requests: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d requests, want 2", len(all))
	}
	if all[0].Purpose != "ping" || all[0].Success || all[0].ErrorMessage != "timeout" {
		t.Errorf("newest request = %+v", all[0])
	}
	if all[1].InputTokens != 120 || all[1].LatencyMs != 800 || !all[1].Success {
		t.Errorf("oldest request = %+v", all[1])
	}
	if all[1].At.IsZero() {
		t.Error("expected a timestamp")
	}

	one, err := j.LLMRequests(ctx, 1)
	if err != nil {
		t.Fatalf("requests: %v", err)
	}
	if len(one) != 1 || one[0].ID != all[0].ID {
		t.Errorf("limit 1 = %+v", one)
	}
}
