package journal

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Kind classifies a recorded interaction.
type Kind string

const (
	KindNavigate   Kind = "navigate"
	KindAnswer     Kind = "answer"
	KindChoice     Kind = "choice"
	KindText       Kind = "text"
	KindDrop       Kind = "drop"
	KindReset      Kind = "reset"
	KindSimulation Kind = "simulation"
	KindBreathing  Kind = "breathing"
	KindComplete   Kind = "complete"
)

// Event is one learner interaction.
type Event struct {
	Sequence int64
	Section  string
	Kind     Kind
	Detail   string
	At       time.Time
}

// QueryOpts filters Events. Zero values mean "any".
type QueryOpts struct {
	Section string
	Kind    Kind
	Limit   int
}

// Recorder is the write side used by the UI.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// Stats is the read side used by the wrap-up.
type Stats interface {
	CountsBySection(ctx context.Context) (map[string]int, error)
	LLMUsage(ctx context.Context) (LLMUsage, error)
}

var (
	_ Recorder  = (*Journal)(nil)
	_ Stats     = (*Journal)(nil)
	_ EventRepo = (*Journal)(nil)
)

// Record appends an event. Sequence and At are assigned by the journal
// when zero.
func (j *Journal) Record(ctx context.Context, e Event) error {
	if e.At.IsZero() {
		e.At = j.now()
	}
	q, args := j.builder().Insert("events").
		Columns("run_id", "section", "kind", "detail", "at_ms").
		Values(j.runID, e.Section, string(e.Kind), e.Detail, e.At.UnixMilli()).
		Query()
	if err := j.exec(ctx, q, args); err != nil {
		return fmt.Errorf("record %s event: %w", e.Kind, err)
	}
	return nil
}

// Events returns matching events in insertion order.
func (j *Journal) Events(ctx context.Context, opts QueryOpts) ([]Event, error) {
	b := j.builder()
	sel := b.Select("id", "section", "kind", "detail", "at_ms").
		From(b.Table("events")).
		Where(entsql.EQ("run_id", j.runID)).
		OrderBy("id")
	if opts.Section != "" {
		sel.Where(entsql.EQ("section", opts.Section))
	}
	if opts.Kind != "" {
		sel.Where(entsql.EQ("kind", string(opts.Kind)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	q, args := sel.Query()

	rows, err := j.query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e    Event
			kind string
			atMs int64
		)
		if err := rows.Scan(&e.Sequence, &e.Section, &kind, &e.Detail, &atMs); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Kind = Kind(kind)
		e.At = time.UnixMilli(atMs)
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountsBySection returns the number of recorded events per section.
func (j *Journal) CountsBySection(ctx context.Context) (map[string]int, error) {
	b := j.builder()
	q, args := b.Select("section", entsql.Count("*")).
		From(b.Table("events")).
		Where(entsql.EQ("run_id", j.runID)).
		GroupBy("section").
		Query()

	rows, err := j.query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var (
			section string
			n       int
		)
		if err := rows.Scan(&section, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[section] = n
	}
	return counts, rows.Err()
}
