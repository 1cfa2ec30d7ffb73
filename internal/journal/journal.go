// Package journal keeps a session-scoped log of learner interactions in an
// in-memory SQLite database. Each Journal gets its own database, which is
// discarded when the Journal is closed; nothing is written to disk.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	section TEXT NOT NULL,
	kind TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	at_ms INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS events_section ON events (section)`,
	`CREATE TABLE IF NOT EXISTS llm_requests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	purpose TEXT NOT NULL,
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	success INTEGER NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	at_ms INTEGER NOT NULL
)`,
}

// Journal records events for one run of the module.
type Journal struct {
	db    *sql.DB
	drv   *entsql.Driver
	runID string
	now   func() time.Time
}

// Open creates a fresh in-memory journal.
func Open(ctx context.Context) (*Journal, error) {
	runID := uuid.NewString()
	dsn := fmt.Sprintf("file:resilio-%s?mode=memory&cache=shared", runID)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// The database lives as long as one connection stays open.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	for _, stmt := range schemaDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create journal schema: %w", err)
		}
	}

	return &Journal{
		db:    db,
		drv:   entsql.OpenDB(dialect.SQLite, db),
		runID: runID,
		now:   time.Now,
	}, nil
}

// RunID identifies this run in every stored row.
func (j *Journal) RunID() string {
	return j.runID
}

// DB returns the underlying *sql.DB for raw queries.
func (j *Journal) DB() *sql.DB {
	return j.db
}

// Close discards the journal.
func (j *Journal) Close() error {
	return j.drv.Close()
}

func (j *Journal) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (j *Journal) exec(ctx context.Context, q string, args []any) error {
	var res sql.Result
	return j.drv.Exec(ctx, q, args, &res)
}

func (j *Journal) query(ctx context.Context, q string, args []any) (*entsql.Rows, error) {
	rows := &entsql.Rows{}
	if err := j.drv.Query(ctx, q, args, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
