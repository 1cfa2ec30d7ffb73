// Package screentest has helpers for driving screens in tests.
package screentest

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/resilio/internal/content"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/timing"
)

// Env is a screen environment backed by the embedded module, a fresh
// progress store, an in-memory journal and a manual clock.
type Env struct {
	Deps    screen.Deps
	Store   *progress.Store
	Journal *journal.Journal
	Clock   *timing.ManualClock
}

// New builds an Env. The journal is closed when the test ends.
func New(t *testing.T) *Env {
	t.Helper()
	m, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	j, err := journal.Open(context.Background())
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })

	store := progress.NewStore(progress.Initial())
	clock := timing.NewManualClock(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	return &Env{
		Deps: screen.Deps{
			Module:   m,
			Progress: store,
			Journal:  j,
			Stats:    j,
			Clock:    clock,
		}.WithDefaults(),
		Store:   store,
		Journal: j,
		Clock:   clock,
	}
}

// Key builds a key press. Named keys ("enter", "esc", "up", "space", ...)
// map to their codes; anything else is typed as text.
func Key(s string) tea.KeyPressMsg {
	if code, ok := named[s]; ok {
		return tea.KeyPressMsg{Code: code}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

var named = map[string]rune{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"space":     tea.KeySpace,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
}

// Type sends each rune of text as a key press.
func Type(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(Key(string(r)))
	}
	return s
}

// Press sends the named keys in order and returns the last command.
func Press(s screen.Screen, keys ...string) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		s, cmd = s.Update(Key(k))
	}
	return s, cmd
}

// Collect runs cmd and flattens batches into the produced messages.
// Timer commands block, so only use it on commands that carry none.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// Actions returns the progress actions among msgs.
func Actions(msgs []tea.Msg) []progress.Action {
	var out []progress.Action
	for _, m := range msgs {
		if a, ok := m.(progress.ActionMsg); ok {
			out = append(out, a.Action)
		}
	}
	return out
}

// Completion returns the Complete action among msgs, if any.
func Completion(msgs []tea.Msg) (progress.Complete, bool) {
	for _, a := range Actions(msgs) {
		if c, ok := a.(progress.Complete); ok {
			return c, true
		}
	}
	return progress.Complete{}, false
}

// Events returns the journaled events of section.
func (e *Env) Events(t *testing.T, section progress.SectionID) []journal.Event {
	t.Helper()
	events, err := e.Journal.Events(context.Background(), journal.QueryOpts{Section: string(section)})
	if err != nil {
		t.Fatalf("journal events: %v", err)
	}
	return events
}
