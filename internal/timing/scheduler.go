// Package timing issues cancellable delayed messages for the Bubble Tea
// loop. A fired timer is delivered as FiredMsg; the owning screen passes it
// to Accept, which drops firings that were cancelled in the meantime.
package timing

import (
	"iter"
	"maps"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

var lastID atomic.Uint64

// Timer identifies one scheduled firing. IDs are unique in the process.
type Timer struct {
	ID uint64
}

// FiredMsg is delivered when a timer's delay elapses.
type FiredMsg struct {
	ID      uint64
	Payload any
}

// Scheduler tracks the pending timers of one owner (usually a screen).
// It is not safe for concurrent use; call it from Update only.
type Scheduler struct {
	pending map[uint64]struct{}
}

func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[uint64]struct{})}
}

// After schedules payload to be delivered after d.
func (s *Scheduler) After(d time.Duration, payload any) (Timer, tea.Cmd) {
	id := lastID.Add(1)
	s.pending[id] = struct{}{}
	cmd := tea.Tick(d, func(time.Time) tea.Msg {
		return FiredMsg{ID: id, Payload: payload}
	})
	return Timer{ID: id}, cmd
}

// Cancel forgets a pending timer. Its firing will be rejected by Accept.
func (s *Scheduler) Cancel(t Timer) {
	delete(s.pending, t.ID)
}

// CancelAll forgets every pending timer.
func (s *Scheduler) CancelAll() {
	clear(s.pending)
}

// Pending returns the number of timers that have not fired or been
// cancelled.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// PendingIDs iterates over the ids of pending timers.
func (s *Scheduler) PendingIDs() iter.Seq[uint64] {
	return maps.Keys(s.pending)
}

// Owns reports whether msg belongs to a timer still pending here.
func (s *Scheduler) Owns(msg FiredMsg) bool {
	_, ok := s.pending[msg.ID]
	return ok
}

// Accept consumes a firing. ok is false for timers this scheduler did not
// issue or has cancelled; such messages must be ignored.
func (s *Scheduler) Accept(msg FiredMsg) (payload any, ok bool) {
	if !s.Owns(msg) {
		return nil, false
	}
	delete(s.pending, msg.ID)
	return msg.Payload, true
}
