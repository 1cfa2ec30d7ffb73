package breathing

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/screen/screentest"
	"github.com/abhisek/resilio/internal/timing"
)

func firePhase(t *testing.T, s *Screen) tea.Cmd {
	t.Helper()
	require.Equal(t, 1, s.timers.Pending(), "expected one phase timer")
	var id uint64
	for pending := range s.timers.PendingIDs() {
		id = pending
	}
	_, cmd := s.Update(timing.FiredMsg{ID: id, Payload: phaseDone{}})
	return cmd
}

func TestBreathing_RunsEveryPhaseOfEveryCycle(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	// cardiac coherence: inhale, exhale
	screentest.Press(s, "down", "down", "enter")
	require.True(t, s.Sequencer().Running())
	assert.True(t, s.CapturingInput())

	var names []string
	var cmd tea.Cmd
	for s.Sequencer().Running() {
		step, _ := s.Sequencer().Current()
		names = append(names, step.Phase.Name)
		cmd = firePhase(t, s)
	}
	assert.Equal(t, []string{"Inhale", "Exhale", "Inhale", "Exhale", "Inhale", "Exhale"}, names)
	assert.True(t, s.Sequencer().Completed("coherence"))
	assert.Zero(t, s.timers.Pending())

	done, ok := screentest.Completion(screentest.Collect(cmd))
	require.True(t, ok)
	assert.Equal(t, progress.SectionBreathing, done.Section)
	assert.Equal(t, "1 of 3 techniques practised", done.Outcome.Headline)
	assert.Equal(t, []string{"Cardiac coherence"}, done.Outcome.Details)
	assert.Contains(t, s.View(100, 40), "Well done")
}

func TestBreathing_StopCancels(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	screentest.Press(s, "enter")
	firePhase(t, s)

	_, cmd := screentest.Press(s, "esc")
	assert.Nil(t, cmd)
	assert.False(t, s.Sequencer().Running())
	assert.False(t, s.Sequencer().Completed("478"))
	assert.Zero(t, s.timers.Pending())

	events := env.Events(t, progress.SectionBreathing)
	require.Len(t, events, 2)
	assert.Equal(t, journal.KindBreathing, events[1].Kind)
	assert.Equal(t, "stop:478", events[1].Detail)
}

func TestBreathing_TeardownCancels(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	screentest.Press(s, "enter")
	var id uint64
	for pending := range s.timers.PendingIDs() {
		id = pending
	}

	s.Teardown()
	assert.False(t, s.Sequencer().Running())

	_, cmd := s.Update(timing.FiredMsg{ID: id, Payload: phaseDone{}})
	assert.Nil(t, cmd)
	assert.False(t, s.Sequencer().Running())
}

func TestBreathing_ViewShowsPhase(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	assert.Contains(t, s.View(100, 40), "4-7-8")

	screentest.Press(s, "enter")
	view := s.View(100, 40)
	assert.Contains(t, view, "Inhale for 4 seconds")
	assert.Contains(t, view, "Cycle 1/3")
}
