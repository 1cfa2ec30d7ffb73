package scenarios

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen/screentest"
	"github.com/abhisek/resilio/internal/timing"
)

// fireFeedback delivers the pending feedback timer without waiting.
func fireFeedback(t *testing.T, s *Screen) {
	t.Helper()
	require.Equal(t, 1, s.timers.Pending(), "expected one feedback timer")
	var id uint64
	for pending := range s.timers.PendingIDs() {
		id = pending
	}
	s.Update(timing.FiredMsg{ID: id, Payload: advance{}})
}

func TestScenarios_FeedbackMatchesChoice(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	first := env.Deps.Module.Scenarios.Items[0]

	screentest.Press(s, "b")

	assert.True(t, s.run.ShowingFeedback())
	assert.Equal(t, first.Choices[1].Feedback, s.run.Feedback())
	assert.Contains(t, s.View(100, 40), first.Choices[1].Feedback)

	screentest.Press(s, "a")
	assert.Equal(t, first.Choices[1].Feedback, s.run.Feedback(), "input ignored while feedback shows")
}

func TestScenarios_TimerAdvances(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)

	screentest.Press(s, "enter")
	fireFeedback(t, s)

	assert.False(t, s.run.ShowingFeedback())
	idx, _ := s.run.Index()
	assert.Equal(t, 1, idx)
	_, picked := s.list.Picked()
	assert.False(t, picked, "choice list resets for the next scenario")
}

func TestScenarios_StaleTimerIgnored(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	other := timing.NewScheduler()
	foreign, _ := other.After(time.Hour, advance{})

	screentest.Press(s, "a")
	s.Update(timing.FiredMsg{ID: foreign.ID, Payload: advance{}})
	assert.True(t, s.run.ShowingFeedback())
}

func TestScenarios_TeardownAppliesPendingAdvance(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	screentest.Press(s, "a")

	s.Teardown()

	assert.Equal(t, 0, s.timers.Pending())
	assert.False(t, s.run.ShowingFeedback())
	idx, _ := s.run.Index()
	assert.Equal(t, 1, idx)
}

func TestScenarios_RitualCompletesSection(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	for range env.Deps.Module.Scenarios.Items {
		screentest.Press(s, "a")
		fireFeedback(t, s)
	}
	require.True(t, s.run.Done())

	_, cmd := screentest.Press(s, "enter")
	assert.Nil(t, cmd, "blank ritual cannot finish the section")

	screentest.Type(s, "  ")
	_, cmd = screentest.Press(s, "enter")
	assert.Nil(t, cmd, "whitespace is blank")

	screentest.Type(s, "Three breaths before I open email")
	_, cmd = screentest.Press(s, "enter")
	msgs := screentest.Collect(cmd)

	done, ok := screentest.Completion(msgs)
	require.True(t, ok)
	assert.Equal(t, section, done.Section)
	assert.Equal(t, -1, done.Outcome.Score)
	assert.Equal(t, "Ritual: Three breaths before I open email", done.Outcome.Details[0])
	assert.Contains(t, msgs, router.PopScreenMsg{})

	events := env.Events(t, section)
	kinds := map[journal.Kind]int{}
	for _, e := range events {
		kinds[e.Kind]++
	}
	assert.Equal(t, len(env.Deps.Module.Scenarios.Items), kinds[journal.KindChoice])
	assert.Equal(t, 1, kinds[journal.KindText])
}
