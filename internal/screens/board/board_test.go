package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen/screentest"
)

func newPriorities(t *testing.T) (*screentest.Env, *Screen) {
	t.Helper()
	env := screentest.New(t)
	return env, New(env.Deps, progress.SectionPriorities, env.Deps.Module.Priorities)
}

// sortAll drops every remaining unsorted item into the category at
// position key ("1".."4").
func sortAll(s *Screen, key string) {
	for len(s.board.Unassigned()) > 0 {
		s.cursor = 0
		screentest.Press(s, key)
	}
}

func TestBoard_TheoryThenPractice(t *testing.T) {
	_, s := newPriorities(t)
	assert.Equal(t, PhaseTheory, s.Phase())
	assert.Contains(t, s.View(120, 50), "Urgent & important")

	screentest.Press(s, "enter")
	assert.Equal(t, PhasePractice, s.Phase())
	assert.Contains(t, s.View(120, 50), "To sort (8)")
}

func TestBoard_DropAssignsAndRecords(t *testing.T) {
	env, s := newPriorities(t)
	screentest.Press(s, "enter", "2")

	assert.Len(t, s.Board().InCategory("q2"), 1)
	assert.Equal(t, "t1", s.Board().InCategory("q2")[0].ID)
	assert.Len(t, s.Board().Unassigned(), 7)

	events := env.Events(t, progress.SectionPriorities)
	require.Len(t, events, 1)
	assert.Equal(t, journal.KindDrop, events[0].Kind)
	assert.Equal(t, "t1->q2", events[0].Detail)
}

func TestBoard_MoveBetweenCategories(t *testing.T) {
	_, s := newPriorities(t)
	screentest.Press(s, "enter", "1")
	// t1 now sits after the seven unsorted items.
	s.cursor = 7
	screentest.Press(s, "4")

	assert.Empty(t, s.Board().InCategory("q1"))
	assert.Len(t, s.Board().InCategory("q4"), 1)
}

func TestBoard_ResetReturnsEverything(t *testing.T) {
	env, s := newPriorities(t)
	screentest.Press(s, "enter", "1", "2", "3")
	screentest.Press(s, "r")

	assert.Len(t, s.Board().Unassigned(), 8)
	events := env.Events(t, progress.SectionPriorities)
	assert.Equal(t, journal.KindReset, events[len(events)-1].Kind)
}

func TestBoard_AddItem(t *testing.T) {
	env, s := newPriorities(t)
	screentest.Press(s, "enter", "a")
	assert.True(t, s.CapturingInput())

	screentest.Type(s, "Walk the dog")
	screentest.Press(s, "enter")

	assert.False(t, s.CapturingInput())
	require.Len(t, s.Board().Items(), 9)
	unsorted := s.Board().Unassigned()
	assert.Equal(t, "Walk the dog", unsorted[len(unsorted)-1].Label)

	events := env.Events(t, progress.SectionPriorities)
	require.NotEmpty(t, events)
	assert.Equal(t, journal.KindText, events[len(events)-1].Kind)
}

func TestBoard_AddItemBlankAndCancel(t *testing.T) {
	_, s := newPriorities(t)
	screentest.Press(s, "enter", "a", "enter")
	assert.True(t, s.CapturingInput(), "blank label keeps the field open")

	screentest.Press(s, "esc")
	assert.False(t, s.CapturingInput())
	assert.Len(t, s.Board().Items(), 8)
}

func TestBoard_EvaluateRequiresEverySorted(t *testing.T) {
	_, s := newPriorities(t)
	screentest.Press(s, "enter", "1")

	_, cmd := screentest.Press(s, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, PhasePractice, s.Phase())
	assert.Contains(t, s.View(120, 50), "7 item(s) still to sort")
}

func TestBoard_EvaluationCompletesWithAdvice(t *testing.T) {
	_, s := newPriorities(t)
	screentest.Press(s, "enter")
	sortAll(s, "1")

	_, cmd := screentest.Press(s, "enter")
	require.Equal(t, PhaseEvaluation, s.Phase())

	done, ok := screentest.Completion(screentest.Collect(cmd))
	require.True(t, ok)
	assert.Equal(t, progress.SectionPriorities, done.Section)
	assert.Equal(t, -1, done.Outcome.Score)
	assert.Contains(t, done.Outcome.Details, "Urgent & important: 8")
	assert.Contains(t, done.Outcome.Details, "Too many urgent tasks")
	assert.Contains(t, done.Outcome.Details, "Grow your Q2")
	assert.NotContains(t, done.Outcome.Details, "Excellent balance")

	view := s.View(120, 60)
	assert.Contains(t, view, "Your distribution")
	assert.Contains(t, view, "Too many urgent tasks")
}

func TestBoard_EvaluationNavigation(t *testing.T) {
	_, s := newPriorities(t)
	screentest.Press(s, "enter")
	sortAll(s, "2")
	screentest.Press(s, "enter")

	screentest.Press(s, "b")
	assert.Equal(t, PhasePractice, s.Phase())

	screentest.Press(s, "enter")
	_, cmd := screentest.Press(s, "enter")
	msgs := screentest.Collect(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, router.PopScreenMsg{}, msgs[0])
}

func TestBoard_SupportUsesOwnContent(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps, progress.SectionSupport, env.Deps.Module.Support)

	assert.Contains(t, s.Title(), "Support")
	screentest.Press(s, "enter")
	assert.Contains(t, s.View(120, 50), "Inner circle")
}

func TestBoard_TeardownDropsDraft(t *testing.T) {
	_, s := newPriorities(t)
	screentest.Press(s, "enter", "1", "a")
	screentest.Type(s, "Half typed")

	s.Teardown()
	assert.False(t, s.CapturingInput())
	assert.Len(t, s.Board().Items(), 8)
	assert.Len(t, s.Board().Unassigned(), 7, "sorted items survive")

	screentest.Press(s, "a")
	assert.Empty(t, s.input.Value())
}
