package wrapup

import (
	"encoding/json"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/resilio/internal/debrief"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/llm"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen/screentest"
)

const modelDebrief = `{
	"headline": "You keep your head when plans change.",
	"strengths": ["Clear self-assessment"],
	"next_steps": ["Try box breathing before your next meeting"]
}`

// deliver runs Init and feeds every produced message back to the screen,
// returning the command produced by the debrief.
func deliver(s *Screen) tea.Cmd {
	var out tea.Cmd
	for _, msg := range screentest.Collect(s.Init()) {
		_, cmd := s.Update(msg)
		if _, ok := msg.(debriefMsg); ok {
			out = cmd
		}
	}
	return out
}

func TestWrapup_InputSkipsItself(t *testing.T) {
	env := screentest.New(t)
	env.Store.Dispatch(progress.Complete{
		Section: progress.SectionAssessment,
		Outcome: progress.Outcome{Headline: "Average 4.0 / 5", Score: 80},
	})
	s := New(env.Deps)

	in := s.Input()
	require.Len(t, in.Sections, 7)
	assert.Equal(t, 1, in.CompletedCount())
	assert.Equal(t, "assessment", in.Sections[0].ID)
	assert.Equal(t, 80, in.Sections[0].Score)
	assert.Equal(t, -1, in.Sections[1].Score)
	for _, r := range in.Sections {
		assert.NotEqual(t, string(progress.SectionWrapUp), r.ID)
	}
}

func TestWrapup_FallbackWithoutModel(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	assert.Contains(t, s.View(100, 50), "Preparing your debrief")

	cmd := deliver(s)
	d, ok := s.Debrief()
	require.True(t, ok)
	assert.Equal(t, debrief.SourceRules, d.Source)
	assert.Equal(t, "Your resilience journey starts here.", d.Headline)

	done, ok := screentest.Completion(screentest.Collect(cmd))
	require.True(t, ok)
	assert.Equal(t, progress.SectionWrapUp, done.Section)
	assert.Equal(t, d.Headline, done.Outcome.Headline)
	assert.NotContains(t, s.View(100, 50), "Written by")
}

func TestWrapup_ModelDebrief(t *testing.T) {
	env := screentest.New(t)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(modelDebrief)})
	deps := env.Deps
	deps.Debrief = debrief.NewService(mock, debrief.DefaultConfig(), nil)
	s := New(deps)

	deliver(s)
	d, ok := s.Debrief()
	require.True(t, ok)
	assert.Equal(t, debrief.SourceLLM, d.Source)

	view := s.View(100, 60)
	assert.Contains(t, view, "You keep your head when plans change.")
	assert.Contains(t, view, "Written by mock")
	assert.Len(t, mock.Calls(), 1)
}

func TestWrapup_StaleDebriefIgnored(t *testing.T) {
	env := screentest.New(t)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(modelDebrief)},
		llm.MockResponse{Content: json.RawMessage(modelDebrief)},
	)
	deps := env.Deps
	deps.Debrief = debrief.NewService(mock, debrief.DefaultConfig(), nil)
	s := New(deps)
	deliver(s)

	_, regen := screentest.Press(s, "r")
	require.NotNil(t, regen)
	_, ok := s.Debrief()
	assert.False(t, ok, "rewrite clears the current debrief")

	_, cmd := s.Update(debriefMsg{gen: 1, debrief: debrief.Debrief{Headline: "old"}})
	assert.Nil(t, cmd)
	_, ok = s.Debrief()
	assert.False(t, ok)

	for _, msg := range screentest.Collect(regen) {
		s.Update(msg)
	}
	d, ok := s.Debrief()
	require.True(t, ok)
	assert.Equal(t, "You keep your head when plans change.", d.Headline)
}

func TestWrapup_StatsAndKeys(t *testing.T) {
	env := screentest.New(t)
	env.Deps.Record(progress.SectionAssessment, journal.KindAnswer, "emotion=4")
	env.Deps.Record(progress.SectionStress, journal.KindSimulation, "start")
	s := New(env.Deps)
	deliver(s)

	assert.Contains(t, s.View(100, 60), "interactions recorded")

	screentest.Press(s, "e")
	assert.Contains(t, s.View(100, 60), "PDF export is not available")

	_, cmd := screentest.Press(s, "enter")
	msgs := screentest.Collect(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, router.PopScreenMsg{}, msgs[0])
}

func TestWrapup_TeardownDropsInFlightDebrief(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	msgs := screentest.Collect(s.Init())
	s.Teardown()

	for _, msg := range msgs {
		s.Update(msg)
	}
	_, ok := s.Debrief()
	assert.False(t, ok)
	assert.False(t, env.Store.State().Completed(progress.SectionWrapUp))

	deliver(s)
	_, ok = s.Debrief()
	assert.True(t, ok, "showing the screen again requests a new debrief")
}
