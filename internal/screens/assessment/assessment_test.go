package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assess "github.com/abhisek/resilio/internal/assessment"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen/screentest"
)

func answerAll(s *Screen, key string) {
	for i := range s.sheet.Questions() {
		screentest.Press(s, key)
		if i < len(s.sheet.Questions())-1 {
			screentest.Press(s, "down")
		}
	}
}

func TestAssessment_ResultsOnlyWhenComplete(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)

	screentest.Press(s, "4", "enter")
	assert.False(t, s.results, "results must stay hidden until every question is answered")

	s.cursor = 0
	answerAll(s, "4")
	require.True(t, s.sheet.Complete())

	screentest.Press(s, "enter")
	assert.True(t, s.results)
	assert.Equal(t, assess.TierPositive, assess.TierFor(s.sheet.Average()))

	// The feedback card wraps, so match its opening words only.
	view := s.View(100, 40)
	assert.Contains(t, view, "Average: 4.0 / 5")
	assert.Contains(t, view, "Excellent! You show strong")
	assert.NotContains(t, view, "A solid base")
	assert.NotContains(t, view, "Lots of room to grow")
}

func TestAssessment_ContinueCompletesAndPops(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	answerAll(s, "4")
	screentest.Press(s, "enter")

	_, cmd := screentest.Press(s, "enter")
	msgs := screentest.Collect(cmd)

	done, ok := screentest.Completion(msgs)
	require.True(t, ok)
	assert.Equal(t, section, done.Section)
	assert.Equal(t, 80, done.Outcome.Score)
	assert.Equal(t, "Average 4.0 / 5 (positive)", done.Outcome.Headline)
	assert.Len(t, done.Outcome.Details, len(s.sheet.Questions()))
	assert.Contains(t, msgs, router.PopScreenMsg{})
}

func TestAssessment_SliderKeys(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	id := s.sheet.Questions()[0].ID

	screentest.Press(s, "right")
	v, _ := s.sheet.Score(id)
	assert.Equal(t, 1, v, "first move sets the minimum")

	screentest.Press(s, "right", "right", "right", "right", "right")
	v, _ = s.sheet.Score(id)
	assert.Equal(t, 5, v, "clamped at 5")

	screentest.Press(s, "9")
	v, _ = s.sheet.Score(id)
	assert.Equal(t, 5, v, "out of range digit ignored")

	screentest.Press(s, "left")
	v, _ = s.sheet.Score(id)
	assert.Equal(t, 4, v)
}

func TestAssessment_TiersAtBoundaries(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"3", "neutral"},
		{"2", "encouraging"},
		{"5", "positive"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			env := screentest.New(t)
			s := New(env.Deps)
			answerAll(s, tt.key)
			assert.Contains(t, s.outcome().Headline, tt.want)
		})
	}
}

func TestAssessment_ExportIsInert(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	answerAll(s, "5")
	screentest.Press(s, "enter")

	_, cmd := screentest.Press(s, "e")
	assert.Nil(t, cmd)
	assert.True(t, s.results)
	assert.Equal(t, 0, env.Store.State().CompletedCount())
}

func TestAssessment_JournalsAnswers(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	screentest.Press(s, "3", "down", "5")

	events := env.Events(t, section)
	require.Len(t, events, 2)
	assert.Equal(t, journal.KindAnswer, events[0].Kind)
	assert.Equal(t, s.sheet.Questions()[1].ID+"=5", events[1].Detail)
}

func TestAssessment_TeardownKeepsAnswers(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	answerAll(s, "4")
	screentest.Press(s, "enter", "e")
	assert.True(t, s.exported)

	s.Teardown()
	assert.False(t, s.exported)
	assert.True(t, s.sheet.Complete())
}
