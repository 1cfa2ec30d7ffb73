package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScenarios() []Scenario {
	return []Scenario{
		{
			ID:        0,
			Situation: "Meeting overruns",
			Choices: []Choice{
				{ID: "A", Text: "Leave politely", Feedback: "fb-0A"},
				{ID: "B", Text: "Cancel family plans", Feedback: "fb-0B"},
				{ID: "C", Text: "Negotiate", Feedback: "fb-0C"},
			},
		},
		{
			ID:        1,
			Situation: "Laptop dies",
			Choices: []Choice{
				{ID: "A", Text: "Panic", Feedback: "fb-1A"},
				{ID: "B", Text: "Borrow one", Feedback: "fb-1B"},
			},
		},
	}
}

func TestChoose_FeedbackMatchesChoice(t *testing.T) {
	for _, c := range testScenarios()[0].Choices {
		r := NewRun(testScenarios())
		r, fb, err := r.Choose(c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.Feedback, fb)
		assert.Equal(t, c.Feedback, r.Feedback())
		assert.True(t, r.ShowingFeedback())
	}
}

func TestChoose_UnknownChoice(t *testing.T) {
	r := NewRun(testScenarios())
	_, _, err := r.Choose("Z")
	assert.ErrorIs(t, err, ErrUnknownChoice)
}

func TestChoose_BlockedWhileFeedbackShowing(t *testing.T) {
	r := NewRun(testScenarios())
	r, _, err := r.Choose("A")
	require.NoError(t, err)

	_, _, err = r.Choose("B")
	assert.ErrorIs(t, err, ErrFeedbackShowing)
}

func TestAdvance_MovesToNextScenario(t *testing.T) {
	r := NewRun(testScenarios())
	r, _, _ = r.Choose("C")
	r = r.Advance()

	cur, ok := r.Current()
	require.True(t, ok)
	assert.Equal(t, 1, cur.ID)
	assert.False(t, r.ShowingFeedback())
	assert.Empty(t, r.Feedback())
	assert.False(t, r.Done())
}

func TestAdvance_StaysOnLastScenario(t *testing.T) {
	r := NewRun(testScenarios())
	r, _, _ = r.Choose("A")
	r = r.Advance()
	r, fb, err := r.Choose("B")
	require.NoError(t, err)
	assert.Equal(t, "fb-1B", fb)
	assert.False(t, r.Done(), "not done while feedback shows")

	r = r.Advance()
	idx, total := r.Index()
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, total)
	assert.True(t, r.Done())
	assert.Equal(t, map[int]string{0: "A", 1: "B"}, r.Choices())

	_, _, err = r.Choose("A")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestAdvance_NoopWithoutFeedback(t *testing.T) {
	r := NewRun(testScenarios())
	r = r.Advance()
	idx, _ := r.Index()
	assert.Equal(t, 0, idx)
}

func TestRun_Immutable(t *testing.T) {
	base := NewRun(testScenarios())
	_, _, err := base.Choose("A")
	require.NoError(t, err)
	assert.False(t, base.ShowingFeedback())
	assert.Empty(t, base.Choices())
}

func TestChoose_FinishedRunRejectsAnyChoice(t *testing.T) {
	r := NewRun(testScenarios())
	r, _, _ = r.Choose("C")
	r = r.Advance()
	r, _, _ = r.Choose("A")
	r = r.Advance()
	require.True(t, r.Done())

	for _, id := range []string{"A", "B", "Z"} {
		next, fb, err := r.Choose(id)
		assert.ErrorIs(t, err, ErrFinished, "choice %q", id)
		assert.Empty(t, fb)
		assert.Equal(t, map[int]string{0: "C", 1: "A"}, next.Choices())
	}
}
