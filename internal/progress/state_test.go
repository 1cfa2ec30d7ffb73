package progress

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_Navigate(t *testing.T) {
	s := Reduce(Initial(), Navigate{Section: SectionStress})
	assert.Equal(t, SectionStress, s.Current)
	assert.Zero(t, s.CompletedCount())
}

func TestReduce_Complete(t *testing.T) {
	s0 := Initial()
	s1 := Reduce(s0, Complete{Section: SectionAssessment, Outcome: Outcome{Headline: "3.8 / 5", Score: -1}})
	s2 := Reduce(s1, Complete{Section: SectionStress, Outcome: Outcome{Headline: "80", Score: 80}})
	s3 := Reduce(s2, Complete{Section: SectionAssessment, Outcome: Outcome{Headline: "4.1 / 5", Score: -1}})

	assert.False(t, s0.Completed(SectionAssessment))
	assert.True(t, s1.Completed(SectionAssessment))
	assert.False(t, s1.Completed(SectionStress))
	assert.Equal(t, 2, s3.CompletedCount())
	assert.Equal(t, []SectionID{SectionAssessment, SectionStress}, s3.CompletedOrder())

	o, ok := s3.Outcome(SectionAssessment)
	require.True(t, ok)
	assert.Equal(t, "4.1 / 5", o.Headline)

	o, ok = s1.Outcome(SectionAssessment)
	require.True(t, ok)
	assert.Equal(t, "3.8 / 5", o.Headline, "earlier snapshot unchanged")
}

func TestReduce_CompletionNeverUndone(t *testing.T) {
	s := Reduce(Initial(), Complete{Section: SectionBreathing})
	s = Reduce(s, Navigate{Section: SectionWelcome})
	assert.True(t, s.Completed(SectionBreathing))
}

func TestStore_DispatchNotifiesListeners(t *testing.T) {
	st := NewStore(Initial())
	var got []Action
	st.Subscribe(func(a Action, next State) {
		got = append(got, a)
		assert.Equal(t, next, st.State())
	})

	st.Dispatch(Navigate{Section: SectionScenarios})
	st.Dispatch(Complete{Section: SectionScenarios})

	assert.Len(t, got, 2)
	assert.Equal(t, SectionScenarios, st.State().Current)
	assert.True(t, st.State().Completed(SectionScenarios))

	var r Reader = st
	assert.True(t, r.State().Completed(SectionScenarios))
}

func TestDispatchCmd(t *testing.T) {
	cmd := Dispatch(Navigate{Section: SectionSupport})
	require.NotNil(t, cmd)
	msg := cmd()
	am, ok := msg.(ActionMsg)
	require.True(t, ok)
	assert.Equal(t, Navigate{Section: SectionSupport}, am.Action)
	var _ tea.Msg = am
}
