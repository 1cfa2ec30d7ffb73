package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/resilio/internal/content"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/screens/board"
	"github.com/abhisek/resilio/internal/screens/breathing"
)

func newTestApp(t *testing.T) (AppModel, *journal.Journal) {
	t.Helper()
	m, err := content.Default()
	require.NoError(t, err)
	j, err := journal.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return newAppModel(Options{Module: m, Journal: j}), j
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestApp_CompleteIsDispatchedAndJournaled(t *testing.T) {
	m, j := newTestApp(t)
	m, _ = update(m, progress.ActionMsg{Action: progress.Complete{
		Section: progress.SectionStress,
		Outcome: progress.Outcome{Headline: "Score 70/100", Score: 70},
	}})

	assert.True(t, m.store.State().Completed(progress.SectionStress))
	events, err := j.Events(context.Background(), journal.QueryOpts{Kind: journal.KindComplete})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Score 70/100", events[0].Detail)
}

func TestApp_EscPopsSections(t *testing.T) {
	m, _ := newTestApp(t)
	s := sectionFactory(m.deps)(progress.SectionPriorities)
	m, _ = update(m, router.PushScreenMsg{Screen: s})
	require.Equal(t, 2, m.router.Depth())

	_, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestApp_EscReachesCapturingScreen(t *testing.T) {
	m, _ := newTestApp(t)
	s := sectionFactory(m.deps)(progress.SectionPriorities).(*board.Screen)
	m, _ = update(m, router.PushScreenMsg{Screen: s})
	m, _ = update(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m, _ = update(m, tea.KeyPressMsg{Code: 'a', Text: "a"})
	require.True(t, s.CapturingInput())

	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)
	assert.False(t, s.CapturingInput())
	assert.Equal(t, 2, m.router.Depth())
}

func TestApp_CtrlCTearsDown(t *testing.T) {
	m, _ := newTestApp(t)
	s := sectionFactory(m.deps)(progress.SectionBreathing).(*breathing.Screen)
	m, _ = update(m, router.PushScreenMsg{Screen: s})
	m, _ = update(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.True(t, s.Sequencer().Running())

	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, s.Sequencer().Running())
}

func TestApp_SectionFactoryCoversModule(t *testing.T) {
	m, _ := newTestApp(t)
	build := sectionFactory(m.deps)
	for _, sec := range m.deps.Module.Sections {
		var s screen.Screen = build(sec.ID)
		if assert.NotNil(t, s, "section %s", sec.ID) {
			assert.Contains(t, s.Title(), sec.Title)
		}
	}
	assert.Nil(t, build("unknown"))
}

func TestApp_ViewShowsProgress(t *testing.T) {
	m, _ := newTestApp(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(m, progress.ActionMsg{Action: progress.Complete{
		Section: progress.SectionAssessment,
		Outcome: progress.Outcome{Score: -1},
	}})

	out := m.render()
	assert.True(t, strings.Contains(out, "1/8"), "header should show 1/8")
	assert.Contains(t, out, "Ctrl+C")
}
