// Package stress is the timed stress simulation section.
package stress

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen"
	sim "github.com/abhisek/resilio/internal/stress"
	"github.com/abhisek/resilio/internal/timing"
	"github.com/abhisek/resilio/internal/ui/components"
	"github.com/abhisek/resilio/internal/ui/layout"
	"github.com/abhisek/resilio/internal/ui/theme"
)

const section = progress.SectionStress

// second is the countdown tick payload.
type second struct{}

// Screen implements screen.Screen for the stress simulation.
type Screen struct {
	deps   screen.Deps
	sim    sim.Simulation
	list   components.ChoiceList
	timers *timing.Scheduler
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Teardown        = (*Screen)(nil)
)

func New(deps screen.Deps) *Screen {
	deps = deps.WithDefaults()
	return &Screen{
		deps:   deps,
		sim:    sim.New(deps.Module.Stress.Scenarios, deps.Timing.StressCountdown),
		timers: timing.NewScheduler(),
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.deps.SectionTitle(section)
}

// Simulation returns the current simulation state.
func (s *Screen) Simulation() sim.Simulation {
	return s.sim
}

// Teardown stops the countdown. A run in progress is discarded.
func (s *Screen) Teardown() {
	s.timers.CancelAll()
	if s.sim.Phase() == sim.PhasePlaying {
		s.sim = s.sim.Abort()
	}
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.sim.Phase() {
	case sim.PhasePlaying:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Option"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Quit run"},
		}
	case sim.PhaseResults:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "R", Description: "Replay"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timing.FiredMsg:
		if _, ok := s.timers.Accept(msg); !ok {
			return s, nil
		}
		return s, s.tick()
	case tea.KeyPressMsg:
		switch s.sim.Phase() {
		case sim.PhaseIntro:
			if msg.String() == "enter" {
				return s, s.start(s.sim.Start)
			}
		case sim.PhasePlaying:
			return s, s.answer(msg)
		case sim.PhaseResults:
			switch msg.String() {
			case "r":
				return s, s.start(s.sim.Replay)
			case "enter":
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}
	return s, nil
}

func (s *Screen) start(begin func(time.Time) (sim.Simulation, error)) tea.Cmd {
	next, err := begin(s.deps.Clock.Now())
	if err != nil {
		s.deps.Logger.Error("stress simulation did not start", zap.Error(err))
		return nil
	}
	s.timers.CancelAll()
	s.sim = next
	s.resetList()
	s.deps.Record(section, journal.KindSimulation, "start")
	_, cmd := s.timers.After(time.Second, second{})
	return cmd
}

func (s *Screen) resetList() {
	cur, ok := s.sim.Current()
	if !ok {
		s.list = components.NewChoiceList(nil)
		return
	}
	options := make([]string, len(cur.Options))
	for i, o := range cur.Options {
		options[i] = o.Text
	}
	s.list = s.list.Reset(options)
}

func (s *Screen) tick() tea.Cmd {
	s.sim = s.sim.Tick()
	if s.sim.Phase() == sim.PhaseResults {
		s.deps.Record(section, journal.KindSimulation, "timeout")
		return s.finish()
	}
	_, cmd := s.timers.After(time.Second, second{})
	return cmd
}

func (s *Screen) answer(kmsg tea.KeyPressMsg) tea.Cmd {
	s.list = s.list.Update(kmsg)
	idx, ok := s.list.Picked()
	if !ok {
		return nil
	}
	cur, _ := s.sim.Current()
	opt := cur.Options[idx]
	next, err := s.sim.Choose(opt.ID, s.deps.Clock.Now())
	if err != nil {
		s.deps.Logger.Error("stress answer rejected", zap.Error(err))
		s.resetList()
		return nil
	}
	s.sim = next
	s.deps.Record(section, journal.KindChoice, fmt.Sprintf("%d:%s", cur.ID, opt.ID))
	if s.sim.Phase() == sim.PhaseResults {
		s.timers.CancelAll()
		return s.finish()
	}
	s.resetList()
	return nil
}

func (s *Screen) finish() tea.Cmd {
	r, err := s.sim.Result()
	if err != nil {
		return nil
	}
	return s.deps.Complete(section, progress.Outcome{
		Headline: fmt.Sprintf("Score %d/100 (%s)", r.Score, r.Label),
		Details: []string{
			fmt.Sprintf("Resilient answers: %d of %d", r.Resilient, r.Answered),
			fmt.Sprintf("Speed bonus: +%d", r.Bonus),
		},
		Score: r.Score,
	})
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch s.sim.Phase() {
	case sim.PhasePlaying:
		body = s.viewPlaying(cw)
	case sim.PhaseResults:
		body = s.viewResults(cw)
	default:
		body = theme.Body.Width(cw).Render(s.deps.Module.Stress.Intro) + "\n\n" +
			theme.Hint.Render(fmt.Sprintf("%d situations, %s on the clock.",
				s.sim.Total(), s.deps.Timing.StressCountdown))
	}
	return components.Frame(components.Block(body, cw), width, height)
}

func (s *Screen) viewPlaying(cw int) string {
	total := int(s.deps.Timing.StressCountdown / time.Second)
	clock := components.NewProgressBar(
		fmt.Sprintf("⏱ %d:%02d", s.sim.Remaining()/60, s.sim.Remaining()%60),
		s.sim.Remaining(), total, false, cw)
	pressure := components.NewProgressBar("Pressure", s.sim.Pressure(), 100, false, cw)

	var b strings.Builder
	b.WriteString(clock.View() + "\n")
	b.WriteString(pressure.View() + "\n\n")
	cur, ok := s.sim.Current()
	if ok {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Situation %d of %d", s.sim.Index()+1, s.sim.Total())))
		b.WriteString("\n")
		b.WriteString(components.Card(theme.Heading.Render(cur.Situation), cw-2))
		b.WriteString("\n\n")
		b.WriteString(s.list.View(cw))
	}
	return b.String()
}

func (s *Screen) viewResults(cw int) string {
	r, err := s.sim.Result()
	if err != nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.ScoreColor(r.Score, 100).Bold(true).Render(fmt.Sprintf("%d / 100", r.Score)))
	b.WriteString("  " + theme.Subtitle.Render(r.Label) + "\n\n")
	lines := []string{
		fmt.Sprintf("Resilient answers: %d of %d (%d%%)", r.Resilient, r.Answered, r.Base),
		fmt.Sprintf("Speed bonus: +%d", r.Bonus),
	}
	if r.Answered < s.sim.Total() {
		lines = append(lines, fmt.Sprintf("Time ran out after %d of %d situations.", r.Answered, s.sim.Total()))
	}
	b.WriteString(components.Card(strings.Join(lines, "\n"), cw-2))
	return b.String()
}
