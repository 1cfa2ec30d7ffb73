// Package scenarios is the branching-scenario section. Each choice shows
// its feedback for a fixed delay; afterwards the learner writes a short
// personal ritual.
package scenarios

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/scenario"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/timing"
	"github.com/abhisek/resilio/internal/ui/components"
	"github.com/abhisek/resilio/internal/ui/layout"
	"github.com/abhisek/resilio/internal/ui/theme"
)

const section = progress.SectionScenarios

const ritualLimit = 280

// advance is the payload of the feedback timer.
type advance struct{}

// Screen implements screen.Screen for the scenario quiz.
type Screen struct {
	deps   screen.Deps
	run    scenario.Run
	list   components.ChoiceList
	timers *timing.Scheduler
	ritual components.TextInput
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Teardown        = (*Screen)(nil)
)

func New(deps screen.Deps) *Screen {
	deps = deps.WithDefaults()
	s := &Screen{
		deps:   deps,
		run:    scenario.NewRun(deps.Module.Scenarios.Items),
		timers: timing.NewScheduler(),
		ritual: components.NewTextInput(deps.Module.Scenarios.RitualPlaceholder, ritualLimit),
	}
	s.list = components.NewChoiceList(s.choiceTexts())
	return s
}

func (s *Screen) Init() tea.Cmd {
	if s.run.Done() {
		return s.ritual.Init()
	}
	return nil
}

func (s *Screen) Title() string {
	return s.deps.SectionTitle(section)
}

// Teardown cancels the feedback timer. Feedback that was showing counts
// as read, so the next visit starts on the following scenario.
func (s *Screen) Teardown() {
	s.timers.CancelAll()
	if s.run.ShowingFeedback() {
		s.next()
	}
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.run.Done():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save ritual"},
			{Key: "Esc", Description: "Back"},
		}
	case s.run.ShowingFeedback():
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter/A-C", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timing.FiredMsg:
		if _, ok := s.timers.Accept(msg); ok {
			return s, s.next()
		}
		return s, nil

	case tea.KeyPressMsg:
		if s.run.Done() {
			return s.updateRitual(msg)
		}
		if s.run.ShowingFeedback() {
			return s, nil
		}
		s.list = s.list.Update(msg)
		if idx, ok := s.list.Picked(); ok {
			return s, s.choose(idx)
		}
	}
	return s, nil
}

func (s *Screen) choose(idx int) tea.Cmd {
	sc, ok := s.run.Current()
	if !ok || idx >= len(sc.Choices) {
		return nil
	}
	choice := sc.Choices[idx]
	next, _, err := s.run.Choose(choice.ID)
	if err != nil {
		s.deps.Logger.Error("rejected scenario choice", zap.Error(err))
		s.list = s.list.Reset(s.choiceTexts())
		return nil
	}
	s.run = next
	s.list.Locked = true
	s.deps.Record(section, journal.KindChoice, fmt.Sprintf("%d:%s", sc.ID, choice.ID))
	_, cmd := s.timers.After(s.deps.Timing.FeedbackDelay, advance{})
	return cmd
}

// next hides the feedback and moves on; once every scenario is answered
// the ritual input takes focus.
func (s *Screen) next() tea.Cmd {
	s.run = s.run.Advance()
	if s.run.Done() {
		return s.ritual.Init()
	}
	s.list = s.list.Reset(s.choiceTexts())
	return nil
}

func (s *Screen) updateRitual(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		var cmd tea.Cmd
		s.ritual, cmd = s.ritual.Update(msg)
		return s, cmd
	}
	if s.ritual.Blank() {
		return s, nil
	}
	text := s.ritual.Value()
	s.deps.Record(section, journal.KindText, text)
	return s, tea.Batch(
		s.deps.Complete(section, s.outcome(text)),
		func() tea.Msg { return router.PopScreenMsg{} },
	)
}

func (s *Screen) outcome(ritual string) progress.Outcome {
	details := []string{"Ritual: " + ritual}
	chosen := s.run.Choices()
	for _, sc := range s.deps.Module.Scenarios.Items {
		for _, c := range sc.Choices {
			if chosen[sc.ID] == c.ID {
				details = append(details, fmt.Sprintf("Scenario %d: %s", sc.ID, c.Text))
			}
		}
	}
	return progress.Outcome{
		Headline: fmt.Sprintf("%d scenarios explored, ritual written", len(chosen)),
		Details:  details,
		Score:    -1,
	}
}

func (s *Screen) choiceTexts() []string {
	sc, ok := s.run.Current()
	if !ok {
		return nil
	}
	texts := make([]string, len(sc.Choices))
	for i, c := range sc.Choices {
		texts[i] = c.Text
	}
	return texts
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.run.Done() {
		return components.Frame(s.viewRitual(cw), width, height)
	}

	var b strings.Builder
	idx, total := s.run.Index()
	b.WriteString(theme.Heading.Render(fmt.Sprintf("Scenario %d of %d", idx+1, total)))
	b.WriteString("  ")
	b.WriteString(progressDots(idx, total, s.run.ShowingFeedback()))
	b.WriteString("\n\n")

	if sc, ok := s.run.Current(); ok {
		b.WriteString(components.Card(sc.Situation, cw-2))
		b.WriteString("\n\n")
	}
	b.WriteString(s.list.View(cw))

	if fb := s.run.Feedback(); fb != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Secondary).
			Width(cw-2).
			Padding(0, 1).
			Render(theme.Feedback.Render(fb)))
	}
	return components.Frame(components.Block(b.String(), cw), width, height)
}

func (s *Screen) viewRitual(cw int) string {
	s.ritual.SetWidth(cw - 4)
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Your one-minute ritual"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(cw).Render(s.deps.Module.Scenarios.RitualPrompt))
	b.WriteString("\n\n")
	b.WriteString(components.Card(s.ritual.View(), cw-2))
	b.WriteString("\n")
	if s.ritual.Blank() {
		b.WriteString(theme.Hint.Render("Write at least a few words to finish this section."))
	} else {
		b.WriteString(theme.Hint.Render("Press Enter to save."))
	}
	return components.Block(b.String(), cw)
}

func progressDots(idx, total int, answered bool) string {
	var b strings.Builder
	for i := 0; i < total; i++ {
		switch {
		case i < idx || (i == idx && answered):
			b.WriteString(theme.Done.Render("●"))
		case i == idx:
			b.WriteString(theme.Selected.Render("●"))
		default:
			b.WriteString(theme.Subtitle.Render("○"))
		}
	}
	return b.String()
}
