// Package assessment is the self-assessment section: rate each statement
// 1-5, then read the tiered feedback.
package assessment

import (
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	assess "github.com/abhisek/resilio/internal/assessment"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/ui/components"
	"github.com/abhisek/resilio/internal/ui/layout"
	"github.com/abhisek/resilio/internal/ui/theme"
)

const section = progress.SectionAssessment

// Screen implements screen.Screen for the self-assessment.
type Screen struct {
	deps     screen.Deps
	sheet    assess.Sheet
	cursor   int
	results  bool
	exported bool
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Teardown        = (*Screen)(nil)
)

func New(deps screen.Deps) *Screen {
	deps = deps.WithDefaults()
	return &Screen{
		deps:  deps,
		sheet: assess.NewSheet(deps.Module.Assessment.Questions),
	}
}

// Teardown hides the export notice; answers stay for the next visit.
func (s *Screen) Teardown() {
	s.exported = false
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.deps.SectionTitle(section)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.results {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "E", Description: "Export PDF"},
			{Key: "B", Description: "Edit answers"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Question"},
		{Key: "←→ 1-5", Description: "Rate"},
	}
	if s.sheet.Complete() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "See results"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	if s.results {
		return s.updateResults(kmsg)
	}

	questions := s.sheet.Questions()
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil
	case "down", "j":
		if s.cursor < len(questions)-1 {
			s.cursor++
		}
		return s, nil
	case "enter":
		if s.sheet.Complete() {
			s.results = true
		}
		return s, nil
	}

	if len(questions) == 0 {
		return s, nil
	}
	q := questions[s.cursor]
	slider := components.NewSlider(assess.MinScore, assess.MaxScore)
	slider.Value, _ = s.sheet.Score(q.ID)
	slider, changed := slider.Update(kmsg)
	if !changed {
		return s, nil
	}
	next, err := s.sheet.Answer(q.ID, slider.Value)
	if err != nil {
		s.deps.Logger.Error("rejected assessment answer", zap.Error(err))
		return s, nil
	}
	s.sheet = next
	s.deps.Record(section, journal.KindAnswer, fmt.Sprintf("%s=%d", q.ID, slider.Value))
	return s, nil
}

func (s *Screen) updateResults(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "enter":
		return s, tea.Batch(
			s.deps.Complete(section, s.outcome()),
			func() tea.Msg { return router.PopScreenMsg{} },
		)
	case "e":
		// Export is shown but intentionally does nothing.
		s.exported = true
	case "b":
		s.results = false
	}
	return s, nil
}

func (s *Screen) outcome() progress.Outcome {
	avg := s.sheet.Average()
	tier := assess.TierFor(avg)
	details := make([]string, 0, len(s.sheet.Questions()))
	for _, q := range s.sheet.Questions() {
		v, _ := s.sheet.Score(q.ID)
		details = append(details, fmt.Sprintf("%s: %d/5", q.Label, v))
	}
	return progress.Outcome{
		Headline: fmt.Sprintf("Average %.1f / 5 (%s)", avg, tier),
		Details:  details,
		Score:    int(math.Round(avg / assess.MaxScore * 100)),
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.results {
		return components.Frame(s.viewResults(cw), width, height)
	}
	return components.Frame(s.viewQuestions(cw, height), width, height)
}

func (s *Screen) viewQuestions(cw, height int) string {
	var b strings.Builder
	questions := s.sheet.Questions()
	b.WriteString(theme.Heading.Render("How do you usually respond?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d of %d answered. 1 = rarely, 5 = almost always", s.sheet.Answered(), len(questions))))
	b.WriteString("\n\n")

	compact := layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight)
	for i, q := range questions {
		v, _ := s.sheet.Score(q.ID)
		slider := components.Slider{Min: assess.MinScore, Max: assess.MaxScore, Value: v}
		label := q.Label
		style := theme.Unselected
		prefix := "  "
		if i == s.cursor {
			style = theme.Selected
			prefix = "▸ "
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			style.Width(cw-18).Render(prefix+label),
			slider.View(),
		)
		b.WriteString(row)
		b.WriteString("\n")
		if i == s.cursor && !compact && q.Description != "" {
			b.WriteString(theme.Hint.Width(cw).Render("    " + q.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	cont := components.NewButton("See results", "enter", s.sheet.Complete(), nil)
	b.WriteString(cont.View())
	return components.Block(b.String(), cw)
}

func (s *Screen) viewResults(cw int) string {
	var b strings.Builder
	avg := s.sheet.Average()
	tier := assess.TierFor(avg)

	b.WriteString(theme.Heading.Render("Your results"))
	b.WriteString("\n\n")
	b.WriteString(theme.ScoreColor(int(math.Round(avg*20)), 100).Render(fmt.Sprintf("Average: %.1f / 5", avg)))
	b.WriteString("\n\n")
	b.WriteString(components.Card(s.deps.Module.Assessment.Feedback.For(tier), cw-2))
	b.WriteString("\n\n")

	for _, q := range s.sheet.Questions() {
		v, _ := s.sheet.Score(q.ID)
		b.WriteString(theme.Body.Width(cw - 6).Render(q.Label))
		b.WriteString(theme.ScoreColor(v, assess.MaxScore).Render(fmt.Sprintf("%d/5", v)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		components.NewButton("Continue", "enter", true, nil).View(),
		"  ",
		components.NewButton("Export PDF", "e", false, nil).View(),
	))
	if s.exported {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Export is not available in this version."))
	}
	return components.Block(b.String(), cw)
}
