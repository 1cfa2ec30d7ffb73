// Package confidence is the self-confidence section: rate strengths,
// recall successes, then pick actions that stretch the comfort zone.
package confidence

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/assessment"
	conf "github.com/abhisek/resilio/internal/confidence"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/ui/components"
	"github.com/abhisek/resilio/internal/ui/layout"
	"github.com/abhisek/resilio/internal/ui/theme"
)

const (
	section      = progress.SectionConfidence
	successLimit = 140
)

// Screen implements screen.Screen for the confidence exercise.
type Screen struct {
	deps     screen.Deps
	profile  conf.Profile
	phase    int
	cursor   int
	typing   bool
	category int
	input    components.TextInput
	finished bool
	notice   string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.InputCapturer   = (*Screen)(nil)
	_ screen.Teardown        = (*Screen)(nil)
)

// Teardown discards a success that was being typed.
func (s *Screen) Teardown() {
	s.typing = false
	s.input.Clear()
	s.notice = ""
}

func New(deps screen.Deps) *Screen {
	deps = deps.WithDefaults()
	return &Screen{
		deps:    deps,
		profile: conf.New(deps.Module.Confidence),
		input:   components.NewTextInput("A success I am proud of", successLimit),
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.deps.SectionTitle(section)
}

func (s *Screen) CapturingInput() bool {
	return s.typing
}

// Phase returns the sub-exercise on screen.
func (s *Screen) Phase() conf.Phase {
	return conf.Phases[s.phase]
}

// Profile returns the answers given so far.
func (s *Screen) Profile() conf.Profile {
	return s.profile
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.finished {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "B", Description: "Edit"},
		}
	}
	if s.typing {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Category"},
			{Key: "Enter", Description: "Add"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Move"}}
	switch s.Phase() {
	case conf.PhaseStrengths:
		hints = append(hints,
			layout.KeyHint{Key: "1-5", Description: "Rate"},
			layout.KeyHint{Key: "Space", Description: "Top 3"})
	case conf.PhaseSuccesses:
		hints = append(hints,
			layout.KeyHint{Key: "A", Description: "Add"},
			layout.KeyHint{Key: "1-5", Description: "Pride"},
			layout.KeyHint{Key: "D", Description: "Delete"})
	case conf.PhaseComfort:
		hints = append(hints,
			layout.KeyHint{Key: "1-5", Description: "Level"},
			layout.KeyHint{Key: "Space", Description: "Pick"})
	}
	if s.profile.PhaseComplete(s.Phase()) {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.typing {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}
	if s.typing {
		return s.updateTyping(kmsg)
	}
	if s.finished {
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "b":
			s.finished = false
		}
		return s, nil
	}

	s.notice = ""
	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil
	case "down", "j":
		if s.cursor < s.rows()-1 {
			s.cursor++
		}
		return s, nil
	case "b":
		if s.phase > 0 {
			s.phase--
			s.cursor = 0
		}
		return s, nil
	case "enter":
		return s, s.advance()
	}

	switch s.Phase() {
	case conf.PhaseStrengths:
		s.updateStrengths(kmsg)
	case conf.PhaseSuccesses:
		return s.updateSuccesses(kmsg)
	case conf.PhaseComfort:
		s.updateComfort(kmsg)
	}
	return s, nil
}

func (s *Screen) advance() tea.Cmd {
	ph := s.Phase()
	if !s.profile.PhaseComplete(ph) {
		s.notice = requirement(ph)
		return nil
	}
	if s.phase < len(conf.Phases)-1 {
		s.phase++
		s.cursor = 0
		return nil
	}
	s.finished = true
	return s.deps.Complete(section, s.outcome())
}

func requirement(ph conf.Phase) string {
	switch ph {
	case conf.PhaseStrengths:
		return fmt.Sprintf("Rate at least %d strengths and pick your top %d.", conf.MinRatedStrengths, conf.MaxTopStrengths)
	case conf.PhaseSuccesses:
		return fmt.Sprintf("Write down at least %d successes.", conf.MinSuccesses)
	default:
		return fmt.Sprintf("Set your comfort level and pick %d actions.", conf.StretchActions)
	}
}

func (s *Screen) rows() int {
	c := s.profile.Catalog()
	switch s.Phase() {
	case conf.PhaseStrengths:
		return len(c.Strengths)
	case conf.PhaseSuccesses:
		return len(s.profile.Successes())
	default:
		// comfort slider, then each action
		return 1 + len(c.Actions)
	}
}

func (s *Screen) updateStrengths(kmsg tea.KeyPressMsg) {
	strengths := s.profile.Catalog().Strengths
	if s.cursor >= len(strengths) {
		return
	}
	id := strengths[s.cursor].ID
	if kmsg.String() == "space" {
		next, err := s.profile.ToggleTopStrength(id)
		if err != nil {
			s.notice = fmt.Sprintf("You already picked %d top strengths.", conf.MaxTopStrengths)
			return
		}
		s.profile = next
		s.deps.Record(section, journal.KindChoice, "top:"+id)
		return
	}

	slider := components.NewSlider(assessment.MinScore, assessment.MaxScore)
	slider.Value, _ = s.profile.Rating(id)
	slider, changed := slider.Update(kmsg)
	if !changed {
		return
	}
	if s.apply(s.profile.RateStrength(id, slider.Value)) {
		s.deps.Record(section, journal.KindAnswer, fmt.Sprintf("%s=%d", id, slider.Value))
	}
}

func (s *Screen) updateSuccesses(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if kmsg.String() == "a" {
		s.typing = true
		s.input.Clear()
		return s, s.input.Init()
	}
	successes := s.profile.Successes()
	if s.cursor >= len(successes) {
		return s, nil
	}
	cur := successes[s.cursor]
	if kmsg.String() == "d" {
		if s.apply(s.profile.RemoveSuccess(cur.ID)) {
			s.cursor = max(min(s.cursor, len(successes)-2), 0)
		}
		return s, nil
	}
	slider := components.NewSlider(assessment.MinScore, assessment.MaxScore)
	slider.Value = cur.Pride
	if slider, changed := slider.Update(kmsg); changed {
		s.apply(s.profile.SetPride(cur.ID, slider.Value))
	}
	return s, nil
}

func (s *Screen) updateTyping(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	categories := s.profile.Catalog().Categories
	switch kmsg.String() {
	case "esc":
		s.typing = false
		return s, nil
	case "tab":
		if len(categories) > 0 {
			s.category = (s.category + 1) % len(categories)
		}
		return s, nil
	case "enter":
		if s.input.Blank() || len(categories) == 0 {
			return s, nil
		}
		text := s.input.Value()
		cat := categories[s.category].ID
		if s.apply(s.profile.AddSuccess(text, cat)) {
			s.deps.Record(section, journal.KindText, cat+": "+text)
			s.cursor = len(s.profile.Successes()) - 1
		}
		s.typing = false
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(kmsg)
	return s, cmd
}

func (s *Screen) updateComfort(kmsg tea.KeyPressMsg) {
	if s.cursor == 0 {
		slider := components.NewSlider(assessment.MinScore, assessment.MaxScore)
		slider.Value = s.profile.Comfort()
		if slider, changed := slider.Update(kmsg); changed {
			if s.apply(s.profile.SetComfort(slider.Value)) {
				s.deps.Record(section, journal.KindAnswer, fmt.Sprintf("comfort=%d", slider.Value))
			}
		}
		return
	}
	if kmsg.String() != "space" {
		return
	}
	action := s.profile.Catalog().Actions[s.cursor-1]
	next, err := s.profile.ToggleAction(action)
	if err != nil {
		s.notice = fmt.Sprintf("Pick at most %d actions.", conf.StretchActions)
		return
	}
	s.profile = next
	s.deps.Record(section, journal.KindChoice, "action:"+action)
}

func (s *Screen) apply(next conf.Profile, err error) bool {
	if err != nil {
		s.deps.Logger.Error("confidence update rejected", zap.Error(err))
		return false
	}
	s.profile = next
	return true
}

func (s *Screen) outcome() progress.Outcome {
	c := s.profile.Catalog()
	labels := make([]string, 0, conf.MaxTopStrengths)
	for _, id := range s.profile.TopStrengths() {
		for _, q := range c.Strengths {
			if q.ID == id {
				labels = append(labels, q.Label)
			}
		}
	}
	score := s.profile.Score()
	return progress.Outcome{
		Headline: fmt.Sprintf("Confidence score %d/100", score),
		Details: []string{
			"Top strengths: " + strings.Join(labels, ", "),
			fmt.Sprintf("Successes recorded: %d", len(s.profile.Successes())),
			fmt.Sprintf("Comfort zone: %d/5", s.profile.Comfort()),
			"Stretch goals: " + strings.Join(s.profile.Actions(), "; "),
		},
		Score: score,
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder
	if s.finished {
		b.WriteString(s.viewSummary(cw))
	} else {
		b.WriteString(s.viewSteps())
		b.WriteString("\n\n")
		switch s.Phase() {
		case conf.PhaseStrengths:
			b.WriteString(s.viewStrengths())
		case conf.PhaseSuccesses:
			b.WriteString(s.viewSuccesses(cw))
		case conf.PhaseComfort:
			b.WriteString(s.viewComfort())
		}
		if s.notice != "" {
			b.WriteString("\n" + theme.Hint.Render(s.notice))
		}
	}
	return components.Frame(components.Block(b.String(), cw), width, height)
}

func (s *Screen) viewSteps() string {
	names := map[conf.Phase]string{
		conf.PhaseStrengths: "Strengths",
		conf.PhaseSuccesses: "Successes",
		conf.PhaseComfort:   "Comfort zone",
	}
	parts := make([]string, len(conf.Phases))
	for i, ph := range conf.Phases {
		label := fmt.Sprintf("%d %s", i+1, names[ph])
		switch {
		case i == s.phase:
			parts[i] = theme.Selected.Render(label)
		case s.profile.PhaseComplete(ph):
			parts[i] = theme.Done.Render("✓ " + label)
		default:
			parts[i] = theme.Unselected.Render(label)
		}
	}
	return strings.Join(parts, theme.Hint.Render("  ›  "))
}

func (s *Screen) cursorMark(row int) string {
	if row == s.cursor {
		return theme.Selected.Render("▸ ")
	}
	return "  "
}

func (s *Screen) viewStrengths() string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Rate each strength, then pick your top three."))
	b.WriteString("\n\n")
	top := s.profile.TopStrengths()
	for i, q := range s.profile.Catalog().Strengths {
		slider := components.NewSlider(assessment.MinScore, assessment.MaxScore)
		slider.Value, _ = s.profile.Rating(q.ID)
		star := "  "
		if slices.Contains(top, q.ID) {
			star = theme.Done.Render("★ ")
		}
		fmt.Fprintf(&b, "%s%s%-16s %s\n", s.cursorMark(i), star, q.Label, slider.View())
		if i == s.cursor && q.Description != "" {
			b.WriteString(theme.Hint.Render("      "+q.Description) + "\n")
		}
	}
	fmt.Fprintf(&b, "\n%s", theme.Hint.Render(fmt.Sprintf("Rated %d, top %d/%d",
		s.profile.Rated(), len(top), conf.MaxTopStrengths)))
	return b.String()
}

func (s *Screen) viewSuccesses(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Which successes are you proud of?"))
	b.WriteString("\n\n")
	categories := s.profile.Catalog().Categories
	label := func(id string) string {
		for _, c := range categories {
			if c.ID == id {
				return c.Label
			}
		}
		return id
	}
	successes := s.profile.Successes()
	if len(successes) == 0 && !s.typing {
		b.WriteString(theme.Hint.Render("Nothing yet. Press A to add one.") + "\n")
	}
	for i, sc := range successes {
		slider := components.NewSlider(assessment.MinScore, assessment.MaxScore)
		slider.Value = sc.Pride
		fmt.Fprintf(&b, "%s%s %s\n    %s\n", s.cursorMark(i), sc.Text,
			theme.Hint.Render("("+label(sc.Category)+")"), slider.View())
	}
	if s.typing && len(categories) > 0 {
		field := s.input.View() + "\n" + theme.Hint.Render("Category: ") +
			theme.Selected.Render(categories[s.category].Label)
		b.WriteString("\n" + components.Card(field, cw-2))
	}
	return b.String()
}

func (s *Screen) viewComfort() string {
	var b strings.Builder
	slider := components.NewSlider(assessment.MinScore, assessment.MaxScore)
	slider.Value = s.profile.Comfort()
	fmt.Fprintf(&b, "%s%s %s\n\n", s.cursorMark(0),
		theme.Heading.Render("How comfortable are you today?"), slider.View())
	b.WriteString(theme.Body.Render(fmt.Sprintf("Pick %d actions to try this month:", conf.StretchActions)))
	b.WriteString("\n")
	chosen := s.profile.Actions()
	for i, a := range s.profile.Catalog().Actions {
		box := "[ ] "
		if slices.Contains(chosen, a) {
			box = theme.Done.Render("[x] ")
		}
		b.WriteString(s.cursorMark(i+1) + box + a + "\n")
	}
	return b.String()
}

func (s *Screen) viewSummary(cw int) string {
	o := s.outcome()
	var b strings.Builder
	b.WriteString(theme.ScoreColor(o.Score, 100).Bold(true).Render(o.Headline))
	b.WriteString("\n\n")
	b.WriteString(components.Card(strings.Join(o.Details, "\n"), cw-2))
	return b.String()
}
