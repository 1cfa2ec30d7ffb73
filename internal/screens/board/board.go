// Package board is the categorization section used by both the priority
// matrix and the support-network map. The two differ only in content.
package board

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/categorize"
	"github.com/abhisek/resilio/internal/content"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/ui/components"
	"github.com/abhisek/resilio/internal/ui/layout"
	"github.com/abhisek/resilio/internal/ui/theme"
)

// Phase is the step of the exercise on screen.
type Phase int

const (
	PhaseTheory Phase = iota
	PhasePractice
	PhaseEvaluation
)

const labelLimit = 60

// Screen implements screen.Screen for one categorization board.
type Screen struct {
	deps    screen.Deps
	section progress.SectionID
	data    content.Board
	board   categorize.Board
	phase   Phase
	cursor  int
	adding  bool
	input   components.TextInput
	notice  string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.InputCapturer   = (*Screen)(nil)
	_ screen.Teardown        = (*Screen)(nil)
)

// New creates the board section identified by section from data.
func New(deps screen.Deps, section progress.SectionID, data content.Board) *Screen {
	s := &Screen{
		deps:    deps.WithDefaults(),
		section: section,
		data:    data,
		board:   data.NewBoard(),
		input:   components.NewTextInput("Describe the item", labelLimit),
	}
	if len(data.Theory) == 0 {
		s.phase = PhasePractice
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.deps.SectionTitle(s.section)
}

func (s *Screen) CapturingInput() bool {
	return s.adding
}

// Phase returns the step on screen.
func (s *Screen) Phase() Phase {
	return s.phase
}

// Board returns the current assignments.
func (s *Screen) Board() categorize.Board {
	return s.board
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.adding:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Add"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.phase == PhaseTheory:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start sorting"},
			{Key: "Esc", Description: "Back"},
		}
	case s.phase == PhaseEvaluation:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "B", Description: "Rearrange"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Item"},
		{Key: fmt.Sprintf("1-%d", len(s.board.Categories())), Description: "Drop"},
		{Key: "A", Description: "Add"},
		{Key: "R", Description: "Reset"},
	}
	if s.board.Complete() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Evaluate"})
	}
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.adding {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}
	if s.adding {
		return s.updateAdding(kmsg)
	}

	switch s.phase {
	case PhaseTheory:
		if kmsg.String() == "enter" {
			s.phase = PhasePractice
		}
		return s, nil
	case PhaseEvaluation:
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "b":
			s.phase = PhasePractice
		}
		return s, nil
	}
	return s.updatePractice(kmsg)
}

// Teardown drops a half-typed item. Sorting progress is kept.
func (s *Screen) Teardown() {
	s.adding = false
	s.input.Clear()
	s.notice = ""
}

func (s *Screen) updatePractice(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s.notice = ""
	order := s.visualOrder()
	key := kmsg.String()
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(order)-1 {
			s.cursor++
		}
	case "r":
		s.apply(categorize.ResetAll{})
		s.cursor = 0
		s.deps.Record(s.section, journal.KindReset, "")
	case "a":
		s.adding = true
		s.input.Clear()
		return s, s.input.Init()
	case "enter":
		if !s.board.Complete() {
			s.notice = fmt.Sprintf("%d item(s) still to sort.", len(s.board.Unassigned()))
			return s, nil
		}
		s.phase = PhaseEvaluation
		return s, s.deps.Complete(s.section, s.outcome())
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			s.drop(order, int(key[0]-'1'))
		}
	}
	return s, nil
}

func (s *Screen) drop(order []categorize.Item, catIdx int) {
	cats := s.board.Categories()
	if catIdx >= len(cats) || s.cursor >= len(order) {
		return
	}
	item := order[s.cursor]
	if s.apply(categorize.Assign{ItemID: item.ID, CategoryID: cats[catIdx].ID}) {
		s.deps.Record(s.section, journal.KindDrop, item.ID+"->"+cats[catIdx].ID)
	}
	s.cursor = min(s.cursor, max(len(s.visualOrder())-1, 0))
}

func (s *Screen) updateAdding(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		s.adding = false
		return s, nil
	case "enter":
		if s.input.Blank() {
			return s, nil
		}
		label := s.input.Value()
		if s.apply(categorize.AddItem{Label: label}) {
			s.deps.Record(s.section, journal.KindText, label)
		}
		s.adding = false
		s.cursor = len(s.board.Unassigned()) - 1
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(kmsg)
	return s, cmd
}

func (s *Screen) apply(cmd categorize.Command) bool {
	next, err := s.board.Apply(cmd)
	if err != nil {
		s.deps.Logger.Error("board command rejected",
			zap.String("section", string(s.section)), zap.Error(err))
		return false
	}
	s.board = next
	return true
}

// visualOrder lists items the way they are drawn: the unsorted bucket
// first, then each category in turn.
func (s *Screen) visualOrder() []categorize.Item {
	order := s.board.Unassigned()
	for _, c := range s.board.Categories() {
		order = append(order, s.board.InCategory(c.ID)...)
	}
	return order
}

func (s *Screen) outcome() progress.Outcome {
	counts := s.board.Counts()
	var details []string
	for _, c := range s.board.Categories() {
		details = append(details, fmt.Sprintf("%s: %d", c.Title, counts[c.ID]))
	}
	advice := categorize.Analyze(s.board, s.data.Rules)
	for _, a := range advice {
		details = append(details, a.Title)
	}
	return progress.Outcome{
		Headline: fmt.Sprintf("%d items sorted, %d tip(s)", len(s.board.Items()), len(advice)),
		Details:  details,
		Score:    -1,
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	switch s.phase {
	case PhaseTheory:
		body = s.viewTheory(cw)
	case PhaseEvaluation:
		body = s.viewEvaluation(cw)
	default:
		body = s.viewPractice(cw)
	}
	return components.Frame(components.Block(body, cw), width, height)
}

func (s *Screen) viewTheory(cw int) string {
	var b strings.Builder
	for _, p := range s.data.Theory {
		b.WriteString(theme.Body.Width(cw).Render(p))
		b.WriteString("\n\n")
	}
	for i, c := range s.board.Categories() {
		head := theme.Heading.Render(fmt.Sprintf("%d. %s", i+1, c.Title))
		if c.Subtitle != "" {
			head += theme.Subtitle.Render("  " + c.Subtitle)
		}
		b.WriteString(head + "\n")
		line := c.Description
		if len(c.Examples) > 0 {
			line += " e.g. " + strings.Join(c.Examples, ", ")
		}
		b.WriteString(theme.Hint.Width(cw).Render("   " + line))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Screen) viewPractice(cw int) string {
	order := s.visualOrder()
	var selected string
	if s.cursor < len(order) {
		selected = order[s.cursor].ID
	}
	renderItem := func(it categorize.Item) string {
		if it.ID == selected && !s.adding {
			return theme.Selected.Render("▸ " + it.Label)
		}
		return theme.Unselected.Render("  " + it.Label)
	}

	var b strings.Builder
	unassigned := s.board.Unassigned()
	b.WriteString(theme.Heading.Render(fmt.Sprintf("To sort (%d)", len(unassigned))))
	b.WriteString("\n")
	if len(unassigned) == 0 {
		b.WriteString(theme.Done.Render("  Everything is sorted."))
		b.WriteString("\n")
	}
	for _, it := range unassigned {
		b.WriteString(renderItem(it))
		b.WriteString("\n")
	}
	if s.adding {
		b.WriteString(components.Card(s.input.View(), cw-2))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	cats := s.board.Categories()
	half := (cw - 1) / 2
	var cards []string
	for i, c := range cats {
		var cb strings.Builder
		cb.WriteString(theme.Heading.Render(fmt.Sprintf("[%d] %s", i+1, c.Title)))
		for _, it := range s.board.InCategory(c.ID) {
			cb.WriteString("\n")
			cb.WriteString(renderItem(it))
		}
		cards = append(cards, theme.Card.Width(half).Render(cb.String()))
	}
	for i := 0; i < len(cards); i += 2 {
		row := cards[i]
		if i+1 < len(cards) {
			row = lipgloss.JoinHorizontal(lipgloss.Top, cards[i], " ", cards[i+1])
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	if s.notice != "" {
		b.WriteString(theme.Hint.Render(s.notice))
	}
	return b.String()
}

func (s *Screen) viewEvaluation(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Your distribution"))
	b.WriteString("\n\n")
	counts := s.board.Counts()
	total := len(s.board.Items())
	for _, c := range s.board.Categories() {
		bar := components.NewProgressBar(fmt.Sprintf("%-28s %2d", c.Title, counts[c.ID]), counts[c.ID], total, false, cw)
		b.WriteString(bar.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	advice := categorize.Analyze(s.board, s.data.Rules)
	if len(advice) == 0 {
		b.WriteString(theme.Hint.Render("No particular advice. Your distribution looks reasonable."))
	}
	for _, a := range advice {
		b.WriteString(components.Card(theme.Heading.Render(a.Title)+"\n"+theme.Body.Render(a.Text), cw-2))
		b.WriteString("\n")
	}
	return b.String()
}
