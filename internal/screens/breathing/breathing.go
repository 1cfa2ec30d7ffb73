// Package breathing is the guided breathing section.
package breathing

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	seq "github.com/abhisek/resilio/internal/breathing"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/timing"
	"github.com/abhisek/resilio/internal/ui/components"
	"github.com/abhisek/resilio/internal/ui/layout"
	"github.com/abhisek/resilio/internal/ui/theme"
)

const section = progress.SectionBreathing

// phaseDone fires when the current breathing phase has elapsed.
type phaseDone struct{}

// Screen implements screen.Screen for the breathing exercise.
type Screen struct {
	deps   screen.Deps
	seq    seq.Sequencer
	cursor int
	timers *timing.Scheduler
	last   string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Teardown        = (*Screen)(nil)
	_ screen.InputCapturer   = (*Screen)(nil)
)

func New(deps screen.Deps) *Screen {
	deps = deps.WithDefaults()
	return &Screen{
		deps:   deps,
		seq:    seq.New(deps.Module.Breathing.Techniques, deps.Timing.BreathingCycles),
		timers: timing.NewScheduler(),
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.deps.SectionTitle(section)
}

// CapturingInput keeps Esc on this screen while a technique runs so it
// stops the exercise instead of leaving the section.
func (s *Screen) CapturingInput() bool {
	return s.seq.Running()
}

// Sequencer returns the current sequencer state.
func (s *Screen) Sequencer() seq.Sequencer {
	return s.seq
}

func (s *Screen) Teardown() {
	s.timers.CancelAll()
	s.seq = s.seq.Cancel()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.seq.Running() {
		return []layout.KeyHint{{Key: "Esc", Description: "Stop"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Technique"},
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
		return s, s.advance()
	case tea.KeyPressMsg:
		if s.seq.Running() {
			if k := msg.String(); k == "esc" || k == "s" {
				s.stop()
			}
			return s, nil
		}
		techniques := s.seq.Techniques()
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(techniques)-1 {
				s.cursor++
			}
		case "enter", "space":
			if s.cursor < len(techniques) {
				return s, s.start(techniques[s.cursor].ID)
			}
		}
	}
	return s, nil
}

func (s *Screen) start(id string) tea.Cmd {
	next, step, err := s.seq.Start(id)
	if err != nil {
		s.deps.Logger.Error("breathing technique did not start", zap.String("technique", id), zap.Error(err))
		return nil
	}
	s.seq = next
	s.last = ""
	s.deps.Record(section, journal.KindBreathing, "start:"+id)
	_, cmd := s.timers.After(step.Phase.Duration(), phaseDone{})
	return cmd
}

func (s *Screen) stop() {
	step, _ := s.seq.Current()
	s.timers.CancelAll()
	s.seq = s.seq.Cancel()
	s.deps.Record(section, journal.KindBreathing, "stop:"+step.Technique)
}

func (s *Screen) advance() tea.Cmd {
	cur, _ := s.seq.Current()
	next, step, done, err := s.seq.Advance()
	if err != nil {
		return nil
	}
	s.seq = next
	if !done {
		_, cmd := s.timers.After(step.Phase.Duration(), phaseDone{})
		return cmd
	}
	s.last = cur.Technique
	s.deps.Record(section, journal.KindBreathing, "done:"+cur.Technique)
	return s.deps.Complete(section, s.outcome())
}

func (s *Screen) outcome() progress.Outcome {
	var names []string
	for _, t := range s.seq.Techniques() {
		if s.seq.Completed(t.ID) {
			names = append(names, t.Name)
		}
	}
	return progress.Outcome{
		Headline: fmt.Sprintf("%d of %d techniques practised", s.seq.CompletedCount(), len(s.seq.Techniques())),
		Details:  names,
		Score:    -1,
	}
}

func (s *Screen) technique(id string) seq.Technique {
	for _, t := range s.seq.Techniques() {
		if t.ID == id {
			return t
		}
	}
	return seq.Technique{}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string
	if step, ok := s.seq.Current(); ok {
		body = s.viewRunning(step, cw)
	} else {
		body = s.viewSelection(cw)
	}
	return components.Frame(components.Block(body, cw), width, height)
}

func (s *Screen) viewSelection(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Choose a technique"))
	b.WriteString("\n\n")
	for i, t := range s.seq.Techniques() {
		mark := "○ "
		if s.seq.Completed(t.ID) {
			mark = theme.Done.Render("✓ ")
		}
		name := t.Name
		if i == s.cursor {
			name = theme.Selected.Render("▸ " + name)
		} else {
			name = theme.Unselected.Render("  " + name)
		}
		b.WriteString(mark + name + theme.Hint.Render("  "+phasePattern(t)) + "\n")
		if i == s.cursor {
			b.WriteString(theme.Hint.Width(cw).Render("     "+t.Description) + "\n")
		}
	}
	if s.last != "" {
		b.WriteString("\n" + theme.Feedback.Render(fmt.Sprintf("Well done, you finished %s.", s.technique(s.last).Name)))
	}
	return b.String()
}

// phasePattern renders a technique as its phase lengths, e.g. "4-7-8".
func phasePattern(t seq.Technique) string {
	parts := make([]string, len(t.Phases))
	for i, p := range t.Phases {
		parts[i] = fmt.Sprint(p.Seconds)
	}
	return strings.Join(parts, "-")
}

func (s *Screen) viewRunning(step seq.Step, cw int) string {
	t := s.technique(step.Technique)
	var b strings.Builder
	b.WriteString(theme.Title.Render(t.Name))
	b.WriteString("\n\n")

	// the circle grows on inhale and shrinks on exhale
	size := 3
	switch strings.ToLower(step.Phase.Name) {
	case "inhale":
		size = 5
	case "exhale":
		size = 1
	}
	circle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Width(size*4).
		Height(size).
		Align(lipgloss.Center, lipgloss.Center).
		Render(step.Phase.Name)
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, circle))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		theme.Subtitle.Render(fmt.Sprintf("%s for %d seconds", step.Phase.Name, step.Phase.Seconds))))
	b.WriteString("\n\n")
	done := (step.Cycle-1)*len(t.Phases) + step.Index
	bar := components.NewProgressBar(fmt.Sprintf("Cycle %d/%d", step.Cycle, s.seq.Cycles()),
		done, s.seq.Cycles()*len(t.Phases), false, cw)
	b.WriteString(bar.View())
	return b.String()
}
