// Package wrapup is the closing section: a summary of every section and
// a personal debrief, written by the configured model when there is one.
package wrapup

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/debrief"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/llm"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/ui/components"
	"github.com/abhisek/resilio/internal/ui/layout"
	"github.com/abhisek/resilio/internal/ui/theme"
)

const section = progress.SectionWrapUp

type debriefMsg struct {
	gen     int
	debrief debrief.Debrief
}

type statsMsg struct {
	events int
	usage  journal.LLMUsage
}

// Screen implements screen.Screen for the wrap-up.
type Screen struct {
	deps     screen.Deps
	gen      int
	cancel   context.CancelFunc
	debrief  *debrief.Debrief
	stats    *statsMsg
	exported bool
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.Teardown        = (*Screen)(nil)
)

func New(deps screen.Deps) *Screen {
	return &Screen{deps: deps.WithDefaults()}
}

// Init starts building the debrief and loading run statistics. It runs
// every time the screen is shown so the summary reflects the latest
// progress.
func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.requestDebrief(), s.loadStats())
}

func (s *Screen) Title() string {
	return s.deps.SectionTitle(section)
}

// Debrief returns the debrief on screen, if one has arrived.
func (s *Screen) Debrief() (debrief.Debrief, bool) {
	if s.debrief == nil {
		return debrief.Debrief{}, false
	}
	return *s.debrief, true
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Finish"}}
	if s.deps.Debrief.HasProvider() && s.debrief != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Rewrite debrief"})
	}
	return append(hints,
		layout.KeyHint{Key: "E", Description: "Export PDF"},
		layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Input collects the learner's results for the debrief. The wrap-up
// itself is left out.
func (s *Screen) Input() debrief.Input {
	state := s.deps.Progress.State()
	in := debrief.Input{ModuleTitle: s.deps.Module.Title}
	for _, sec := range s.deps.Module.Sections {
		if sec.ID == section {
			continue
		}
		r := debrief.SectionResult{
			ID:        string(sec.ID),
			Title:     sec.Title,
			Completed: state.Completed(sec.ID),
			Score:     -1,
		}
		if o, ok := state.Outcome(sec.ID); ok {
			r.Headline = o.Headline
			r.Details = o.Details
			r.Score = o.Score
		}
		in.Sections = append(in.Sections, r)
	}
	return in
}

// Teardown abandons an in-flight debrief request. Showing the screen
// again starts a new one.
func (s *Screen) Teardown() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Screen) requestDebrief() tea.Cmd {
	s.Teardown()
	s.debrief = nil
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	gen, in, svc := s.gen, s.Input(), s.deps.Debrief
	return func() tea.Msg {
		defer cancel()
		var d debrief.Debrief
		if svc == nil {
			d = debrief.Fallback(in)
		} else {
			d = svc.Build(ctx, in)
		}
		return debriefMsg{gen: gen, debrief: d}
	}
}

func (s *Screen) loadStats() tea.Cmd {
	stats, logger := s.deps.Stats, s.deps.Logger
	if stats == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		var msg statsMsg
		counts, err := stats.CountsBySection(ctx)
		if err != nil {
			logger.Warn("failed to load journal counts", zap.Error(err))
		}
		for _, n := range counts {
			msg.events += n
		}
		if msg.usage, err = stats.LLMUsage(ctx); err != nil {
			logger.Warn("failed to load llm usage", zap.Error(err))
		}
		return msg
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case debriefMsg:
		if msg.gen != s.gen {
			return s, nil
		}
		s.debrief = &msg.debrief
		s.deps.Record(section, journal.KindText, "debrief:"+string(msg.debrief.Source))
		return s, s.deps.Complete(section, progress.Outcome{
			Headline: msg.debrief.Headline,
			Score:    -1,
		})
	case statsMsg:
		s.stats = &msg
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "e":
			s.exported = true
		case "r":
			if s.deps.Debrief.HasProvider() && s.debrief != nil {
				return s, s.requestDebrief()
			}
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	state := s.deps.Progress.State()
	total := len(s.deps.Module.Sections)

	var b strings.Builder
	b.WriteString(components.NewProgressBar("Sections", state.CompletedCount(), total, true, cw).View())
	b.WriteString("\n\n")
	for _, r := range s.Input().Sections {
		mark := theme.Hint.Render("○ ")
		if r.Completed {
			mark = theme.Done.Render("✓ ")
		}
		line := mark + r.Title
		if r.Headline != "" {
			headline := theme.Hint.Render(r.Headline)
			if r.Score >= 0 {
				headline = theme.ScoreColor(r.Score, 100).Render(r.Headline)
			}
			line += "  " + headline
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(components.Card(s.viewDebrief(), cw-2))
	b.WriteString("\n")
	if s.stats != nil {
		b.WriteString(theme.Hint.Render(s.statsLine()))
		b.WriteString("\n")
	}
	if s.exported {
		b.WriteString(theme.Hint.Render("PDF export is not available in the terminal edition."))
	}
	return components.Frame(components.Block(b.String(), cw), width, height)
}

func (s *Screen) viewDebrief() string {
	if s.debrief == nil {
		return theme.Hint.Render("Preparing your debrief…")
	}
	d := s.debrief
	var b strings.Builder
	b.WriteString(theme.Heading.Render(d.Headline))
	if len(d.Strengths) > 0 {
		b.WriteString("\n\n" + theme.Subtitle.Render("What went well"))
		for _, st := range d.Strengths {
			b.WriteString("\n  • " + st)
		}
	}
	if len(d.NextSteps) > 0 {
		b.WriteString("\n\n" + theme.Subtitle.Render("Next steps"))
		for _, st := range d.NextSteps {
			b.WriteString("\n  → " + st)
		}
	}
	if d.Source == debrief.SourceLLM {
		b.WriteString("\n\n" + theme.Hint.Render("Written by "+s.deps.Debrief.ModelID()))
	}
	return b.String()
}

func (s *Screen) statsLine() string {
	line := fmt.Sprintf("%d interactions recorded this session", s.stats.events)
	u := s.stats.usage
	if u.Requests == 0 {
		return line
	}
	line += fmt.Sprintf(" · %d model call(s), %d tokens", u.Requests, u.InputTokens+u.OutputTokens)
	if cost, ok := llm.EstimateCost(s.deps.Debrief.ModelID(), u.InputTokens, u.OutputTokens); ok {
		line += fmt.Sprintf(", ~$%.4f", cost)
	}
	return line
}
