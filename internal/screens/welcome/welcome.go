// Package welcome is the splash screen shown before the module overview.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/timing"
	"github.com/abhisek/resilio/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const sunArt = `    \   |   /
      .---.
  -- (     ) --
      '---'
    /   |   \`

// glow frames cycle around the sun
var glowFrames = []string{"·", "•", "●", "•"}

type tick struct{}

// WelcomeScreen shows a splash animation and the module introduction
// before handing over to the overview.
type WelcomeScreen struct {
	deps         screen.Deps
	homeFactory  func() screen.Screen
	timers       *timing.Scheduler
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var (
	_ screen.Screen   = (*WelcomeScreen)(nil)
	_ screen.Teardown = (*WelcomeScreen)(nil)
)

// New creates a WelcomeScreen that will transition to the screen produced
// by homeFactory.
func New(deps screen.Deps, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		deps:        deps.WithDefaults(),
		homeFactory: homeFactory,
		timers:      timing.NewScheduler(),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	_, cmd := w.timers.After(tickInterval, tick{})
	return cmd
}

func (w *WelcomeScreen) Teardown() {
	w.timers.CancelAll()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timing.FiredMsg:
		if _, ok := w.timers.Accept(msg); !ok {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		_, cmd := w.timers.After(tickInterval, tick{})
		return w, cmd

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	w.timers.CancelAll()
	w.deps.Record(progress.SectionWelcome, journal.KindNavigate, "start")
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sun := lipgloss.NewStyle().Foreground(theme.Accent).Render(sunArt)
	if w.elapsed >= phase1End {
		glow := lipgloss.NewStyle().Foreground(theme.Highlight).
			Render(glowFrames[w.tickCount%len(glowFrames)])
		lines := strings.Split(sun, "\n")
		mid := len(lines) / 2
		lines[mid] = glow + "  " + lines[mid] + "  " + glow
		sun = strings.Join(lines, "\n")
	}
	sections = append(sections, sun)

	if w.elapsed >= phase2End {
		m := w.deps.Module
		sections = append(sections, "", RenderBanner(width), "")
		if m != nil {
			sections = append(sections,
				lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Title),
				theme.Subtitle.Render(m.Tagline),
				"",
			)
			wrap := lipgloss.NewStyle().Foreground(theme.Text).Width(min(width-4, 70)).Align(lipgloss.Center)
			for _, p := range m.Welcome {
				sections = append(sections, wrap.Render(p))
			}
		}
	}

	sections = append(sections, "", theme.Hint.Render("press any key to begin"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
