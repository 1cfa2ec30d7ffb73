package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/content"
	"github.com/abhisek/resilio/internal/debrief"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/timing"
	"github.com/abhisek/resilio/internal/ui/layout"
)

// Options configures the application. Everything but Module is optional.
type Options struct {
	Module  *content.Module
	Journal *journal.Journal
	Debrief *debrief.Service
	Logger  *zap.Logger
	Timing  screen.Timing
	Clock   timing.Clock
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	store  *progress.Store
	deps   screen.Deps
	width  int
	height int
}

// newAppModel wires the progress store to the journal and starts on the
// welcome screen.
func newAppModel(opts Options) AppModel {
	store := progress.NewStore(progress.Initial())
	deps := screen.Deps{
		Module:   opts.Module,
		Progress: store,
		Debrief:  opts.Debrief,
		Clock:    opts.Clock,
		Timing:   opts.Timing,
		Logger:   opts.Logger,
	}
	if opts.Journal != nil {
		deps.Journal = opts.Journal
		deps.Stats = opts.Journal
	}
	deps = deps.WithDefaults()
	store.Subscribe(journalListener(deps))

	return AppModel{
		router: router.New(newWelcome(deps)),
		store:  store,
		deps:   deps,
	}
}

// journalListener records completions and logs every transition.
func journalListener(deps screen.Deps) progress.Listener {
	return func(a progress.Action, next progress.State) {
		switch a := a.(type) {
		case progress.Navigate:
			deps.Logger.Debug("section opened", zap.String("section", string(a.Section)))
		case progress.Complete:
			deps.Record(a.Section, journal.KindComplete, a.Outcome.Headline)
			deps.Logger.Info("section completed",
				zap.String("section", string(a.Section)),
				zap.Int("score", a.Outcome.Score),
				zap.Int("completed", next.CompletedCount()))
		}
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case progress.ActionMsg:
		m.store.Dispatch(msg.Action)
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.TeardownAll()
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.store.State().CompletedCount(), len(m.deps.Module.Sections), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Module == nil {
		return fmt.Errorf("app: no module content")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
