// Package home is the module overview: every section with its completion
// marker, reachable in any order.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/router"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/ui/components"
	"github.com/abhisek/resilio/internal/ui/layout"
)

// Factory builds the screen of a section.
type Factory func(id progress.SectionID) screen.Screen

// HomeScreen lists the sections. Section screens are built on first
// visit and reused afterwards so their state survives leaving them.
type HomeScreen struct {
	deps    screen.Deps
	build   Factory
	screens map[progress.SectionID]screen.Screen
	menu    components.Menu
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates the overview. build is called at most once per section.
func New(deps screen.Deps, build Factory) *HomeScreen {
	h := &HomeScreen{
		deps:    deps.WithDefaults(),
		build:   build,
		screens: make(map[progress.SectionID]screen.Screen),
	}
	h.refresh()
	return h
}

// Init refreshes the completion markers. The router calls it whenever
// the overview comes back into view.
func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Overview"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Section"},
		{Key: "Enter", Description: "Open"},
		{Key: fmt.Sprintf("1-%d", len(h.deps.Module.Sections)), Description: "Jump"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) refresh() {
	state := h.deps.Progress.State()
	selected := h.menu.Selected
	items := make([]components.MenuItem, 0, len(h.deps.Module.Sections)+1)
	for _, sec := range h.deps.Module.Sections {
		marker := "○"
		if state.Completed(sec.ID) {
			marker = "✓"
		}
		id := sec.ID
		items = append(items, components.MenuItem{
			Label:  h.deps.SectionTitle(id),
			Marker: marker,
			Action: func() tea.Cmd { return h.open(id) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	h.menu = components.NewMenu(items)
	h.menu.Selected = min(selected, len(items)-1)
}

// open makes id current and shows its screen.
func (h *HomeScreen) open(id progress.SectionID) tea.Cmd {
	s, ok := h.screens[id]
	if !ok {
		s = h.build(id)
		if s == nil {
			return nil
		}
		h.screens[id] = s
	}
	h.deps.Record(id, journal.KindNavigate, "open")
	return tea.Batch(
		progress.Dispatch(progress.Navigate{Section: id}),
		func() tea.Msg { return router.PushScreenMsg{Screen: s} },
	)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		key := kmsg.String()
		switch {
		case key == "q":
			return h, tea.Quit
		case len(key) == 1 && key[0] >= '1' && key[0] <= '9':
			idx := int(key[0] - '1')
			if idx < len(h.deps.Module.Sections) {
				h.menu.Selected = idx
				return h, h.open(h.deps.Module.Sections[idx].ID)
			}
			return h, nil
		}
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + 8
	compact := termHeight < 30 || width < 100
	cw := components.ContentWidth(width)
	state := h.deps.Progress.State()
	total := len(h.deps.Module.Sections)

	var parts []string
	parts = append(parts, renderTitle(h.deps.Module.Title, h.deps.Module.Tagline, cw, compact))
	if !compact {
		parts = append(parts, renderMascotBox(VariantFor(state.CompletedCount(), total), cw))
	}
	parts = append(parts,
		components.NewProgressBar("Progress", state.CompletedCount(), total, true, cw).View(),
		components.Block(h.menu.View(), cw))
	if h.menu.Selected < total {
		sec := h.deps.Module.Sections[h.menu.Selected]
		parts = append(parts, renderSummary(sec.Summary, state.Outcome, sec.ID, cw))
	}
	if !h.deps.Debrief.HasProvider() && !compact {
		parts = append(parts, renderOfflineNote(cw))
	}
	return components.Frame(strings.Join(parts, "\n\n"), width, height)
}
