package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/resilio/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Teardown is implemented by screens that own timers or in-flight work.
// The router calls it when the screen leaves the stack; afterwards no
// pending timer of the screen may change its state.
type Teardown interface {
	Teardown()
}

// InputCapturer is implemented by screens with a text field. While
// CapturingInput is true the app forwards Esc to the screen instead of
// navigating back.
type InputCapturer interface {
	CapturingInput() bool
}
