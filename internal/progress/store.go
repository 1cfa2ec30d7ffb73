package progress

import tea "charm.land/bubbletea/v2"

// Reader gives screens read access to the current progress.
type Reader interface {
	State() State
}

// Listener is notified after every dispatched action.
type Listener func(a Action, next State)

// Store owns the current State. It is only touched from the Bubble Tea
// update loop and needs no locking.
type Store struct {
	state     State
	listeners []Listener
}

func NewStore(initial State) *Store {
	return &Store{state: initial}
}

func (s *Store) State() State {
	return s.state
}

// Subscribe registers a listener called after each Dispatch.
func (s *Store) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Dispatch reduces the action into the store and returns the new state.
func (s *Store) Dispatch(a Action) State {
	s.state = Reduce(s.state, a)
	for _, l := range s.listeners {
		l(a, s.state)
	}
	return s.state
}

// ActionMsg carries an Action from a screen to the app, which dispatches
// it.
type ActionMsg struct {
	Action Action
}

// Dispatch returns a command delivering a to the app.
func Dispatch(a Action) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Action: a}
	}
}
