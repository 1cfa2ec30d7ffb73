package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/resilio/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title     string
	initRan   bool
	initCount int
	torn      int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	s.initCount++
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func (s *stubScreen) Teardown() { s.torn++ }

func TestPopTearsDownAndReinitsBelow(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	r.Update(PopScreenMsg{})

	if s2.torn != 1 {
		t.Errorf("expected popped screen torn down once, got %d", s2.torn)
	}
	if s1.torn != 0 {
		t.Error("screen below must not be torn down")
	}
	if s1.initCount != 1 {
		t.Errorf("expected Init() on uncovered screen, got %d calls", s1.initCount)
	}
}

func TestPopAtBottomDoesNotTearDown(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	r.Pop()
	if s1.torn != 0 {
		t.Error("bottom screen must stay alive")
	}
}

func TestReplaceTearsDownOutgoing(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	r.Replace(&stubScreen{title: "second"})
	if s1.torn != 1 {
		t.Errorf("expected replaced screen torn down, got %d", s1.torn)
	}
}

func TestTeardownAll(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.TeardownAll()
	if s1.torn != 1 || s2.torn != 1 {
		t.Errorf("expected every screen torn down once, got %d and %d", s1.torn, s2.torn)
	}
}

func TestScreenWithoutTeardown(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	var p screen.Screen = &plainScreenOnly{title: "plain"}
	r.Push(p)
	r.Pop()
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

// plainScreenOnly has no Teardown method.
type plainScreenOnly struct{ title string }

func (s *plainScreenOnly) Init() tea.Cmd                           { return nil }
func (s *plainScreenOnly) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *plainScreenOnly) View(int, int) string                    { return s.title }
func (s *plainScreenOnly) Title() string                           { return s.title }
