// Package progress tracks which sections of the module the learner has
// visited and completed. State is immutable and only changes through
// Reduce.
package progress

import (
	"maps"
	"slices"
)

// SectionID names a section of the module.
type SectionID string

const (
	SectionWelcome    SectionID = "welcome"
	SectionAssessment SectionID = "assessment"
	SectionScenarios  SectionID = "scenarios"
	SectionPriorities SectionID = "priorities"
	SectionConfidence SectionID = "confidence"
	SectionSupport    SectionID = "support"
	SectionStress     SectionID = "stress"
	SectionBreathing  SectionID = "breathing"
	SectionWrapUp     SectionID = "wrapup"
)

// Outcome is what a section reports when it completes.
type Outcome struct {
	Headline string
	Details  []string
	// Score is the section's 0..100 score, or -1 when it has none.
	Score int
}

// State is a snapshot of module progress.
type State struct {
	Current   SectionID
	completed map[SectionID]bool
	outcomes  map[SectionID]Outcome
	order     []SectionID
}

// Initial returns the state at module start.
func Initial() State {
	return State{Current: SectionWelcome}
}

// Completed reports whether a section was marked complete.
func (s State) Completed(id SectionID) bool {
	return s.completed[id]
}

// CompletedCount returns the number of completed sections.
func (s State) CompletedCount() int {
	return len(s.completed)
}

// Outcome returns the most recent outcome of a section.
func (s State) Outcome(id SectionID) (Outcome, bool) {
	o, ok := s.outcomes[id]
	return o, ok
}

// CompletedOrder lists completed sections in the order they were first
// completed.
func (s State) CompletedOrder() []SectionID {
	return slices.Clone(s.order)
}

// Action is a state transition request.
type Action interface {
	isAction()
}

// Navigate makes a section current.
type Navigate struct {
	Section SectionID
}

// Complete marks a section done and records its outcome. Completing an
// already completed section replaces the outcome.
type Complete struct {
	Section SectionID
	Outcome Outcome
}

func (Navigate) isAction() {}
func (Complete) isAction() {}

// Reduce applies an action and returns the next state.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Navigate:
		s.Current = a.Section
	case Complete:
		completed := maps.Clone(s.completed)
		if completed == nil {
			completed = map[SectionID]bool{}
		}
		outcomes := maps.Clone(s.outcomes)
		if outcomes == nil {
			outcomes = map[SectionID]Outcome{}
		}
		if !completed[a.Section] {
			s.order = append(slices.Clone(s.order), a.Section)
		}
		completed[a.Section] = true
		outcomes[a.Section] = a.Outcome
		s.completed = completed
		s.outcomes = outcomes
	}
	return s
}
