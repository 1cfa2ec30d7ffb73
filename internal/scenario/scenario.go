// Package scenario runs a fixed list of branching situations where each
// choice reveals its own coaching feedback.
package scenario

import (
	"errors"
	"fmt"
	"time"
)

// AdvanceDelay is how long feedback stays on screen before moving on.
const AdvanceDelay = 3000 * time.Millisecond

var (
	ErrUnknownChoice   = errors.New("unknown choice")
	ErrFeedbackShowing = errors.New("feedback is still showing")
	ErrFinished        = errors.New("no scenario left")
)

// Choice is one labelled answer with its static feedback.
type Choice struct {
	ID       string `yaml:"id" json:"id"`
	Text     string `yaml:"text" json:"text"`
	Feedback string `yaml:"feedback" json:"feedback"`
}

// Scenario is a situation with two or three choices.
type Scenario struct {
	ID        int      `yaml:"id" json:"id"`
	Situation string   `yaml:"situation" json:"situation"`
	Choices   []Choice `yaml:"choices" json:"choices"`
}

// Run tracks progress through the scenarios. Values are immutable.
type Run struct {
	scenarios []Scenario
	current   int
	choices   map[int]string
	showing   bool
}

// NewRun starts at the first scenario.
func NewRun(scenarios []Scenario) Run {
	return Run{scenarios: scenarios, choices: map[int]string{}}
}

// Current returns the scenario being displayed.
func (r Run) Current() (Scenario, bool) {
	if r.current < 0 || r.current >= len(r.scenarios) {
		return Scenario{}, false
	}
	return r.scenarios[r.current], true
}

// Index returns the zero-based pointer and the scenario count.
func (r Run) Index() (int, int) {
	return r.current, len(r.scenarios)
}

// ShowingFeedback reports whether a choice's feedback is displayed.
func (r Run) ShowingFeedback() bool {
	return r.showing
}

// Choose records choiceID for the current scenario and returns its feedback.
func (r Run) Choose(choiceID string) (Run, string, error) {
	if r.showing {
		return r, "", ErrFeedbackShowing
	}
	if r.Done() {
		return r, "", ErrFinished
	}
	sc, ok := r.Current()
	if !ok {
		return r, "", ErrFinished
	}

	for _, c := range sc.Choices {
		if c.ID != choiceID {
			continue
		}
		next := r.clone()
		next.choices[sc.ID] = c.ID
		next.showing = true
		return next, c.Feedback, nil
	}
	return r, "", fmt.Errorf("%w: %q in scenario %d", ErrUnknownChoice, choiceID, sc.ID)
}

// Feedback returns the feedback for the choice made on the current
// scenario, if it is being shown.
func (r Run) Feedback() string {
	if !r.showing {
		return ""
	}
	sc, ok := r.Current()
	if !ok {
		return ""
	}
	id := r.choices[sc.ID]
	for _, c := range sc.Choices {
		if c.ID == id {
			return c.Feedback
		}
	}
	return ""
}

// Advance hides the feedback and moves to the next scenario if one remains.
func (r Run) Advance() Run {
	if !r.showing {
		return r
	}
	next := r.clone()
	next.showing = false
	if next.current < len(next.scenarios)-1 {
		next.current++
	}
	return next
}

// Choices returns the recorded choice id per scenario id.
func (r Run) Choices() map[int]string {
	out := make(map[int]string, len(r.choices))
	for k, v := range r.choices {
		out[k] = v
	}
	return out
}

// Done reports whether every scenario has been answered and no feedback is pending.
func (r Run) Done() bool {
	return len(r.scenarios) > 0 && len(r.choices) == len(r.scenarios) && !r.showing
}

func (r Run) clone() Run {
	choices := make(map[int]string, len(r.choices)+1)
	for k, v := range r.choices {
		choices[k] = v
	}
	return Run{
		scenarios: r.scenarios,
		current:   r.current,
		choices:   choices,
		showing:   r.showing,
	}
}
