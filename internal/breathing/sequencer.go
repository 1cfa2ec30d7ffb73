// Package breathing sequences guided breathing techniques through their
// phases for a fixed number of cycles.
package breathing

import (
	"errors"
	"fmt"
	"time"
)

// DefaultCycles is how many times a technique's phase list is repeated.
const DefaultCycles = 3

var (
	ErrUnknownTechnique = errors.New("unknown technique")
	ErrAlreadyRunning   = errors.New("a technique is already running")
	ErrIdle             = errors.New("no technique is running")
)

type Phase struct {
	Name    string `yaml:"name" json:"name"`
	Seconds int    `yaml:"seconds" json:"seconds"`
}

// Duration is the phase length as a time.Duration.
func (p Phase) Duration() time.Duration {
	return time.Duration(p.Seconds) * time.Second
}

type Technique struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Phases      []Phase `yaml:"phases" json:"phases"`
}

// CycleLength is the sum of every phase duration.
func (t Technique) CycleLength() time.Duration {
	var d time.Duration
	for _, p := range t.Phases {
		d += p.Duration()
	}
	return d
}

// Step identifies the phase currently on screen. Cycle is 1-based.
type Step struct {
	Technique string
	Cycle     int
	Index     int
	Phase     Phase
}

// Sequencer is either idle (selection view) or running one technique.
type Sequencer struct {
	techniques []Technique
	cycles     int
	completed  map[string]bool

	running bool
	tech    int
	cycle   int
	index   int
}

// New returns an idle sequencer. cycles <= 0 means DefaultCycles.
func New(techniques []Technique, cycles int) Sequencer {
	if cycles <= 0 {
		cycles = DefaultCycles
	}
	return Sequencer{techniques: techniques, cycles: cycles, completed: map[string]bool{}}
}

func (s Sequencer) Techniques() []Technique {
	return s.techniques
}

func (s Sequencer) Cycles() int {
	return s.cycles
}

func (s Sequencer) Running() bool {
	return s.running
}

// Completed reports whether the technique has been run to the end at
// least once.
func (s Sequencer) Completed(id string) bool {
	return s.completed[id]
}

// CompletedCount returns how many distinct techniques were completed.
func (s Sequencer) CompletedCount() int {
	return len(s.completed)
}

// Current returns the running step; ok is false when idle.
func (s Sequencer) Current() (Step, bool) {
	if !s.running {
		return Step{}, false
	}
	t := s.techniques[s.tech]
	return Step{Technique: t.ID, Cycle: s.cycle, Index: s.index, Phase: t.Phases[s.index]}, true
}

// Start begins cycle 1, phase 1 of technique id.
func (s Sequencer) Start(id string) (Sequencer, Step, error) {
	if s.running {
		return s, Step{}, ErrAlreadyRunning
	}
	idx := -1
	for i, t := range s.techniques {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || len(s.techniques[idx].Phases) == 0 {
		return s, Step{}, fmt.Errorf("%w: %q", ErrUnknownTechnique, id)
	}
	s.running = true
	s.tech = idx
	s.cycle = 1
	s.index = 0
	step, _ := s.Current()
	return s, step, nil
}

// Advance moves to the next phase. After the final phase of the last cycle
// the technique is marked completed, the sequencer goes idle and done is
// true.
func (s Sequencer) Advance() (next Sequencer, step Step, done bool, err error) {
	if !s.running {
		return s, Step{}, false, ErrIdle
	}
	t := s.techniques[s.tech]
	s.index++
	if s.index >= len(t.Phases) {
		s.index = 0
		s.cycle++
	}
	if s.cycle > s.cycles {
		completed := make(map[string]bool, len(s.completed)+1)
		for k, v := range s.completed {
			completed[k] = v
		}
		completed[t.ID] = true
		s.completed = completed
		s.running = false
		s.cycle, s.index = 0, 0
		return s, Step{}, true, nil
	}
	step, _ = s.Current()
	return s, step, false, nil
}

// Cancel stops a running sequence without marking it completed.
func (s Sequencer) Cancel() Sequencer {
	s.running = false
	s.cycle, s.index = 0, 0
	return s
}
