// Package stress is the timed stress simulation: a countdown, a queue of
// scenarios answered under time pressure, and a score derived from how
// often the learner picked the resilient option.
package stress

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultCountdown is the time budget of one play-through.
const DefaultCountdown = 120 * time.Second

var (
	ErrNotPlaying    = errors.New("simulation is not playing")
	ErrUnknownOption = errors.New("unknown option")
	ErrNotFinished   = errors.New("simulation has no results")
	ErrNoScenarios   = errors.New("simulation has no scenarios")
)

// Phase is the simulation's lifecycle state.
type Phase int

const (
	PhaseIntro Phase = iota
	PhasePlaying
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePlaying:
		return "playing"
	case PhaseResults:
		return "results"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Tag classifies an option for scoring.
type Tag string

const (
	TagResilient Tag = "resilient"
	TagReactive  Tag = "reactive"
)

type Option struct {
	ID   string `yaml:"id" json:"id"`
	Text string `yaml:"text" json:"text"`
	Tag  Tag    `yaml:"tag" json:"tag"`
}

type Scenario struct {
	ID        int      `yaml:"id" json:"id"`
	Situation string   `yaml:"situation" json:"situation"`
	Options   []Option `yaml:"options" json:"options"`
}

// Response is one answered scenario.
type Response struct {
	ScenarioID int
	Elapsed    time.Duration
	Tag        Tag
}

// Simulation is an immutable value; every transition returns a new one.
type Simulation struct {
	scenarios []Scenario
	countdown time.Duration

	phase     Phase
	remaining int
	index     int
	shownAt   time.Time
	responses []Response
	pressure  int
}

// New builds a simulation in the intro phase. A non-positive countdown
// falls back to DefaultCountdown.
func New(scenarios []Scenario, countdown time.Duration) Simulation {
	if countdown <= 0 {
		countdown = DefaultCountdown
	}
	return Simulation{
		scenarios: scenarios,
		countdown: countdown,
		remaining: int(countdown / time.Second),
	}
}

func (s Simulation) Phase() Phase {
	return s.phase
}

func (s Simulation) Remaining() int {
	return s.remaining
}

func (s Simulation) Index() int {
	return s.index
}

func (s Simulation) Total() int {
	return len(s.scenarios)
}

func (s Simulation) Pressure() int {
	return s.pressure
}

func (s Simulation) Scenarios() []Scenario {
	return s.scenarios
}

// Responses returns a copy of the recorded answers.
func (s Simulation) Responses() []Response {
	out := make([]Response, len(s.responses))
	copy(out, s.responses)
	return out
}

// Current returns the scenario being shown. ok is false outside play.
func (s Simulation) Current() (Scenario, bool) {
	if s.phase != PhasePlaying || s.index >= len(s.scenarios) {
		return Scenario{}, false
	}
	return s.scenarios[s.index], true
}

// Start resets the countdown and pointer and enters play.
func (s Simulation) Start(now time.Time) (Simulation, error) {
	if len(s.scenarios) == 0 {
		return s, ErrNoScenarios
	}
	next := New(s.scenarios, s.countdown)
	next.phase = PhasePlaying
	next.shownAt = now
	return next, nil
}

// Replay fully resets the simulation and starts it again.
func (s Simulation) Replay(now time.Time) (Simulation, error) {
	return s.Start(now)
}

// Abort discards any progress and returns to the intro.
func (s Simulation) Abort() Simulation {
	return New(s.scenarios, s.countdown)
}

// Tick consumes one second of the countdown. Reaching zero ends play.
func (s Simulation) Tick() Simulation {
	if s.phase != PhasePlaying {
		return s
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.phase = PhaseResults
	}
	return s
}

// Choose records the answer to the current scenario and moves on.
func (s Simulation) Choose(optionID string, now time.Time) (Simulation, error) {
	cur, ok := s.Current()
	if !ok {
		return s, ErrNotPlaying
	}
	var picked *Option
	for i := range cur.Options {
		if cur.Options[i].ID == optionID {
			picked = &cur.Options[i]
			break
		}
	}
	if picked == nil {
		return s, fmt.Errorf("%w: %q", ErrUnknownOption, optionID)
	}

	elapsed := now.Sub(s.shownAt)
	if elapsed < 0 {
		elapsed = 0
	}
	responses := make([]Response, len(s.responses), len(s.responses)+1)
	copy(responses, s.responses)
	s.responses = append(responses, Response{ScenarioID: cur.ID, Elapsed: elapsed, Tag: picked.Tag})
	s.pressure += PressureFor(elapsed)
	s.index++
	s.shownAt = now
	if s.index >= len(s.scenarios) {
		s.phase = PhaseResults
	}
	return s, nil
}

// PressureFor is the speed bonus added per answer.
func PressureFor(elapsed time.Duration) int {
	switch {
	case elapsed < 10*time.Second:
		return 20
	case elapsed < 20*time.Second:
		return 10
	default:
		return 5
	}
}

// BonusFor maps accumulated pressure to the flat score bonus.
func BonusFor(pressure int) int {
	switch {
	case pressure >= 80:
		return 20
	case pressure >= 50:
		return 10
	default:
		return 0
	}
}

// Result summarizes a finished play-through.
type Result struct {
	Answered  int
	Resilient int
	Base      int
	Bonus     int
	Score     int
	Label     string
}

// Result is only available in the results phase.
func (s Simulation) Result() (Result, error) {
	if s.phase != PhaseResults {
		return Result{}, ErrNotFinished
	}
	return Score(s.responses, s.pressure), nil
}

// Score computes base, bonus and the clamped final score.
func Score(responses []Response, pressure int) Result {
	r := Result{Answered: len(responses)}
	for _, resp := range responses {
		if resp.Tag == TagResilient {
			r.Resilient++
		}
	}
	if r.Answered > 0 {
		r.Base = int(math.Round(float64(r.Resilient) / float64(r.Answered) * 100))
	}
	r.Bonus = BonusFor(pressure)
	r.Score = min(100, max(0, r.Base+r.Bonus))
	r.Label = LabelFor(r.Score)
	return r
}

// LabelFor names the band a score falls in.
func LabelFor(score int) string {
	switch {
	case score >= 80:
		return "resistant to stress"
	case score >= 50:
		return "handles pressure"
	default:
		return "sensitive to stress"
	}
}
