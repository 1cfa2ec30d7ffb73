// Package confidence holds the three-phase confidence exercise: rating
// strengths, recalling past successes and stretching the comfort zone.
package confidence

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/abhisek/resilio/internal/assessment"
)

const (
	MaxTopStrengths   = 3
	MinRatedStrengths = 5
	MinSuccesses      = 3
	StretchActions    = 2
)

var (
	ErrUnknownStrength = errors.New("unknown strength")
	ErrUnknownCategory = errors.New("unknown success category")
	ErrUnknownSuccess  = errors.New("unknown success")
	ErrUnknownAction   = errors.New("unknown stretch action")
	ErrEmptyText       = errors.New("success text is empty")
	ErrSelectionFull   = errors.New("selection is full")
	ErrOutOfRange      = errors.New("value out of range")
)

// Phase is one of the three sub-exercises.
type Phase string

const (
	PhaseStrengths Phase = "strengths"
	PhaseSuccesses Phase = "successes"
	PhaseComfort   Phase = "comfort"
)

// Phases lists the sub-exercises in order.
var Phases = []Phase{PhaseStrengths, PhaseSuccesses, PhaseComfort}

type Category struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Success is one recalled achievement. Pride 0 means not yet rated.
type Success struct {
	ID       int
	Text     string
	Category string
	Pride    int
}

// Catalog is the fixed option set of the section.
type Catalog struct {
	Strengths  []assessment.Question `yaml:"strengths" json:"strengths"`
	Categories []Category            `yaml:"categories" json:"categories"`
	Actions    []string              `yaml:"actions" json:"actions"`
}

// Profile is the learner's immutable answer set.
type Profile struct {
	catalog   Catalog
	ratings   assessment.Sheet
	top       []string
	successes []Success
	nextID    int
	comfort   int
	actions   []string
}

func New(c Catalog) Profile {
	return Profile{catalog: c, ratings: assessment.NewSheet(c.Strengths)}
}

func (p Profile) Catalog() Catalog {
	return p.catalog
}

// Rating returns the 1..5 rating given to a strength.
func (p Profile) Rating(id string) (int, bool) {
	return p.ratings.Score(id)
}

// Rated is the number of strengths with a rating.
func (p Profile) Rated() int {
	return p.ratings.Answered()
}

// TopStrengths returns the selected top strengths in selection order.
func (p Profile) TopStrengths() []string {
	return slices.Clone(p.top)
}

// Successes returns a copy of the recorded successes.
func (p Profile) Successes() []Success {
	return slices.Clone(p.successes)
}

func (p Profile) Comfort() int {
	return p.comfort
}

// Actions returns the chosen stretch actions.
func (p Profile) Actions() []string {
	return slices.Clone(p.actions)
}

// RateStrength sets a strength rating, overwriting any earlier one.
func (p Profile) RateStrength(id string, rating int) (Profile, error) {
	sheet, err := p.ratings.Answer(id, rating)
	if err != nil {
		if errors.Is(err, assessment.ErrUnknownQuestion) {
			return p, fmt.Errorf("%w: %q", ErrUnknownStrength, id)
		}
		return p, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	p.ratings = sheet
	return p, nil
}

// ToggleTopStrength selects or deselects a top strength. Selecting a
// fourth one fails with ErrSelectionFull.
func (p Profile) ToggleTopStrength(id string) (Profile, error) {
	if !slices.ContainsFunc(p.catalog.Strengths, func(q assessment.Question) bool { return q.ID == id }) {
		return p, fmt.Errorf("%w: %q", ErrUnknownStrength, id)
	}
	top, err := toggle(p.top, id, MaxTopStrengths)
	if err != nil {
		return p, err
	}
	p.top = top
	return p, nil
}

// AddSuccess records a new success with no pride rating yet.
func (p Profile) AddSuccess(text, category string) (Profile, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return p, ErrEmptyText
	}
	if !slices.ContainsFunc(p.catalog.Categories, func(c Category) bool { return c.ID == category }) {
		return p, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	p.nextID++
	successes := slices.Clone(p.successes)
	p.successes = append(successes, Success{ID: p.nextID, Text: text, Category: category})
	return p, nil
}

// RemoveSuccess deletes a recorded success.
func (p Profile) RemoveSuccess(id int) (Profile, error) {
	idx := slices.IndexFunc(p.successes, func(s Success) bool { return s.ID == id })
	if idx < 0 {
		return p, fmt.Errorf("%w: %d", ErrUnknownSuccess, id)
	}
	p.successes = slices.Delete(slices.Clone(p.successes), idx, idx+1)
	return p, nil
}

// SetPride rates how proud the learner is of a success, 1..5.
func (p Profile) SetPride(id, pride int) (Profile, error) {
	if pride < assessment.MinScore || pride > assessment.MaxScore {
		return p, fmt.Errorf("%w: pride %d", ErrOutOfRange, pride)
	}
	idx := slices.IndexFunc(p.successes, func(s Success) bool { return s.ID == id })
	if idx < 0 {
		return p, fmt.Errorf("%w: %d", ErrUnknownSuccess, id)
	}
	successes := slices.Clone(p.successes)
	successes[idx].Pride = pride
	p.successes = successes
	return p, nil
}

// SetComfort sets the current comfort-zone level, 1..5.
func (p Profile) SetComfort(level int) (Profile, error) {
	if level < assessment.MinScore || level > assessment.MaxScore {
		return p, fmt.Errorf("%w: comfort %d", ErrOutOfRange, level)
	}
	p.comfort = level
	return p, nil
}

// ToggleAction selects or deselects a stretch action; at most two.
func (p Profile) ToggleAction(action string) (Profile, error) {
	if !slices.Contains(p.catalog.Actions, action) {
		return p, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	actions, err := toggle(p.actions, action, StretchActions)
	if err != nil {
		return p, err
	}
	p.actions = actions
	return p, nil
}

// PhaseComplete reports whether a sub-exercise meets its threshold.
func (p Profile) PhaseComplete(ph Phase) bool {
	switch ph {
	case PhaseStrengths:
		return p.ratings.Answered() >= MinRatedStrengths && len(p.top) >= MaxTopStrengths
	case PhaseSuccesses:
		return len(p.successes) >= MinSuccesses
	case PhaseComfort:
		return p.comfort > 0 && len(p.actions) >= StretchActions
	}
	return false
}

// Complete is true when every phase is complete.
func (p Profile) Complete() bool {
	for _, ph := range Phases {
		if !p.PhaseComplete(ph) {
			return false
		}
	}
	return true
}

// Score combines mean strength rating, mean pride and comfort level into
// a 0..100 confidence score.
func (p Profile) Score() int {
	var pride float64
	if len(p.successes) > 0 {
		sum := 0
		for _, s := range p.successes {
			sum += s.Pride
		}
		pride = float64(sum) / float64(len(p.successes))
	}
	return int(math.Round((p.ratings.Average() + pride + float64(p.comfort)) / 3 * 20))
}

func toggle(list []string, v string, limit int) ([]string, error) {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1), nil
	}
	if len(list) >= limit {
		return list, ErrSelectionFull
	}
	return append(slices.Clone(list), v), nil
}
