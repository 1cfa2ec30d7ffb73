package screen

import (
	"context"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/resilio/internal/breathing"
	"github.com/abhisek/resilio/internal/content"
	"github.com/abhisek/resilio/internal/debrief"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/scenario"
	"github.com/abhisek/resilio/internal/stress"
	"github.com/abhisek/resilio/internal/timing"
)

// Timing holds the delays section screens schedule.
type Timing struct {
	FeedbackDelay   time.Duration
	StressCountdown time.Duration
	BreathingCycles int
}

// Deps is what every section screen is built from. Journal, Stats and
// Debrief may be nil.
type Deps struct {
	Module   *content.Module
	Progress progress.Reader
	Journal  journal.Recorder
	Stats    journal.Stats
	Debrief  *debrief.Service
	Clock    timing.Clock
	Timing   Timing
	Logger   *zap.Logger
}

// WithDefaults fills unset fields. Timing falls back to the content file
// and then to the package defaults.
func (d Deps) WithDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = timing.SystemClock{}
	}
	if d.Progress == nil {
		d.Progress = progress.NewStore(progress.Initial())
	}
	if d.Timing.FeedbackDelay <= 0 {
		d.Timing.FeedbackDelay = scenario.AdvanceDelay
	}
	if d.Timing.StressCountdown <= 0 && d.Module != nil {
		d.Timing.StressCountdown = d.Module.Stress.Countdown()
	}
	if d.Timing.StressCountdown <= 0 {
		d.Timing.StressCountdown = stress.DefaultCountdown
	}
	if d.Timing.BreathingCycles <= 0 && d.Module != nil {
		d.Timing.BreathingCycles = d.Module.Breathing.Cycles
	}
	if d.Timing.BreathingCycles <= 0 {
		d.Timing.BreathingCycles = breathing.DefaultCycles
	}
	return d
}

// Record journals a learner interaction. Failures are logged only.
func (d Deps) Record(section progress.SectionID, kind journal.Kind, detail string) {
	if d.Journal == nil {
		return
	}
	err := d.Journal.Record(context.Background(), journal.Event{
		Section: string(section),
		Kind:    kind,
		Detail:  detail,
	})
	if err != nil && d.Logger != nil {
		d.Logger.Warn("failed to journal event",
			zap.String("section", string(section)),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}

// Complete returns the command that marks section done.
func (d Deps) Complete(section progress.SectionID, outcome progress.Outcome) tea.Cmd {
	return progress.Dispatch(progress.Complete{Section: section, Outcome: outcome})
}

// SectionTitle returns the numbered title of a section, e.g.
// "3. Priority matrix".
func (d Deps) SectionTitle(id progress.SectionID) string {
	if d.Module == nil {
		return string(id)
	}
	s, ok := d.Module.Section(id)
	if !ok {
		return string(id)
	}
	return formatTitle(s)
}

func formatTitle(s content.Section) string {
	if s.Number <= 0 {
		return s.Title
	}
	return strconv.Itoa(s.Number) + ". " + s.Title
}
