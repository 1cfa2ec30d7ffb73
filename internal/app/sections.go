package app

import (
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/screen"
	"github.com/abhisek/resilio/internal/screens/assessment"
	"github.com/abhisek/resilio/internal/screens/board"
	"github.com/abhisek/resilio/internal/screens/breathing"
	"github.com/abhisek/resilio/internal/screens/confidence"
	"github.com/abhisek/resilio/internal/screens/home"
	"github.com/abhisek/resilio/internal/screens/scenarios"
	"github.com/abhisek/resilio/internal/screens/stress"
	"github.com/abhisek/resilio/internal/screens/welcome"
	"github.com/abhisek/resilio/internal/screens/wrapup"
)

func newWelcome(deps screen.Deps) screen.Screen {
	return welcome.New(deps, func() screen.Screen {
		return home.New(deps, sectionFactory(deps))
	})
}

// sectionFactory maps section ids to their screens. Unknown ids yield nil.
func sectionFactory(deps screen.Deps) home.Factory {
	return func(id progress.SectionID) screen.Screen {
		switch id {
		case progress.SectionAssessment:
			return assessment.New(deps)
		case progress.SectionScenarios:
			return scenarios.New(deps)
		case progress.SectionPriorities:
			return board.New(deps, id, deps.Module.Priorities)
		case progress.SectionConfidence:
			return confidence.New(deps)
		case progress.SectionSupport:
			return board.New(deps, id, deps.Module.Support)
		case progress.SectionStress:
			return stress.New(deps)
		case progress.SectionBreathing:
			return breathing.New(deps)
		case progress.SectionWrapUp:
			return wrapup.New(deps)
		}
		return nil
	}
}
