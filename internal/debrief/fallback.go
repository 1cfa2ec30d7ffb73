package debrief

import (
	"cmp"
	"fmt"
	"slices"
)

const (
	strongScore = 80
	weakScore   = 50
	maxItems    = 3
)

const dailyHabit = "Take two minutes each day for one of the breathing techniques"

// Fallback builds a debrief from the results alone. It is used when no
// model is configured or the model call fails.
func Fallback(in Input) Debrief {
	d := Debrief{Headline: fallbackHeadline(in), Source: SourceRules}

	scored := make([]SectionResult, 0, len(in.Sections))
	for _, s := range in.Sections {
		if s.Completed && s.Score >= 0 {
			scored = append(scored, s)
		}
	}
	slices.SortStableFunc(scored, func(a, b SectionResult) int {
		return cmp.Compare(b.Score, a.Score)
	})

	for _, s := range scored {
		if s.Score >= strongScore && len(d.Strengths) < maxItems {
			d.Strengths = append(d.Strengths, fmt.Sprintf("%s: %s", s.Title, s.Headline))
		}
	}
	if len(d.Strengths) == 0 {
		for _, s := range in.Sections {
			if s.Completed && len(d.Strengths) < maxItems {
				d.Strengths = append(d.Strengths, fmt.Sprintf("You worked through %s", s.Title))
			}
		}
	}

	for _, s := range in.Sections {
		if len(d.NextSteps) == maxItems-1 {
			break
		}
		switch {
		case !s.Completed:
			d.NextSteps = append(d.NextSteps, fmt.Sprintf("Come back to %s when you have ten minutes", s.Title))
		case s.Score >= 0 && s.Score < weakScore:
			d.NextSteps = append(d.NextSteps, fmt.Sprintf("Revisit %s and try one idea from it this week", s.Title))
		}
	}
	d.NextSteps = append(d.NextSteps, dailyHabit)
	return d
}

func fallbackHeadline(in Input) string {
	done, total := in.CompletedCount(), len(in.Sections)
	switch {
	case total > 0 && done == total:
		return "You completed every section. Your resilience toolkit is ready."
	case done == 0:
		return "Your resilience journey starts here."
	default:
		return fmt.Sprintf("You completed %d of %d sections. Keep going.", done, total)
	}
}
