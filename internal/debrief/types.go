// Package debrief turns the learner's section outcomes into a short,
// personal wrap-up: a headline, what went well and what to practise next.
package debrief

// Source reports where a Debrief came from.
type Source string

const (
	SourceLLM   Source = "llm"
	SourceRules Source = "rules"
)

// SectionResult is one section as the wrap-up sees it. Score is -1 when
// the section has no numeric outcome.
type SectionResult struct {
	ID        string
	Title     string
	Completed bool
	Headline  string
	Details   []string
	Score     int
}

// Input is everything a debrief is built from.
type Input struct {
	ModuleTitle string
	Sections    []SectionResult
}

// CompletedCount returns how many sections are marked complete.
func (in Input) CompletedCount() int {
	n := 0
	for _, s := range in.Sections {
		if s.Completed {
			n++
		}
	}
	return n
}

type Debrief struct {
	Headline  string
	Strengths []string
	NextSteps []string
	Source    Source
}
