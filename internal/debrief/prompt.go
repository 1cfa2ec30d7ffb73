package debrief

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a warm, practical workplace resilience coach. A learner has just finished an interactive module on autonomy and resilience. Write a short debrief based only on their results.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Module: %s\n", in.ModuleTitle)
	fmt.Fprintf(&b, "Sections completed: %d of %d\n", in.CompletedCount(), len(in.Sections))

	b.WriteString("\nResults:\n")
	for _, s := range in.Sections {
		status := "not completed"
		if s.Completed {
			status = "completed"
		}
		fmt.Fprintf(&b, "### %s (%s)\n", s.Title, status)
		if s.Headline != "" {
			fmt.Fprintf(&b, "Outcome: %s\n", s.Headline)
		}
		if s.Score >= 0 {
			fmt.Fprintf(&b, "Score: %d/100\n", s.Score)
		}
		for _, d := range s.Details {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	b.WriteString(`
Instructions:
1. The headline is one sentence addressed to the learner ("you").
2. Strengths must be grounded in the results above. Do not invent results.
3. Next steps are small, concrete habits the learner can start this week. Suggest revisiting sections that are not completed or scored below 50.
4. Plain text only. No markdown, no emoji.`)

	return b.String()
}
