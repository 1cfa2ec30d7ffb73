package debrief

import "github.com/abhisek/resilio/internal/llm"

// Schema is the structured output requested from the model.
var Schema = &llm.Schema{
	Name:        "section-debrief",
	Description: "A short, encouraging wrap-up of a resilience training module",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "One sentence (max 15 words) summarizing how the learner did",
			},
			"strengths": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    4,
				"description": "1-4 concrete strengths shown in the results (5-12 words each)",
			},
			"next_steps": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    4,
				"description": "1-4 practical actions for the coming week (5-15 words each)",
			},
		},
		"required":             []any{"headline", "strengths", "next_steps"},
		"additionalProperties": false,
	},
}
