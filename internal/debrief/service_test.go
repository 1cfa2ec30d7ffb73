package debrief

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/resilio/internal/llm"
)

func sampleInput() Input {
	return Input{
		ModuleTitle: "Autonomy & Resilience",
		Sections: []SectionResult{
			{ID: "assessment", Title: "Self-assessment", Completed: true, Headline: "Strong foundation", Score: 85},
			{ID: "scenarios", Title: "Resilience scenarios", Completed: true, Headline: "Ritual written", Score: -1},
			{ID: "stress", Title: "Stress simulation", Completed: true, Headline: "Sensitive to stress", Score: 40},
			{ID: "breathing", Title: "Breathing", Completed: false, Score: -1},
		},
	}
}

func TestService_GenerateUsesModel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"headline": "You stay steady when it matters.",
		"strengths": ["Strong self-awareness"],
		"next_steps": ["Finish the breathing section", "Practise box breathing before meetings"]
	}`)})
	svc := NewService(mock, DefaultConfig(), nil)
	require.True(t, svc.HasProvider())

	d, err := svc.Generate(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, SourceLLM, d.Source)
	assert.Equal(t, "You stay steady when it matters.", d.Headline)
	assert.Len(t, d.NextSteps, 2)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, Schema, calls[0].Schema)
	assert.Equal(t, systemPrompt, calls[0].System)
	msg := calls[0].Messages[0].Content
	assert.Contains(t, msg, "Sections completed: 3 of 4")
	assert.Contains(t, msg, "Score: 85/100")
	assert.Contains(t, msg, "### Breathing (not completed)")
}

func TestService_BuildFallsBackOnInvalidResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"headline":""}`)})
	d := NewService(mock, DefaultConfig(), nil).Build(context.Background(), sampleInput())
	assert.Equal(t, SourceRules, d.Source)
	assert.NotEmpty(t, d.Headline)
}

func TestService_BuildFallsBackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	d := NewService(mock, DefaultConfig(), nil).Build(context.Background(), sampleInput())
	assert.Equal(t, SourceRules, d.Source)
}

func TestService_NoProvider(t *testing.T) {
	svc := NewService(nil, DefaultConfig(), nil)
	assert.False(t, svc.HasProvider())

	_, err := svc.Generate(context.Background(), sampleInput())
	assert.True(t, errors.Is(err, ErrNoProvider))
	assert.Equal(t, SourceRules, svc.Build(context.Background(), sampleInput()).Source)
}

func TestFallback(t *testing.T) {
	d := Fallback(sampleInput())

	assert.Equal(t, "You completed 3 of 4 sections. Keep going.", d.Headline)
	assert.Equal(t, []string{"Self-assessment: Strong foundation"}, d.Strengths)
	require.Len(t, d.NextSteps, 3)
	assert.Contains(t, d.NextSteps[0], "Stress simulation")
	assert.Contains(t, d.NextSteps[1], "Breathing")
	assert.Equal(t, dailyHabit, d.NextSteps[2])
}

func TestFallback_Headlines(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want string
	}{
		{"nothing done", Input{Sections: []SectionResult{{Title: "A", Score: -1}}}, "Your resilience journey starts here."},
		{"empty module", Input{}, "Your resilience journey starts here."},
		{"all done", Input{Sections: []SectionResult{{Title: "A", Completed: true, Score: -1}}}, "You completed every section. Your resilience toolkit is ready."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fallback(tt.in).Headline)
		})
	}
}

func TestFallback_StrengthsWithoutHighScores(t *testing.T) {
	in := Input{Sections: []SectionResult{
		{Title: "Priorities", Completed: true, Score: -1},
		{Title: "Support", Completed: true, Score: 60},
	}}
	d := Fallback(in)
	require.Len(t, d.Strengths, 2)
	assert.True(t, strings.HasPrefix(d.Strengths[0], "You worked through"))
	assert.Equal(t, []string{dailyHabit}, d.NextSteps)
}
