package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matrixRules() []Rule {
	return []Rule{
		{Category: "q1", Op: OpGT, Value: 3, Title: "too-urgent"},
		{Category: "q2", Op: OpLT, Value: 2, Title: "grow-q2"},
		{Category: "q4", Op: OpGT, Value: 0, Title: "drop-q4"},
		{Category: "q2", Op: OpGTE, Other: "q1", Title: "balanced"},
	}
}

func titles(advice []Advice) []string {
	var out []string
	for _, a := range advice {
		out = append(out, a.Title)
	}
	return out
}

func TestAnalyze(t *testing.T) {
	items := []Item{
		{ID: "a", Label: "a"}, {ID: "b", Label: "b"}, {ID: "c", Label: "c"},
		{ID: "d", Label: "d"}, {ID: "e", Label: "e"},
	}

	tests := []struct {
		name   string
		assign []string
		want   []string
	}{
		{"all urgent", []string{"q1", "q1", "q1", "q1", "q4"}, []string{"too-urgent", "grow-q2", "drop-q4"}},
		{"planner", []string{"q2", "q2", "q1", "q3", "q3"}, []string{"balanced"}},
		{"three urgent is fine", []string{"q1", "q1", "q1", "q2", "q2"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(quadrants(), items)
			for i, cat := range tt.assign {
				var err error
				b, err = b.Apply(Assign{ItemID: items[i].ID, CategoryID: cat})
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, titles(Analyze(b, matrixRules())))
		})
	}
}

func TestAnalyze_EmptyBoardBalanced(t *testing.T) {
	b := NewBoard(quadrants(), nil)
	assert.Equal(t, []string{"grow-q2", "balanced"}, titles(Analyze(b, matrixRules())))
}

func TestRuleValidate(t *testing.T) {
	cats := quadrants()
	assert.NoError(t, Rule{Category: "q1", Op: OpGT, Value: 1}.Validate(cats))
	assert.ErrorIs(t, Rule{Category: "zz", Op: OpGT}.Validate(cats), ErrUnknownCategory)
	assert.ErrorIs(t, Rule{Category: "q1", Op: OpGT, Other: "zz"}.Validate(cats), ErrUnknownCategory)
	assert.Error(t, Rule{Category: "q1", Op: "approx"}.Validate(cats))
}
