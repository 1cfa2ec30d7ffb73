package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/resilio/internal/categorize"
	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/stress"
)

func TestDefault(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Autonomy & Resilience", m.Title)
	assert.Len(t, m.Assessment.Questions, 8)
	assert.NotEmpty(t, m.Scenarios.Items)
	assert.Len(t, m.Priorities.Categories, 4)
	assert.Len(t, m.Priorities.Rules, 4)
	assert.Len(t, m.Support.Categories, 4)
	assert.Len(t, m.Confidence.Strengths, 8)
	assert.Len(t, m.Stress.Scenarios, 5)
	assert.Equal(t, stress.DefaultCountdown, m.Stress.Countdown())
	assert.Equal(t, 3, m.Breathing.Cycles)
	assert.Len(t, m.Breathing.Techniques, 3)
	assert.Equal(t, "478", m.Breathing.Techniques[0].ID)

	sec, ok := m.Section(progress.SectionStress)
	require.True(t, ok)
	assert.Equal(t, 6, sec.Number)
}

func TestDefault_BoardStartsUnassigned(t *testing.T) {
	m, err := Default()
	require.NoError(t, err)
	b := m.Priorities.NewBoard()
	assert.Len(t, b.Unassigned(), len(m.Priorities.Items))
	assert.Equal(t, categorize.OpGT, m.Priorities.Rules[0].Op)
}

func TestParse_SchemaViolations(t *testing.T) {
	base := string(DefaultYAML())

	tests := []struct {
		name string
		edit func(string) string
	}{
		{"not yaml", func(string) string { return "title: [unclosed" }},
		{"missing title", func(s string) string { return strings.Replace(s, "title: Autonomy & Resilience\n", "", 1) }},
		{"bad stress tag", func(s string) string { return strings.Replace(s, "tag: resilient", "tag: heroic", 1) }},
		{"bad rule op", func(s string) string { return strings.Replace(s, "op: gt", "op: approx", 1) }},
		{"zero second phase", func(s string) string { return strings.Replace(s, "seconds: 7", "seconds: 0", 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.edit(base)))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParse_CrossReferences(t *testing.T) {
	base := string(DefaultYAML())

	// A rule pointing at a category that does not exist passes the schema
	// but fails reference checking.
	_, err := Parse([]byte(strings.Replace(base, "other: q1", "other: q7", 1)))
	require.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, categorize.ErrUnknownCategory)

	_, err = Parse([]byte(strings.Replace(base, "{id: t2,", "{id: t1,", 1)))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad(t *testing.T) {
	m, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, m.Sections)

	dir := t.TempDir()
	path := filepath.Join(dir, "module.yaml")
	custom := strings.Replace(string(DefaultYAML()), "title: Autonomy & Resilience", "title: Custom course", 1)
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o600))

	m, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Custom course", m.Title)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
