package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/resilio/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for done out of total.
type ProgressBar struct {
	Label     string
	Done      int
	Total     int
	ShowCount bool
	Width     int
}

// NewProgressBar creates a bar of the given total width, label included.
func NewProgressBar(label string, done, total int, showCount bool, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, ShowCount: showCount, Width: width}
}

// Ratio is Done/Total clamped to [0,1]. A zero total is empty.
func (p ProgressBar) Ratio() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

func (p ProgressBar) View() string {
	var label string
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	var count string
	if p.ShowCount {
		count = theme.Hint.Render(fmt.Sprintf("  %d/%d", p.Done, p.Total))
	}

	barWidth := max(p.Width-lipgloss.Width(label)-lipgloss.Width(count), 4)
	filled := int(float64(barWidth) * p.Ratio())

	bar := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))
	return label + bar + count
}
