package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/resilio/internal/progress"
	"github.com/abhisek/resilio/internal/ui/theme"
)

func renderTitle(title, tagline string, cw int, compact bool) string {
	block := theme.Title.Render(title)
	if !compact && tagline != "" {
		block += "\n" + theme.Subtitle.Render(tagline)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderSummary shows what the highlighted section is about, and its
// latest result once completed.
func renderSummary(summary string, outcome func(progress.SectionID) (progress.Outcome, bool), id progress.SectionID, cw int) string {
	text := theme.Body.Render(summary)
	if o, ok := outcome(id); ok && o.Headline != "" {
		style := theme.Done
		if o.Score >= 0 {
			style = theme.ScoreColor(o.Score, 100)
		}
		text += "\n" + style.Render("Last result: "+o.Headline)
	}
	return theme.Card.Width(cw).Render(text)
}

// renderOfflineNote tells the learner the debrief will be rule-based.
func renderOfflineNote(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render("No AI key configured: the wrap-up uses the built-in debrief (see resilio --help)")
}

func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
