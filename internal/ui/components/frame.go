package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/resilio/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for section content.
func ContentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Frame wraps content in a rounded frame and centers it in the area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a bordered card at content width cw.
func Card(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// Block left-aligns content in a column of width cw so stacked sections
// line up inside a centered Frame.
func Block(content string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Render(content)
}
