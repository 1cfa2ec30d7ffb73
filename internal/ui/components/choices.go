package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/resilio/internal/ui/theme"
)

// ChoiceList is a cursor over lettered options. Enter or the option's
// letter picks it; Picked reports the choice until Reset.
type ChoiceList struct {
	Options  []string
	Selected int
	Locked   bool
	picked   int
}

// NewChoiceList creates a list with nothing picked.
func NewChoiceList(options []string) ChoiceList {
	return ChoiceList{Options: options, picked: -1}
}

// Picked returns the picked option index.
func (c ChoiceList) Picked() (int, bool) {
	return c.picked, c.picked >= 0
}

// Reset clears the pick and unlocks the list, keeping the options.
func (c ChoiceList) Reset(options []string) ChoiceList {
	return ChoiceList{Options: options, picked: -1}
}

// Update handles navigation and picking. A locked list ignores input.
func (c ChoiceList) Update(msg tea.Msg) ChoiceList {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || c.Locked || len(c.Options) == 0 {
		return c
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.picked = c.Selected
	default:
		if len(key) == 1 {
			if i := int(key[0] - 'a'); i >= 0 && i < len(c.Options) {
				c.Selected = i
				c.picked = i
			}
		}
	}
	return c
}

// View renders the options, marking the cursor and the picked option.
func (c ChoiceList) View(width int) string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected && !c.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)
		style := theme.Unselected
		switch {
		case c.Locked && i == c.picked:
			style = theme.Selected
		case c.Locked:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
