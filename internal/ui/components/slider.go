package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/resilio/internal/ui/theme"
)

// Slider is a discrete Min..Max rating. Value 0 means not yet set.
type Slider struct {
	Min, Max int
	Value    int
}

// NewSlider creates an unset slider.
func NewSlider(minValue, maxValue int) Slider {
	return Slider{Min: minValue, Max: maxValue}
}

// Update moves the slider with left/right or jumps with a digit key. It
// reports whether the value changed.
func (s Slider) Update(msg tea.Msg) (Slider, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, false
	}
	prev := s.Value
	switch key := kmsg.String(); key {
	case "left", "h":
		if s.Value == 0 {
			s.Value = s.Min
		} else if s.Value > s.Min {
			s.Value--
		}
	case "right", "l":
		if s.Value == 0 {
			s.Value = s.Min
		} else if s.Value < s.Max {
			s.Value++
		}
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			if v := int(key[0] - '0'); v >= s.Min && v <= s.Max {
				s.Value = v
			}
		}
	}
	return s, s.Value != prev
}

// View renders the scale with the current value highlighted.
func (s Slider) View() string {
	parts := make([]string, 0, s.Max-s.Min+1)
	for v := s.Min; v <= s.Max; v++ {
		label := fmt.Sprintf(" %d ", v)
		if v == s.Value {
			parts = append(parts, theme.ScoreColor(v, s.Max).Reverse(true).Render(label))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	return strings.Join(parts, "")
}
