package components

import (
	"strings"
	"testing"
)

func TestProgressBarRatio(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{0, 4, 0},
		{2, 4, 0.5},
		{4, 4, 1},
		{6, 4, 1},
	}
	for _, tt := range tests {
		got := NewProgressBar("", tt.done, tt.total, false, 20).Ratio()
		if got != tt.want {
			t.Errorf("Ratio(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBarView(t *testing.T) {
	v := NewProgressBar("Sections", 3, 7, true, 40).View()
	if !strings.Contains(v, "Sections") {
		t.Errorf("missing label in %q", v)
	}
	if !strings.Contains(v, "3/7") {
		t.Errorf("missing count in %q", v)
	}
}
