package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStatusBarRender(t *testing.T) {
	tests := []struct {
		name   string
		dryRun bool
		counts [3]int
		want   []string
	}{
		{"real run", false, [3]int{3, 1, 0}, []string{"3 moved", "1 skipped", "0 errors", "ctrl+c:stop"}},
		{"dry run", true, [3]int{2, 0, 0}, []string{"2 would move"}},
		{"errors", false, [3]int{0, 0, 4}, []string{"4 errors"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewStatusBar("chronoban", tt.dryRun)
			bar.SetCounts(tt.counts[0], tt.counts[1], tt.counts[2])
			bar.SetShortcuts("ctrl+c:stop")

			out := bar.Render(100)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("status bar missing %q: %s", w, out)
				}
			}
			if got := lipgloss.Width(out); got != 100 {
				t.Errorf("width = %d, want 100", got)
			}
		})
	}
}

func TestStatusBarDropsHintsWhenNarrow(t *testing.T) {
	bar := NewStatusBar("chronoban", false)
	bar.SetShortcuts("ctrl+c:stop")

	out := bar.Render(30)
	if strings.Contains(out, "ctrl+c") {
		t.Errorf("hints should be dropped on a narrow bar: %s", out)
	}
}
