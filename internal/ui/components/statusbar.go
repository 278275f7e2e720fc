package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fenilsonani/chronoban/internal/ui/styles"
)

// StatusBar shows the running counters of an organize run
type StatusBar struct {
	label     string
	moved     int
	skipped   int
	errors    int
	dryRun    bool
	shortcuts []string
}

// NewStatusBar creates a new status bar
func NewStatusBar(label string, dryRun bool) *StatusBar {
	return &StatusBar{
		label:  label,
		dryRun: dryRun,
	}
}

// SetCounts sets the counters to display
func (s *StatusBar) SetCounts(moved, skipped, errors int) {
	s.moved = moved
	s.skipped = skipped
	s.errors = errors
}

// SetShortcuts sets the key hints shown on the right, as "key:description"
func (s *StatusBar) SetShortcuts(shortcuts ...string) {
	s.shortcuts = shortcuts
}

// Render renders the status bar with the given width
func (s *StatusBar) Render(width int) string {
	if width <= 0 {
		width = 80
	}

	var parts []string

	if s.label != "" {
		parts = append(parts, styles.BoldStyle.Render(s.label))
	}

	movedLabel := "moved"
	if s.dryRun {
		movedLabel = "would move"
	}
	parts = append(parts,
		styles.SuccessStyle.Render(fmt.Sprintf("%d %s", s.moved, movedLabel)),
		fmt.Sprintf("%d skipped", s.skipped),
	)
	if s.errors > 0 {
		parts = append(parts, styles.ErrorStyle.Render(fmt.Sprintf("%d errors", s.errors)))
	} else {
		parts = append(parts, "0 errors")
	}

	leftSide := strings.Join(parts, " • ")
	rightSide := styles.DimStyle.Render(strings.Join(s.shortcuts, " "))

	leftLen := lipgloss.Width(leftSide)
	rightLen := lipgloss.Width(rightSide)
	spacing := width - leftLen - rightLen - 2 // -2 for padding

	if spacing < 1 {
		// Not enough space, drop the hints
		rightSide = ""
		spacing = 1
	}

	statusLine := leftSide + strings.Repeat(" ", spacing) + rightSide

	return styles.StatusBarStyle.Width(width).Render(statusLine)
}
