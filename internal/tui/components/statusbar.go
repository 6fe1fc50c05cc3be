package components

import (
	"strings"

	"github.com/theirongolddev/footprint/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar is the content of the bottom line.
type StatusBar struct {
	Hints   string // key hints on the left
	Alert   string // shown in red in place of the hints
	Busy    string // spinner frame while a request is in flight
	Account string // signed-in email, right-aligned
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s StatusBar) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	alertStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	accountStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	left := base.Render(" " + s.Hints)
	if s.Alert != "" {
		left = alertStyle.Render(" ⚠ " + s.Alert)
	}

	right := ""
	if s.Busy != "" {
		right += s.Busy + base.Render(" ")
	}
	if s.Account != "" {
		right += accountStyle.Render(s.Account + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	bar := left + base.Render(strings.Repeat(" ", padding)) + right

	return lipgloss.NewStyle().Background(t.Surface).MaxWidth(width).Render(bar)
}
