package components

import (
	"strings"

	"github.com/theirongolddev/footprint/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single entry in the navigation bar.
type Tab struct {
	Name string
	Key  rune
}

// label is the tab's visible text without padding, e.g. "1 Dashboard".
func (t Tab) label() string {
	return string(t.Key) + " " + t.Name
}

// TabVisualWidth returns the rendered width of a tab, padding included.
// Active and inactive tabs have the same width.
func TabVisualWidth(tab Tab) int {
	return lipgloss.Width(tab.label()) + 2
}

// RenderTabBar renders the navigation bar on one line, highlighting the tab
// at activeIdx. Tabs are separated by one column.
func RenderTabBar(tabs []Tab, activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Padding(0, 1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	nameStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	sepStyle := lipgloss.NewStyle().Background(t.Surface)

	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.label()))
			continue
		}
		inner := keyStyle.Render(string(tab.Key)) + nameStyle.Render(" "+tab.Name)
		parts = append(parts, inactiveStyle.Render(inner))
	}

	bar := strings.Join(parts, sepStyle.Render(" "))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(bar)
}

// TabAtX returns the index of the tab covering column x, or -1.
func TabAtX(tabs []Tab, x int) int {
	pos := 0
	for i, tab := range tabs {
		w := TabVisualWidth(tab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // separator
	}
	return -1
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(tabs []Tab, key rune) int {
	for i, tab := range tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
