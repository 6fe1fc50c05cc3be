// Package theme defines color themes for the footprint TUI dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Highlighted surface (active nav item, focused field)
	Border       lipgloss.Color // Subtle borders
	BorderBright lipgloss.Color // Prominent borders (cards)
	BorderAccent lipgloss.Color // Focused card / expanded meal
	TextDim      lipgloss.Color // Hints, disabled fields
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color // Active states
	AccentBright lipgloss.Color
	Travel       lipgloss.Color // Breakdown category colors
	Energy       lipgloss.Color
	Diet         lipgloss.Color
	Green        lipgloss.Color
	Yellow       lipgloss.Color
	Orange       lipgloss.Color
	Red          lipgloss.Color
}

// Active is the currently selected theme.
var Active = Forest

// Forest is the default theme: deep green surfaces with a leaf accent.
var Forest = Theme{
	Name:         "forest",
	Background:   lipgloss.Color("#0E1511"),
	Surface:      lipgloss.Color("#16211A"),
	SurfaceHover: lipgloss.Color("#203024"),
	Border:       lipgloss.Color("#2C4033"),
	BorderBright: lipgloss.Color("#3F5A48"),
	BorderAccent: lipgloss.Color("#22C55E"),
	TextDim:      lipgloss.Color("#4E6656"),
	TextMuted:    lipgloss.Color("#8AA394"),
	TextPrimary:  lipgloss.Color("#EAF5EC"),
	Accent:       lipgloss.Color("#22C55E"),
	AccentBright: lipgloss.Color("#4ADE80"),
	Travel:       lipgloss.Color("#38BDF8"),
	Energy:       lipgloss.Color("#FACC15"),
	Diet:         lipgloss.Color("#F97316"),
	Green:        lipgloss.Color("#22C55E"),
	Yellow:       lipgloss.Color("#FACC15"),
	Orange:       lipgloss.Color("#F97316"),
	Red:          lipgloss.Color("#FF5459"),
}

// Paper is a light theme using the web dashboard's status colors.
var Paper = Theme{
	Name:         "paper",
	Background:   lipgloss.Color("#F7F9F6"),
	Surface:      lipgloss.Color("#FFFFFF"),
	SurfaceHover: lipgloss.Color("#E8F3EA"),
	Border:       lipgloss.Color("#D5DDD6"),
	BorderBright: lipgloss.Color("#A9B8AC"),
	BorderAccent: lipgloss.Color("#108255"),
	TextDim:      lipgloss.Color("#A0A8A2"),
	TextMuted:    lipgloss.Color("#5F6B63"),
	TextPrimary:  lipgloss.Color("#1B2420"),
	Accent:       lipgloss.Color("#108255"),
	AccentBright: lipgloss.Color("#0B6B45"),
	Travel:       lipgloss.Color("#1D6FB8"),
	Energy:       lipgloss.Color("#755700"),
	Diet:         lipgloss.Color("#B76B10"),
	Green:        lipgloss.Color("#108255"),
	Yellow:       lipgloss.Color("#755700"),
	Orange:       lipgloss.Color("#B76B10"),
	Red:          lipgloss.Color("#B8171F"),
}

// FlexokiDark is a warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderBright: lipgloss.Color("#575653"),
	BorderAccent: lipgloss.Color("#879A39"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#879A39"),
	AccentBright: lipgloss.Color("#A3B859"),
	Travel:       lipgloss.Color("#4385BE"),
	Energy:       lipgloss.Color("#D0A215"),
	Diet:         lipgloss.Color("#DA702C"),
	Green:        lipgloss.Color("#879A39"),
	Yellow:       lipgloss.Color("#D0A215"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderBright: lipgloss.Color("7"),
	BorderAccent: lipgloss.Color("2"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("2"),
	AccentBright: lipgloss.Color("10"),
	Travel:       lipgloss.Color("4"),
	Energy:       lipgloss.Color("3"),
	Diet:         lipgloss.Color("5"),
	Green:        lipgloss.Color("2"),
	Yellow:       lipgloss.Color("3"),
	Orange:       lipgloss.Color("11"),
	Red:          lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{Forest, Paper, FlexokiDark, Terminal}

// Lookup returns the theme with the given name.
func Lookup(name string) (Theme, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ByName returns a theme by its name, defaulting to Forest.
func ByName(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return Forest
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
