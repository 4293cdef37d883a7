// Package theme defines the light and dark color themes for the SmartSave TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab, selected row)
	SurfaceBright lipgloss.Color // Extra bright surface for emphasis
	Border        lipgloss.Color // Subtle borders
	BorderBright  lipgloss.Color // Prominent borders (cards, focus)
	BorderAccent  lipgloss.Color // Accent-colored borders for focus states
	TextDim       lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted     lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary   lipgloss.Color // Primary content text
	Accent        lipgloss.Color // Primary accent (links, active states)
	AccentBright  lipgloss.Color // Brighter accent for emphasis
	AccentDim     lipgloss.Color // Dimmed accent for backgrounds
	Green         lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Gold          lipgloss.Color // Completed goals and celebration
	Magenta       lipgloss.Color
}

// Names accepted by ByName and persisted in preferences.
const (
	NameLight = "light"
	NameDark  = "dark"
)

// Active is the currently selected theme.
var Active = Light

// Light is the default theme.
var Light = Theme{
	Name:          NameLight,
	Background:    lipgloss.Color("#F7F7FB"),
	Surface:       lipgloss.Color("#FFFFFF"),
	SurfaceHover:  lipgloss.Color("#EEEDFB"),
	SurfaceBright: lipgloss.Color("#E4E2F7"),
	Border:        lipgloss.Color("#DCDCE6"),
	BorderBright:  lipgloss.Color("#B8B6CF"),
	BorderAccent:  lipgloss.Color("#6C5CE7"),
	TextDim:       lipgloss.Color("#A0A0B2"),
	TextMuted:     lipgloss.Color("#6B6B80"),
	TextPrimary:   lipgloss.Color("#2D3436"),
	Accent:        lipgloss.Color("#6C5CE7"),
	AccentBright:  lipgloss.Color("#5A4BD1"),
	AccentDim:     lipgloss.Color("#EAE7FD"),
	Green:         lipgloss.Color("#00A383"),
	GreenBright:   lipgloss.Color("#00B894"),
	Orange:        lipgloss.Color("#E17055"),
	Red:           lipgloss.Color("#D63031"),
	Gold:          lipgloss.Color("#E1A800"),
	Magenta:       lipgloss.Color("#E84393"),
}

// Dark is the low-light theme.
var Dark = Theme{
	Name:          NameDark,
	Background:    lipgloss.Color("#15141F"),
	Surface:       lipgloss.Color("#1F1E2E"),
	SurfaceHover:  lipgloss.Color("#2B2A3F"),
	SurfaceBright: lipgloss.Color("#37364F"),
	Border:        lipgloss.Color("#3A3950"),
	BorderBright:  lipgloss.Color("#5A5878"),
	BorderAccent:  lipgloss.Color("#A29BFE"),
	TextDim:       lipgloss.Color("#5F5E78"),
	TextMuted:     lipgloss.Color("#9A99B4"),
	TextPrimary:   lipgloss.Color("#F1F0FA"),
	Accent:        lipgloss.Color("#A29BFE"),
	AccentBright:  lipgloss.Color("#C3BEFF"),
	AccentDim:     lipgloss.Color("#2A2748"),
	Green:         lipgloss.Color("#55EFC4"),
	GreenBright:   lipgloss.Color("#7FF5D4"),
	Orange:        lipgloss.Color("#FAB1A0"),
	Red:           lipgloss.Color("#FF7675"),
	Gold:          lipgloss.Color("#FDCB6E"),
	Magenta:       lipgloss.Color("#FD79A8"),
}

// All available themes.
var All = []Theme{Light, Dark}

// ByName returns a theme by its name, defaulting to Light.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Light
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Toggle switches between light and dark and returns the new theme name.
func Toggle() string {
	if Active.Name == NameDark {
		Active = Light
	} else {
		Active = Dark
	}
	return Active.Name
}
