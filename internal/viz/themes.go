package viz

import "github.com/charmbracelet/lipgloss"

// Theme is one color scheme for the flight display.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
	Bad     lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:    "night",
		Primary: lipgloss.Color("#00ccff"),
		Accent:  lipgloss.Color("#ff9f43"),
		Text:    lipgloss.Color("#e8e8e8"),
		Muted:   lipgloss.Color("#5c6370"),
		Good:    lipgloss.Color("#2ecc71"),
		Warn:    lipgloss.Color("#f1c40f"),
		Bad:     lipgloss.Color("#e74c3c"),
	}

	ThemePhosphor = Theme{
		Name:    "phosphor",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00dd00"),
		Muted:   lipgloss.Color("#005500"),
		Good:    lipgloss.Color("#88ff88"),
		Warn:    lipgloss.Color("#ffff00"),
		Bad:     lipgloss.Color("#ff3300"),
	}

	ThemeAmber = Theme{
		Name:    "amber",
		Primary: lipgloss.Color("#ffb000"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#ffcc66"),
		Muted:   lipgloss.Color("#805800"),
		Good:    lipgloss.Color("#aaff00"),
		Warn:    lipgloss.Color("#ff8800"),
		Bad:     lipgloss.Color("#ff2200"),
	}

	CurrentTheme = ThemeNight

	Themes = []Theme{
		ThemeNight,
		ThemePhosphor,
		ThemeAmber,
	}
)

// GetTheme returns a theme by name, falling back to night.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

// SetTheme changes the active theme.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames lists the available theme names in order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
