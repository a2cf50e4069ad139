package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Warning lipgloss.Color
}

// Available themes
var (
	ThemeMidnight = Theme{
		Name:    "midnight",
		Primary: lipgloss.Color("#e2e8f0"),
		Accent:  lipgloss.Color("#38bdf8"), // sky
		Text:    lipgloss.Color("#cbd5e1"),
		Muted:   lipgloss.Color("#64748b"),
		Border:  lipgloss.Color("#334155"),
		Warning: lipgloss.Color("#f59e0b"),
	}

	ThemePaper = Theme{
		Name:    "paper",
		Primary: lipgloss.Color("#111827"),
		Accent:  lipgloss.Color("#2563eb"),
		Text:    lipgloss.Color("#1f2937"),
		Muted:   lipgloss.Color("#6b7280"),
		Border:  lipgloss.Color("#d1d5db"),
		Warning: lipgloss.Color("#b45309"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"), // green phosphor
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00cc00"),
		Muted:   lipgloss.Color("#005500"),
		Border:  lipgloss.Color("#004400"),
		Warning: lipgloss.Color("#ffff00"),
	}

	Themes = []Theme{ThemeMidnight, ThemePaper, ThemeRetro}
)

// GetTheme returns a theme by name, falling back to midnight.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMidnight
}

// NextTheme cycles through Themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
