package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the stems, blooms and side panel.
type Theme struct {
	Name   string
	Stem   lipgloss.Color
	Bloom  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Calm   lipgloss.Color
	Strain lipgloss.Color
}

var (
	ThemeMeadow = Theme{
		Name:   "meadow",
		Stem:   lipgloss.Color("#5fd068"),
		Bloom:  lipgloss.Color("#ff9ff3"),
		Accent: lipgloss.Color("#feca57"),
		Text:   lipgloss.Color("#f5fff5"),
		Muted:  lipgloss.Color("#6b8c6b"),
		Calm:   lipgloss.Color("#5fd068"),
		Strain: lipgloss.Color("#ff6b6b"),
	}

	ThemeDusk = Theme{
		Name:   "dusk",
		Stem:   lipgloss.Color("#8b6b8c"),
		Bloom:  lipgloss.Color("#ff6b6b"),
		Accent: lipgloss.Color("#ffc048"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#5a4a5b"),
		Calm:   lipgloss.Color("#00a8cc"),
		Strain: lipgloss.Color("#ff4757"),
	}

	ThemeInk = Theme{
		Name:   "ink",
		Stem:   lipgloss.Color("#cccccc"),
		Bloom:  lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Calm:   lipgloss.Color("#00ff00"),
		Strain: lipgloss.Color("#ff0000"),
	}

	ThemeNeon = Theme{
		Name:   "neon",
		Stem:   lipgloss.Color("#00ffff"),
		Bloom:  lipgloss.Color("#ff00ff"),
		Accent: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Calm:   lipgloss.Color("#00ff88"),
		Strain: lipgloss.Color("#ff4444"),
	}

	CurrentTheme = ThemeMeadow

	Themes = []Theme{
		ThemeMeadow,
		ThemeDusk,
		ThemeInk,
		ThemeNeon,
	}
)

// GetTheme returns a theme by name, falling back to meadow.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMeadow
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
