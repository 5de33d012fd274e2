package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orrery/internal/orrery"
)

// Theme maps body color tags onto lipgloss colors for the TUI
type Theme struct {
	Name    string
	Palette map[orrery.Color]lipgloss.Color
	Border  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name: "classic",
		Palette: map[orrery.Color]lipgloss.Color{
			orrery.Yellow: lipgloss.Color("3"),
			orrery.Blue:   lipgloss.Color("4"),
			orrery.Red:    lipgloss.Color("1"),
			orrery.Gray:   lipgloss.Color("8"),
			orrery.Orange: lipgloss.Color("208"),
			orrery.Cyan:   lipgloss.Color("6"),
		},
		Border: lipgloss.Color("240"),
		Text:   lipgloss.Color("252"),
		Muted:  lipgloss.Color("245"),
		Accent: lipgloss.Color("86"),
	}

	ThemeNeon = Theme{
		Name: "neon",
		Palette: map[orrery.Color]lipgloss.Color{
			orrery.Yellow: lipgloss.Color("#ffff00"),
			orrery.Blue:   lipgloss.Color("#00aaff"),
			orrery.Red:    lipgloss.Color("#ff0055"),
			orrery.Gray:   lipgloss.Color("#444466"),
			orrery.Orange: lipgloss.Color("#ff8800"),
			orrery.Cyan:   lipgloss.Color("#00ffff"),
		},
		Border: lipgloss.Color("#ff00ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Accent: lipgloss.Color("#ff00ff"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Palette: map[orrery.Color]lipgloss.Color{orrery.Gray: lipgloss.Color("240")},
		Border:  lipgloss.Color("250"),
		Text:    lipgloss.Color("255"),
		Muted:   lipgloss.Color("242"),
		Accent:  lipgloss.Color("255"),
	}

	// All available themes
	Themes = []Theme{ThemeClassic, ThemeNeon, ThemeMono}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Style returns the glyph style for c; untinted colors render plain.
func (t Theme) Style(c orrery.Color) lipgloss.Style {
	fg, ok := t.Palette[c]
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(fg)
}
