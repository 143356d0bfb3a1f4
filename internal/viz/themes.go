package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the TUI. The last five colors paint the
// canvas layers.
type Theme struct {
	Name     string
	Header   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Warning  lipgloss.Color
	Bounds   lipgloss.Color
	Ray      lipgloss.Color
	Mirror   lipgloss.Color
	Particle lipgloss.Color
	Selected lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:     "cyberpunk",
		Header:   lipgloss.Color("#00ffff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666666"),
		Warning:  lipgloss.Color("#ff8800"),
		Bounds:   lipgloss.Color("#444466"),
		Ray:      lipgloss.Color("#ffff00"),
		Mirror:   lipgloss.Color("#00ffff"),
		Particle: lipgloss.Color("#ff00ff"),
		Selected: lipgloss.Color("#00ff00"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Header:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Warning:  lipgloss.Color("#ffff00"),
		Bounds:   lipgloss.Color("#005500"),
		Ray:      lipgloss.Color("#00aa00"),
		Mirror:   lipgloss.Color("#88ff88"),
		Particle: lipgloss.Color("#00ff00"),
		Selected: lipgloss.Color("#ffffff"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Header:   lipgloss.Color("#ffffff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Warning:  lipgloss.Color("#ffaa00"),
		Bounds:   lipgloss.Color("#888888"),
		Ray:      lipgloss.Color("#cccccc"),
		Mirror:   lipgloss.Color("#0088ff"),
		Particle: lipgloss.Color("#ffffff"),
		Selected: lipgloss.Color("#00ff00"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Header:   lipgloss.Color("#00a8cc"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
		Warning:  lipgloss.Color("#ffcc00"),
		Bounds:   lipgloss.Color("#4488aa"),
		Ray:      lipgloss.Color("#0077be"),
		Mirror:   lipgloss.Color("#e0f0ff"),
		Particle: lipgloss.Color("#ffd700"),
		Selected: lipgloss.Color("#00ff88"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Header:   lipgloss.Color("#feca57"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
		Warning:  lipgloss.Color("#ffc048"),
		Bounds:   lipgloss.Color("#8b6b8c"),
		Ray:      lipgloss.Color("#ff9ff3"),
		Mirror:   lipgloss.Color("#feca57"),
		Particle: lipgloss.Color("#ff6b6b"),
		Selected: lipgloss.Color("#5fd068"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, or the default one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one and returns it.
func NextTheme() Theme {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return CurrentTheme
		}
	}
	CurrentTheme = Themes[0]
	return CurrentTheme
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// LayerColor returns the theme color for a canvas layer.
func (t Theme) LayerColor(l Layer) lipgloss.Color {
	switch l {
	case LayerBounds:
		return t.Bounds
	case LayerRay:
		return t.Ray
	case LayerMirror:
		return t.Mirror
	case LayerParticle:
		return t.Particle
	case LayerSelected:
		return t.Selected
	}
	return t.Text
}

// RGB returns the layer color as 8-bit components.
func (t Theme) RGB(l Layer) (r, g, b uint8) {
	return parseHex(string(t.LayerColor(l)))
}
