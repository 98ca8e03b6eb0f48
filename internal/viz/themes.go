package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/skyrmsim/internal/export"
)

// Theme is a TUI colour scheme. Field colours the spin canvas. Hue is the
// in-plane spin angle the palette is built around.
type Theme struct {
	Name       string
	Hue        float64
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Field      lipgloss.Color
}

// wheel is the saved-image colour of a spin at in-plane angle deg with
// out-of-plane component sz, so the terminal and image palettes agree.
func wheel(deg, sz float64) lipgloss.Color {
	rad := deg * math.Pi / 180
	inPlane := math.Sqrt(1 - sz*sz)
	return lipgloss.Color(export.SpinColor(inPlane*math.Cos(rad), inPlane*math.Sin(rad), sz).Hex())
}

// wheelTheme centres a palette on one spin angle. Secondary and accent sit a
// third of the wheel away; text leans toward the core and muted toward the
// background.
func wheelTheme(name string, hue float64, bg string) Theme {
	return Theme{
		Name:       name,
		Hue:        hue,
		Primary:    wheel(hue, 0),
		Secondary:  wheel(hue+120, 0),
		Accent:     wheel(hue+240, 0),
		Background: lipgloss.Color(bg),
		Text:       wheel(hue, 0.9),
		Muted:      wheel(hue, -0.6),
		Success:    wheel(120, 0.3),
		Warning:    wheel(45, 0.3),
		Error:      wheel(0, 0.3),
		Field:      wheel(hue, 0.5),
	}
}

// gray is a spin with no in-plane part: white core to black background.
func gray(sz float64) lipgloss.Color { return wheel(0, sz) }

var (
	ThemeNeel       = wheelTheme("neel", 0, "#0a0a0a")
	ThemeBloch      = wheelTheme("bloch", 90, "#060a04")
	ThemeWall       = wheelTheme("wall", 200, "#020812")
	ThemePrecession = wheelTheme("precession", 280, "#0d0514")

	ThemeCore = Theme{
		Name:       "core",
		Primary:    gray(1),
		Secondary:  gray(0.6),
		Accent:     wheel(210, 0),
		Background: gray(-1),
		Text:       gray(1),
		Muted:      gray(-0.1),
		Success:    wheel(120, 0.3),
		Warning:    wheel(45, 0.3),
		Error:      wheel(0, 0.3),
		Field:      gray(0.8),
	}

	CurrentTheme = ThemeNeel

	Themes = []Theme{
		ThemeNeel,
		ThemeBloch,
		ThemeWall,
		ThemePrecession,
		ThemeCore,
	}
)

// GetTheme returns the named theme, or the first theme if unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeel
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			break
		}
	}
	return CurrentTheme
}
