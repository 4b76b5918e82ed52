package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Success:    lipgloss.Color("#b8bb26"),
		Warning:    lipgloss.Color("#fabd2f"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"catppuccin": {
		Primary:    lipgloss.Color("#89b4fa"), // Blue
		Secondary:  lipgloss.Color("#94e2d5"), // Teal
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0
		Background: lipgloss.Color("#1e1e2e"), // Base
		Surface:    lipgloss.Color("#313244"), // Surface0
		Success:    lipgloss.Color("#a6e3a1"), // Green
		Warning:    lipgloss.Color("#f9e2af"), // Yellow
		Error:      lipgloss.Color("#f38ba8"), // Red
	},
	"light": {
		Primary:    lipgloss.Color("#2962ff"),
		Secondary:  lipgloss.Color("#00838f"),
		Foreground: lipgloss.Color("#1f2328"),
		Muted:      lipgloss.Color("#8c959f"),
		Background: lipgloss.Color("#ffffff"),
		Surface:    lipgloss.Color("#eaeef2"),
		Success:    lipgloss.Color("#1a7f37"),
		Warning:    lipgloss.Color("#9a6700"),
		Error:      lipgloss.Color("#cf222e"),
	},
}

var currentTheme = DefaultTheme

// ThemeNames returns the built-in theme names sorted alphabetically.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasTheme reports whether name is a built-in theme.
func HasTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

// CurrentTheme returns the name of the active theme.
func CurrentTheme() string {
	return currentTheme
}

// CurrentPalette returns the active theme's palette.
func CurrentPalette() Palette {
	return themes[currentTheme]
}

// SetTheme activates the named theme and rebuilds the package style set.
// Unknown names are ignored and the active theme is left unchanged.
func SetTheme(name string) {
	if !HasTheme(name) {
		return
	}
	currentTheme = name
	rebuildStyles()
}

// NextTheme returns the theme name following the active one, wrapping around.
func NextTheme() string {
	names := ThemeNames()
	for i, name := range names {
		if name == currentTheme {
			return names[(i+1)%len(names)]
		}
	}
	return DefaultTheme
}
