package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used for traces and the live view.
type Theme struct {
	Name       string
	State      lipgloss.Color
	Accept     lipgloss.Color
	Reject     lipgloss.Color
	Head       lipgloss.Color
	HeadBg     lipgloss.Color
	Transition lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:       "classic",
		State:      lipgloss.Color("#00ccff"),
		Accept:     lipgloss.Color("#00ff88"),
		Reject:     lipgloss.Color("#ff4444"),
		Head:       lipgloss.Color("#0a0a0a"),
		HeadBg:     lipgloss.Color("#ffcc00"),
		Transition: lipgloss.Color("#888899"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
		Border:     lipgloss.Color("#444466"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		State:      lipgloss.Color("#ff00ff"), // Magenta
		Accept:     lipgloss.Color("#00ff00"),
		Reject:     lipgloss.Color("#ff0000"),
		Head:       lipgloss.Color("#0a0a0a"),
		HeadBg:     lipgloss.Color("#00ffff"), // Cyan
		Transition: lipgloss.Color("#ffff00"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Border:     lipgloss.Color("#ff00ff"),
	}

	ThemeRetro = Theme{
		Name:       "retro",
		State:      lipgloss.Color("#00ff00"), // Green phosphor
		Accept:     lipgloss.Color("#88ff88"),
		Reject:     lipgloss.Color("#ffff00"),
		Head:       lipgloss.Color("#001100"),
		HeadBg:     lipgloss.Color("#00ff00"),
		Transition: lipgloss.Color("#00cc00"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Border:     lipgloss.Color("#00cc00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		State:      lipgloss.Color("#ffffff"),
		Accept:     lipgloss.Color("#cccccc"),
		Reject:     lipgloss.Color("#cccccc"),
		Head:       lipgloss.Color("#000000"),
		HeadBg:     lipgloss.Color("#0088ff"),
		Transition: lipgloss.Color("#888888"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Border:     lipgloss.Color("#444444"),
	}

	CurrentTheme = ThemeClassic

	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetro,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// HasTheme reports whether name is a built-in theme.
func HasTheme(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			return true
		}
	}
	return false
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after current in Themes, wrapping around.
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
