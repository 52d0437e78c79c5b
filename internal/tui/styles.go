package tui

import "github.com/charmbracelet/lipgloss"

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme holds every style the widget renders with.
type Theme struct {
	Name      string
	Title     lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Action    lipgloss.Style
	Frame     lipgloss.Style
	Launcher  lipgloss.Style
}

func darkTheme() Theme {
	return Theme{
		Name:      ThemeDark,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		User:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Action:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		Launcher: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("4")).
			Padding(0, 2),
	}
}

func lightTheme() Theme {
	return Theme{
		Name:      ThemeLight,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		User:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Action:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("244")).
			Padding(0, 1),
		Launcher: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("14")).
			Padding(0, 2),
	}
}

// ThemeFor returns the named theme, falling back to dark.
func ThemeFor(name string) Theme {
	if name == ThemeLight {
		return lightTheme()
	}
	return darkTheme()
}

func (t Theme) next() Theme {
	if t.Name == ThemeDark {
		return lightTheme()
	}
	return darkTheme()
}
