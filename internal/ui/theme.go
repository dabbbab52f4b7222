package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors for the UI.
type Theme struct {
	Name string

	Text   string
	Muted  string
	Accent string
	Danger string

	Border        string
	BorderFocus   string
	SelectionBg   string
	SelectionText string
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Danger   lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Focused  lipgloss.Style
	Help     lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Accent)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Danger: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Danger)),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		Focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
	}
}

var themes = []Theme{
	{
		Name:          "Catppuccin",
		Text:          "#cdd6f4",
		Muted:         "#6c7086",
		Accent:        "#89b4fa",
		Danger:        "#f38ba8",
		Border:        "#45475a",
		BorderFocus:   "#89b4fa",
		SelectionBg:   "#313244",
		SelectionText: "#cdd6f4",
	},
	{
		Name:          "Gruvbox",
		Text:          "#ebdbb2",
		Muted:         "#928374",
		Accent:        "#fabd2f",
		Danger:        "#fb4934",
		Border:        "#504945",
		BorderFocus:   "#fabd2f",
		SelectionBg:   "#3c3836",
		SelectionText: "#ebdbb2",
	},
	{
		Name:          "Plain",
		Text:          "7",
		Muted:         "8",
		Accent:        "12",
		Danger:        "9",
		Border:        "8",
		BorderFocus:   "12",
		SelectionBg:   "7",
		SelectionText: "0",
	},
}

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one, cycling.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
