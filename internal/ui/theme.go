package ui

import (
	"github.com/charmbracelet/lipgloss"

	"pocketpal/internal/game"
)

type palette struct {
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
	Bar       lipgloss.Color
	BarEmpty  lipgloss.Color
	Warning   lipgloss.Color
}

var palettes = map[string]palette{
	game.ThemeClassic: {
		Accent:    lipgloss.Color("#FF75B5"),
		Text:      lipgloss.Color("#FF75B5"),
		Muted:     lipgloss.Color("#A0A0A0"),
		Highlight: lipgloss.Color("#FFD700"),
		Bar:       lipgloss.Color("#5FD75F"),
		BarEmpty:  lipgloss.Color("#3A3A3A"),
		Warning:   lipgloss.Color("#FF0000"),
	},
	game.ThemeNight: {
		Accent:    lipgloss.Color("#8FA8FF"),
		Text:      lipgloss.Color("#C6D0F5"),
		Muted:     lipgloss.Color("#626880"),
		Highlight: lipgloss.Color("#E5C890"),
		Bar:       lipgloss.Color("#81C8BE"),
		BarEmpty:  lipgloss.Color("#303446"),
		Warning:   lipgloss.Color("#E78284"),
	},
}

type styles struct {
	palette  palette
	title    lipgloss.Style
	status   lipgloss.Style
	stats    lipgloss.Style
	menuBox  lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
	warning  lipgloss.Style
	anim     lipgloss.Style
}

func stylesFor(theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[game.ThemeClassic]
	}

	return styles{
		palette: p,
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Padding(0, 1),
		status: lipgloss.NewStyle().
			Foreground(p.Text).
			Width(44),
		stats: lipgloss.NewStyle().
			Foreground(p.Text),
		menuBox: lipgloss.NewStyle().
			Foreground(p.Text).
			Padding(0, 2),
		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Highlight),
		muted: lipgloss.NewStyle().
			Foreground(p.Muted),
		warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning),
		anim: lipgloss.NewStyle().
			Foreground(p.Highlight).
			Bold(true).
			Padding(1, 2),
	}
}
