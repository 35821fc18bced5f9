package tui

import (
	"github.com/charmbracelet/lipgloss"

	"emovoice/internal/emotion"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorAccent  = lipgloss.Color("#06B6D4")
	colorMuted   = lipgloss.Color("#6B7280")
	colorDanger  = lipgloss.Color("#EF4444")
	colorOK      = lipgloss.Color("#10B981")
	colorWarn    = lipgloss.Color("#F59E0B")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 2).
			Underline(true)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	dangerStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	okStyle = lipgloss.NewStyle().
		Foreground(colorOK)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarn)

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary)

	headerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorMuted)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)
)

// emotionColors keeps chart bars and labels consistent across screens.
var emotionColors = map[emotion.Emotion]lipgloss.Color{
	emotion.Joy:      lipgloss.Color("#FBBF24"),
	emotion.Sadness:  lipgloss.Color("#3B82F6"),
	emotion.Anger:    lipgloss.Color("#EF4444"),
	emotion.Fear:     lipgloss.Color("#8B5CF6"),
	emotion.Surprise: lipgloss.Color("#EC4899"),
	emotion.Disgust:  lipgloss.Color("#84CC16"),
	emotion.Calm:     lipgloss.Color("#14B8A6"),
}

func emotionColor(e emotion.Emotion) lipgloss.Color {
	if c, ok := emotionColors[e]; ok {
		return c
	}
	return colorMuted
}

func emotionDot(e emotion.Emotion) string {
	return lipgloss.NewStyle().Foreground(emotionColor(e)).Render("●")
}
