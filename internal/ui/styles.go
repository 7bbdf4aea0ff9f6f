package ui

import "github.com/charmbracelet/lipgloss"

// Styling constants
var (
	// Colors
	primaryColor   = lipgloss.Color("#8B0000") // dark red
	secondaryColor = lipgloss.Color("#F5F5F1") // light cream
	accentColor    = lipgloss.Color("#564D4D") // dark gray
	userColor      = lipgloss.Color("#007BFF")
	botColor       = lipgloss.Color("#444444")
	mutedColor     = lipgloss.Color("#9E9E9E")

	// Text styles
	titleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Background(primaryColor).
			Bold(true).
			Padding(0, 2).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	normalTextStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	highlightedTextStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#E50914")).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// Component styles
	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	focusedFieldStyle = fieldStyle.
				BorderForeground(primaryColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(secondaryColor).
			PaddingLeft(2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			Width(cardWidth)

	selectedCardStyle = cardStyle.
				BorderForeground(primaryColor)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Background(userColor).
			Padding(0, 1)

	botBubbleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Background(botColor).
			Padding(0, 1)
)

const cardWidth = 30
