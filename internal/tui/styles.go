package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary  = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim      = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent   = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder   = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorGreen    = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorStatusBg = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	quoteCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 3)

	quoteTextStyle = lipgloss.NewStyle().
			Bold(true).
			Italic(true)

	quoteAuthorStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Align(lipgloss.Right)

	heartOnStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	heartOffStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	listItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	listSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(0).
				Foreground(colorAccent).
				Bold(true)

	categoryActiveStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)
