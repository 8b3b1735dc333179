// Package tui provides the interactive terminal client for the task list.
package tui

import "charm.land/lipgloss/v2"

// Palette.
var (
	ColorPrimary = lipgloss.Color("#7C3AED")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorError   = lipgloss.Color("#EF4444")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorText    = lipgloss.Color("#E5E7EB")
	ColorSurface = lipgloss.Color("#1F2937")
	ColorDim     = lipgloss.Color("#9CA3AF")
)

// Component styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	ActiveTaskStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	CompletedTaskStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Strikethrough(true)

	SelectedTaskStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Bold(true)

	FilterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ActiveFilterStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true).
				Underline(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorSurface).
			Foreground(ColorDim).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
)
