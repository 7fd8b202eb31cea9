package tui

import "github.com/charmbracelet/lipgloss"

var (
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8718D"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C5CBF")).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0"))
	focusedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C5CBF"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F5F5"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5484D"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A524"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B6B6B")).MarginTop(1)
	progressOn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E8718D"))
	progressOff   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	babyCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3A3A3A")).
			Padding(0, 1).
			MarginBottom(1)
	doneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#E8718D")).
			Padding(1, 3)
)
