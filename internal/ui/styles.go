package ui

import "github.com/charmbracelet/lipgloss"

var (
	GreenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	YellowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
	URLStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)
