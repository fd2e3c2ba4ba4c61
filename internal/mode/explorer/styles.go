package explorer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/lattice/internal/config"
)

// Styles holds the lipgloss styles for the explorer view.
type Styles struct {
	Title  lipgloss.Style
	Subtle lipgloss.Style
	Error  lipgloss.Style
	Result lipgloss.Style
}

// NewStyles builds styles from the theme configuration.
func NewStyles(theme config.ThemeConfig) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight)),
		Subtle: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error)),
		Result: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Success)),
	}
}
