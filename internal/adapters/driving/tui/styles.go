package tui

import "github.com/charmbracelet/lipgloss"

// Theme colours. Saffron for headers, muted grays for chrome.
var (
	colorPrimary = lipgloss.Color("#FF9933")
	colorMuted   = lipgloss.Color("#6C7086")
	colorText    = lipgloss.Color("#CDD6F4")
	colorError   = lipgloss.Color("#F38BA8")
	colorBorder  = lipgloss.Color("#45475A")
)

// Styles contains pre-configured lipgloss styles for the ask view.
type Styles struct {
	Title      lipgloss.Style
	Filter     lipgloss.Style
	Source     lipgloss.Style
	SourceMeta lipgloss.Style
	Text       lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	InputBox   lipgloss.Style
}

// DefaultStyles returns the default styling.
func DefaultStyles() *Styles {
	return &Styles{
		Title:      lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		Filter:     lipgloss.NewStyle().Foreground(colorPrimary),
		Source:     lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		SourceMeta: lipgloss.NewStyle().Foreground(colorMuted),
		Text:       lipgloss.NewStyle().Foreground(colorText),
		Muted:      lipgloss.NewStyle().Foreground(colorMuted),
		Error:      lipgloss.NewStyle().Foreground(colorError),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
	}
}
