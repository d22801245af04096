package render

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

const (
	colorSuccess = colorGreen
	colorError   = colorRed
	colorMuted   = colorOverlay1
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(colorBlue).Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	borderStyle   = lipgloss.NewStyle().Foreground(colorSurface1)
	positiveStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	negativeStyle = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	titleStyle    = lipgloss.NewStyle().Foreground(colorBlue).Bold(true)
)
