package viz

import "github.com/charmbracelet/lipgloss"

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	toolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	wallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	// Water shades from trace to overfull, dark blue through cyan.
	waterStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("17")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("19")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("27")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	}
)

var waterRunes = []rune{'·', '░', '▒', '▓', '█'}

// waterLevel buckets a mass value into a shade index.
func waterLevel(mass float64) int {
	switch {
	case mass < 0.15:
		return 0
	case mass < 0.5:
		return 1
	case mass < 1.0:
		return 2
	case mass < 2.0:
		return 3
	default:
		return 4
	}
}
