package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("#00D7FF")
	colorGreen  = lipgloss.Color("#00FF87")
	colorYellow = lipgloss.Color("#FFD700")
	colorRed    = lipgloss.Color("#FF5F5F")
	colorPurple = lipgloss.Color("#AF87FF")
	colorWhite  = lipgloss.Color("#FFFFFF")
	colorGray   = lipgloss.Color("#626262")
	colorBg     = lipgloss.Color("#1A1A2E")
	colorBorder = lipgloss.Color("#2A2A4A")
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorBorder).
	Padding(0, 1)

var activePanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorCyan).
	Padding(0, 1)

var tabStyle = lipgloss.NewStyle().
	Foreground(colorGray).
	Padding(0, 2)

var activeTabStyle = lipgloss.NewStyle().
	Foreground(colorCyan).
	Bold(true).
	Padding(0, 2).
	Border(lipgloss.NormalBorder(), false, false, true, false).
	BorderForeground(colorCyan)

var (
	titleStyle     = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	focusedLabel   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true).Width(12)
	valueStyle     = lipgloss.NewStyle().Foreground(colorWhite)
	successStyle   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(colorGray)
	highlightStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	spinnerStyle   = lipgloss.NewStyle().Foreground(colorPurple)
	cursorStyle    = lipgloss.NewStyle().Foreground(colorBg).Background(colorCyan).Bold(true)
	keyStyle       = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	keyDescStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	barFull  = "█"
	barEmpty = "░"
	barWidth = 20
)

// RenderProgressBar draws pct (0..1) as a fixed-width bar.
func RenderProgressBar(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(barWidth))
	bar := ""
	for i := 0; i < barWidth; i++ {
		if i < filled {
			bar += barFull
		} else {
			bar += barEmpty
		}
	}
	style := lipgloss.NewStyle().Foreground(colorYellow)
	if pct >= 1 {
		style = lipgloss.NewStyle().Foreground(colorGreen)
	}
	return style.Render(bar)
}

func RenderKeyBinding(key, desc string) string {
	return keyStyle.Render(key) + keyDescStyle.Render(" "+desc)
}
