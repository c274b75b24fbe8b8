package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorWarn     lipgloss.Color = "#f9e2af"
	colorError    lipgloss.Color = "#f38ba8"
	colorMantle   lipgloss.Color = "#181825"
	colorSurface0 lipgloss.Color = "#313244"
	colorSurface1 lipgloss.Color = "#45475a"
)

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	headerStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorAccent).
			Bold(true)
	badgeStyle = lipgloss.NewStyle().
			Background(colorError).
			Foreground(colorMantle).
			Bold(true).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	paneTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	rowTitleStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	rowMsgStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	rowCursorStyle = lipgloss.NewStyle().Background(colorSurface1)
	ageStyle       = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	newStyle       = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
	emptyStyle     = lipgloss.NewStyle().Foreground(colorMuted)

	closeStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Background(colorSurface0).
			Padding(0, 2)
	closeLockedStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Background(colorSurface0).
				Padding(0, 2)
)
