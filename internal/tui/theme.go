package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#003B00")
	Cyan        = lipgloss.Color("#00D4AA")
	Amber       = lipgloss.Color("#FFB000")
	Black       = lipgloss.Color("#0D0208")
	MidGray     = lipgloss.Color("#3a3a4e")
	LightGray   = lipgloss.Color("#aaaaaa")
	White       = lipgloss.Color("#e0e0e0")
	Red         = lipgloss.Color("#FF4136")

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(DarkGreen).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(White)

	BudgetStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	DetailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGreen).
			Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(BrightGreen)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(DimGreen)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	CommandStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(MidGray)
)

const Banner = `
  ▀█▀ ▀█▀ █▀▀▄ ▀█▀ █▄ █ █▀▀ █▀▀▄ ▄▀▄ █▀▀▄ █ █
   █   █  █▀▀▄  █  █ ▀█ █▀▀ █▀▀▄ █▀█ █▀▀▄  █
  ▀▀▀  ▀  ▀  ▀ ▀▀▀ ▀  ▀ ▀▀▀ ▀  ▀ ▀ ▀ ▀  ▀  ▀
`
