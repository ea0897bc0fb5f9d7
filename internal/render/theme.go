package render

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Green      = lipgloss.Color("#00FF41")
	MedGreen   = lipgloss.Color("#00C832")
	DarkGreen  = lipgloss.Color("#008F11")
	DimGreen   = lipgloss.Color("#003B00")
	Cyan       = lipgloss.Color("#00D4AA")
	Black      = lipgloss.Color("#0D0208")
	Gray       = lipgloss.Color("#8a8a8a")
	White      = lipgloss.Color("#e0e0e0")
	DarkYellow = lipgloss.Color("#B8860B")
	Red        = lipgloss.Color("#FF4136")

	// Menu header
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true)

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(Green)

	// Node blocks
	IndexStyle = lipgloss.NewStyle().
			Foreground(Gray)

	TitleStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	SummaryStyle = lipgloss.NewStyle().
			Foreground(White)

	TagsStyle = lipgloss.NewStyle().
			Foreground(DarkYellow)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(DimGreen)

	// Feedback
	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(DarkGreen)

	BannerStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Background(DarkGreen).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	// Table cells
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(Cyan).
				Bold(true).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(DarkGreen)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGreen).
			Padding(0, 1)
)

const Banner = `
  ███████╗ █████╗  ██████╗ ███████╗
  ██╔════╝██╔══██╗██╔════╝ ██╔════╝
  ███████╗███████║██║  ███╗█████╗
  ╚════██║██╔══██║██║   ██║██╔══╝
  ███████║██║  ██║╚██████╔╝███████╗
  ╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚══════╝
`
