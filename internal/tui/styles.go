package tui

import "github.com/charmbracelet/lipgloss"

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	CounterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1E1E1E")).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	HiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	FlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	MineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// NumberStyles colours revealed counts, indexed by adjacent mine count
var NumberStyles = [9]lipgloss.Style{
	lipgloss.NewStyle(),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#4FC1FF")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#C0392B")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#1ABC9C")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")).Bold(true),
}
