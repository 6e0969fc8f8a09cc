package styles

import "github.com/charmbracelet/lipgloss"

// Palette, with variants for light and dark terminals
var (
	Accent  = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	Good    = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	Muted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	Warning = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	Bad     = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	Inverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#111827"}
)

// Markers in front of every file row
const (
	Marked   = "● "
	Unmarked = "  "
)

var (
	App = lipgloss.NewStyle().Padding(1, 2)

	Title    = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	Subtitle = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	// File rows: muted directory, highlighted base name
	FileDir      = lipgloss.NewStyle().Foreground(Muted)
	FileName     = lipgloss.NewStyle().Foreground(Accent)
	NodeItem     = lipgloss.NewStyle()
	NodeSelected = lipgloss.NewStyle().Background(Accent).Foreground(Inverse).Bold(true)
	TreeBranch   = lipgloss.NewStyle().Foreground(Good)

	// Notice is the host notice line under every view
	Notice = lipgloss.NewStyle().Foreground(Warning).Bold(true)

	InputLabel   = lipgloss.NewStyle().Foreground(Good).Bold(true)
	InputField   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Muted).Padding(0, 1)
	InputFocused = InputField.BorderForeground(Accent)
	InputChanged = lipgloss.NewStyle().Foreground(Warning)

	HelpKey       = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	HelpDesc      = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Muted).SetString(" • ")

	Success   = lipgloss.NewStyle().Foreground(Good).Bold(true)
	ErrorMsg  = lipgloss.NewStyle().Foreground(Bad).Bold(true)
	MutedText = lipgloss.NewStyle().Foreground(Muted)
)
