package components

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1)
	SubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).MarginBottom(1)
	LabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	ValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	HintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	CommandStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252")).Padding(0, 1)
)

// KeyValue renders an aligned "label: value" line.
func KeyValue(label, value string, labelWidth int) string {
	return LabelStyle.Width(labelWidth).Render(label+":") + " " + ValueStyle.Render(value)
}
