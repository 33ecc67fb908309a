package view

import "github.com/charmbracelet/lipgloss"

// Styles holds the shared look of the menu. Colors stay within the ANSI
// 256 palette so the menu reads the same on most terminals.
var Styles = struct {
	Control      lipgloss.Style
	Focused      lipgloss.Style
	Selected     lipgloss.Style
	Inert        lipgloss.Style
	Headline     lipgloss.Style
	Muted        lipgloss.Style
	Panel        lipgloss.Style
	Inline       lipgloss.Style
	Status       lipgloss.Style
	Drawer       lipgloss.Style
	Backdrop     lipgloss.Style
	SelectedMark string
	ForwardMark  string
	BackMark     string
}{
	Control:      lipgloss.NewStyle(),
	Focused:      lipgloss.NewStyle().Reverse(true),
	Selected:     lipgloss.NewStyle().Bold(true),
	Inert:        lipgloss.NewStyle().Faint(true),
	Headline:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Panel:        lipgloss.NewStyle().Padding(0, 1),
	Inline:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
	Drawer:       lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("240")),
	Backdrop:     lipgloss.NewStyle().Faint(true),
	SelectedMark: "• ",
	ForwardMark:  "›",
	BackMark:     "‹ Back",
}
