package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	paneTitleStyle = lipgloss.NewStyle().Bold(true)
	focusedPane    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("212")).Padding(0, 1)
	blurredPane    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Strikethrough(true)
	descStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	editingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	buttonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	deleteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	activeFilter   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("212"))
	inactiveFilter = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
