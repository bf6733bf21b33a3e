package console

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the Printer.
type Styles struct {
	// PanelTitle is the line printed above a panel.
	PanelTitle lipgloss.Style
	// PanelBorder is the neutral panel box.
	PanelBorder lipgloss.Style
	// CommandBorder is the box around a command awaiting confirmation.
	CommandBorder lipgloss.Style
	// ErrorBorder is the box around execution errors.
	ErrorBorder lipgloss.Style
	// PanelFooter is the line printed below a panel.
	PanelFooter lipgloss.Style
	// Unattended styles the unattended-mode acknowledgement line.
	Unattended lipgloss.Style
}

// DefaultStyles returns styles with colors enabled.
func DefaultStyles() Styles {
	return Styles{
		PanelTitle:    lipgloss.NewStyle().Bold(true),
		PanelBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		CommandBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("11")), // bright yellow
		ErrorBorder:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("1")),  // red
		PanelFooter:   lipgloss.NewStyle().Faint(true),
		Unattended:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // yellow
	}
}

// NoColorStyles returns styles with borders but no colors.
func NoColorStyles() Styles {
	plainBox := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	return Styles{
		PanelTitle:    lipgloss.NewStyle(),
		PanelBorder:   plainBox,
		CommandBorder: plainBox,
		ErrorBorder:   plainBox,
		PanelFooter:   lipgloss.NewStyle(),
		Unattended:    lipgloss.NewStyle(),
	}
}
