package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationModel is an inline yes/no prompt shown above the footer
type ConfirmationModel struct {
	active      bool
	message     string
	destructive bool
	onConfirm   func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the prompt. onConfirm runs when the user answers yes.
func (m *ConfirmationModel) Show(message string, destructive bool, onConfirm func() tea.Cmd) {
	m.active = true
	m.message = message
	m.destructive = destructive
	m.onConfirm = onConfirm
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation. Any key other than yes
// or no is ignored while the prompt is open.
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
	}
	return nil
}

// View renders the prompt centered in width
func (m *ConfirmationModel) View(width int) string {
	if !m.active {
		return ""
	}

	message := fmt.Sprintf("%s %s", m.message, formatConfirmOptions(m.destructive))
	if lipgloss.Width(message) < width {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(message)
	}
	return message
}

func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorActive))
	no := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorNormal))
	if destructive {
		yes = yes.Foreground(lipgloss.Color(ColorError))
		no = no.Foreground(lipgloss.Color(ColorSuccess))
	}
	return "[" + yes.Render("y") + "/" + no.Render("n") + "]"
}
