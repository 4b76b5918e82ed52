package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/deckworks/agentdeck/internal/core/styles"
)

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.showHelp {
		return m.helpScreen()
	}

	if m.form != nil {
		return m.form.View()
	}

	header := styles.TitleStyle.Render(styles.IconDeck + " agentdeck")

	body := m.viewport.View()
	if toasts := m.toasts.View(); toasts != "" {
		// Toasts dock to the lower-right corner above the status bar.
		toastArea := lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts)
		bodyHeight := max(m.viewport.Height-lipgloss.Height(toastArea), 0)
		body = lipgloss.NewStyle().MaxHeight(bodyHeight).Render(body)
		body = lipgloss.JoinVertical(lipgloss.Left, body, toastArea)
	}

	left := styles.CurrentTheme()
	if m.running {
		left = m.spinner.View() + " running"
	}
	status := styles.StatusBarStyle.Width(m.width).Render(
		left + " " + iconDot + " " + m.helpView.ShortHelpView(m.keys.ShortHelp()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// iconDot is the separator used in the status bar.
const iconDot = "•"
