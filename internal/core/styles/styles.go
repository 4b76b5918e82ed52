// Package styles holds the shared lipgloss styles, icons, and theme palettes
// for the console.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Package-level styles, rebuilt whenever the theme changes.
var (
	TitleStyle     lipgloss.Style
	TextMutedStyle lipgloss.Style
	StatusBarStyle lipgloss.Style
	HelpKeyStyle   lipgloss.Style

	ToastSuccessStyle lipgloss.Style
	ToastErrorStyle   lipgloss.Style
	ToastWarningStyle lipgloss.Style
	ToastInfoStyle    lipgloss.Style
	ToastHidingStyle  lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	p := CurrentPalette()

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Primary)

	TextMutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	ToastSuccessStyle = toastBase.BorderForeground(p.Success).Foreground(p.Success)
	ToastErrorStyle = toastBase.BorderForeground(p.Error).Foreground(p.Error)
	ToastWarningStyle = toastBase.BorderForeground(p.Warning).Foreground(p.Warning)
	ToastInfoStyle = toastBase.BorderForeground(p.Secondary).Foreground(p.Foreground)

	// Hiding toasts render muted so the exit is observable before removal.
	ToastHidingStyle = toastBase.BorderForeground(p.Muted).Foreground(p.Muted)
}
