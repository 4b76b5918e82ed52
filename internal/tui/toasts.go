package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/deckworks/agentdeck/internal/core/notify"
	"github.com/deckworks/agentdeck/internal/core/styles"
)

const (
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the center's live notifications as a vertical stack,
// oldest at top, newest at bottom. At most max toasts are shown; when more
// are live, the oldest are elided from the display (they keep their own
// timers and reappear as newer ones retire).
type ToastView struct {
	center *notify.Center
	max    int
}

// NewToastView creates a toast view over the center.
func NewToastView(center *notify.Center, max int) *ToastView {
	return &ToastView{center: center, max: max}
}

// View renders the visible toast stack.
func (v *ToastView) View() string {
	toasts := v.center.Active()
	if len(toasts) == 0 {
		return ""
	}
	if len(toasts) > v.max {
		toasts = toasts[len(toasts)-v.max:]
	}

	rendered := make([]string, 0, len(toasts))
	for _, n := range toasts {
		rendered = append(rendered, renderToast(n))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(n notify.Notification) string {
	var style lipgloss.Style
	switch {
	case n.State == notify.StateHiding:
		// Exit presentation: fade while the removal delay runs out.
		style = styles.ToastHidingStyle
	case n.Kind == notify.KindSuccess:
		style = styles.ToastSuccessStyle
	case n.Kind == notify.KindError:
		style = styles.ToastErrorStyle
	case n.Kind == notify.KindWarning:
		style = styles.ToastWarningStyle
	default:
		style = styles.ToastInfoStyle
	}

	content := styles.NotifyIcon(string(n.Kind)) + " " + n.Title
	if n.Body != "" {
		content += "\n" + styles.TextMutedStyle.Render(n.Body)
	}
	return style.Width(toastWidth).Render(content)
}
