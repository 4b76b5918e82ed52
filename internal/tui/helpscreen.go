package tui

import (
	"github.com/charmbracelet/glamour"

	"github.com/deckworks/agentdeck/internal/core/styles"
)

const helpMarkdown = `# agentdeck

A console for driving an AI coding agent and watching its outcomes.

## Keys

| Key | Action |
|-----|--------|
| x   | run the sample snippet through the executor |
| s   | show system status |
| c   | show executor cache stats |
| C   | clear the executor result cache |
| n   | compose a notification |
| d   | dismiss the newest toast |
| D   | dismiss all toasts |
| t   | cycle the color theme |
| ?   | toggle this help |
| q   | quit |

Toasts auto-hide after the configured duration; dismissed or expired toasts
fade briefly before they are removed. Press any key to close this screen.
`

func (m *Model) helpScreen() string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(m.width, 80)),
	)
	if err != nil {
		return helpMarkdown
	}

	out, err := r.Render(helpMarkdown)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to render help")
		return helpMarkdown
	}
	return out + styles.TextMutedStyle.Render("press any key to close")
}
