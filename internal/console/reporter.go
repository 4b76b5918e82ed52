package console

import (
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/deckworks/agentdeck/internal/core/logging"
	"github.com/deckworks/agentdeck/internal/core/notify"
)

// Reporter routes service outcomes to the notification center. Titles
// matching a configured mute glob are dropped before they reach the center.
// Collaborators report exclusively through the severity wrappers and never
// touch notification state directly.
type Reporter struct {
	center *notify.Center
	mute   []string
	log    zerolog.Logger
}

// NewReporter creates a reporter over the given center with mute patterns
// from config. Patterns are assumed pre-validated.
func NewReporter(center *notify.Center, mute []string) *Reporter {
	return &Reporter{
		center: center,
		mute:   mute,
		log:    logging.Component("reporter"),
	}
}

// Show surfaces a notification unless its title is muted. Returns the
// assigned id, or 0 when the notification was muted.
func (r *Reporter) Show(kind notify.Kind, title, body string, opts ...notify.ShowOption) int64 {
	if r.muted(title) {
		r.log.Debug().Str("title", title).Msg("notification muted")
		return 0
	}
	return r.center.Show(kind, title, body, opts...)
}

// Success reports a success outcome.
func (r *Reporter) Success(title, body string, opts ...notify.ShowOption) int64 {
	return r.Show(notify.KindSuccess, title, body, opts...)
}

// Error reports an error outcome.
func (r *Reporter) Error(title, body string, opts ...notify.ShowOption) int64 {
	return r.Show(notify.KindError, title, body, opts...)
}

// Warning reports a warning outcome.
func (r *Reporter) Warning(title, body string, opts ...notify.ShowOption) int64 {
	return r.Show(notify.KindWarning, title, body, opts...)
}

// Info reports an informational outcome.
func (r *Reporter) Info(title, body string, opts ...notify.ShowOption) int64 {
	return r.Show(notify.KindInfo, title, body, opts...)
}

func (r *Reporter) muted(title string) bool {
	for _, pattern := range r.mute {
		if ok, err := doublestar.Match(pattern, title); err == nil && ok {
			return true
		}
	}
	return false
}
