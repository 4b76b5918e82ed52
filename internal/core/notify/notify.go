// Package notify implements the console's notification center: short-lived,
// independently dismissible messages with a fixed show/auto-hide/remove
// lifecycle.
package notify

import (
	"context"
	"time"
)

// Kind represents the severity of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Normalize maps unrecognized kinds to KindInfo. Callers may pass arbitrary
// strings as kinds; anything outside the known set displays as info.
func (k Kind) Normalize() Kind {
	switch k {
	case KindSuccess, KindError, KindWarning, KindInfo:
		return k
	default:
		return KindInfo
	}
}

// State represents a notification's position in its lifecycle.
// Transitions are strictly pending -> visible -> hiding -> removed.
type State string

const (
	StatePending State = "pending"
	StateVisible State = "visible"
	StateHiding  State = "hiding"
	StateRemoved State = "removed"
)

// Notification represents a single notification event.
type Notification struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists notification history to durable storage.
type Store interface {
	Save(ctx context.Context, n Notification) (int64, error)
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
