package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/deckworks/agentdeck/internal/core/notify"
)

// NotifyStore implements notify.Store using SQLite. It records notification
// history; live lifecycle state stays in the notification center and is never
// persisted.
type NotifyStore struct {
	db *sqlx.DB
}

var _ notify.Store = (*NotifyStore)(nil)

// NewNotifyStore creates a SQLite-backed notification history store.
func NewNotifyStore(db *sqlx.DB) *NotifyStore {
	return &NotifyStore{db: db}
}

type notificationRow struct {
	ID        int64  `db:"id"`
	NotifyID  int64  `db:"notify_id"`
	Kind      string `db:"kind"`
	Title     string `db:"title"`
	Body      string `db:"body"`
	CreatedAt int64  `db:"created_at"`
}

// Save persists a notification and returns its auto-generated row id.
func (s *NotifyStore) Save(ctx context.Context, n notify.Notification) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (notify_id, kind, title, body, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, string(n.Kind), n.Title, n.Body, n.CreatedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("notification row id: %w", err)
	}
	return id, nil
}

// List returns all notifications ordered by newest first.
func (s *NotifyStore) List(ctx context.Context) ([]notify.Notification, error) {
	var rows []notificationRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, notify_id, kind, title, body, created_at
		FROM notifications
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	result := make([]notify.Notification, 0, len(rows))
	for _, row := range rows {
		result = append(result, rowToNotification(row))
	}
	return result, nil
}

// Clear deletes all notifications.
func (s *NotifyStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// Count returns the total number of notifications.
func (s *NotifyStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM notifications"); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}

func rowToNotification(row notificationRow) notify.Notification {
	// History does not track live lifecycle state; State is left unset.
	return notify.Notification{
		ID:        row.NotifyID,
		Kind:      notify.Kind(row.Kind),
		Title:     row.Title,
		Body:      row.Body,
		CreatedAt: time.Unix(0, row.CreatedAt),
	}
}
