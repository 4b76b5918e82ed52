package stores

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckworks/agentdeck/internal/core/notify"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNotifyStore_Save_and_List(t *testing.T) {
	s := NewNotifyStore(openTestDB(t))
	ctx := context.Background()

	base := time.Now()
	for i, title := range []string{"first", "second", "third"} {
		_, err := s.Save(ctx, notify.Notification{
			ID:        int64(i + 1),
			Kind:      notify.KindInfo,
			Title:     title,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	history, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)

	// Newest first.
	assert.Equal(t, "third", history[0].Title)
	assert.Equal(t, "first", history[2].Title)
	assert.Equal(t, int64(1), history[2].ID)
}

func TestNotifyStore_Save_assigns_row_ids(t *testing.T) {
	s := NewNotifyStore(openTestDB(t))
	ctx := context.Background()

	first, err := s.Save(ctx, notify.Notification{ID: 1, Kind: notify.KindError, Title: "a", CreatedAt: time.Now()})
	require.NoError(t, err)
	second, err := s.Save(ctx, notify.Notification{ID: 2, Kind: notify.KindError, Title: "b", CreatedAt: time.Now()})
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func TestNotifyStore_Count_and_Clear(t *testing.T) {
	s := NewNotifyStore(openTestDB(t))
	ctx := context.Background()

	_, err := s.Save(ctx, notify.Notification{ID: 1, Kind: notify.KindWarning, Title: "w", CreatedAt: time.Now()})
	require.NoError(t, err)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, s.Clear(ctx))

	count, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotifyStore_round_trips_fields(t *testing.T) {
	s := NewNotifyStore(openTestDB(t))
	ctx := context.Background()

	created := time.Now()
	_, err := s.Save(ctx, notify.Notification{
		ID:        42,
		Kind:      notify.KindSuccess,
		Title:     "Tests",
		Body:      "All tests passed!",
		CreatedAt: created,
	})
	require.NoError(t, err)

	history, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)

	got := history[0]
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, notify.KindSuccess, got.Kind)
	assert.Equal(t, "Tests", got.Title)
	assert.Equal(t, "All tests passed!", got.Body)
	assert.Equal(t, created.UnixNano(), got.CreatedAt.UnixNano())
}

func TestOpen_is_idempotent_on_existing_db(t *testing.T) {
	path := t.TempDir() + "/deck.db"

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must not re-apply migrations.
	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
