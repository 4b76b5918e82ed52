package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenter_Show_ids_are_unique_and_increasing(t *testing.T) {
	c := NewCenter(nil)

	seen := make(map[int64]bool)
	var prev int64
	for i := 0; i < 50; i++ {
		id := c.Show(KindInfo, "t", "b")
		assert.False(t, seen[id], "id %d returned twice", id)
		assert.Greater(t, id, prev)
		seen[id] = true
		prev = id
	}
}

func TestCenter_Show_first_id_is_one(t *testing.T) {
	c := NewCenter(nil)

	id := c.Success("Tests", "All tests passed!")

	assert.Equal(t, int64(1), id)
	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, KindSuccess, n.Kind)
	assert.Equal(t, "Tests", n.Title)
	assert.Equal(t, "All tests passed!", n.Body)
}

func TestCenter_Show_activates_on_next_advance(t *testing.T) {
	c := NewCenter(nil)

	id := c.Info("pending", "")
	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StatePending, n.State)

	// Advance(0) is the next rendering opportunity; the entrance
	// transition must happen there, not inside Show.
	c.Advance(0)

	n, ok = c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateVisible, n.State)
}

func TestCenter_Show_unknown_kind_falls_back_to_info(t *testing.T) {
	c := NewCenter(nil)

	id := c.Show(Kind("bogus-kind"), "T", "B")

	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, KindInfo, n.Kind)
}

func TestCenter_auto_hide_lifecycle(t *testing.T) {
	c := NewCenter(nil)

	id := c.Show(KindSuccess, "Tests", "All tests passed!")
	c.Advance(0)

	// Still visible just before the deadline.
	c.Advance(DefaultDuration - time.Millisecond)
	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateVisible, n.State)

	// At the deadline the exit transition starts.
	c.Advance(time.Millisecond)
	n, ok = c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateHiding, n.State)

	// RemoveDelay later the entry is gone.
	c.Advance(RemoveDelay)
	_, ok = c.Get(id)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestCenter_auto_hide_with_custom_duration(t *testing.T) {
	c := NewCenter(nil)

	id := c.Show(KindInfo, "quick", "", WithDuration(100*time.Millisecond))
	c.Advance(0)

	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateVisible, n.State)

	// One large advance past hide + removal settles the whole sequence.
	c.Advance(100*time.Millisecond + RemoveDelay)
	_, ok = c.Get(id)
	assert.False(t, ok)
}

func TestCenter_configured_default_duration(t *testing.T) {
	c := NewCenter(nil, WithDefaultDuration(time.Second))

	id := c.Info("t", "b")
	c.Advance(0)

	// Still visible just before the configured deadline.
	c.Advance(time.Second - time.Millisecond)
	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateVisible, n.State)

	c.Advance(time.Millisecond)
	n, ok = c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateHiding, n.State)

	// An explicit duration still wins over the configured default.
	quick := c.Show(KindInfo, "quick", "", WithDuration(100*time.Millisecond))
	c.Advance(0)
	c.Advance(100 * time.Millisecond)
	n, ok = c.Get(quick)
	require.True(t, ok)
	assert.Equal(t, StateHiding, n.State)
}

func TestCenter_non_positive_default_duration_ignored(t *testing.T) {
	c := NewCenter(nil, WithDefaultDuration(0))

	id := c.Info("t", "b")
	c.Advance(DefaultDuration - time.Millisecond)

	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateVisible, n.State)
}

func TestCenter_negative_duration_uses_default(t *testing.T) {
	c := NewCenter(nil)

	id := c.Show(KindInfo, "t", "b", WithDuration(-1))
	c.Advance(time.Second)

	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateVisible, n.State)
}

func TestCenter_Hide_removes_after_delay(t *testing.T) {
	c := NewCenter(nil)

	id := c.Info("t", "b")
	c.Advance(0)

	c.Hide(id)
	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateHiding, n.State)

	c.Advance(RemoveDelay)
	_, ok = c.Get(id)
	assert.False(t, ok)
}

func TestCenter_Hide_is_idempotent(t *testing.T) {
	c := NewCenter(nil)

	var events []EventType
	c.Subscribe(func(e Event) { events = append(events, e.Type) })

	id := c.Info("t", "b")
	c.Advance(0)

	c.Hide(id)
	c.Hide(id) // second call must have no additional effect
	c.Advance(RemoveDelay)
	c.Hide(id) // and hiding a removed id is safe too

	assert.Zero(t, c.Len())
	assert.Equal(t, []EventType{EventShown, EventVisible, EventHiding, EventRemoved}, events)
}

func TestCenter_Hide_unknown_id_is_noop(t *testing.T) {
	c := NewCenter(nil)

	c.Hide(9999999)

	assert.Zero(t, c.Len())
}

func TestCenter_Hide_before_first_advance(t *testing.T) {
	c := NewCenter(nil)

	id := c.Info("t", "b")
	c.Hide(id)

	n, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateHiding, n.State)

	// The superseded activation task must not resurrect the notification.
	c.Advance(RemoveDelay)
	_, ok = c.Get(id)
	assert.False(t, ok)
}

func TestCenter_manual_hide_wins_race_with_auto_hide(t *testing.T) {
	c := NewCenter(nil)

	id := c.Show(KindInfo, "t", "b", WithDuration(time.Second))
	c.Advance(0)

	// Manual dismissal before the auto-hide deadline.
	c.Advance(100 * time.Millisecond)
	c.Hide(id)

	// Removed on the manual schedule.
	c.Advance(RemoveDelay)
	_, ok := c.Get(id)
	assert.False(t, ok)

	// The later auto-hide deadline passes without effect.
	c.Advance(time.Second)
	assert.Zero(t, c.Len())
}

func TestCenter_notifications_are_independent(t *testing.T) {
	c := NewCenter(nil)

	first := c.Show(KindInfo, "first", "", WithDuration(100*time.Millisecond))
	second := c.Show(KindInfo, "second", "", WithDuration(10*time.Second))
	c.Advance(0)

	// Expiring the first leaves the second untouched.
	c.Advance(100*time.Millisecond + RemoveDelay)
	_, ok := c.Get(first)
	assert.False(t, ok)

	n, ok := c.Get(second)
	require.True(t, ok)
	assert.Equal(t, StateVisible, n.State)
}

func TestCenter_Active_ordered_by_id(t *testing.T) {
	c := NewCenter(nil)

	c.Info("a", "")
	c.Warning("b", "")
	c.Error("c", "")
	c.Advance(0)

	active := c.Active()
	require.Len(t, active, 3)
	assert.Equal(t, int64(1), active[0].ID)
	assert.Equal(t, int64(3), active[2].ID)
	assert.Equal(t, KindWarning, active[1].Kind)
}

func TestCenter_Subscribe_receives_lifecycle_events(t *testing.T) {
	c := NewCenter(nil)

	var events []Event
	c.Subscribe(func(e Event) { events = append(events, e) })

	id := c.Success("done", "all good", WithDuration(time.Second))
	c.Advance(0)
	c.Advance(time.Second + RemoveDelay)

	require.Len(t, events, 4)
	assert.Equal(t, EventShown, events[0].Type)
	assert.Equal(t, EventVisible, events[1].Type)
	assert.Equal(t, EventHiding, events[2].Type)
	assert.Equal(t, EventRemoved, events[3].Type)
	for _, e := range events {
		assert.Equal(t, id, e.Notification.ID)
	}
}

func TestCenter_wrappers_delegate_kind(t *testing.T) {
	c := NewCenter(nil)

	tests := []struct {
		name string
		show func(title, body string, opts ...ShowOption) int64
		want Kind
	}{
		{"success", c.Success, KindSuccess},
		{"error", c.Error, KindError},
		{"warning", c.Warning, KindWarning},
		{"info", c.Info, KindInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.show("t", "b")
			n, ok := c.Get(id)
			require.True(t, ok)
			assert.Equal(t, tt.want, n.Kind)
		})
	}
}
