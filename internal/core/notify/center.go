package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/deckworks/agentdeck/internal/core/logging"
	"github.com/rs/zerolog"
)

const (
	// DefaultDuration is how long a notification stays visible before it
	// starts hiding, absent a manual dismissal.
	DefaultDuration = 5 * time.Second

	// RemoveDelay is how long a hiding notification lingers before it is
	// removed, giving the display surface time to play an exit transition.
	RemoveDelay = 300 * time.Millisecond
)

// EventType identifies a lifecycle transition observed on a notification.
type EventType string

const (
	EventShown   EventType = "shown"   // created, pending attachment
	EventVisible EventType = "visible" // attached to the display
	EventHiding  EventType = "hiding"  // exit transition started
	EventRemoved EventType = "removed" // detached, terminal
)

// Event carries a notification snapshot taken at the moment of a transition.
type Event struct {
	Type         EventType    `json:"type"`
	Notification Notification `json:"notification"`
}

// Subscriber is a callback invoked synchronously on every lifecycle event.
type Subscriber func(Event)

type taskKind int

const (
	taskActivate taskKind = iota
	taskAutoHide
	taskRemove
)

// task is a scheduled transition keyed by notification id. Tasks fire against
// the center's relative clock; a task whose notification is gone, or whose
// notification moved past the expected state, is absorbed as a no-op.
type task struct {
	id   int64
	kind taskKind
	due  time.Duration
	seq  int64
}

// Center owns the set of live notifications. It assigns ids, schedules the
// auto-hide and removal transitions, and dispatches lifecycle events to
// subscribers. All mutations are serialized behind a single mutex so the
// Center is safe to drive from the Bubble Tea update loop, the serve-mode
// ticker, or HTTP handlers.
//
// Time is relative: the Center has no timers of its own. The host advances it
// via Advance, typically on a fixed tick. The pending -> visible transition is
// deliberately deferred to the first Advance after Show so an entrance
// presentation observes the state change rather than being suppressed by
// simultaneous insertion and activation.
type Center struct {
	mu      sync.Mutex
	nextID  int64
	items   map[int64]*Notification
	tasks   []task
	taskSeq int64
	clock   time.Duration

	subsMu sync.Mutex
	subs   []Subscriber

	defaultDuration time.Duration
	store           Store
	log             zerolog.Logger
}

// CenterOption configures a Center at construction.
type CenterOption func(*Center)

// WithDefaultDuration sets the auto-hide duration applied when a Show call
// carries no explicit duration. Non-positive values keep DefaultDuration.
func WithDefaultDuration(d time.Duration) CenterOption {
	return func(c *Center) {
		if d > 0 {
			c.defaultDuration = d
		}
	}
}

// NewCenter creates a notification center. If store is non-nil, every shown
// notification is appended to it as history; persistence failures are logged
// and never surface to callers.
func NewCenter(store Store, opts ...CenterOption) *Center {
	c := &Center{
		items:           make(map[int64]*Notification),
		defaultDuration: DefaultDuration,
		store:           store,
		log:             logging.Component("notify"),
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// ShowOption customizes a single Show call.
type ShowOption func(*showOptions)

type showOptions struct {
	duration time.Duration
}

// WithDuration overrides the auto-hide duration. Negative values fall back to
// the default.
func WithDuration(d time.Duration) ShowOption {
	return func(o *showOptions) {
		o.duration = d
	}
}

// Show creates a notification and returns its id. The id is unique and
// strictly increasing for the lifetime of the Center. The notification starts
// pending and becomes visible on the next Advance; after the auto-hide
// duration it transitions to hiding, and RemoveDelay later it is removed.
//
// Unrecognized kinds display as info. Show never fails.
func (c *Center) Show(kind Kind, title, body string, opts ...ShowOption) int64 {
	o := showOptions{duration: c.defaultDuration}
	for _, fn := range opts {
		fn(&o)
	}
	if o.duration < 0 {
		o.duration = c.defaultDuration
	}

	c.mu.Lock()
	c.nextID++
	n := &Notification{
		ID:        c.nextID,
		Kind:      kind.Normalize(),
		Title:     title,
		Body:      body,
		State:     StatePending,
		CreatedAt: time.Now(),
	}
	c.items[n.ID] = n
	c.schedule(n.ID, taskActivate, c.clock)
	c.schedule(n.ID, taskAutoHide, c.clock+o.duration)
	snapshot := *n
	c.mu.Unlock()

	if c.store != nil {
		if _, err := c.store.Save(context.Background(), snapshot); err != nil {
			c.log.Error().Err(err).Str("title", snapshot.Title).Msg("failed to persist notification")
		}
	}

	c.emit(Event{Type: EventShown, Notification: snapshot})
	return snapshot.ID
}

// Success shows a success notification.
func (c *Center) Success(title, body string, opts ...ShowOption) int64 {
	return c.Show(KindSuccess, title, body, opts...)
}

// Error shows an error notification.
func (c *Center) Error(title, body string, opts ...ShowOption) int64 {
	return c.Show(KindError, title, body, opts...)
}

// Warning shows a warning notification.
func (c *Center) Warning(title, body string, opts ...ShowOption) int64 {
	return c.Show(KindWarning, title, body, opts...)
}

// Info shows an info notification.
func (c *Center) Info(title, body string, opts ...ShowOption) int64 {
	return c.Show(KindInfo, title, body, opts...)
}

// Hide starts the removal sequence for the given id: the notification
// transitions to hiding now and is removed RemoveDelay later. Hiding an
// unknown id, or an id already hiding, is a no-op. Any still-pending
// auto-hide task for the id becomes inert.
func (c *Center) Hide(id int64) {
	c.mu.Lock()
	n, ok := c.items[id]
	if !ok || n.State == StateHiding {
		c.mu.Unlock()
		return
	}

	var events []Event
	if n.State == StatePending {
		// Dismissed before the first tick attached it; pass through
		// visible so no transition is skipped.
		n.State = StateVisible
		events = append(events, Event{Type: EventVisible, Notification: *n})
	}
	n.State = StateHiding
	c.schedule(id, taskRemove, c.clock+RemoveDelay)
	events = append(events, Event{Type: EventHiding, Notification: *n})
	c.mu.Unlock()

	for _, e := range events {
		c.emit(e)
	}
}

// Advance moves the center's clock forward by d and fires every due task in
// deadline order. A zero d still fires tasks already due, which makes
// Advance(0) the canonical "next rendering opportunity" after Show.
func (c *Center) Advance(d time.Duration) {
	c.mu.Lock()
	if d > 0 {
		c.clock += d
	}

	var events []Event
	for {
		i := c.nextDue()
		if i < 0 {
			break
		}
		t := c.tasks[i]
		c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)

		n, ok := c.items[t.id]
		if !ok {
			continue // already removed, absorb
		}

		switch t.kind {
		case taskActivate:
			if n.State == StatePending {
				n.State = StateVisible
				events = append(events, Event{Type: EventVisible, Notification: *n})
			}
		case taskAutoHide:
			if n.State == StateVisible {
				n.State = StateHiding
				// Anchor the removal to the auto-hide deadline, not
				// the current clock, so a large Advance settles the
				// whole sequence in one call.
				c.schedule(t.id, taskRemove, t.due+RemoveDelay)
				events = append(events, Event{Type: EventHiding, Notification: *n})
			}
		case taskRemove:
			if n.State == StateHiding {
				n.State = StateRemoved
				delete(c.items, t.id)
				events = append(events, Event{Type: EventRemoved, Notification: *n})
			}
		}
	}
	c.mu.Unlock()

	for _, e := range events {
		c.emit(e)
	}
}

// Run drives the center from a wall-clock ticker until ctx is canceled. It is
// used in serve mode where no TUI tick loop exists.
func (c *Center) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.Advance(now.Sub(last))
			last = now
		}
	}
}

// Subscribe registers a callback invoked on every lifecycle event. Callbacks
// run synchronously on the goroutine driving the transition and must not call
// back into the Center's mutating methods.
func (c *Center) Subscribe(fn Subscriber) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	c.subs = append(c.subs, fn)
}

// Get returns a snapshot of the notification with the given id.
func (c *Center) Get(id int64) (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.items[id]
	if !ok {
		return Notification{}, false
	}
	return *n, true
}

// Active returns snapshots of all live notifications ordered by id.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, 0, len(c.items))
	for _, n := range c.items {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of live notifications.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// History returns all persisted notifications (newest first).
// Returns nil if no store is configured.
func (c *Center) History(ctx context.Context) ([]Notification, error) {
	if c.store == nil {
		return nil, nil
	}
	return c.store.List(ctx)
}

func (c *Center) schedule(id int64, kind taskKind, due time.Duration) {
	c.taskSeq++
	c.tasks = append(c.tasks, task{id: id, kind: kind, due: due, seq: c.taskSeq})
}

// nextDue returns the index of the earliest due task at or before the current
// clock, breaking ties by scheduling order, or -1 if none is due.
func (c *Center) nextDue() int {
	best := -1
	for i, t := range c.tasks {
		if t.due > c.clock {
			continue
		}
		if best < 0 || t.due < c.tasks[best].due ||
			(t.due == c.tasks[best].due && t.seq < c.tasks[best].seq) {
			best = i
		}
	}
	return best
}

func (c *Center) emit(e Event) {
	c.subsMu.Lock()
	subs := make([]Subscriber, len(c.subs))
	copy(subs, c.subs)
	c.subsMu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}
