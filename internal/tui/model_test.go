package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckworks/agentdeck/internal/console"
	"github.com/deckworks/agentdeck/internal/core/config"
	"github.com/deckworks/agentdeck/internal/core/notify"
	"github.com/deckworks/agentdeck/internal/core/styles"
)

func newTestModel(t *testing.T) (*Model, *notify.Center) {
	t.Helper()

	cfg := config.DefaultConfig()
	center := notify.NewCenter(nil)
	executor := console.NewExecutor(cfg.Executor)

	m := New(Options{
		Config:   &cfg,
		Center:   center,
		Reporter: console.NewReporter(center, cfg.Mute),
		Executor: executor,
		Status:   console.NewStatusService("test", center, executor),
		Version:  "test",
	})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(*Model), center
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_status_key_raises_notification(t *testing.T) {
	m, center := newTestModel(t)

	updated, cmd := m.Update(keyPress('s'))
	m = updated.(*Model)

	assert.Equal(t, 1, center.Len())
	assert.NotNil(t, cmd, "tick loop should start when a toast appears")
	assert.True(t, m.ticking)
}

func TestModel_tick_advances_center_and_stops_when_empty(t *testing.T) {
	m, center := newTestModel(t)

	center.Info("t", "b", notify.WithDuration(0))
	m.ticking = true

	// First tick activates and immediately starts hiding (duration 0).
	updated, cmd := m.Update(toastTickMsg{})
	m = updated.(*Model)
	require.NotNil(t, cmd)

	// Tick past the removal delay; the loop stops once nothing is live.
	for i := 0; i < 4 && center.Len() > 0; i++ {
		updated, cmd = m.Update(toastTickMsg{})
		m = updated.(*Model)
	}

	assert.Zero(t, center.Len())
	assert.Nil(t, cmd)
	assert.False(t, m.ticking)
}

func TestModel_dismiss_hides_newest(t *testing.T) {
	m, center := newTestModel(t)

	center.Info("older", "")
	newest := center.Info("newer", "")
	center.Advance(0)

	updated, _ := m.Update(keyPress('d'))
	m = updated.(*Model)

	n, ok := center.Get(newest)
	require.True(t, ok)
	assert.Equal(t, notify.StateHiding, n.State)

	active := center.Active()
	require.Len(t, active, 2)
	assert.Equal(t, notify.StateVisible, active[0].State)
}

func TestModel_dismiss_all(t *testing.T) {
	m, center := newTestModel(t)

	center.Info("a", "")
	center.Info("b", "")
	center.Advance(0)

	updated, _ := m.Update(keyPress('D'))
	m = updated.(*Model)

	for _, n := range center.Active() {
		assert.Equal(t, notify.StateHiding, n.State)
	}

	center.Advance(notify.RemoveDelay)
	assert.Zero(t, center.Len())
}

func TestModel_quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyPress('q'))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_help_toggle(t *testing.T) {
	m, _ := newTestModel(t)

	updated, _ := m.Update(keyPress('?'))
	m = updated.(*Model)
	assert.True(t, m.showHelp)

	// Any key closes the help screen.
	updated, _ = m.Update(keyPress('z'))
	m = updated.(*Model)
	assert.False(t, m.showHelp)
}

func TestModel_theme_cycle(t *testing.T) {
	t.Cleanup(func() { styles.SetTheme(styles.DefaultTheme) })
	m, _ := newTestModel(t)
	before := m.cfg.Theme

	updated, _ := m.Update(keyPress('t'))
	m = updated.(*Model)

	assert.NotEqual(t, before, m.cfg.Theme)
}

func TestModel_clear_cache_key(t *testing.T) {
	m, center := newTestModel(t)

	// Populate the result cache through a deterministic command.
	cfg := m.cfg.Executor
	cfg.Command = []string{"cat"}
	m.executor = console.NewExecutor(cfg)
	m.executor.Run(context.Background(), "snippet")
	require.Equal(t, 1, m.executor.CacheStats().Entries)

	updated, _ := m.Update(keyPress('C'))
	m = updated.(*Model)

	assert.Zero(t, m.executor.CacheStats().Entries)
	assert.Equal(t, 1, center.Len(), "clearing the cache raises a confirmation toast")
}

func TestModel_exec_done_reports_outcome(t *testing.T) {
	m, center := newTestModel(t)
	m.running = true

	updated, _ := m.Update(execDoneMsg{result: console.Result{Success: true, Output: "ok\n"}})
	m = updated.(*Model)

	assert.False(t, m.running)
	active := center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.KindSuccess, active[0].Kind)
}

func TestModel_exec_failure_reports_error(t *testing.T) {
	m, center := newTestModel(t)
	m.running = true

	updated, _ := m.Update(execDoneMsg{result: console.Result{Errors: "boom"}})
	_ = updated.(*Model)

	active := center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, notify.KindError, active[0].Kind)
	assert.Equal(t, "boom", active[0].Body)
}
