// Package tui implements the Bubble Tea console for agentdeck.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/deckworks/agentdeck/internal/console"
	"github.com/deckworks/agentdeck/internal/core/config"
	"github.com/deckworks/agentdeck/internal/core/logging"
	"github.com/deckworks/agentdeck/internal/core/notify"
	"github.com/deckworks/agentdeck/internal/core/styles"
)

const sampleSnippet = "print('hello from agentdeck')\n"

// Options configures the console TUI.
type Options struct {
	Config   *config.Config
	Center   *notify.Center
	Reporter *console.Reporter
	Executor *console.Executor
	Status   *console.StatusService
	Version  string
}

type execDoneMsg struct {
	result console.Result
}

// Model is the main Bubble Tea model for the console.
type Model struct {
	cfg      *config.Config
	center   *notify.Center
	reporter *console.Reporter
	executor *console.Executor
	status   *console.StatusService
	version  string

	toasts   *ToastView
	viewport viewport.Model
	spinner  spinner.Model
	helpView help.Model
	keys     keyMap

	width    int
	height   int
	ready    bool
	ticking  bool
	running  bool
	showHelp bool

	form        *huh.Form
	composeKind string
	composeT    string
	composeB    string

	lines []string
	log   zerolog.Logger
}

// New creates the console model.
func New(opts Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		cfg:      opts.Config,
		center:   opts.Center,
		reporter: opts.Reporter,
		executor: opts.Executor,
		status:   opts.Status,
		version:  opts.Version,
		toasts:   NewToastView(opts.Center, opts.Config.Toasts.MaxVisible),
		spinner:  sp,
		helpView: help.New(),
		keys:     defaultKeyMap(),
		log:      logging.Component("tui"),
	}
	m.appendLine(fmt.Sprintf("agentdeck %s (press ? for help)", opts.Version))
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case toastTickMsg:
		m.center.Advance(toastTickInterval)
		if m.center.Len() > 0 {
			return m, scheduleToastTick()
		}
		m.ticking = false
		return m, nil

	case execDoneMsg:
		m.running = false
		return m, m.handleExecDone(msg.result)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(keyMsg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Execute):
		if m.running {
			return m, nil
		}
		m.running = true
		m.appendLine("running snippet...")
		return m, tea.Batch(m.runSnippet(), m.spinner.Tick)

	case key.Matches(msg, m.keys.Status):
		st := m.status.Report()
		m.appendLine(fmt.Sprintf("status: version=%s uptime=%s active=%d",
			st.Version, st.Uptime, st.ActiveNotifications))
		m.reporter.Info("System status", fmt.Sprintf("up %s, %d active notifications", st.Uptime, st.ActiveNotifications))
		return m, m.ensureTicking()

	case key.Matches(msg, m.keys.Cache):
		stats := m.executor.CacheStats()
		m.appendLine(fmt.Sprintf("cache: entries=%d hits=%d misses=%d rate=%.0f%%",
			stats.Entries, stats.Hits, stats.Misses, stats.HitRate*100))
		m.reporter.Info("Cache stats", fmt.Sprintf("%d entries, %.0f%% hit rate", stats.Entries, stats.HitRate*100))
		return m, m.ensureTicking()

	case key.Matches(msg, m.keys.ClearCache):
		m.executor.ClearCache()
		m.appendLine("cache cleared")
		m.reporter.Info("Cache cleared", "")
		return m, m.ensureTicking()

	case key.Matches(msg, m.keys.Compose):
		m.form = m.newComposeForm()
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Dismiss):
		if active := m.center.Active(); len(active) > 0 {
			m.center.Hide(active[len(active)-1].ID)
		}
		return m, m.ensureTicking()

	case key.Matches(msg, m.keys.DismissAll):
		for _, n := range m.center.Active() {
			m.center.Hide(n.ID)
		}
		return m, m.ensureTicking()

	case key.Matches(msg, m.keys.Theme):
		next := styles.NextTheme()
		styles.SetTheme(next)
		m.cfg.Theme = next
		m.appendLine("theme: " + next)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.reporter.Show(notify.Kind(m.composeKind), m.composeT, m.composeB)
		m.form = nil
		return m, m.ensureTicking()
	case huh.StateAborted:
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m *Model) newComposeForm() *huh.Form {
	m.composeKind = string(notify.KindInfo)
	m.composeT = ""
	m.composeB = ""

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Kind").
				Options(huh.NewOptions("info", "success", "warning", "error")...).
				Value(&m.composeKind),
			huh.NewInput().
				Title("Title").
				Value(&m.composeT),
			huh.NewText().
				Title("Body").
				Value(&m.composeB),
		),
	)
}

func (m *Model) runSnippet() tea.Cmd {
	executor := m.executor
	return func() tea.Msg {
		return execDoneMsg{result: executor.Run(context.Background(), sampleSnippet)}
	}
}

func (m *Model) handleExecDone(res console.Result) tea.Cmd {
	for _, line := range strings.Split(strings.TrimRight(res.Output, "\n"), "\n") {
		if line != "" {
			m.appendLine("  " + line)
		}
	}

	switch {
	case res.Success && res.FromCache:
		m.appendLine(fmt.Sprintf("done in %s (cached)", res.Duration.Round(time.Millisecond)))
		m.reporter.Success("Execution", "completed (from cache)")
	case res.Success:
		m.appendLine(fmt.Sprintf("done in %s", res.Duration.Round(time.Millisecond)))
		m.reporter.Success("Execution", fmt.Sprintf("completed in %s", res.Duration.Round(time.Millisecond)))
	default:
		m.appendLine("failed: " + strings.TrimSpace(res.Errors))
		m.reporter.Error("Execution failed", strings.TrimSpace(res.Errors))
	}
	return m.ensureTicking()
}

// ensureTicking starts the toast tick loop if notifications are live and the
// loop is not already running.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || m.center.Len() == 0 {
		return nil
	}
	m.ticking = true
	return scheduleToastTick()
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if m.ready {
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
	}
}

func (m *Model) resize() {
	// Header and status bar take one row each; the toast stack borrows
	// rows from the viewport only while toasts are on screen.
	vpHeight := max(m.height-2, 1)
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(m.width, vpHeight)
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vpHeight
	}
	m.helpView.Width = m.width
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}
