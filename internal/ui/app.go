package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/clemctl/clemctl/internal/eventlog"
	"github.com/clemctl/clemctl/internal/prefs"
	"github.com/clemctl/clemctl/internal/remote"
	"github.com/clemctl/clemctl/internal/state"
)

// View represents the current active view.
type View int

// Views, in tab order.
const (
	ViewNowPlaying View = iota
	ViewPlaylists
	ViewEvents

	viewCount
)

// Options configures the UI.
type Options struct {
	Client    *remote.Client
	Store     *state.Store
	Events    *eventlog.Log
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	client    *remote.Client
	store     *state.Store
	events    *eventlog.Log
	prefsPath string
	pollTick  time.Duration

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	entries     []eventlog.Entry

	// Playlists state
	selectedRow int

	// Events state
	eventsViewport viewport.Model
	follow         bool

	// Help overlay
	showHelp bool

	// Last failed command, shown in the command bar
	lastCmdErr error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = 500 * time.Millisecond
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "dark"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		client:      opts.Client,
		store:       opts.Store,
		events:      opts.Events,
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(themeName),
		currentView: ViewNowPlaying,
		follow:      true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.events != nil {
		cmds = append(cmds, fetchEventsCmd(m.events))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initEventsViewport()
		}
		m.ready = true
		m.updateEventsViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.updatePlaylistSelection()
		return m, nil

	case eventsMsg:
		m.entries = msg
		m.updateEventsViewport()
		return m, nil

	case cmdResultMsg:
		m.lastCmdErr = msg.err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay.
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

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.currentView = (m.currentView + 1) % viewCount
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.currentView = (m.currentView + viewCount - 1) % viewCount
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewNowPlaying
		return m, nil

	case key.Matches(msg, m.keys.ViewNowPlaying):
		m.currentView = ViewNowPlaying
		return m, nil

	case key.Matches(msg, m.keys.ViewPlaylists):
		m.currentView = ViewPlaylists
		return m, nil

	case key.Matches(msg, m.keys.ViewEvents):
		m.currentView = ViewEvents
		return m, nil

	case key.Matches(msg, m.keys.PlayPause):
		return m, m.sendCmd(func() error { return m.client.PlayPause() })

	case key.Matches(msg, m.keys.Stop):
		return m, m.sendCmd(func() error { return m.client.Stop() })

	case key.Matches(msg, m.keys.Next):
		return m, m.sendCmd(func() error { return m.client.Next() })

	case key.Matches(msg, m.keys.Previous):
		return m, m.sendCmd(func() error { return m.client.Previous() })

	case key.Matches(msg, m.keys.VolumeUp):
		return m, m.volumeCmd(+5)

	case key.Matches(msg, m.keys.VolumeDown):
		return m, m.volumeCmd(-5)
	}

	// View-specific keys
	switch m.currentView {
	case ViewPlaylists:
		return m.handlePlaylistsKey(msg)
	case ViewEvents:
		return m.handleEventsKey(msg)
	}

	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.events != nil {
		cmds = append(cmds, fetchEventsCmd(m.events))
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// sendCmd wraps a fire-and-forget player command. The result only matters
// when the send failed.
func (m Model) sendCmd(fn func() error) tea.Cmd {
	if m.client == nil {
		return nil
	}
	return func() tea.Msg {
		return cmdResultMsg{err: fn()}
	}
}

// volumeCmd nudges the volume by delta, clamped to 0-100. Does nothing
// while the player has not reported a volume yet.
func (m Model) volumeCmd(delta int) tea.Cmd {
	if m.client == nil || m.snapshot.Volume == state.Unknown {
		return nil
	}
	volume := m.snapshot.Volume + delta
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	return func() tea.Msg {
		return cmdResultMsg{err: m.client.SetVolume(volume)}
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewNowPlaying:
		return m.renderNowPlaying()
	case ViewPlaylists:
		return m.renderPlaylists()
	case ViewEvents:
		return m.renderEvents()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type eventsMsg []eventlog.Entry

type cmdResultMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func fetchEventsCmd(events *eventlog.Log) tea.Cmd {
	return func() tea.Msg {
		return eventsMsg(events.Entries())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Store == nil {
		return errors.New("ui requires a state store")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
