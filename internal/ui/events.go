package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clemctl/clemctl/internal/remotemsg"
)

// initEventsViewport initializes the events viewport.
func (m *Model) initEventsViewport() {
	m.eventsViewport = viewport.New(m.width-4, m.height-4)
	m.eventsViewport.Style = lipgloss.NewStyle()
}

// updateEventsViewport resizes the events viewport and refreshes its content.
func (m *Model) updateEventsViewport() {
	if !m.ready {
		return
	}
	if m.eventsViewport.Width == 0 {
		m.initEventsViewport()
	}

	// Box height = m.height - 2 (header, cmdbar)
	// Box inner = box height - 2 (top and bottom borders) = m.height - 4
	m.eventsViewport.Width = m.width - 4
	m.eventsViewport.Height = m.height - 4

	m.eventsViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))

	m.eventsViewport.SetContent(m.renderEventLines())

	// Auto-scroll if following
	if m.follow {
		m.eventsViewport.GotoBottom()
	}
}

// renderEventLines formats the event history, oldest first.
func (m Model) renderEventLines() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.FocusBg)

	summaryWidth := max(m.eventsViewport.Width-10, 20)

	lines := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		line := bg.Render(entry.Time.Format("15:04:05"), styles.FaintText) +
			bg.Spaces(2) +
			bg.Render(truncate(entry.Summary, summaryWidth), eventStyle(entry.Type, styles))
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// eventStyle picks a line style by message type.
func eventStyle(t remotemsg.MsgType, styles Styles) lipgloss.Style {
	switch t {
	case remotemsg.MsgTypeDisconnect:
		return styles.DangerText
	case remotemsg.MsgTypePlay, remotemsg.MsgTypePause, remotemsg.MsgTypeStop, remotemsg.MsgTypeEngineStateChanged:
		return styles.AccentText
	case remotemsg.MsgTypeCurrentMetainfo:
		return styles.SuccessText
	case remotemsg.MsgTypeKeepAlive, remotemsg.MsgTypeUpdateTrackPosition:
		return styles.FaintText
	case remotemsg.MsgTypeShuffle, remotemsg.MsgTypeRepeat, remotemsg.MsgTypeSetVolume:
		return styles.InfoText
	default:
		return styles.Text
	}
}

// renderEvents renders the protocol event view.
func (m Model) renderEvents() string {
	contentHeight := m.height - 2 // Account for header + cmdbar

	title := fmt.Sprintf("Events (%d)", len(m.entries))
	if m.follow {
		title += " · following"
	}

	content := m.eventsViewport.View()
	if len(m.entries) == 0 {
		content = m.theme.Styles().MutedText.Render("No protocol traffic yet")
	}

	return m.renderTitledBox(title, content, m.width, contentHeight, true)
}

// handleEventsKey processes keyboard input for the events view.
func (m Model) handleEventsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.follow = !m.follow
		if m.follow {
			m.eventsViewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.eventsViewport.GotoTop()
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.eventsViewport.GotoBottom()
		m.follow = true
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.eventsViewport.ScrollDown(1)
		m.follow = false
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.eventsViewport.ScrollUp(1)
		m.follow = false
		return m, nil
	}

	return m, nil
}
