package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/clemctl/clemctl/internal/remotemsg"
)

// sortedPlaylists returns the mirrored playlists ordered by id.
func (m Model) sortedPlaylists() []remotemsg.Playlist {
	lists := make([]remotemsg.Playlist, 0, len(m.snapshot.Playlists))
	for _, pl := range m.snapshot.Playlists {
		lists = append(lists, pl)
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].ID < lists[j].ID })
	return lists
}

// selectedPlaylist returns the playlist under the cursor, or nil.
func (m Model) selectedPlaylist() *remotemsg.Playlist {
	lists := m.sortedPlaylists()
	if m.selectedRow < 0 || m.selectedRow >= len(lists) {
		return nil
	}
	return &lists[m.selectedRow]
}

// updatePlaylistSelection updates selection bounds when the playlist set
// changes. Preserves selection by playlist id when possible.
func (m *Model) updatePlaylistSelection() {
	var selectedID int32 = -1
	if pl := m.selectedPlaylist(); pl != nil {
		selectedID = pl.ID
	}

	lists := m.sortedPlaylists()
	if len(lists) == 0 {
		m.selectedRow = 0
		return
	}

	if selectedID >= 0 {
		for i, pl := range lists {
			if pl.ID == selectedID {
				m.selectedRow = i
				return
			}
		}
	}

	if m.selectedRow >= len(lists) {
		m.selectedRow = len(lists) - 1
	}
}

// handlePlaylistsKey processes keyboard input for the playlists view.
func (m Model) handlePlaylistsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lists := m.sortedPlaylists()
	count := len(lists)

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		if count > 0 {
			m.selectedRow = count - 1
		}
	case key.Matches(msg, m.keys.Open):
		if m.selectedRow >= 0 && m.selectedRow < count {
			id := lists[m.selectedRow].ID
			return m, m.sendCmd(func() error { return m.client.OpenPlaylist(id) })
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.sendCmd(func() error { return m.client.RequestPlaylists() })
	}

	return m, nil
}

// renderPlaylists renders the playlist browser view.
func (m Model) renderPlaylists() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2 // Account for header + cmdbar

	lists := m.sortedPlaylists()
	if len(lists) == 0 {
		label := "No playlists reported yet"
		if !m.snapshot.Connected() {
			label = "Not connected"
		}
		empty := styles.MutedText.Render(label)
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, empty)
	}

	title := fmt.Sprintf("Playlists (%d)", len(lists))
	content := m.renderPlaylistRows(lists, m.width-2)
	return m.renderTitledBox(title, content, m.width, contentHeight, true)
}

// renderPlaylistRows renders the playlists as styled rows.
func (m Model) renderPlaylistRows(lists []remotemsg.Playlist, width int) string {
	var lines []string
	for i, pl := range lists {
		if i == m.selectedRow {
			content := m.formatPlaylistRow(pl, width, m.theme.SelectionBg, true)
			line := lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Width(width).
				Render(content)
			lines = append(lines, line)
		} else {
			content := m.formatPlaylistRow(pl, width, m.theme.FocusBg, false)
			line := lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.FocusBg)).
				Width(width).
				Render(content)
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

// formatPlaylistRow formats one playlist row with inline colors.
// Format: "▶ Name · N items (closed)", where ▶ marks the active playlist.
// When selected is true, uses SelectionText for all text to ensure contrast.
func (m Model) formatPlaylistRow(pl remotemsg.Playlist, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)

	marker := " "
	active := pl.ID == m.snapshot.ActivePlaylistID
	if active {
		marker = "▶"
	}

	name := strings.TrimSpace(pl.Name)
	if name == "" {
		name = fmt.Sprintf("Playlist %d", pl.ID)
	}

	items := fmt.Sprintf("%d items", pl.ItemCount)
	if pl.ItemCount == 1 {
		items = "1 item"
	}

	closed := ""
	if pl.Closed {
		closed = "(closed)"
	}

	separatorLen := 3 // " · "
	nameWidth := max(width-len(items)-len(closed)-separatorLen-6, 10)

	var markerStyle, nameStyle, sepStyle, itemsStyle, closedStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		markerStyle = selText
		nameStyle = selText
		sepStyle = selText
		itemsStyle = selText
		closedStyle = selText
	} else {
		styles := m.theme.Styles()
		markerStyle = styles.AccentText
		nameStyle = styles.Text
		if active {
			nameStyle = styles.Text.Bold(true)
		}
		sepStyle = styles.FaintText
		itemsStyle = styles.MutedText
		closedStyle = styles.FaintText
	}

	row := bg.Render(marker, markerStyle) + bg.Space() +
		bg.Render(truncate(name, nameWidth), nameStyle) +
		bg.Render(" · ", sepStyle) +
		bg.Render(items, itemsStyle)
	if closed != "" {
		row += bg.Space() + bg.Render(closed, closedStyle)
	}
	return row
}
