package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clemctl/clemctl/internal/remotemsg"
	"github.com/clemctl/clemctl/internal/state"
)

func snapshotWithPlaylists(active int32, lists ...remotemsg.Playlist) state.Snapshot {
	set := make(map[int32]remotemsg.Playlist, len(lists))
	for _, pl := range lists {
		set[pl.ID] = pl
	}
	return state.Snapshot{Playlists: set, ActivePlaylistID: active}
}

func runesMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_SortedPlaylists(t *testing.T) {
	m := Model{snapshot: snapshotWithPlaylists(5,
		remotemsg.Playlist{ID: 9, Name: "Jazz"},
		remotemsg.Playlist{ID: 1, Name: "Rock"},
		remotemsg.Playlist{ID: 5, Name: "Focus"},
	)}

	lists := m.sortedPlaylists()
	if len(lists) != 3 {
		t.Fatalf("sortedPlaylists returned %d lists, want 3", len(lists))
	}
	for i, want := range []int32{1, 5, 9} {
		if lists[i].ID != want {
			t.Fatalf("lists[%d].ID = %d, want %d", i, lists[i].ID, want)
		}
	}
}

func TestModel_UpdatePlaylistSelectionClamps(t *testing.T) {
	m := Model{snapshot: snapshotWithPlaylists(state.Unknown,
		remotemsg.Playlist{ID: 1},
		remotemsg.Playlist{ID: 5},
		remotemsg.Playlist{ID: 9},
	)}
	m.selectedRow = 2

	m.snapshot = snapshotWithPlaylists(state.Unknown,
		remotemsg.Playlist{ID: 1},
		remotemsg.Playlist{ID: 5},
	)
	m.updatePlaylistSelection()
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow = %d, want 1", m.selectedRow)
	}

	m.snapshot = state.Snapshot{}
	m.updatePlaylistSelection()
	if m.selectedRow != 0 {
		t.Fatalf("selectedRow after empty = %d, want 0", m.selectedRow)
	}
}

func TestModel_HandlePlaylistsKeyMovesCursor(t *testing.T) {
	m := Model{
		keys: DefaultKeyMap(),
		snapshot: snapshotWithPlaylists(state.Unknown,
			remotemsg.Playlist{ID: 1},
			remotemsg.Playlist{ID: 5},
			remotemsg.Playlist{ID: 9},
		),
	}

	next, _ := m.handlePlaylistsKey(runesMsg("j"))
	m = next.(Model)
	if m.selectedRow != 1 {
		t.Fatalf("selectedRow after j = %d, want 1", m.selectedRow)
	}

	next, _ = m.handlePlaylistsKey(runesMsg("G"))
	m = next.(Model)
	if m.selectedRow != 2 {
		t.Fatalf("selectedRow after G = %d, want 2", m.selectedRow)
	}

	next, _ = m.handlePlaylistsKey(runesMsg("j"))
	m = next.(Model)
	if m.selectedRow != 2 {
		t.Fatalf("selectedRow past end = %d, want 2", m.selectedRow)
	}

	next, _ = m.handlePlaylistsKey(runesMsg("g"))
	m = next.(Model)
	if m.selectedRow != 0 {
		t.Fatalf("selectedRow after g = %d, want 0", m.selectedRow)
	}

	next, _ = m.handlePlaylistsKey(runesMsg("k"))
	m = next.(Model)
	if m.selectedRow != 0 {
		t.Fatalf("selectedRow past top = %d, want 0", m.selectedRow)
	}
}

func TestModel_HandlePlaylistsKeyWithoutClient(t *testing.T) {
	m := Model{
		keys:     DefaultKeyMap(),
		snapshot: snapshotWithPlaylists(state.Unknown, remotemsg.Playlist{ID: 1}),
	}

	// Open and refresh must not panic or emit a command when no client is
	// wired in.
	if _, cmd := m.handlePlaylistsKey(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("open without client produced a command")
	}
	if _, cmd := m.handlePlaylistsKey(runesMsg("r")); cmd != nil {
		t.Fatalf("refresh without client produced a command")
	}
}
