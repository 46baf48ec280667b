package remote

import (
	"testing"

	"github.com/clemctl/clemctl/internal/remotemsg"
	"github.com/clemctl/clemctl/internal/state"
)

func dispatchAll(msgs ...*remotemsg.Message) (*Client, state.Snapshot) {
	store := state.NewStore()
	c := New(store, Options{})
	for _, msg := range msgs {
		c.dispatch(msg)
	}
	return c, store.Snapshot()
}

func TestClient_DispatchUpdatesStore(t *testing.T) {
	tests := []struct {
		name  string
		msgs  []*remotemsg.Message
		check func(t *testing.T, snap state.Snapshot)
	}{
		{
			name: "info records version and status",
			msgs: []*remotemsg.Message{{
				Type: remotemsg.MsgTypeInfo,
				Info: &remotemsg.ResponseClementineInfo{Version: 21, State: remotemsg.EngineStatePlaying},
			}},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.Version != 21 {
					t.Fatalf("version = %d, want 21", snap.Version)
				}
				if snap.Status != state.StatusPlaying {
					t.Fatalf("status = %v, want %v", snap.Status, state.StatusPlaying)
				}
			},
		},
		{
			name: "play echo sets playing",
			msgs: []*remotemsg.Message{{Type: remotemsg.MsgTypePlay}},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.Status != state.StatusPlaying {
					t.Fatalf("status = %v, want %v", snap.Status, state.StatusPlaying)
				}
			},
		},
		{
			name: "pause echo sets paused",
			msgs: []*remotemsg.Message{{Type: remotemsg.MsgTypePause}},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.Status != state.StatusPaused {
					t.Fatalf("status = %v, want %v", snap.Status, state.StatusPaused)
				}
			},
		},
		{
			name: "stop echo sets empty",
			msgs: []*remotemsg.Message{{Type: remotemsg.MsgTypeStop}},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.Status != state.StatusEmpty {
					t.Fatalf("status = %v, want %v", snap.Status, state.StatusEmpty)
				}
			},
		},
		{
			name: "engine state change maps onto status",
			msgs: []*remotemsg.Message{{
				Type:        remotemsg.MsgTypeEngineStateChanged,
				EngineState: &remotemsg.ResponseEngineStateChanged{State: remotemsg.EngineStateIdle},
			}},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.Status != state.StatusIdle {
					t.Fatalf("status = %v, want %v", snap.Status, state.StatusIdle)
				}
			},
		},
		{
			name: "second metainfo replaces the track wholesale",
			msgs: []*remotemsg.Message{
				{
					Type: remotemsg.MsgTypeCurrentMetainfo,
					CurrentMetainfo: &remotemsg.ResponseCurrentMetainfo{
						SongMetadata: remotemsg.SongMetadata{ID: 1, Title: "First", Album: "Old"},
					},
				},
				{
					Type: remotemsg.MsgTypeCurrentMetainfo,
					CurrentMetainfo: &remotemsg.ResponseCurrentMetainfo{
						SongMetadata: remotemsg.SongMetadata{ID: 2, Title: "Second"},
					},
				},
			},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.Track == nil || snap.Track.ID != 2 || snap.Track.Title != "Second" {
					t.Fatalf("track = %+v, want id 2 title Second", snap.Track)
				}
				if snap.Track.Album != "" {
					t.Fatalf("album = %q, want empty after replacement", snap.Track.Album)
				}
			},
		},
		{
			name: "track position updates",
			msgs: []*remotemsg.Message{{
				Type:          remotemsg.MsgTypeUpdateTrackPosition,
				TrackPosition: &remotemsg.ResponseUpdateTrackPosition{Position: 137},
			}},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.Position != 137 {
					t.Fatalf("position = %d, want 137", snap.Position)
				}
			},
		},
		{
			name: "volume updates",
			msgs: []*remotemsg.Message{{
				Type:             remotemsg.MsgTypeSetVolume,
				RequestSetVolume: &remotemsg.RequestSetVolume{Volume: 42},
			}},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.Volume != 42 {
					t.Fatalf("volume = %d, want 42", snap.Volume)
				}
			},
		},
		{
			name: "shuffle and repeat record mode names",
			msgs: []*remotemsg.Message{
				{Type: remotemsg.MsgTypeShuffle, Shuffle: &remotemsg.Shuffle{ShuffleMode: remotemsg.ShuffleAll}},
				{Type: remotemsg.MsgTypeRepeat, Repeat: &remotemsg.Repeat{RepeatMode: remotemsg.RepeatTrack}},
			},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.Shuffle != "All" {
					t.Fatalf("shuffle = %q, want All", snap.Shuffle)
				}
				if snap.Repeat != "Track" {
					t.Fatalf("repeat = %q, want Track", snap.Repeat)
				}
			},
		},
		{
			name: "playlists replace the set and recompute the active id",
			msgs: []*remotemsg.Message{{
				Type: remotemsg.MsgTypePlaylists,
				Playlists: &remotemsg.ResponsePlaylists{Playlists: []remotemsg.Playlist{
					{ID: 3, Name: "Mix"},
					{ID: 5, Name: "Road", Active: true},
					{ID: 9, Name: "Calm"},
				}},
			}},
			check: func(t *testing.T, snap state.Snapshot) {
				if len(snap.Playlists) != 3 {
					t.Fatalf("playlist count = %d, want 3", len(snap.Playlists))
				}
				if snap.ActivePlaylistID != 5 {
					t.Fatalf("active id = %d, want 5", snap.ActivePlaylistID)
				}
			},
		},
		{
			name: "playlists without an active flag keep the previous id",
			msgs: []*remotemsg.Message{
				{
					Type: remotemsg.MsgTypePlaylists,
					Playlists: &remotemsg.ResponsePlaylists{Playlists: []remotemsg.Playlist{
						{ID: 5, Name: "Road", Active: true},
					}},
				},
				{
					Type: remotemsg.MsgTypePlaylists,
					Playlists: &remotemsg.ResponsePlaylists{Playlists: []remotemsg.Playlist{
						{ID: 6, Name: "New"},
					}},
				},
			},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.ActivePlaylistID != 5 {
					t.Fatalf("active id = %d, want 5 carried over", snap.ActivePlaylistID)
				}
				if _, ok := snap.Playlists[6]; !ok || len(snap.Playlists) != 1 {
					t.Fatalf("playlists = %v, want only id 6", snap.Playlists)
				}
			},
		},
		{
			name: "active playlist changed updates the id only",
			msgs: []*remotemsg.Message{{
				Type:          remotemsg.MsgTypeActivePlaylistChanged,
				ActiveChanged: &remotemsg.ResponseActiveChanged{ID: 11},
			}},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.ActivePlaylistID != 11 {
					t.Fatalf("active id = %d, want 11", snap.ActivePlaylistID)
				}
			},
		},
		{
			name: "first data sent complete flips the sync flag",
			msgs: []*remotemsg.Message{{Type: remotemsg.MsgTypeFirstDataSentComplete}},
			check: func(t *testing.T, snap state.Snapshot) {
				if !snap.InitialSyncComplete {
					t.Fatal("InitialSyncComplete = false, want true")
				}
			},
		},
		{
			name: "playlist songs leave the snapshot alone",
			msgs: []*remotemsg.Message{{
				Type: remotemsg.MsgTypePlaylistSongs,
				PlaylistSongs: &remotemsg.ResponsePlaylistSongs{
					Songs: []remotemsg.SongMetadata{{ID: 1, Title: "Ignored"}},
				},
			}},
			check: func(t *testing.T, snap state.Snapshot) {
				if snap.Track != nil || snap.Playlists != nil {
					t.Fatalf("snapshot changed: track=%v playlists=%v", snap.Track, snap.Playlists)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, snap := dispatchAll(tt.msgs...)
			tt.check(t, snap)
		})
	}
}

func TestClient_DispatchToleratesMissingPayloads(t *testing.T) {
	types := []remotemsg.MsgType{
		remotemsg.MsgTypeInfo,
		remotemsg.MsgTypeCurrentMetainfo,
		remotemsg.MsgTypeUpdateTrackPosition,
		remotemsg.MsgTypeEngineStateChanged,
		remotemsg.MsgTypeSetVolume,
		remotemsg.MsgTypeShuffle,
		remotemsg.MsgTypeRepeat,
		remotemsg.MsgTypePlaylists,
		remotemsg.MsgTypeActivePlaylistChanged,
		remotemsg.MsgTypeDisconnect,
		remotemsg.MsgType(99),
	}
	for _, typ := range types {
		if _, snap := dispatchAll(&remotemsg.Message{Type: typ}); snap.Version != 0 && typ != remotemsg.MsgTypeInfo {
			t.Fatalf("type %v changed version to %d", typ, snap.Version)
		}
	}
}

func TestClient_AuthRejectionDisablesReconnect(t *testing.T) {
	rejections := []remotemsg.ReasonDisconnect{
		remotemsg.ReasonWrongAuthCode,
		remotemsg.ReasonNotAuthorized,
		remotemsg.ReasonDownloadForbidden,
	}
	for _, reason := range rejections {
		store := state.NewStore()
		c := New(store, Options{Reconnect: true})
		c.dispatch(&remotemsg.Message{
			Type:       remotemsg.MsgTypeDisconnect,
			Disconnect: &remotemsg.ResponseDisconnect{Reason: reason},
		})
		if c.shouldReconnect() {
			t.Fatalf("shouldReconnect() = true after %v", reason)
		}
	}

	store := state.NewStore()
	c := New(store, Options{Reconnect: true})
	c.dispatch(&remotemsg.Message{
		Type:       remotemsg.MsgTypeDisconnect,
		Disconnect: &remotemsg.ResponseDisconnect{Reason: remotemsg.ReasonServerShutdown},
	})
	if !c.shouldReconnect() {
		t.Fatal("shouldReconnect() = false after a server shutdown")
	}
}
