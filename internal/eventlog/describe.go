package eventlog

import (
	"fmt"

	"github.com/clemctl/clemctl/internal/remotemsg"
)

// Describe renders a one-line summary of msg. Album art is reported as a
// byte count, never dumped.
func Describe(m *remotemsg.Message) string {
	switch m.Type {
	case remotemsg.MsgTypeInfo:
		if m.Info != nil {
			return fmt.Sprintf("INFO version=%d state=%s", m.Info.Version, m.Info.State)
		}
	case remotemsg.MsgTypeCurrentMetainfo:
		if m.CurrentMetainfo != nil {
			return describeTrack(&m.CurrentMetainfo.SongMetadata)
		}
	case remotemsg.MsgTypeSetVolume:
		if m.RequestSetVolume != nil {
			return fmt.Sprintf("SET_VOLUME volume=%d", m.RequestSetVolume.Volume)
		}
	case remotemsg.MsgTypeShuffle:
		if m.Shuffle != nil {
			return fmt.Sprintf("SHUFFLE mode=%s", m.Shuffle.ShuffleMode)
		}
	case remotemsg.MsgTypeRepeat:
		if m.Repeat != nil {
			return fmt.Sprintf("REPEAT mode=%s", m.Repeat.RepeatMode)
		}
	case remotemsg.MsgTypeUpdateTrackPosition:
		if m.TrackPosition != nil {
			return fmt.Sprintf("UPDATE_TRACK_POSITION position=%d", m.TrackPosition.Position)
		}
	case remotemsg.MsgTypeEngineStateChanged:
		if m.EngineState != nil {
			return fmt.Sprintf("ENGINE_STATE_CHANGED state=%s", m.EngineState.State)
		}
	case remotemsg.MsgTypePlaylists:
		if m.Playlists != nil {
			return describePlaylists(m.Playlists.Playlists)
		}
	case remotemsg.MsgTypePlaylistSongs:
		if m.PlaylistSongs != nil && m.PlaylistSongs.RequestedPlaylist != nil {
			return fmt.Sprintf("PLAYLIST_SONGS playlist=%d songs=%d",
				m.PlaylistSongs.RequestedPlaylist.ID, len(m.PlaylistSongs.Songs))
		}
	case remotemsg.MsgTypeActivePlaylistChanged:
		if m.ActiveChanged != nil {
			return fmt.Sprintf("ACTIVE_PLAYLIST_CHANGED id=%d", m.ActiveChanged.ID)
		}
	case remotemsg.MsgTypeChangeSong:
		if m.RequestChangeSong != nil {
			return fmt.Sprintf("CHANGE_SONG playlist=%d index=%d",
				m.RequestChangeSong.PlaylistID, m.RequestChangeSong.SongIndex)
		}
	case remotemsg.MsgTypeOpenPlaylist:
		if m.RequestOpenPlaylist != nil {
			return fmt.Sprintf("OPEN_PLAYLIST playlist=%d", m.RequestOpenPlaylist.PlaylistID)
		}
	case remotemsg.MsgTypeDisconnect:
		if m.Disconnect != nil {
			return fmt.Sprintf("DISCONNECT reason=%q", m.Disconnect.Reason)
		}
	}
	return m.Type.String()
}

func describeTrack(track *remotemsg.SongMetadata) string {
	s := fmt.Sprintf("CURRENT_METAINFO %q by %q", track.Title, track.Artist)
	if track.PrettyLength != "" {
		s += fmt.Sprintf(" (%s)", track.PrettyLength)
	}
	if len(track.Art) > 0 {
		s += fmt.Sprintf(" art=%dB", len(track.Art))
	}
	return s
}

func describePlaylists(playlists []remotemsg.Playlist) string {
	for _, p := range playlists {
		if p.Active {
			return fmt.Sprintf("PLAYLISTS count=%d active=%d", len(playlists), p.ID)
		}
	}
	return fmt.Sprintf("PLAYLISTS count=%d", len(playlists))
}
