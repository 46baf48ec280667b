package remote

import (
	"github.com/clemctl/clemctl/internal/remotemsg"
	"github.com/clemctl/clemctl/internal/state"
)

// dispatch applies one inbound message to the state store. Every effect is
// a plain field assignment; messages carrying no state (KEEP_ALIVE,
// PLAYLIST_SONGS) still refreshed the last-update timestamp in the receive
// loop before getting here.
func (c *Client) dispatch(msg *remotemsg.Message) {
	switch msg.Type {
	case remotemsg.MsgTypeInfo:
		if msg.Info != nil {
			c.store.SetInfo(msg.Info.Version, state.StatusFromEngineState(msg.Info.State))
		}
	case remotemsg.MsgTypeCurrentMetainfo:
		if msg.CurrentMetainfo != nil {
			c.store.SetTrack(&msg.CurrentMetainfo.SongMetadata)
		}
	case remotemsg.MsgTypeUpdateTrackPosition:
		if msg.TrackPosition != nil {
			c.store.SetPosition(int(msg.TrackPosition.Position))
		}
	case remotemsg.MsgTypeEngineStateChanged:
		if msg.EngineState != nil {
			c.store.SetStatus(state.StatusFromEngineState(msg.EngineState.State))
		}
	case remotemsg.MsgTypePlay:
		c.store.SetStatus(state.StatusPlaying)
	case remotemsg.MsgTypePause:
		c.store.SetStatus(state.StatusPaused)
	case remotemsg.MsgTypeStop:
		c.store.SetStatus(state.StatusEmpty)
	case remotemsg.MsgTypeSetVolume:
		if msg.RequestSetVolume != nil {
			c.store.SetVolume(int(msg.RequestSetVolume.Volume))
		}
	case remotemsg.MsgTypeShuffle:
		if msg.Shuffle != nil {
			c.store.SetShuffle(msg.Shuffle.ShuffleMode.String())
		}
	case remotemsg.MsgTypeRepeat:
		if msg.Repeat != nil {
			c.store.SetRepeat(msg.Repeat.RepeatMode.String())
		}
	case remotemsg.MsgTypePlaylists:
		if msg.Playlists != nil {
			c.store.ReplacePlaylists(msg.Playlists.Playlists)
		}
	case remotemsg.MsgTypePlaylistSongs:
		// Track lists are not mirrored locally.
	case remotemsg.MsgTypeActivePlaylistChanged:
		if msg.ActiveChanged != nil {
			c.store.SetActivePlaylist(msg.ActiveChanged.ID)
		}
	case remotemsg.MsgTypeFirstDataSentComplete:
		c.store.SetFirstDataSentComplete()
	case remotemsg.MsgTypeKeepAlive:
		// Heartbeat, timestamp only.
	case remotemsg.MsgTypeDisconnect:
		c.noteDisconnect(msg.Disconnect)
	default:
		c.log.Debug().Stringer("type", msg.Type).Msg("unrecognized message type")
	}
}

// noteDisconnect records a server-initiated disconnect. Auth rejections
// also disable reconnection: redialing with the same code cannot succeed.
func (c *Client) noteDisconnect(d *remotemsg.ResponseDisconnect) {
	if d == nil {
		c.log.Info().Msg("server requested disconnect")
		return
	}
	c.log.Info().Stringer("reason", d.Reason).Msg("server requested disconnect")
	if d.Reason.AuthRejection() {
		c.mu.Lock()
		c.authRejected = true
		c.mu.Unlock()
	}
}
