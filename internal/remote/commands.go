package remote

import "github.com/clemctl/clemctl/internal/remotemsg"

// Commands are fire-and-forget: a nil return means the frame was handed to
// the socket, not that the player acted on it. Observable effects come back
// through the receive loop as ordinary state updates.

// Play starts playback.
func (c *Client) Play() error {
	return c.send(&remotemsg.Message{Type: remotemsg.MsgTypePlay})
}

// PlayPause toggles between playing and paused.
func (c *Client) PlayPause() error {
	return c.send(&remotemsg.Message{Type: remotemsg.MsgTypePlayPause})
}

// Pause pauses playback.
func (c *Client) Pause() error {
	return c.send(&remotemsg.Message{Type: remotemsg.MsgTypePause})
}

// Stop stops playback.
func (c *Client) Stop() error {
	return c.send(&remotemsg.Message{Type: remotemsg.MsgTypeStop})
}

// Next skips to the next track.
func (c *Client) Next() error {
	return c.send(&remotemsg.Message{Type: remotemsg.MsgTypeNext})
}

// Previous skips to the previous track.
func (c *Client) Previous() error {
	return c.send(&remotemsg.Message{Type: remotemsg.MsgTypePrevious})
}

// SetVolume sets the player volume. Values are passed through as-is; the
// player clamps its own 0-100 range.
func (c *Client) SetVolume(volume int) error {
	return c.send(&remotemsg.Message{
		Type:             remotemsg.MsgTypeSetVolume,
		RequestSetVolume: &remotemsg.RequestSetVolume{Volume: int32(volume)},
	})
}

// OpenPlaylist asks the player to open the playlist with the given id.
func (c *Client) OpenPlaylist(id int32) error {
	return c.send(&remotemsg.Message{
		Type:                remotemsg.MsgTypeOpenPlaylist,
		RequestOpenPlaylist: &remotemsg.RequestOpenPlaylist{PlaylistID: id},
	})
}

// ChangeSong jumps to the song at index within the playlist with the given
// id.
func (c *Client) ChangeSong(playlistID, index int32) error {
	return c.send(&remotemsg.Message{
		Type:              remotemsg.MsgTypeChangeSong,
		RequestChangeSong: &remotemsg.RequestChangeSong{PlaylistID: playlistID, SongIndex: index},
	})
}

// RequestPlaylists asks the server to resend the playlist set.
func (c *Client) RequestPlaylists() error {
	return c.send(&remotemsg.Message{Type: remotemsg.MsgTypeRequestPlaylists})
}
