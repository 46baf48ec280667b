package remotemsg

import "fmt"

// MsgType selects which sub-message of the envelope is populated.
type MsgType int32

// Message types, mirroring the MsgType enum in clementine.proto.
const (
	MsgTypeUnknown MsgType = 0

	// Client to server.
	MsgTypeConnect              MsgType = 1
	MsgTypeDisconnect           MsgType = 2
	MsgTypeRequestPlaylists     MsgType = 3
	MsgTypeRequestPlaylistSongs MsgType = 4
	MsgTypeSetVolume            MsgType = 5
	MsgTypePlay                 MsgType = 6
	MsgTypePlayPause            MsgType = 7
	MsgTypePause                MsgType = 8
	MsgTypeStop                 MsgType = 9
	MsgTypeNext                 MsgType = 10
	MsgTypePrevious             MsgType = 11
	MsgTypeChangeSong           MsgType = 12
	MsgTypeOpenPlaylist         MsgType = 13

	// Either direction.
	MsgTypeShuffle MsgType = 30
	MsgTypeRepeat  MsgType = 31

	// Server to client.
	MsgTypeInfo                  MsgType = 40
	MsgTypeCurrentMetainfo       MsgType = 41
	MsgTypePlaylists             MsgType = 42
	MsgTypePlaylistSongs         MsgType = 43
	MsgTypeEngineStateChanged    MsgType = 44
	MsgTypeKeepAlive             MsgType = 45
	MsgTypeUpdateTrackPosition   MsgType = 46
	MsgTypeActivePlaylistChanged MsgType = 47
	MsgTypeFirstDataSentComplete MsgType = 48
)

// String returns the wire name of the message type.
func (t MsgType) String() string {
	switch t {
	case MsgTypeUnknown:
		return "UNKNOWN"
	case MsgTypeConnect:
		return "CONNECT"
	case MsgTypeDisconnect:
		return "DISCONNECT"
	case MsgTypeRequestPlaylists:
		return "REQUEST_PLAYLISTS"
	case MsgTypeRequestPlaylistSongs:
		return "REQUEST_PLAYLIST_SONGS"
	case MsgTypeSetVolume:
		return "SET_VOLUME"
	case MsgTypePlay:
		return "PLAY"
	case MsgTypePlayPause:
		return "PLAYPAUSE"
	case MsgTypePause:
		return "PAUSE"
	case MsgTypeStop:
		return "STOP"
	case MsgTypeNext:
		return "NEXT"
	case MsgTypePrevious:
		return "PREVIOUS"
	case MsgTypeChangeSong:
		return "CHANGE_SONG"
	case MsgTypeOpenPlaylist:
		return "OPEN_PLAYLIST"
	case MsgTypeShuffle:
		return "SHUFFLE"
	case MsgTypeRepeat:
		return "REPEAT"
	case MsgTypeInfo:
		return "INFO"
	case MsgTypeCurrentMetainfo:
		return "CURRENT_METAINFO"
	case MsgTypePlaylists:
		return "PLAYLISTS"
	case MsgTypePlaylistSongs:
		return "PLAYLIST_SONGS"
	case MsgTypeEngineStateChanged:
		return "ENGINE_STATE_CHANGED"
	case MsgTypeKeepAlive:
		return "KEEP_ALIVE"
	case MsgTypeUpdateTrackPosition:
		return "UPDATE_TRACK_POSITION"
	case MsgTypeActivePlaylistChanged:
		return "ACTIVE_PLAYLIST_CHANGED"
	case MsgTypeFirstDataSentComplete:
		return "FIRST_DATA_SENT_COMPLETE"
	default:
		return fmt.Sprintf("MsgType(%d)", int32(t))
	}
}

// EngineState is the player's playback engine status.
type EngineState int32

// Engine states reported by the player.
const (
	EngineStateEmpty   EngineState = 0
	EngineStateIdle    EngineState = 1
	EngineStatePlaying EngineState = 2
	EngineStatePaused  EngineState = 3
)

func (s EngineState) String() string {
	switch s {
	case EngineStateEmpty:
		return "Empty"
	case EngineStateIdle:
		return "Idle"
	case EngineStatePlaying:
		return "Playing"
	case EngineStatePaused:
		return "Paused"
	default:
		return fmt.Sprintf("EngineState(%d)", int32(s))
	}
}

// ShuffleMode is the player's shuffle setting.
type ShuffleMode int32

// Shuffle modes.
const (
	ShuffleOff         ShuffleMode = 0
	ShuffleAll         ShuffleMode = 1
	ShuffleInsideAlbum ShuffleMode = 2
	ShuffleAlbums      ShuffleMode = 3
)

func (m ShuffleMode) String() string {
	switch m {
	case ShuffleOff:
		return "Off"
	case ShuffleAll:
		return "All"
	case ShuffleInsideAlbum:
		return "InsideAlbum"
	case ShuffleAlbums:
		return "Albums"
	default:
		return fmt.Sprintf("ShuffleMode(%d)", int32(m))
	}
}

// RepeatMode is the player's repeat setting.
type RepeatMode int32

// Repeat modes.
const (
	RepeatOff      RepeatMode = 0
	RepeatTrack    RepeatMode = 1
	RepeatAlbum    RepeatMode = 2
	RepeatPlaylist RepeatMode = 3
	RepeatOneByOne RepeatMode = 4
	RepeatIntro    RepeatMode = 5
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatTrack:
		return "Track"
	case RepeatAlbum:
		return "Album"
	case RepeatPlaylist:
		return "Playlist"
	case RepeatOneByOne:
		return "OneByOne"
	case RepeatIntro:
		return "Intro"
	default:
		return fmt.Sprintf("RepeatMode(%d)", int32(m))
	}
}

// ReasonDisconnect explains a server-initiated disconnect.
type ReasonDisconnect int32

// Disconnect reasons sent by the server.
const (
	ReasonServerShutdown    ReasonDisconnect = 1
	ReasonWrongAuthCode     ReasonDisconnect = 2
	ReasonNotAuthorized     ReasonDisconnect = 3
	ReasonDownloadForbidden ReasonDisconnect = 4
)

func (r ReasonDisconnect) String() string {
	switch r {
	case ReasonServerShutdown:
		return "server shutdown"
	case ReasonWrongAuthCode:
		return "wrong auth code"
	case ReasonNotAuthorized:
		return "not authorized"
	case ReasonDownloadForbidden:
		return "download forbidden"
	default:
		return fmt.Sprintf("ReasonDisconnect(%d)", int32(r))
	}
}

// AuthRejection reports whether the reason means the server refused this
// client's credentials, in which case reconnecting with the same auth code
// cannot succeed.
func (r ReasonDisconnect) AuthRejection() bool {
	switch r {
	case ReasonWrongAuthCode, ReasonNotAuthorized, ReasonDownloadForbidden:
		return true
	default:
		return false
	}
}
