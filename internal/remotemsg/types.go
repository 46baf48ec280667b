package remotemsg

// ProtocolVersion is stamped on every outbound envelope. Servers reject or
// ignore clients announcing an incompatible version.
const ProtocolVersion = 21

// Message is the wire envelope defined in clementine.proto. Exactly one
// sub-message matching Type is populated; the others stay nil.
type Message struct {
	Version int32
	Type    MsgType

	RequestConnect      *RequestConnect
	RequestSetVolume    *RequestSetVolume
	RequestChangeSong   *RequestChangeSong
	RequestOpenPlaylist *RequestOpenPlaylist

	Shuffle *Shuffle
	Repeat  *Repeat

	Info            *ResponseClementineInfo
	CurrentMetainfo *ResponseCurrentMetainfo
	Playlists       *ResponsePlaylists
	PlaylistSongs   *ResponsePlaylistSongs
	EngineState     *ResponseEngineStateChanged
	TrackPosition   *ResponseUpdateTrackPosition
	ActiveChanged   *ResponseActiveChanged
	Disconnect      *ResponseDisconnect
}

// SongMetadata describes one track as the player reports it.
type SongMetadata struct {
	ID           int32
	Index        int32
	Title        string
	Album        string
	Artist       string
	Albumartist  string
	Track        int32
	Disc         int32
	PrettyYear   string
	Genre        string
	Playcount    int32
	PrettyLength string
	Art          []byte
	Length       int32
	IsLocal      bool
	Filename     string
	FileSize     int32
	Rating       float32
	Type         int32
}

// Playlist describes one playlist entry in a PLAYLISTS response.
type Playlist struct {
	ID        int32
	Name      string
	ItemCount int32
	Active    bool
	Closed    bool
}

// RequestConnect is the handshake payload sent right after the socket opens.
type RequestConnect struct {
	AuthCode          int32
	SendPlaylistSongs bool
	Downloader        bool
}

// RequestSetVolume carries a volume change (0-100).
type RequestSetVolume struct {
	Volume int32
}

// RequestChangeSong selects a song by playlist id and zero-based index.
type RequestChangeSong struct {
	PlaylistID int32
	SongIndex  int32
}

// RequestOpenPlaylist opens a playlist by id.
type RequestOpenPlaylist struct {
	PlaylistID int32
}

// Shuffle carries the shuffle mode in either direction.
type Shuffle struct {
	ShuffleMode ShuffleMode
}

// Repeat carries the repeat mode in either direction.
type Repeat struct {
	RepeatMode RepeatMode
}

// ResponseClementineInfo announces the server's protocol version and current
// engine state; it is the first message after a successful handshake.
type ResponseClementineInfo struct {
	Version int32
	State   EngineState
}

// ResponseCurrentMetainfo replaces the current track wholesale.
type ResponseCurrentMetainfo struct {
	SongMetadata SongMetadata
}

// ResponsePlaylists replaces the playlist set wholesale.
type ResponsePlaylists struct {
	Playlists []Playlist
}

// ResponsePlaylistSongs lists the songs of one playlist. Sent only when the
// handshake asked for playlist songs; this client never does.
type ResponsePlaylistSongs struct {
	RequestedPlaylist *Playlist
	Songs             []SongMetadata
}

// ResponseEngineStateChanged reports a playback state transition.
type ResponseEngineStateChanged struct {
	State EngineState
}

// ResponseUpdateTrackPosition reports playback progress in seconds.
type ResponseUpdateTrackPosition struct {
	Position int32
}

// ResponseActiveChanged reports a change of the active playlist.
type ResponseActiveChanged struct {
	ID int32
}

// ResponseDisconnect explains why the server is closing the connection.
type ResponseDisconnect struct {
	Reason ReasonDisconnect
}
