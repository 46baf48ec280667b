package remotemsg

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Envelope field numbers from clementine.proto.
const (
	fieldVersion protowire.Number = 1
	fieldType    protowire.Number = 2

	fieldRequestConnect      protowire.Number = 10
	fieldRequestSetVolume    protowire.Number = 11
	fieldRequestChangeSong   protowire.Number = 12
	fieldRequestOpenPlaylist protowire.Number = 13

	fieldShuffle protowire.Number = 20
	fieldRepeat  protowire.Number = 21

	fieldResponseInfo          protowire.Number = 30
	fieldResponseCurrentMeta   protowire.Number = 31
	fieldResponsePlaylists     protowire.Number = 32
	fieldResponsePlaylistSongs protowire.Number = 33
	fieldResponseEngineState   protowire.Number = 34
	fieldResponseTrackPosition protowire.Number = 35
	fieldResponseActiveChanged protowire.Number = 36
	fieldResponseDisconnect    protowire.Number = 37
)

// Encode serializes the envelope. Scalar fields of every present sub-message
// are always written (bytes fields only when non-empty), so the output is
// deterministic and re-encoding a decoded message reproduces its fields.
func Encode(m *Message) []byte {
	b := appendInt32(nil, fieldVersion, m.Version)
	b = appendInt32(b, fieldType, int32(m.Type))

	if m.RequestConnect != nil {
		b = appendMessage(b, fieldRequestConnect, m.RequestConnect.marshal())
	}
	if m.RequestSetVolume != nil {
		b = appendMessage(b, fieldRequestSetVolume, m.RequestSetVolume.marshal())
	}
	if m.RequestChangeSong != nil {
		b = appendMessage(b, fieldRequestChangeSong, m.RequestChangeSong.marshal())
	}
	if m.RequestOpenPlaylist != nil {
		b = appendMessage(b, fieldRequestOpenPlaylist, m.RequestOpenPlaylist.marshal())
	}
	if m.Shuffle != nil {
		b = appendMessage(b, fieldShuffle, m.Shuffle.marshal())
	}
	if m.Repeat != nil {
		b = appendMessage(b, fieldRepeat, m.Repeat.marshal())
	}
	if m.Info != nil {
		b = appendMessage(b, fieldResponseInfo, m.Info.marshal())
	}
	if m.CurrentMetainfo != nil {
		b = appendMessage(b, fieldResponseCurrentMeta, m.CurrentMetainfo.marshal())
	}
	if m.Playlists != nil {
		b = appendMessage(b, fieldResponsePlaylists, m.Playlists.marshal())
	}
	if m.PlaylistSongs != nil {
		b = appendMessage(b, fieldResponsePlaylistSongs, m.PlaylistSongs.marshal())
	}
	if m.EngineState != nil {
		b = appendMessage(b, fieldResponseEngineState, m.EngineState.marshal())
	}
	if m.TrackPosition != nil {
		b = appendMessage(b, fieldResponseTrackPosition, m.TrackPosition.marshal())
	}
	if m.ActiveChanged != nil {
		b = appendMessage(b, fieldResponseActiveChanged, m.ActiveChanged.marshal())
	}
	if m.Disconnect != nil {
		b = appendMessage(b, fieldResponseDisconnect, m.Disconnect.marshal())
	}
	return b
}

// Decode parses one envelope. Unknown field numbers are skipped; anything
// else malformed is an error, which callers treat as fatal for the
// connection. An absent version field decodes as 1, the proto default.
func Decode(data []byte) (*Message, error) {
	m := &Message{Version: 1}
	b := data
	for len(b) > 0 {
		num, wt, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("decode message: %w", protowire.ParseError(n))
		}
		b = b[n:]

		var err error
		switch num {
		case fieldVersion:
			m.Version, b, err = consumeInt32(b, wt)
		case fieldType:
			var v int32
			v, b, err = consumeInt32(b, wt)
			m.Type = MsgType(v)
		case fieldRequestConnect:
			m.RequestConnect = new(RequestConnect)
			b, err = consumeInto(b, wt, m.RequestConnect.unmarshal)
		case fieldRequestSetVolume:
			m.RequestSetVolume = new(RequestSetVolume)
			b, err = consumeInto(b, wt, m.RequestSetVolume.unmarshal)
		case fieldRequestChangeSong:
			m.RequestChangeSong = new(RequestChangeSong)
			b, err = consumeInto(b, wt, m.RequestChangeSong.unmarshal)
		case fieldRequestOpenPlaylist:
			m.RequestOpenPlaylist = new(RequestOpenPlaylist)
			b, err = consumeInto(b, wt, m.RequestOpenPlaylist.unmarshal)
		case fieldShuffle:
			m.Shuffle = new(Shuffle)
			b, err = consumeInto(b, wt, m.Shuffle.unmarshal)
		case fieldRepeat:
			m.Repeat = new(Repeat)
			b, err = consumeInto(b, wt, m.Repeat.unmarshal)
		case fieldResponseInfo:
			m.Info = new(ResponseClementineInfo)
			b, err = consumeInto(b, wt, m.Info.unmarshal)
		case fieldResponseCurrentMeta:
			m.CurrentMetainfo = new(ResponseCurrentMetainfo)
			b, err = consumeInto(b, wt, m.CurrentMetainfo.unmarshal)
		case fieldResponsePlaylists:
			m.Playlists = new(ResponsePlaylists)
			b, err = consumeInto(b, wt, m.Playlists.unmarshal)
		case fieldResponsePlaylistSongs:
			m.PlaylistSongs = new(ResponsePlaylistSongs)
			b, err = consumeInto(b, wt, m.PlaylistSongs.unmarshal)
		case fieldResponseEngineState:
			m.EngineState = new(ResponseEngineStateChanged)
			b, err = consumeInto(b, wt, m.EngineState.unmarshal)
		case fieldResponseTrackPosition:
			m.TrackPosition = new(ResponseUpdateTrackPosition)
			b, err = consumeInto(b, wt, m.TrackPosition.unmarshal)
		case fieldResponseActiveChanged:
			m.ActiveChanged = new(ResponseActiveChanged)
			b, err = consumeInto(b, wt, m.ActiveChanged.unmarshal)
		case fieldResponseDisconnect:
			m.Disconnect = new(ResponseDisconnect)
			b, err = consumeInto(b, wt, m.Disconnect.unmarshal)
		default:
			b, err = skipField(b, num, wt)
		}
		if err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
	}
	return m, nil
}

func (m *RequestConnect) marshal() []byte {
	var b []byte
	b = appendInt32(b, 1, m.AuthCode)
	b = appendBool(b, 2, m.SendPlaylistSongs)
	b = appendBool(b, 3, m.Downloader)
	return b
}

func (m *RequestConnect) unmarshal(data []byte) error {
	return eachField(data, "request_connect", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			m.AuthCode, b, err = consumeInt32(b, wt)
		case 2:
			m.SendPlaylistSongs, b, err = consumeBool(b, wt)
		case 3:
			m.Downloader, b, err = consumeBool(b, wt)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *RequestSetVolume) marshal() []byte {
	return appendInt32(nil, 1, m.Volume)
}

func (m *RequestSetVolume) unmarshal(data []byte) error {
	return eachField(data, "request_set_volume", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			m.Volume, b, err = consumeInt32(b, wt)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *RequestChangeSong) marshal() []byte {
	var b []byte
	b = appendInt32(b, 1, m.PlaylistID)
	b = appendInt32(b, 2, m.SongIndex)
	return b
}

func (m *RequestChangeSong) unmarshal(data []byte) error {
	return eachField(data, "request_change_song", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			m.PlaylistID, b, err = consumeInt32(b, wt)
		case 2:
			m.SongIndex, b, err = consumeInt32(b, wt)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *RequestOpenPlaylist) marshal() []byte {
	return appendInt32(nil, 1, m.PlaylistID)
}

func (m *RequestOpenPlaylist) unmarshal(data []byte) error {
	return eachField(data, "request_open_playlist", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			m.PlaylistID, b, err = consumeInt32(b, wt)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *Shuffle) marshal() []byte {
	return appendInt32(nil, 1, int32(m.ShuffleMode))
}

func (m *Shuffle) unmarshal(data []byte) error {
	return eachField(data, "shuffle", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			var v int32
			v, b, err = consumeInt32(b, wt)
			m.ShuffleMode = ShuffleMode(v)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *Repeat) marshal() []byte {
	return appendInt32(nil, 1, int32(m.RepeatMode))
}

func (m *Repeat) unmarshal(data []byte) error {
	return eachField(data, "repeat", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			var v int32
			v, b, err = consumeInt32(b, wt)
			m.RepeatMode = RepeatMode(v)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *ResponseClementineInfo) marshal() []byte {
	var b []byte
	b = appendInt32(b, 1, m.Version)
	b = appendInt32(b, 2, int32(m.State))
	return b
}

func (m *ResponseClementineInfo) unmarshal(data []byte) error {
	return eachField(data, "response_clementine_info", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			m.Version, b, err = consumeInt32(b, wt)
		case 2:
			var v int32
			v, b, err = consumeInt32(b, wt)
			m.State = EngineState(v)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *ResponseCurrentMetainfo) marshal() []byte {
	return appendMessage(nil, 1, m.SongMetadata.marshal())
}

func (m *ResponseCurrentMetainfo) unmarshal(data []byte) error {
	return eachField(data, "response_current_metainfo", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			b, err = consumeInto(b, wt, m.SongMetadata.unmarshal)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *ResponsePlaylists) marshal() []byte {
	var b []byte
	for i := range m.Playlists {
		b = appendMessage(b, 1, m.Playlists[i].marshal())
	}
	return b
}

func (m *ResponsePlaylists) unmarshal(data []byte) error {
	return eachField(data, "response_playlists", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			var p Playlist
			if b, err = consumeInto(b, wt, p.unmarshal); err == nil {
				m.Playlists = append(m.Playlists, p)
			}
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *ResponsePlaylistSongs) marshal() []byte {
	var b []byte
	if m.RequestedPlaylist != nil {
		b = appendMessage(b, 1, m.RequestedPlaylist.marshal())
	}
	for i := range m.Songs {
		b = appendMessage(b, 2, m.Songs[i].marshal())
	}
	return b
}

func (m *ResponsePlaylistSongs) unmarshal(data []byte) error {
	return eachField(data, "response_playlist_songs", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			m.RequestedPlaylist = new(Playlist)
			b, err = consumeInto(b, wt, m.RequestedPlaylist.unmarshal)
		case 2:
			var s SongMetadata
			if b, err = consumeInto(b, wt, s.unmarshal); err == nil {
				m.Songs = append(m.Songs, s)
			}
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *ResponseEngineStateChanged) marshal() []byte {
	return appendInt32(nil, 1, int32(m.State))
}

func (m *ResponseEngineStateChanged) unmarshal(data []byte) error {
	return eachField(data, "response_engine_state_changed", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			var v int32
			v, b, err = consumeInt32(b, wt)
			m.State = EngineState(v)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *ResponseUpdateTrackPosition) marshal() []byte {
	return appendInt32(nil, 1, m.Position)
}

func (m *ResponseUpdateTrackPosition) unmarshal(data []byte) error {
	return eachField(data, "response_update_track_position", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			m.Position, b, err = consumeInt32(b, wt)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *ResponseActiveChanged) marshal() []byte {
	return appendInt32(nil, 1, m.ID)
}

func (m *ResponseActiveChanged) unmarshal(data []byte) error {
	return eachField(data, "response_active_changed", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			m.ID, b, err = consumeInt32(b, wt)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *ResponseDisconnect) marshal() []byte {
	return appendInt32(nil, 1, int32(m.Reason))
}

func (m *ResponseDisconnect) unmarshal(data []byte) error {
	return eachField(data, "response_disconnect", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			var v int32
			v, b, err = consumeInt32(b, wt)
			m.Reason = ReasonDisconnect(v)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *SongMetadata) marshal() []byte {
	var b []byte
	b = appendInt32(b, 1, m.ID)
	b = appendInt32(b, 2, m.Index)
	b = appendString(b, 3, m.Title)
	b = appendString(b, 4, m.Album)
	b = appendString(b, 5, m.Artist)
	b = appendString(b, 6, m.Albumartist)
	b = appendInt32(b, 7, m.Track)
	b = appendInt32(b, 8, m.Disc)
	b = appendString(b, 9, m.PrettyYear)
	b = appendString(b, 10, m.Genre)
	b = appendInt32(b, 11, m.Playcount)
	b = appendString(b, 12, m.PrettyLength)
	if len(m.Art) > 0 {
		b = appendBytes(b, 13, m.Art)
	}
	b = appendInt32(b, 14, m.Length)
	b = appendBool(b, 15, m.IsLocal)
	b = appendString(b, 16, m.Filename)
	b = appendInt32(b, 17, m.FileSize)
	b = appendFloat(b, 18, m.Rating)
	b = appendInt32(b, 19, m.Type)
	return b
}

func (m *SongMetadata) unmarshal(data []byte) error {
	return eachField(data, "song_metadata", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			m.ID, b, err = consumeInt32(b, wt)
		case 2:
			m.Index, b, err = consumeInt32(b, wt)
		case 3:
			m.Title, b, err = consumeString(b, wt)
		case 4:
			m.Album, b, err = consumeString(b, wt)
		case 5:
			m.Artist, b, err = consumeString(b, wt)
		case 6:
			m.Albumartist, b, err = consumeString(b, wt)
		case 7:
			m.Track, b, err = consumeInt32(b, wt)
		case 8:
			m.Disc, b, err = consumeInt32(b, wt)
		case 9:
			m.PrettyYear, b, err = consumeString(b, wt)
		case 10:
			m.Genre, b, err = consumeString(b, wt)
		case 11:
			m.Playcount, b, err = consumeInt32(b, wt)
		case 12:
			m.PrettyLength, b, err = consumeString(b, wt)
		case 13:
			m.Art, b, err = consumeBytes(b, wt)
		case 14:
			m.Length, b, err = consumeInt32(b, wt)
		case 15:
			m.IsLocal, b, err = consumeBool(b, wt)
		case 16:
			m.Filename, b, err = consumeString(b, wt)
		case 17:
			m.FileSize, b, err = consumeInt32(b, wt)
		case 18:
			m.Rating, b, err = consumeFloat(b, wt)
		case 19:
			m.Type, b, err = consumeInt32(b, wt)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

func (m *Playlist) marshal() []byte {
	var b []byte
	b = appendInt32(b, 1, m.ID)
	b = appendString(b, 2, m.Name)
	b = appendInt32(b, 3, m.ItemCount)
	b = appendBool(b, 4, m.Active)
	b = appendBool(b, 5, m.Closed)
	return b
}

func (m *Playlist) unmarshal(data []byte) error {
	return eachField(data, "playlist", func(num protowire.Number, wt protowire.Type, b []byte) ([]byte, error) {
		var err error
		switch num {
		case 1:
			m.ID, b, err = consumeInt32(b, wt)
		case 2:
			m.Name, b, err = consumeString(b, wt)
		case 3:
			m.ItemCount, b, err = consumeInt32(b, wt)
		case 4:
			m.Active, b, err = consumeBool(b, wt)
		case 5:
			m.Closed, b, err = consumeBool(b, wt)
		default:
			b, err = skipField(b, num, wt)
		}
		return b, err
	})
}

// Append helpers. int32 values are sign-extended the way proto varints
// require, so negative values survive a round trip.

func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendFloat(b []byte, num protowire.Number, v float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v))
}

func appendMessage(b []byte, num protowire.Number, sub []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, sub)
}

// Consume helpers. Each returns the remaining buffer after the value.

func consumeInt32(b []byte, wt protowire.Type) (int32, []byte, error) {
	if wt != protowire.VarintType {
		return 0, b, fmt.Errorf("wire type %d, want varint", wt)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, b, protowire.ParseError(n)
	}
	return int32(v), b[n:], nil
}

func consumeBool(b []byte, wt protowire.Type) (bool, []byte, error) {
	v, rest, err := consumeInt32(b, wt)
	if err != nil {
		return false, b, err
	}
	return protowire.DecodeBool(uint64(v)), rest, nil
}

func consumeString(b []byte, wt protowire.Type) (string, []byte, error) {
	if wt != protowire.BytesType {
		return "", b, fmt.Errorf("wire type %d, want bytes", wt)
	}
	v, n := protowire.ConsumeString(b)
	if n < 0 {
		return "", b, protowire.ParseError(n)
	}
	return v, b[n:], nil
}

func consumeBytes(b []byte, wt protowire.Type) ([]byte, []byte, error) {
	if wt != protowire.BytesType {
		return nil, b, fmt.Errorf("wire type %d, want bytes", wt)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, b, protowire.ParseError(n)
	}
	return v, b[n:], nil
}

func consumeFloat(b []byte, wt protowire.Type) (float32, []byte, error) {
	if wt != protowire.Fixed32Type {
		return 0, b, fmt.Errorf("wire type %d, want fixed32", wt)
	}
	v, n := protowire.ConsumeFixed32(b)
	if n < 0 {
		return 0, b, protowire.ParseError(n)
	}
	return math.Float32frombits(v), b[n:], nil
}

// consumeInto reads an embedded message and parses it with fn.
func consumeInto(b []byte, wt protowire.Type, fn func([]byte) error) ([]byte, error) {
	sub, rest, err := consumeBytes(b, wt)
	if err != nil {
		return b, err
	}
	if err := fn(sub); err != nil {
		return b, err
	}
	return rest, nil
}

func skipField(b []byte, num protowire.Number, wt protowire.Type) ([]byte, error) {
	n := protowire.ConsumeFieldValue(num, wt, b)
	if n < 0 {
		return b, protowire.ParseError(n)
	}
	return b[n:], nil
}

// eachField walks the fields of one serialized message, handing each to fn.
// name labels parse errors with the proto message they came from.
func eachField(data []byte, name string, fn func(protowire.Number, protowire.Type, []byte) ([]byte, error)) error {
	b := data
	for len(b) > 0 {
		num, wt, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%s: %w", name, protowire.ParseError(n))
		}
		rest, err := fn(num, wt, b[n:])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		b = rest
	}
	return nil
}
