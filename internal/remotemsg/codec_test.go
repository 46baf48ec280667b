package remotemsg

import (
	"reflect"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  *Message
	}{
		{
			name: "bare play command",
			msg:  &Message{Version: ProtocolVersion, Type: MsgTypePlay},
		},
		{
			name: "connect",
			msg: &Message{
				Version:        ProtocolVersion,
				Type:           MsgTypeConnect,
				RequestConnect: &RequestConnect{AuthCode: 1234, SendPlaylistSongs: false, Downloader: false},
			},
		},
		{
			name: "set volume",
			msg: &Message{
				Version:          ProtocolVersion,
				Type:             MsgTypeSetVolume,
				RequestSetVolume: &RequestSetVolume{Volume: 42},
			},
		},
		{
			name: "change song",
			msg: &Message{
				Version:           ProtocolVersion,
				Type:              MsgTypeChangeSong,
				RequestChangeSong: &RequestChangeSong{PlaylistID: 7, SongIndex: 3},
			},
		},
		{
			name: "open playlist",
			msg: &Message{
				Version:             ProtocolVersion,
				Type:                MsgTypeOpenPlaylist,
				RequestOpenPlaylist: &RequestOpenPlaylist{PlaylistID: 9},
			},
		},
		{
			name: "shuffle",
			msg: &Message{
				Version: ProtocolVersion,
				Type:    MsgTypeShuffle,
				Shuffle: &Shuffle{ShuffleMode: ShuffleInsideAlbum},
			},
		},
		{
			name: "repeat",
			msg: &Message{
				Version: ProtocolVersion,
				Type:    MsgTypeRepeat,
				Repeat:  &Repeat{RepeatMode: RepeatOneByOne},
			},
		},
		{
			name: "info",
			msg: &Message{
				Version: ProtocolVersion,
				Type:    MsgTypeInfo,
				Info:    &ResponseClementineInfo{Version: 21, State: EngineStatePlaying},
			},
		},
		{
			name: "current metainfo",
			msg: &Message{
				Version: ProtocolVersion,
				Type:    MsgTypeCurrentMetainfo,
				CurrentMetainfo: &ResponseCurrentMetainfo{SongMetadata: SongMetadata{
					ID:           101,
					Index:        4,
					Title:        "Knights of Cydonia",
					Album:        "Black Holes and Revelations",
					Artist:       "Muse",
					Albumartist:  "Muse",
					Track:        12,
					Disc:         1,
					PrettyYear:   "2006",
					Genre:        "Alternative Rock",
					Playcount:    17,
					PrettyLength: "6:07",
					Art:          []byte{0xff, 0xd8, 0xff, 0xe0},
					Length:       367,
					IsLocal:      true,
					Filename:     "file:///music/muse/12.flac",
					FileSize:     44733211,
					Rating:       0.8,
					Type:         2,
				}},
			},
		},
		{
			name: "negative track numbers",
			msg: &Message{
				Version: ProtocolVersion,
				Type:    MsgTypeCurrentMetainfo,
				CurrentMetainfo: &ResponseCurrentMetainfo{SongMetadata: SongMetadata{
					ID:    -1,
					Index: -1,
					Track: -1,
					Disc:  -1,
				}},
			},
		},
		{
			name: "playlists",
			msg: &Message{
				Version: ProtocolVersion,
				Type:    MsgTypePlaylists,
				Playlists: &ResponsePlaylists{Playlists: []Playlist{
					{ID: 1, Name: "Library", ItemCount: 240, Active: false, Closed: false},
					{ID: 5, Name: "Road Trip", ItemCount: 32, Active: true, Closed: false},
					{ID: 8, Name: "Archive", ItemCount: 11, Active: false, Closed: true},
				}},
			},
		},
		{
			name: "playlist songs",
			msg: &Message{
				Version: ProtocolVersion,
				Type:    MsgTypePlaylistSongs,
				PlaylistSongs: &ResponsePlaylistSongs{
					RequestedPlaylist: &Playlist{ID: 5, Name: "Road Trip", ItemCount: 2},
					Songs: []SongMetadata{
						{ID: 1, Title: "One"},
						{ID: 2, Title: "Two"},
					},
				},
			},
		},
		{
			name: "engine state changed",
			msg: &Message{
				Version:     ProtocolVersion,
				Type:        MsgTypeEngineStateChanged,
				EngineState: &ResponseEngineStateChanged{State: EngineStatePaused},
			},
		},
		{
			name: "track position",
			msg: &Message{
				Version:       ProtocolVersion,
				Type:          MsgTypeUpdateTrackPosition,
				TrackPosition: &ResponseUpdateTrackPosition{Position: 118},
			},
		},
		{
			name: "active playlist changed",
			msg: &Message{
				Version:       ProtocolVersion,
				Type:          MsgTypeActivePlaylistChanged,
				ActiveChanged: &ResponseActiveChanged{ID: 5},
			},
		},
		{
			name: "disconnect",
			msg: &Message{
				Version:    ProtocolVersion,
				Type:       MsgTypeDisconnect,
				Disconnect: &ResponseDisconnect{Reason: ReasonWrongAuthCode},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Encode(tt.msg))
			if err != nil {
				t.Fatalf("Decode(Encode(msg)) error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.msg) {
				t.Fatalf("round trip mismatch:\ngot  %#v\nwant %#v", got, tt.msg)
			}
		})
	}
}

func TestEncode_GoldenBytes(t *testing.T) {
	// Version 21 as field 1, PLAY (6) as field 2, both varints.
	got := Encode(&Message{Version: ProtocolVersion, Type: MsgTypePlay})
	want := []byte{0x08, 0x15, 0x10, 0x06}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Encode(PLAY) = %x, want %x", got, want)
	}
}

func TestDecode_EmptyPayload(t *testing.T) {
	msg, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode(nil) error: %v", err)
	}
	if msg.Type != MsgTypeUnknown {
		t.Fatalf("Type = %v, want UNKNOWN", msg.Type)
	}
	if msg.Version != 1 {
		t.Fatalf("Version = %d, want proto default 1", msg.Version)
	}
}

func TestDecode_SkipsUnknownFields(t *testing.T) {
	b := Encode(&Message{Version: ProtocolVersion, Type: MsgTypeSetVolume,
		RequestSetVolume: &RequestSetVolume{Volume: 55}})
	b = protowire.AppendTag(b, 99, protowire.VarintType)
	b = protowire.AppendVarint(b, 12345)
	b = protowire.AppendTag(b, 100, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future field"))

	msg, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode with unknown fields error: %v", err)
	}
	if msg.Type != MsgTypeSetVolume {
		t.Fatalf("Type = %v, want SET_VOLUME", msg.Type)
	}
	if msg.RequestSetVolume == nil || msg.RequestSetVolume.Volume != 55 {
		t.Fatalf("RequestSetVolume = %#v, want volume 55", msg.RequestSetVolume)
	}
}

func TestDecode_Malformed(t *testing.T) {
	truncatedSub := protowire.AppendTag(nil, fieldRequestConnect, protowire.BytesType)
	truncatedSub = append(truncatedSub, 0x05, 0x01) // declares 5 bytes, carries 1

	tests := []struct {
		name string
		data []byte
	}{
		{name: "tag without value", data: []byte{0x08}},
		{name: "version with bytes wire type", data: protowire.AppendString(protowire.AppendTag(nil, 1, protowire.BytesType), "x")},
		{name: "truncated sub-message", data: truncatedSub},
		{name: "dangling tag byte", data: []byte{0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); err == nil {
				t.Fatalf("Decode(%x) = nil error, want parse failure", tt.data)
			}
		})
	}
}

func TestMsgType_String(t *testing.T) {
	tests := []struct {
		typ  MsgType
		want string
	}{
		{MsgTypeConnect, "CONNECT"},
		{MsgTypePlay, "PLAY"},
		{MsgTypeCurrentMetainfo, "CURRENT_METAINFO"},
		{MsgTypeFirstDataSentComplete, "FIRST_DATA_SENT_COMPLETE"},
		{MsgType(77), "MsgType(77)"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Fatalf("MsgType(%d).String() = %q, want %q", int32(tt.typ), got, tt.want)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	if got := EngineStatePlaying.String(); got != "Playing" {
		t.Fatalf("EngineStatePlaying.String() = %q, want Playing", got)
	}
	if got := EngineState(9).String(); got != "EngineState(9)" {
		t.Fatalf("EngineState(9).String() = %q, want EngineState(9)", got)
	}
	if got := ShuffleInsideAlbum.String(); got != "InsideAlbum" {
		t.Fatalf("ShuffleInsideAlbum.String() = %q, want InsideAlbum", got)
	}
	if got := RepeatOneByOne.String(); got != "OneByOne" {
		t.Fatalf("RepeatOneByOne.String() = %q, want OneByOne", got)
	}
	if got := ReasonWrongAuthCode.String(); got != "wrong auth code" {
		t.Fatalf("ReasonWrongAuthCode.String() = %q, want wrong auth code", got)
	}
}

func TestReasonDisconnect_AuthRejection(t *testing.T) {
	if ReasonServerShutdown.AuthRejection() {
		t.Fatal("ReasonServerShutdown.AuthRejection() = true, want false")
	}
	for _, r := range []ReasonDisconnect{ReasonWrongAuthCode, ReasonNotAuthorized, ReasonDownloadForbidden} {
		if !r.AuthRejection() {
			t.Fatalf("%v.AuthRejection() = false, want true", r)
		}
	}
}

// A parse failure must not hand back a half-populated message.
func TestDecode_ErrorReturnsNilMessage(t *testing.T) {
	msg, err := Decode([]byte{0x08})
	if err == nil {
		t.Fatal("Decode(truncated) error = nil, want parse failure")
	}
	if msg != nil {
		t.Fatalf("Decode(truncated) message = %#v, want nil", msg)
	}
}
