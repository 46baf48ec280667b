// Package remotemsg implements the Clementine remote-control wire format.
//
// # Overview
//
// This package owns everything that touches bytes on the wire: the message
// envelope and its sub-message types, the hand-written protobuf codec, and
// the 4-byte length framing. The schema itself is fixed by the player; the
// copy of record for this codebase lives in clementine.proto next to this
// file, and codec.go implements it field by field.
//
// # Architecture
//
// The package is split into five files:
//
//   - clementine.proto: The schema of record (proto2 text, documentation only)
//   - types.go: Go structs mirroring the schema messages
//   - enums.go: Message type, engine state, shuffle/repeat mode enumerations
//   - codec.go: Encode/Decode built on protowire primitives
//   - framing.go: ReadFrame/WriteFrame length-prefix handling
//
// # Wire Format
//
// Every message in both directions is one frame:
//
//	[4-byte big-endian length N][N bytes of serialized Message]
//
// The Message envelope carries a protocol version, a MsgType tag, and one
// populated sub-message selected by that tag. Outbound messages are stamped
// with ProtocolVersion (21) by the client; inbound messages report whatever
// the server speaks.
//
// # Codec
//
// Encode and Decode are written directly against
// google.golang.org/protobuf/encoding/protowire rather than generated code,
// keeping the module free of a protoc build step for a schema this small.
// The codec follows proto2 conventions:
//
//   - int32 values are sign-extended varints
//   - enums travel as varints and tolerate unknown values
//   - floats are fixed32
//   - unknown field numbers are skipped, preserving forward compatibility
//   - malformed input is an error, never a partial message
//
// Decode errors are fatal for the connection that produced them; the client
// tears the socket down rather than resynchronize mid-stream.
//
// # Framing
//
// ReadFrame reads the 4-byte header, then the body in reads of at most 4096
// bytes until the declared length is satisfied. Ordinary frames fit one
// read; CURRENT_METAINFO frames carrying embedded album art routinely run
// to hundreds of kilobytes and arrive over many. io.EOF before the header
// is a clean close; EOF mid-frame reports how much was read.
//
// # Usage
//
//	msg := &remotemsg.Message{
//		Type:             remotemsg.MsgTypeSetVolume,
//		Version:          remotemsg.ProtocolVersion,
//		RequestSetVolume: &remotemsg.RequestSetVolume{Volume: 42},
//	}
//	if err := remotemsg.WriteFrame(conn, remotemsg.Encode(msg)); err != nil {
//		return err
//	}
//
//	payload, err := remotemsg.ReadFrame(conn)
//	if err != nil {
//		return err
//	}
//	reply, err := remotemsg.Decode(payload)
//
// # Design Rationale
//
// The package has no dependencies on the rest of the module and performs no
// I/O beyond the Reader/Writer handed to the framing functions. Dispatching
// on MsgType, state tracking, and reconnect policy all belong to the remote
// package; remotemsg only translates between structs and bytes.
package remotemsg
