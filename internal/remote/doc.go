// Package remote implements the TCP client for the player's remote-control
// protocol.
//
// # Overview
//
// This package owns the network side of the program: dialing the player,
// performing the CONNECT handshake, running the background receive loop that
// feeds the state store, sending fire-and-forget commands, and applying the
// reconnect policy when the connection is lost.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: Connection lifecycle, receive loop, reconnect policy
//   - dispatch.go: Inbound message handling (wire message to store update)
//   - commands.go: Outbound command surface (Play, Pause, SetVolume, ...)
//
// One goroutine per client runs the whole lifecycle:
//
//	Connect ──> dial + handshake ──> receive loop ──> connection lost
//	                                     ^                  │
//	                                     │   sleep delay    │
//	                                     └──────────────────┘ (reconnect on)
//
// # Connection Lifecycle
//
// Connect dials synchronously so the caller learns immediately whether the
// player is reachable. On success it writes the CONNECT handshake and starts
// the background loop. On failure the behavior depends on the reconnect
// option:
//
//   - Reconnect off: the client terminates and Connect returns the dial error.
//   - Reconnect on: the failure is logged, Connect returns nil, and the
//     background loop retries every ReconnectDelay until Disconnect.
//
// Disconnect is idempotent and safe from any goroutine. It closes the
// socket, which unblocks the receive loop; Done closes once the background
// loop has fully exited.
//
// # Receive Loop
//
// The loop repeats four steps until the connection dies:
//
//  1. Read one length-prefixed frame.
//  2. Decode the protobuf envelope. A decode failure is fatal for the
//     connection; there is no way to resynchronize a corrupt stream.
//  3. Refresh the store's last-update timestamp.
//  4. Dispatch the message to the store, then hand it to the optional
//     MessageHandler.
//
// Unrecognized message types are logged at debug level and otherwise
// ignored, so protocol additions by newer servers do not break the client.
//
// # Commands
//
// Commands are fire-and-forget: the protocol has no acknowledgements, so a
// nil error only means the frame reached the socket. Effects show up later
// as inbound messages (a PLAY command is answered by a PLAY echo, which the
// dispatch table turns into a status change). Commands fail with
// ErrNotConnected while the socket is down and ErrTerminated once the
// client has been shut down, so callers never mistake a dropped command for
// a delivered one.
//
// Every outbound envelope is stamped with ProtocolVersion before framing.
// Writes are serialized under the client mutex so concurrent commands
// cannot interleave partial frames.
//
// # Reconnection
//
// The reconnect policy is a fixed delay, no backoff: the player is
// typically on the local network and a constant retry cadence is easier to
// reason about than an exponential one. Two events disable reconnection
// permanently:
//
//   - Disconnect is called.
//   - The server rejects the session for an auth reason (wrong auth code,
//     not authorized, download forbidden). Redialing with the same code
//     would fail the same way.
//
// # Thread Safety
//
// All exported methods are safe for concurrent use. The receive loop is the
// only writer to the state store; readers go through Store.Snapshot. The
// MessageHandler runs on the receive goroutine, so slow handlers delay
// protocol reads.
//
// # Testing Considerations
//
// When testing code that uses this package:
//   - Listen on 127.0.0.1:0 and speak the protocol as a fake server
//   - Drain the CONNECT handshake before asserting on later frames
//   - Poll the state store with a deadline; dispatch is asynchronous
//   - Close the server side to exercise disconnect detection
//
// # Design Rationale
//
// The client is deliberately thin:
//
//   - No request/response correlation (the protocol has none)
//   - No send queue (commands are rare and small; a blocking write is fine)
//   - No state of its own beyond the socket (the store is the single mirror)
//
// This keeps the concurrency surface small: one goroutine, one mutex, two
// channels.
package remote
