// Package state provides the thread-safe mirror of player state.
//
// # Overview
//
// This package implements the store where the protocol receive loop records
// what it learns about the player and where every other part of the program
// reads it back. It is the coordination point between exactly one writer
// (the receive loop) and any number of readers (CLI commands, the TUI).
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (receive loop):        Consumers (CLI, UI):
//	┌────────────────────┐         ┌─────────────────────┐
//	│ ReadFrame/Decode   │         │                     │
//	│        ↓           │         │                     │
//	│ store.SetVolume()  │────────→│  store.Snapshot()   │
//	│ store.SetTrack()   │ (mutex) │         ↓           │
//	│ ...per msg type    │         │  render / print     │
//	└────────────────────┘         └─────────────────────┘
//
// # Absence Semantics
//
// Every field of the snapshot starts out absent and stays absent until the
// message type that feeds it has been received at least once. Absence is
// encoded explicitly rather than left to zero values:
//
//   - Volume, Position, ActivePlaylistID: the Unknown constant (-1)
//   - Version: 0 (the protocol never announces version 0)
//   - Shuffle, Repeat: empty string
//   - Track, Playlists: nil
//   - LastUpdate: zero time.Time
//
// Callers must treat these as "not reported yet", never as real readings.
//
// # Update Semantics
//
// Setters are deliberately narrow: each one writes the fields of exactly one
// message type and nothing else. Wholesale replacement rules from the wire
// protocol carry over directly:
//
//   - SetTrack replaces the whole track record; stale fields never merge
//   - ReplacePlaylists swaps the entire playlist map and re-derives the
//     active id from the active flag
//   - SetDisconnected only downgrades Status, keeping last known data
//     readable after a connection drop
//
// Touch stamps LastUpdate for every parsed message regardless of type, so
// staleness can be judged even on KEEP_ALIVE traffic.
//
// # Concurrency Model
//
// A sync.RWMutex guards the snapshot. Setters take the write lock; Snapshot
// takes the read lock and returns a defensive copy, cloning the track (art
// bytes included) and the playlist map. Readers can therefore hold a
// snapshot indefinitely without observing later updates.
//
// # Design Rationale
//
// The receive loop owning all writes, with readers limited to snapshot
// copies, removes any need for callers to synchronize field reads
// themselves. Channels were considered and rejected: consumers here want
// "latest state now", not a history of transitions, and a mutex-guarded
// value is the simplest correct fit for that access pattern.
package state
