// Package ui provides the interactive terminal interface for clemctl.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea with the standard Model/Update/View cycle.
// The Model is a value type; Update returns modified copies, and small
// pointer-receiver helpers mutate the local copy before it is returned.
// All player data comes from a state.Store snapshot polled on a timer, so
// the UI never touches the connection goroutine directly.
//
// # Package Structure
//
// The package is organized into focused modules:
//
//   - app.go: Root model, message plumbing, key dispatch, and the Run function
//   - theme.go: Color themes and pre-built Lipgloss styles
//   - style_helpers.go: Background-safe rendering helpers and text formatting
//   - keys.go: Key bindings built on the bubbles key package
//   - header.go: Status bar and per-view command bar
//   - nowplaying.go: Current track view with metadata and progress
//   - playlists.go: Playlist browser with cursor selection
//   - events.go: Scrolling protocol event history in a viewport
//   - help.go: Keyboard shortcut overlay
//
// # View Types
//
// Three views are cycled with Tab or selected directly:
//
//   - Now Playing: Metadata for the current track, playback position, rating
//   - Playlists: All playlists reported by the player; Enter opens one
//   - Events: Timestamped history of decoded protocol messages
//
// # Event Flow
//
//  1. Run() builds the model and starts the Bubble Tea program
//  2. A tick command polls state.Store and eventlog.Log on an interval
//  3. Snapshot and event messages replace the model's local copies
//  4. Playback keys send fire-and-forget commands through remote.Client
//  5. Command errors surface in the command bar instead of interrupting
//  6. Context cancellation kills the program and Run returns
//
// The UI never blocks on the player: commands return as soon as the bytes
// are written, and the next poll picks up whatever state the player
// reports back.
//
// # External Dependencies
//
//   - remote.Client: Sends playback and playlist commands
//   - state.Store: Provides immutable snapshots of the mirrored player state
//   - eventlog.Log: Provides the bounded protocol message history
//   - prefs: Persists the selected theme across sessions
//
// # Usage Example
//
//	opts := ui.Options{
//		Client: client,
//		Store:  store,
//		Events: events,
//	}
//	if err := ui.Run(ctx, opts); err != nil {
//		log.Fatal(err)
//	}
//
// # Key Bindings
//
//   - 1/2/3: Jump to Now Playing, Playlists, or Events
//   - Tab / Shift+Tab: Cycle views forward/backward
//   - Space: Play/pause toggle
//   - s: Stop playback
//   - n/b: Next/previous track
//   - +/-: Volume up/down in steps of five
//   - j/k, g/G: Move or scroll within a view
//   - Enter: Open the selected playlist
//   - r: Ask the player to resend the playlist list
//   - f: Toggle follow mode in the events view
//   - T: Cycle color theme (persisted to prefs)
//   - h/?: Toggle help overlay
//   - q or Ctrl+C: Quit
//
// # Design Principles
//
//   - Snapshot driven: Views render from copies, never shared state
//   - Fire and forget: Commands do not wait for the player to confirm
//   - Single connection: The UI owns no sockets; remote.Client does
package ui
