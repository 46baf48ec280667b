// Package app is the orchestration layer for clemctl.
//
// # Overview
//
// This package wires together configuration, the remote-control client, state
// management, and the command implementations. It serves as the composition
// root where all dependencies are initialized and connected; cmd/clemctl only
// parses flags and maps returned errors to exit codes.
//
// # Architecture
//
// Every invocation follows the same initialization pattern:
//
//  1. Load the config file (explicit --config path or its default location)
//  2. Apply explicitly-set command-line flags over the file values
//  3. Create a shared state.Store and a remote.Client around it
//  4. Connect, which dials the player and performs the protocol handshake
//  5. Run the selected command against the live client
//  6. Disconnect, which stops the receive loop and closes the socket
//
// # Components
//
//   - app.go: Options, the Run dispatch, and flag/config merging
//   - commands.go: one function per subcommand plus argument parsing
//   - print.go: plain-text rendering of snapshots and playlist tables
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Resolve config, pick the command
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read ~/.config/clemctl/config.toml
//	       ├─────> mergeFlags()       Flags beat file values
//	       ├─────> state.NewStore()   Shared player-state mirror
//	       ├─────> remote.New()       TCP client feeding the store
//	       └─────> run<Command>()     status, playlists, listen, ui, ...
//
//	Background Receive Loop (owned by remote.Client):
//	┌─────────────────────────────────────────┐
//	│ read frame ─> decode ─> apply to store  │
//	│      └─> commands read store.Snapshot() │
//	└─────────────────────────────────────────┘
//
// # Initial Sync
//
// Right after the handshake the player streams its full state: volume,
// current track, playlists, shuffle and repeat modes, finished by a
// first-data-complete marker. Commands that print state (status, playlists)
// poll the snapshot every 250ms until that marker arrives, bounded at ten
// polls, then print whatever the store holds. A slow or partial sync
// therefore degrades to partial output instead of hanging.
//
// # Error Handling
//
// The app package distinguishes between usage and runtime errors:
//
// Usage errors (wrap ErrUsage, exit 2):
//   - Unknown command names
//   - Missing, extra, or non-numeric positional arguments
//   - Out-of-range volume or port values
//
// Runtime errors (returned unchanged, exit 1):
//   - Config file present but unreadable or invalid
//   - Dial or handshake failure
//   - Send failure on a closed connection
//
// # Configuration
//
// The Options struct carries everything main parses from the command line:
// the config path, connection overrides with companion *Set booleans that
// record whether each flag was given explicitly, the command with its
// arguments, and the logger. Only explicitly-set flags override the file.
//
// # Usage Example
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	opts := app.Options{
//		Command: "status",
//		Logger:  logger,
//	}
//
//	if err := app.Run(ctx, opts); err != nil {
//		log.Fatalf("clemctl failed: %v", err)
//	}
//
// # Dependencies
//
//   - config: Loads and parses clemctl configuration files
//   - remote: TCP client speaking the player's remote-control protocol
//   - state: Thread-safe mirror of the player's reported state
//   - eventlog: Ring buffer and describer for inbound protocol traffic
//   - ui: Terminal user interface implementation
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal and focused.
// Protocol and domain logic live in their own packages (remote, state,
// eventlog, ui). The app package simply connects these pieces, so every
// subcommand is a short function over the same client and store.
package app
