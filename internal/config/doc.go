// Package config handles loading and parsing the connection settings file.
//
// # Overview
//
// This package reads a small TOML file describing how to reach the player:
// its address, its remote-control port, the pairing code if one is set, and
// whether to reconnect automatically after a lost connection. Command-line
// flags override any of these at the app layer.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/clemctl/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/clemctl/config.toml
//   - Host: 127.0.0.1
//   - Port: 5500
//   - Auth code: 0 (meaning the player requires none)
//   - Reconnect: off
//
// # TOML Format
//
// Example config.toml:
//
//	host = "192.168.1.20"
//	port = 5500
//	auth_code = 4251
//	reconnect = true
//
// All fields are optional. A port outside 1-65535 is rejected.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Out-of-range port values
//
// Missing config files are NOT an error - defaults are used instead, so the
// program works out-of-the-box against a local player.
//
// # Design Philosophy
//
// The config package is read-only and stateless - it loads configuration
// once at startup and returns an immutable Config struct. No global state
// or singleton patterns are used.
package config
