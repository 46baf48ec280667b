package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clemctl/clemctl/internal/config"
)

// ErrUsage marks command-line mistakes. main prints usage and exits 2 when a
// returned error wraps it.
var ErrUsage = errors.New("usage")

// Options configure a single clemctl invocation.
type Options struct {
	ConfigPath string

	// Connection settings from the command line.
	Host      string
	Port      int
	AuthCode  int
	Reconnect bool

	// Which connection flags were set explicitly. Set flags override the
	// config file; everything else falls through to it.
	HostSet      bool
	PortSet      bool
	AuthSet      bool
	ReconnectSet bool

	// Command and its positional arguments. An empty command opens the UI.
	Command string
	Args    []string

	Logger zerolog.Logger
	Stdout io.Writer // defaults to os.Stdout
}

// Run executes one clemctl command against the configured player.
func Run(ctx context.Context, opts Options) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = mergeFlags(cfg, opts)
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrUsage, cfg.Port)
	}

	command := opts.Command
	if command == "" {
		command = "ui"
	}

	switch command {
	case "status":
		return runStatus(ctx, cfg, opts)
	case "playlists":
		return runPlaylists(ctx, cfg, opts)
	case "listen":
		return runListen(ctx, cfg, opts)
	case "play", "stop", "pause", "playpause", "next", "previous":
		return runPlayback(ctx, cfg, opts, command)
	case "set_volume":
		return runSetVolume(ctx, cfg, opts)
	case "playlist_open":
		return runPlaylistOpen(ctx, cfg, opts)
	case "change_song":
		return runChangeSong(ctx, cfg, opts)
	case "ui":
		return runUI(ctx, cfg, opts)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
	}
}

// mergeFlags applies explicitly-set command-line flags over the config file.
// Precedence: explicit flag > config file > built-in default.
func mergeFlags(cfg config.Config, opts Options) config.Config {
	if opts.HostSet && strings.TrimSpace(opts.Host) != "" {
		cfg.Host = strings.TrimSpace(opts.Host)
	}
	if opts.PortSet {
		cfg.Port = opts.Port
	}
	if opts.AuthSet {
		cfg.AuthCode = opts.AuthCode
	}
	if opts.ReconnectSet {
		cfg.Reconnect = opts.Reconnect
	}
	return cfg
}
