package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/clemctl/clemctl/internal/app"
)

// Overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		host        = flag.StringP("host", "s", "", "player address (default from config, else 127.0.0.1)")
		port        = flag.IntP("port", "p", 0, "remote-control port (default from config, else 5500)")
		authCode    = flag.IntP("auth", "a", 0, "pairing code shown by the player")
		reconnect   = flag.BoolP("reconnect", "r", false, "redial every 15s after the connection is lost")
		configPath  = flag.String("config", "", "config file path (default ~/.config/clemctl/config.toml)")
		verbose     = flag.BoolP("verbose", "v", false, "log protocol traffic")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println("clemctl " + version)
		return 0
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:   *configPath,
		Host:         *host,
		Port:         *port,
		AuthCode:     *authCode,
		Reconnect:    *reconnect,
		HostSet:      flag.CommandLine.Changed("host"),
		PortSet:      flag.CommandLine.Changed("port"),
		AuthSet:      flag.CommandLine.Changed("auth"),
		ReconnectSet: flag.CommandLine.Changed("reconnect"),
		Logger:       logger,
	}
	if args := flag.Args(); len(args) > 0 {
		opts.Command = args[0]
		opts.Args = args[1:]
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "clemctl: %v\n", err)
		if errors.Is(err, app.ErrUsage) {
			usage()
			return 2
		}
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: clemctl [flags] [command [args]]

Commands:
  status                     print player state and playlists
  playlists                  print the playlist table
  listen                     print every message from the player until interrupted
  play, pause, playpause     playback control
  stop, next, previous       playback control
  set_volume <0-100>         set the player volume
  playlist_open <id>         make a playlist active
  change_song <playlist> <index>
                             play a specific song from a playlist
  ui                         open the interactive interface (default)

Flags:
`)
	flag.PrintDefaults()
}
