package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/clemctl/clemctl/internal/config"
	"github.com/clemctl/clemctl/internal/eventlog"
	"github.com/clemctl/clemctl/internal/prefs"
	"github.com/clemctl/clemctl/internal/remote"
	"github.com/clemctl/clemctl/internal/remotemsg"
	"github.com/clemctl/clemctl/internal/state"
	"github.com/clemctl/clemctl/internal/ui"
)

// The player streams its full state right after the handshake; ten polls at
// 250ms bound the wait at 2.5s.
const (
	syncPollEvery = 250 * time.Millisecond
	syncMaxPolls  = 10
)

// session bundles the pieces every subcommand wires together.
type session struct {
	store  *state.Store
	client *remote.Client
}

// newSession builds a store and client from the merged config. handler, when
// non-nil, observes every inbound message.
func newSession(cfg config.Config, opts Options, handler remote.MessageHandler) *session {
	store := state.NewStore()
	logger := opts.Logger
	client := remote.New(store, remote.Options{
		Host:      cfg.Host,
		Port:      cfg.Port,
		AuthCode:  cfg.AuthCode,
		Reconnect: cfg.Reconnect,
		Handler:   handler,
		Logger:    &logger,
	})
	return &session{store: store, client: client}
}

// waitForSync polls until the player finishes its initial state dump, the
// connection dies, or the polls are used up. It always returns the latest
// snapshot so a partial sync still prints whatever arrived.
func (s *session) waitForSync(ctx context.Context) state.Snapshot {
	for i := 0; i < syncMaxPolls; i++ {
		snap := s.store.Snapshot()
		if snap.InitialSyncComplete {
			return snap
		}
		select {
		case <-ctx.Done():
			return s.store.Snapshot()
		case <-s.client.Done():
			return s.store.Snapshot()
		case <-time.After(syncPollEvery):
		}
	}
	return s.store.Snapshot()
}

func runStatus(ctx context.Context, cfg config.Config, opts Options) error {
	if err := noArgs("status", opts.Args); err != nil {
		return err
	}
	s := newSession(cfg, opts, nil)
	if err := s.client.Connect(ctx); err != nil {
		return err
	}
	defer s.client.Disconnect()

	printSnapshot(opts.Stdout, s.waitForSync(ctx))
	return nil
}

func runPlaylists(ctx context.Context, cfg config.Config, opts Options) error {
	if err := noArgs("playlists", opts.Args); err != nil {
		return err
	}
	s := newSession(cfg, opts, nil)
	if err := s.client.Connect(ctx); err != nil {
		return err
	}
	defer s.client.Disconnect()

	snap := s.waitForSync(ctx)
	if len(snap.Playlists) == 0 {
		fmt.Fprintln(opts.Stdout, "No playlists reported.")
		return nil
	}
	printPlaylists(opts.Stdout, snap)
	return nil
}

// runListen prints one line per inbound message until the context is
// cancelled or the server closes the connection.
func runListen(ctx context.Context, cfg config.Config, opts Options) error {
	if err := noArgs("listen", opts.Args); err != nil {
		return err
	}

	out := opts.Stdout
	handler := func(msg *remotemsg.Message) {
		fmt.Fprintf(out, "%s  %s\n", time.Now().Format("15:04:05"), eventlog.Describe(msg))
	}

	s := newSession(cfg, opts, handler)
	if err := s.client.Connect(ctx); err != nil {
		return err
	}
	defer s.client.Disconnect()

	select {
	case <-ctx.Done():
	case <-s.client.Done():
	}
	return nil
}

func runPlayback(ctx context.Context, cfg config.Config, opts Options, command string) error {
	if err := noArgs(command, opts.Args); err != nil {
		return err
	}
	s := newSession(cfg, opts, nil)
	if err := s.client.Connect(ctx); err != nil {
		return err
	}
	defer s.client.Disconnect()

	switch command {
	case "play":
		return s.client.Play()
	case "stop":
		return s.client.Stop()
	case "pause":
		return s.client.Pause()
	case "playpause":
		return s.client.PlayPause()
	case "next":
		return s.client.Next()
	case "previous":
		return s.client.Previous()
	}
	return nil
}

func runSetVolume(ctx context.Context, cfg config.Config, opts Options) error {
	volume, err := parseVolumeArg(opts.Args)
	if err != nil {
		return err
	}
	s := newSession(cfg, opts, nil)
	if err := s.client.Connect(ctx); err != nil {
		return err
	}
	defer s.client.Disconnect()
	return s.client.SetVolume(volume)
}

func runPlaylistOpen(ctx context.Context, cfg config.Config, opts Options) error {
	id, err := parsePlaylistOpenArgs(opts.Args)
	if err != nil {
		return err
	}
	s := newSession(cfg, opts, nil)
	if err := s.client.Connect(ctx); err != nil {
		return err
	}
	defer s.client.Disconnect()
	return s.client.OpenPlaylist(id)
}

func runChangeSong(ctx context.Context, cfg config.Config, opts Options) error {
	playlistID, index, err := parseChangeSongArgs(opts.Args)
	if err != nil {
		return err
	}
	s := newSession(cfg, opts, nil)
	if err := s.client.Connect(ctx); err != nil {
		return err
	}
	defer s.client.Disconnect()
	return s.client.ChangeSong(playlistID, index)
}

func runUI(ctx context.Context, cfg config.Config, opts Options) error {
	if err := noArgs("ui", opts.Args); err != nil {
		return err
	}

	// The TUI owns the terminal, so client logs must not reach stderr.
	// Connection state shows in the header and traffic in the events view.
	opts.Logger = opts.Logger.Level(zerolog.Disabled)

	userPrefs := prefs.Load("")
	events := eventlog.New(0)
	handler := func(msg *remotemsg.Message) {
		events.Record(time.Now(), msg)
	}

	s := newSession(cfg, opts, handler)
	if err := s.client.Connect(ctx); err != nil {
		return err
	}
	defer s.client.Disconnect()

	return ui.Run(ctx, ui.Options{
		Client:    s.client,
		Store:     s.store,
		Events:    events,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefs.DefaultPath(),
	})
}

func noArgs(command string, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: %s takes no arguments", ErrUsage, command)
	}
	return nil
}

func parseVolumeArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: set_volume requires a volume between 0 and 100", ErrUsage)
	}
	volume, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: volume %q is not a number", ErrUsage, args[0])
	}
	if volume < 0 || volume > 100 {
		return 0, fmt.Errorf("%w: volume %d out of range 0-100", ErrUsage, volume)
	}
	return volume, nil
}

func parsePlaylistOpenArgs(args []string) (int32, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: playlist_open requires a playlist id", ErrUsage)
	}
	id, err := parseInt32(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: playlist id %q is not a number", ErrUsage, args[0])
	}
	return id, nil
}

func parseChangeSongArgs(args []string) (playlistID, index int32, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%w: change_song requires a playlist id and a song index", ErrUsage)
	}
	playlistID, err = parseInt32(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: playlist id %q is not a number", ErrUsage, args[0])
	}
	index, err = parseInt32(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: song index %q is not a number", ErrUsage, args[1])
	}
	if index < 0 {
		return 0, 0, fmt.Errorf("%w: song index must not be negative", ErrUsage)
	}
	return playlistID, index, nil
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
