package remote

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/clemctl/clemctl/internal/remotemsg"
	"github.com/clemctl/clemctl/internal/state"
)

// testServer listens on a loopback port and hands accepted connections to
// the test via a channel.
type testServer struct {
	ln    net.Listener
	conns chan net.Conn
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &testServer{ln: ln, conns: make(chan net.Conn, 4)}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			s.conns <- conn
		}
	}()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *testServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *testServer) accept(t *testing.T) net.Conn {
	t.Helper()
	select {
	case conn := <-s.conns:
		t.Cleanup(func() { conn.Close() })
		return conn
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the client to connect")
		return nil
	}
}

func serverRecv(t *testing.T, conn net.Conn) *remotemsg.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	payload, err := remotemsg.ReadFrame(conn)
	if err != nil {
		t.Fatalf("server read: %v", err)
	}
	msg, err := remotemsg.Decode(payload)
	if err != nil {
		t.Fatalf("server decode: %v", err)
	}
	return msg
}

func serverSend(t *testing.T, conn net.Conn, msg *remotemsg.Message) {
	t.Helper()
	msg.Version = remotemsg.ProtocolVersion
	if err := remotemsg.WriteFrame(conn, remotemsg.Encode(msg)); err != nil {
		t.Fatalf("server write: %v", err)
	}
}

// connect dials the test server and drains the handshake frame.
func connect(t *testing.T, s *testServer, opts Options) (*Client, *state.Store, net.Conn) {
	t.Helper()
	opts.Host = "127.0.0.1"
	opts.Port = s.port()
	store := state.NewStore()
	c := New(store, opts)
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	t.Cleanup(c.Disconnect)
	conn := s.accept(t)
	if msg := serverRecv(t, conn); msg.Type != remotemsg.MsgTypeConnect {
		t.Fatalf("first frame type = %v, want CONNECT", msg.Type)
	}
	return c, store, conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func waitDone(t *testing.T, c *Client) {
	t.Helper()
	select {
	case <-c.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("client did not shut down")
	}
}

func TestClient_ConnectSendsHandshake(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	store := state.NewStore()
	c := New(store, Options{Host: "127.0.0.1", Port: srv.port(), AuthCode: 1234})
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	t.Cleanup(c.Disconnect)

	conn := srv.accept(t)
	msg := serverRecv(t, conn)
	if msg.Type != remotemsg.MsgTypeConnect {
		t.Fatalf("type = %v, want CONNECT", msg.Type)
	}
	if msg.Version != remotemsg.ProtocolVersion {
		t.Fatalf("version = %d, want %d", msg.Version, remotemsg.ProtocolVersion)
	}
	if msg.RequestConnect == nil {
		t.Fatal("handshake carries no RequestConnect payload")
	}
	if msg.RequestConnect.AuthCode != 1234 {
		t.Fatalf("auth code = %d, want 1234", msg.RequestConnect.AuthCode)
	}
	if msg.RequestConnect.SendPlaylistSongs || msg.RequestConnect.Downloader {
		t.Fatalf("handshake flags = %+v, want both false", msg.RequestConnect)
	}
}

func TestClient_CommandsStampTypeAndVersion(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c, _, conn := connect(t, srv, Options{})

	tests := []struct {
		name  string
		send  func() error
		want  remotemsg.MsgType
		check func(t *testing.T, msg *remotemsg.Message)
	}{
		{"play", c.Play, remotemsg.MsgTypePlay, nil},
		{"playpause", c.PlayPause, remotemsg.MsgTypePlayPause, nil},
		{"pause", c.Pause, remotemsg.MsgTypePause, nil},
		{"stop", c.Stop, remotemsg.MsgTypeStop, nil},
		{"next", c.Next, remotemsg.MsgTypeNext, nil},
		{"previous", c.Previous, remotemsg.MsgTypePrevious, nil},
		{"request playlists", c.RequestPlaylists, remotemsg.MsgTypeRequestPlaylists, nil},
		{
			"set volume",
			func() error { return c.SetVolume(42) },
			remotemsg.MsgTypeSetVolume,
			func(t *testing.T, msg *remotemsg.Message) {
				if msg.RequestSetVolume == nil || msg.RequestSetVolume.Volume != 42 {
					t.Fatalf("payload = %+v, want volume 42", msg.RequestSetVolume)
				}
			},
		},
		{
			"open playlist",
			func() error { return c.OpenPlaylist(7) },
			remotemsg.MsgTypeOpenPlaylist,
			func(t *testing.T, msg *remotemsg.Message) {
				if msg.RequestOpenPlaylist == nil || msg.RequestOpenPlaylist.PlaylistID != 7 {
					t.Fatalf("payload = %+v, want playlist 7", msg.RequestOpenPlaylist)
				}
			},
		},
		{
			"change song",
			func() error { return c.ChangeSong(7, 3) },
			remotemsg.MsgTypeChangeSong,
			func(t *testing.T, msg *remotemsg.Message) {
				if msg.RequestChangeSong == nil ||
					msg.RequestChangeSong.PlaylistID != 7 ||
					msg.RequestChangeSong.SongIndex != 3 {
					t.Fatalf("payload = %+v, want playlist 7 index 3", msg.RequestChangeSong)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.send(); err != nil {
				t.Fatalf("command returned error: %v", err)
			}
			msg := serverRecv(t, conn)
			if msg.Type != tt.want {
				t.Fatalf("type = %v, want %v", msg.Type, tt.want)
			}
			if msg.Version != remotemsg.ProtocolVersion {
				t.Fatalf("version = %d, want %d", msg.Version, remotemsg.ProtocolVersion)
			}
			if tt.check != nil {
				tt.check(t, msg)
			}
		})
	}
}

func TestClient_ScenarioInfoPauseVolume(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	_, store, conn := connect(t, srv, Options{})

	serverSend(t, conn, &remotemsg.Message{
		Type: remotemsg.MsgTypeInfo,
		Info: &remotemsg.ResponseClementineInfo{Version: 21, State: remotemsg.EngineStatePlaying},
	})
	waitFor(t, "INFO to land", func() bool {
		snap := store.Snapshot()
		return snap.Version == 21 && snap.Status == state.StatusPlaying
	})

	serverSend(t, conn, &remotemsg.Message{Type: remotemsg.MsgTypePause})
	waitFor(t, "PAUSE to land", func() bool {
		return store.Snapshot().Status == state.StatusPaused
	})

	serverSend(t, conn, &remotemsg.Message{
		Type:             remotemsg.MsgTypeSetVolume,
		RequestSetVolume: &remotemsg.RequestSetVolume{Volume: 42},
	})
	waitFor(t, "SET_VOLUME to land", func() bool {
		return store.Snapshot().Volume == 42
	})

	if store.Snapshot().LastUpdate.IsZero() {
		t.Fatal("LastUpdate still zero after three messages")
	}
}

func TestClient_HandlerObservesMessages(t *testing.T) {
	t.Parallel()

	got := make(chan *remotemsg.Message, 4)
	srv := newTestServer(t)
	_, _, conn := connect(t, srv, Options{
		Handler: func(msg *remotemsg.Message) { got <- msg },
	})

	serverSend(t, conn, &remotemsg.Message{Type: remotemsg.MsgTypeKeepAlive})
	select {
	case msg := <-got:
		if msg.Type != remotemsg.MsgTypeKeepAlive {
			t.Fatalf("handler saw type = %v, want KEEP_ALIVE", msg.Type)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("handler never ran")
	}
}

func TestClient_TruncatedFrameTerminates(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c, store, conn := connect(t, srv, Options{})

	// Header announces 100 bytes, only 40 follow before the close.
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], 100)
	if _, err := conn.Write(header[:]); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if _, err := conn.Write(make([]byte, 40)); err != nil {
		t.Fatalf("write body: %v", err)
	}
	conn.Close()

	waitDone(t, c)
	if !c.Terminated() {
		t.Fatal("Terminated() = false after the connection broke")
	}
	if got := store.Snapshot().Status; got != state.StatusDisconnected {
		t.Fatalf("status = %v, want %v", got, state.StatusDisconnected)
	}
}

func TestClient_ReconnectsAfterDelay(t *testing.T) {
	t.Parallel()

	const delay = 250 * time.Millisecond
	srv := newTestServer(t)
	c, _, conn := connect(t, srv, Options{Reconnect: true, ReconnectDelay: delay})

	start := time.Now()
	conn.Close()

	second := srv.accept(t)
	if elapsed := time.Since(start); elapsed < delay {
		t.Fatalf("reconnected after %v, want at least %v", elapsed, delay)
	}
	if msg := serverRecv(t, second); msg.Type != remotemsg.MsgTypeConnect {
		t.Fatalf("second connection frame type = %v, want CONNECT", msg.Type)
	}

	c.Disconnect()
	waitDone(t, c)
}

func TestClient_ConnectErrorWithoutReconnect(t *testing.T) {
	t.Parallel()

	store := state.NewStore()
	c := New(store, Options{Host: "127.0.0.1", Port: 1, DialTimeout: time.Second})
	if err := c.Connect(context.Background()); err == nil {
		t.Fatal("Connect returned nil error, want dial failure")
	}
	if !c.Terminated() {
		t.Fatal("Terminated() = false after a failed Connect")
	}
	waitDone(t, c)
}

func TestClient_SendFailsWhenNotConnected(t *testing.T) {
	c := New(state.NewStore(), Options{})
	if err := c.Play(); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Play before Connect = %v, want ErrNotConnected", err)
	}

	c.Disconnect()
	if err := c.Play(); !errors.Is(err, ErrTerminated) {
		t.Fatalf("Play after Disconnect = %v, want ErrTerminated", err)
	}
}

func TestClient_DisconnectIsIdempotent(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c, _, _ := connect(t, srv, Options{})

	c.Disconnect()
	c.Disconnect()
	waitDone(t, c)
	if !c.Terminated() {
		t.Fatal("Terminated() = false after Disconnect")
	}
}
