package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clemctl/clemctl/internal/remotemsg"
	"github.com/clemctl/clemctl/internal/state"
)

// Connection defaults.
const (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 5500
	DefaultReconnectDelay = 15 * time.Second

	defaultDialTimeout = 10 * time.Second
)

var (
	// ErrNotConnected is returned by command methods when no socket is
	// open. Sends on a closed client fail loudly instead of dropping the
	// command on the floor.
	ErrNotConnected = errors.New("remote: not connected")

	// ErrTerminated is returned by command methods once Disconnect has
	// been called or the client has given up permanently.
	ErrTerminated = errors.New("remote: client terminated")
)

// MessageHandler observes every decoded inbound message, invoked after the
// message has been applied to the state store. Handlers run on the receive
// goroutine; slow handlers delay protocol reads.
type MessageHandler func(*remotemsg.Message)

// Options configures a Client. The zero value connects to a local player
// with no auth code and no reconnection.
type Options struct {
	Host           string        // player address, default 127.0.0.1
	Port           int           // remote-control port, default 5500
	AuthCode       int           // pairing code shown by the player, 0 when unset
	Reconnect      bool          // redial after the connection is lost
	ReconnectDelay time.Duration // fixed delay between attempts, default 15s
	DialTimeout    time.Duration // default 10s
	Handler        MessageHandler
	Logger         *zerolog.Logger // nil silences the client
}

// Client owns one connection to the player: the socket, the background
// receive loop feeding the state store, and the reconnect policy.
type Client struct {
	host           string
	port           int
	authCode       int
	reconnect      bool
	reconnectDelay time.Duration
	dialTimeout    time.Duration
	handler        MessageHandler
	log            zerolog.Logger
	store          *state.Store

	mu           sync.Mutex
	conn         net.Conn
	started      bool
	terminated   bool
	authRejected bool

	quit chan struct{} // closed by terminate
	done chan struct{} // closed when the background loop has exited
}

// New builds a client around store. Nothing touches the network until
// Connect is called.
func New(store *state.Store, opts Options) *Client {
	host := opts.Host
	if host == "" {
		host = DefaultHost
	}
	port := opts.Port
	if port == 0 {
		port = DefaultPort
	}
	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	timeout := opts.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{
		host:           host,
		port:           port,
		authCode:       opts.AuthCode,
		reconnect:      opts.Reconnect,
		reconnectDelay: delay,
		dialTimeout:    timeout,
		handler:        opts.Handler,
		log:            logger,
		store:          store,
		quit:           make(chan struct{}),
		done:           make(chan struct{}),
	}
}

// Connect opens the TCP connection, performs the CONNECT handshake, and
// starts the background receive loop.
//
// Without reconnect enabled a dial failure terminates the client and is
// returned. With reconnect enabled the failure is logged instead, the
// background loop keeps retrying every ReconnectDelay until Disconnect, and
// Connect returns nil.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.terminated {
		c.mu.Unlock()
		return ErrTerminated
	}
	if c.started {
		c.mu.Unlock()
		return errors.New("remote: Connect called twice")
	}
	c.started = true
	c.mu.Unlock()

	conn, err := c.dial(ctx)
	if err != nil {
		if !c.reconnect {
			c.terminate()
			close(c.done)
			return err
		}
		c.log.Warn().Err(err).Dur("retry_in", c.reconnectDelay).Msg("connect failed, retrying")
		go c.run(nil)
		return nil
	}

	c.setConn(conn)
	go c.run(conn)
	return nil
}

// dial opens the socket and sends the handshake.
func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(c.host, strconv.Itoa(c.port))
	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}

	handshake := &remotemsg.Message{
		Type: remotemsg.MsgTypeConnect,
		RequestConnect: &remotemsg.RequestConnect{
			AuthCode:          int32(c.authCode),
			SendPlaylistSongs: false,
			Downloader:        false,
		},
	}
	if err := writeMessage(conn, handshake); err != nil {
		conn.Close()
		return nil, fmt.Errorf("handshake: %w", err)
	}

	c.log.Info().Str("addr", addr).Msg("connected")
	return conn, nil
}

// run is the connection lifecycle loop: receive until the connection dies,
// then either reconnect after the fixed delay or terminate. conn may be nil
// when the initial dial already failed in reconnect mode.
func (c *Client) run(conn net.Conn) {
	defer close(c.done)

	for {
		if conn != nil {
			err := c.receiveLoop(conn)
			conn.Close()
			c.clearConn()
			c.store.SetDisconnected()
			switch {
			case errors.Is(err, io.EOF):
				c.log.Info().Msg("server closed the connection")
			case errors.Is(err, net.ErrClosed):
				c.log.Debug().Msg("connection closed locally")
			default:
				c.log.Warn().Err(err).Msg("connection lost")
			}
		}

		if !c.shouldReconnect() {
			c.terminate()
			return
		}
		if !c.sleepReconnect() {
			return
		}

		next, err := c.dial(context.Background())
		if err != nil {
			c.log.Warn().Err(err).Dur("retry_in", c.reconnectDelay).Msg("reconnect failed")
			conn = nil
			continue
		}
		c.setConn(next)
		conn = next
	}
}

// receiveLoop reads, decodes, and dispatches frames until the connection
// fails or the peer closes it. A decode failure is fatal for the
// connection; resynchronizing mid-stream is not possible.
func (c *Client) receiveLoop(conn net.Conn) error {
	for {
		payload, err := remotemsg.ReadFrame(conn)
		if err != nil {
			return err
		}
		msg, err := remotemsg.Decode(payload)
		if err != nil {
			return err
		}

		c.store.Touch(time.Now())
		c.dispatch(msg)
		if c.handler != nil {
			c.handler(msg)
		}
	}
}

// send serializes msg, stamps the protocol version, and writes one frame.
// The write happens under the client mutex so concurrent commands cannot
// interleave partial frames.
func (c *Client) send(msg *remotemsg.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.terminated {
		return ErrTerminated
	}
	if c.conn == nil {
		return ErrNotConnected
	}
	if err := writeMessage(c.conn, msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

func writeMessage(conn net.Conn, msg *remotemsg.Message) error {
	msg.Version = remotemsg.ProtocolVersion
	return remotemsg.WriteFrame(conn, remotemsg.Encode(msg))
}

// Disconnect marks the client terminated, downgrades the state to
// Disconnected, and closes the socket if one is open. Idempotent and safe
// to call from any goroutine.
func (c *Client) Disconnect() {
	c.terminate()
	c.store.SetDisconnected()
}

// Done closes once the background loop has fully exited, or on the Connect
// call itself when the dial fails with reconnect disabled. A client whose
// Connect was never called never closes it.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Terminated reports whether the client has been shut down for good.
func (c *Client) Terminated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.terminated
}

// Connected reports whether a socket is currently open.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// terminate flips the terminated flag exactly once, wakes the background
// loop, and closes any open socket.
func (c *Client) terminate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.terminated {
		return
	}
	c.terminated = true
	close(c.quit)
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Client) setConn(conn net.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.terminated {
		conn.Close()
		return
	}
	c.conn = conn
}

func (c *Client) clearConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn = nil
}

func (c *Client) shouldReconnect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconnect && !c.terminated && !c.authRejected
}

// sleepReconnect waits one reconnect delay, returning false when the client
// is terminated first.
func (c *Client) sleepReconnect() bool {
	timer := time.NewTimer(c.reconnectDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-c.quit:
		return false
	}
}
