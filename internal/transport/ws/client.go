// Package ws implements the realtime transport over a WebSocket link:
// it dials the server, converts wire frames into typed events, carries
// outbound commands, and owns the redial policy after a drop.
package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chatterbox/pkg/types"
)

// Config carries the transport's tunables.
type Config struct {
	URL               string
	HandshakeTimeout  time.Duration
	WriteTimeout      time.Duration
	PingInterval      time.Duration
	SendBuffer        int
	EventBuffer       int
	ReconnectAttempts int
	ReconnectDelay    time.Duration
}

// Client is a WebSocket transport. A single writer goroutine serializes
// all frame writes; the read goroutine owns the redial loop so the
// event stream carries the full connection lifecycle.
type Client struct {
	cfg    Config
	logger *zap.Logger

	events chan types.Event
	sendCh chan []byte
	done   chan struct{}

	mu        sync.Mutex
	conn      *websocket.Conn
	closeOnce sync.Once
}

// Dial connects to the server and starts the transport goroutines. The
// initial dial failure is returned to the caller; drops after that are
// reported through the event stream and handled by the redial loop.
func Dial(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		cfg:    cfg,
		logger: logger,
		events: make(chan types.Event, cfg.EventBuffer),
		sendCh: make(chan []byte, cfg.SendBuffer),
		done:   make(chan struct{}),
	}
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	c.setConn(conn)
	c.emit(types.ConnectedEvent{})
	go c.writeLoop()
	go c.run()
	return c, nil
}

// Events returns the inbound event stream.
func (c *Client) Events() <-chan types.Event { return c.events }

// Send queues one outbound command for the writer goroutine.
func (c *Client) Send(cmd types.Command) error {
	data, err := encodeCommand(cmd)
	if err != nil {
		return err
	}
	select {
	case <-c.done:
		return types.ErrTransportClosed
	case c.sendCh <- data:
		return nil
	case <-time.After(c.cfg.WriteTimeout):
		return types.ErrTransportClosed
	}
}

// Close shuts the transport down permanently. Idempotent.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.mu.Lock()
		if c.conn != nil {
			c.conn.Close()
		}
		c.mu.Unlock()
	})
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.PingInterval > 0 {
		deadline := 2 * c.cfg.PingInterval
		conn.SetReadDeadline(time.Now().Add(deadline))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(deadline))
		})
	}
	return conn, nil
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

func (c *Client) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

func (c *Client) closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// emit delivers an event unless the transport is shutting down.
func (c *Client) emit(ev types.Event) {
	select {
	case <-c.done:
	case c.events <- ev:
	}
}

// run reads frames until the link drops, then drives the redial loop.
// The events channel closes when the transport is done for good.
func (c *Client) run() {
	defer close(c.events)
	for {
		err := c.readLoop()
		if c.closed() {
			return
		}
		reason := "connection lost"
		if err != nil {
			reason = err.Error()
		}
		c.emit(types.DisconnectedEvent{Reason: reason})
		if !c.redial() {
			return
		}
	}
}

func (c *Client) readLoop() error {
	conn := c.current()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		ev, err := decodeFrame(raw)
		if err != nil {
			// Fail closed: a malformed frame is dropped, never fatal.
			c.logger.Debug("dropping frame", zap.Error(err))
			continue
		}
		c.emit(ev)
	}
}

// redial attempts to re-establish the link. Each failed attempt emits a
// connect error; exhaustion emits reconnect failed and ends the
// transport. A successful redial emits connected before reconnected so
// the session re-joins its room first.
func (c *Client) redial() bool {
	for attempt := 1; attempt <= c.cfg.ReconnectAttempts; attempt++ {
		c.emit(types.ReconnectingEvent{Attempt: attempt})
		select {
		case <-c.done:
			return false
		case <-time.After(c.cfg.ReconnectDelay):
		}
		conn, err := c.dial(context.Background())
		if err != nil {
			c.logger.Warn("redial failed", zap.Int("attempt", attempt), zap.Error(err))
			c.emit(types.ConnectErrorEvent{Err: err.Error()})
			continue
		}
		c.setConn(conn)
		c.emit(types.ConnectedEvent{})
		c.emit(types.ReconnectedEvent{Attempt: attempt})
		return true
	}
	c.emit(types.ReconnectFailedEvent{})
	return false
}

// writeLoop is the sole writer: it serializes command frames and
// keepalive pings onto whichever connection is current.
func (c *Client) writeLoop() {
	var ticker *time.Ticker
	var ping <-chan time.Time
	if c.cfg.PingInterval > 0 {
		ticker = time.NewTicker(c.cfg.PingInterval)
		ping = ticker.C
		defer ticker.Stop()
	}
	for {
		select {
		case <-c.done:
			return
		case data := <-c.sendCh:
			c.write(websocket.TextMessage, data)
		case <-ping:
			c.write(websocket.PingMessage, nil)
		}
	}
}

func (c *Client) write(messageType int, data []byte) {
	conn := c.current()
	if conn == nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	if err := conn.WriteMessage(messageType, data); err != nil {
		// The read loop observes the same failure and owns recovery.
		c.logger.Debug("write failed", zap.Error(err))
	}
}
