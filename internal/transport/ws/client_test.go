package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatterbox/pkg/types"
)

type testServer struct {
	*httptest.Server
	conns  chan *websocket.Conn
	frames chan []byte
}

// newTestServer upgrades every request and fans inbound frames into a
// shared channel. Connections are handed to the test for pushing
// frames or forcing drops.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		conns:  make(chan *websocket.Conn, 4),
		frames: make(chan []byte, 16),
	}
	upgrader := websocket.Upgrader{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ts.conns <- conn
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			ts.frames <- raw
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func (ts *testServer) accept(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-ts.conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("no connection accepted")
		return nil
	}
}

func (ts *testServer) nextFrame(t *testing.T) []byte {
	t.Helper()
	select {
	case raw := <-ts.frames:
		return raw
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
		return nil
	}
}

func testConfig(url string) Config {
	return Config{
		URL:               url,
		HandshakeTimeout:  2 * time.Second,
		WriteTimeout:      2 * time.Second,
		SendBuffer:        16,
		EventBuffer:       64,
		ReconnectAttempts: 3,
		ReconnectDelay:    20 * time.Millisecond,
	}
}

func nextEvent(t *testing.T, c *Client) types.Event {
	t.Helper()
	select {
	case ev, ok := <-c.Events():
		require.True(t, ok, "event stream closed unexpectedly")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return nil
	}
}

func TestDialEmitsConnected(t *testing.T) {
	ts := newTestServer(t)
	c, err := Dial(context.Background(), testConfig(ts.wsURL()), nil)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, types.ConnectedEvent{}, nextEvent(t, c))
}

func TestDialFailureIsReturned(t *testing.T) {
	_, err := Dial(context.Background(), testConfig("ws://127.0.0.1:1/ws"), nil)
	assert.Error(t, err)
}

func TestSendWritesEnvelopeFrames(t *testing.T) {
	ts := newTestServer(t)
	c, err := Dial(context.Background(), testConfig(ts.wsURL()), nil)
	require.NoError(t, err)
	defer c.Close()
	ts.accept(t)

	require.NoError(t, c.Send(types.JoinCommand{Username: "alice", Room: "general"}))
	frame := ts.nextFrame(t)
	var env envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	assert.Equal(t, "join", env.Event)
	assert.Contains(t, string(env.Data), `"alice"`)
}

func TestInboundFramesBecomeEvents(t *testing.T) {
	ts := newTestServer(t)
	c, err := Dial(context.Background(), testConfig(ts.wsURL()), nil)
	require.NoError(t, err)
	defer c.Close()
	conn := ts.accept(t)

	require.Equal(t, types.ConnectedEvent{}, nextEvent(t, c))

	// A malformed frame is dropped; the following valid frame still
	// comes through on the same connection.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"message","data":{"username":""}}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"message","data":{"username":"bob","message":"hi","timestamp":"t"}}`)))

	ev := nextEvent(t, c)
	assert.Equal(t, types.MessageEvent{Username: "bob", Text: "hi", Timestamp: "t"}, ev)
}

func TestDropAndRedial(t *testing.T) {
	ts := newTestServer(t)
	c, err := Dial(context.Background(), testConfig(ts.wsURL()), nil)
	require.NoError(t, err)
	defer c.Close()
	conn := ts.accept(t)

	require.Equal(t, types.ConnectedEvent{}, nextEvent(t, c))
	conn.Close()

	assert.IsType(t, types.DisconnectedEvent{}, nextEvent(t, c))
	assert.Equal(t, types.ReconnectingEvent{Attempt: 1}, nextEvent(t, c))
	assert.Equal(t, types.ConnectedEvent{}, nextEvent(t, c))
	assert.Equal(t, types.ReconnectedEvent{Attempt: 1}, nextEvent(t, c))
	ts.accept(t)
}

func TestRedialExhaustionEndsStream(t *testing.T) {
	ts := newTestServer(t)
	cfg := testConfig(ts.wsURL())
	cfg.ReconnectAttempts = 2
	c, err := Dial(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer c.Close()
	conn := ts.accept(t)

	require.Equal(t, types.ConnectedEvent{}, nextEvent(t, c))
	ts.Close() // no server to come back to
	conn.Close()

	var sawFailure bool
	deadline := time.After(5 * time.Second)
	for !sawFailure {
		select {
		case ev, ok := <-c.Events():
			if !ok {
				t.Fatal("stream closed before reconnect failure was reported")
			}
			if _, failed := ev.(types.ReconnectFailedEvent); failed {
				sawFailure = true
			}
		case <-deadline:
			t.Fatal("no reconnect failure reported")
		}
	}

	select {
	case _, ok := <-c.Events():
		assert.False(t, ok, "stream must close after exhaustion")
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close")
	}
}

func TestSendAfterCloseFails(t *testing.T) {
	ts := newTestServer(t)
	c, err := Dial(context.Background(), testConfig(ts.wsURL()), nil)
	require.NoError(t, err)

	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Send(types.LeaveCommand{Username: "alice", Room: "general"}), types.ErrTransportClosed)
	assert.NoError(t, c.Close(), "close is idempotent")
}
