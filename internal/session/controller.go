// Package session drives the connection state machine for one chat
// session and gates outbound user commands on connection health.
package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chatterbox/internal/canon"
	"chatterbox/pkg/interfaces"
	"chatterbox/pkg/types"
)

// Badge texts shown by the renderer for each transition.
const (
	BadgeConnected        = "Connected"
	BadgeDisconnected     = "Disconnected"
	BadgeConnectionError  = "Connection Error"
	BadgeReconnected      = "Reconnected"
	BadgeConnectionFailed = "Connection Failed"
)

// timestampLayout matches the server's display-string format so local
// echoes line up with server-stamped messages.
const timestampLayout = "15:04:05"

// Controller owns the session's ConnectionState and translates
// transport events into state transitions and render instructions. All
// methods run on the engine's event loop.
type Controller struct {
	identity    types.SessionIdentity
	send        func(types.Command) // outbound command sink
	renderer    interfaces.Renderer
	scheduler   interfaces.Scheduler
	navigator   interfaces.Navigator
	departDelay time.Duration
	now         func() time.Time
	logger      *zap.Logger

	state  types.ConnectionState
	reason string // last-known failure reason, empty while healthy
}

// NewController creates a controller in the Disconnected state.
// departDelay is how long a confirmed leave waits before signaling the
// navigator, giving the leave command time to reach the server.
func NewController(
	identity types.SessionIdentity,
	send func(types.Command),
	renderer interfaces.Renderer,
	scheduler interfaces.Scheduler,
	navigator interfaces.Navigator,
	departDelay time.Duration,
	logger *zap.Logger,
) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		identity:    identity,
		send:        send,
		renderer:    renderer,
		scheduler:   scheduler,
		navigator:   navigator,
		departDelay: departDelay,
		now:         time.Now,
		logger:      logger,
		state:       types.StateDisconnected,
	}
}

// State returns the current connection state.
func (c *Controller) State() types.ConnectionState { return c.state }

// Reason returns the last-known failure reason, if any.
func (c *Controller) Reason() string { return c.reason }

// Identity returns the immutable session identity.
func (c *Controller) Identity() types.SessionIdentity { return c.identity }

// BeginConnecting marks the initial dial in progress. The transport
// owns redial attempts; this is only for the first connect.
func (c *Controller) BeginConnecting() {
	c.state = types.StateConnecting
}

// HandleConnected processes a transport "connected" event: join the
// room under the session identity and re-enable input.
func (c *Controller) HandleConnected() {
	c.state = types.StateConnected
	c.reason = ""
	c.logger.Info("connected", zap.String("room", c.identity.Room))
	c.send(types.JoinCommand{Username: c.identity.Username, Room: c.identity.Room})
	c.renderer.SetInputEnabled(true)
	c.renderer.SetConnectionBadge(BadgeConnected, types.StateConnected)
}

// HandleDisconnected processes a transport "disconnected" event. Only
// an established link can drop; the event is ignored in other states.
func (c *Controller) HandleDisconnected(reason string) {
	if c.state != types.StateConnected && c.state != types.StateReconnecting {
		return
	}
	c.state = types.StateDisconnected
	c.reason = reason
	c.logger.Warn("disconnected", zap.String("reason", reason))
	c.renderer.SetInputEnabled(false)
	c.renderer.SetConnectionBadge(BadgeDisconnected, types.StateDisconnected)
}

// HandleConnectError processes a failed dial attempt.
func (c *Controller) HandleConnectError(errText string) {
	c.state = types.StateDisconnected
	c.reason = errText
	c.logger.Warn("connect error", zap.String("error", errText))
	c.renderer.SetInputEnabled(false)
	c.renderer.SetConnectionBadge(BadgeConnectionError, types.StateDisconnected)
}

// HandleReconnecting notes a redial attempt in progress. No render
// instruction is emitted; the badge changes only on the outcome.
func (c *Controller) HandleReconnecting(attempt int) {
	c.state = types.StateReconnecting
	c.logger.Info("reconnecting", zap.Int("attempt", attempt))
}

// HandleReconnected processes a successful redial. The transport emits
// a connected event first, so the join command and input enablement
// have already happened by the time the badge flips to Reconnected.
func (c *Controller) HandleReconnected(attempt int) {
	c.state = types.StateConnected
	c.reason = ""
	c.logger.Info("reconnected", zap.Int("attempt", attempt))
	c.renderer.SetConnectionBadge(BadgeReconnected, types.StateConnected)
}

// HandleReconnectFailed processes redial exhaustion. Input stays
// disabled; only the transport collaborator can re-enter Connecting.
func (c *Controller) HandleReconnectFailed() {
	c.state = types.StateFailed
	c.logger.Error("reconnect attempts exhausted")
	c.renderer.SetConnectionBadge(BadgeConnectionFailed, types.StateFailed)
}

// SendMessage publishes one chat line. Permitted only while Connected
// and with non-empty trimmed text; otherwise it is a silent no-op, a
// normal UI race rather than a fault. On success the outbound command
// is emitted and the constructed own-origin message returned; display
// happens when the server echoes the line back to the room.
func (c *Controller) SendMessage(raw string) (types.Message, bool) {
	text := strings.TrimSpace(raw)
	if c.state != types.StateConnected || text == "" {
		return types.Message{}, false
	}
	c.send(types.PublishCommand{
		Username: c.identity.Username,
		Text:     text,
		Room:     c.identity.Room,
	})
	msg := types.Message{
		ID:        uuid.NewString(),
		Sender:    c.identity.Username,
		Raw:       text,
		Canonical: canon.Canonicalize(text),
		Timestamp: c.now().Format(timestampLayout),
		Origin:    types.OriginOwn,
	}
	return msg, true
}

// Leave executes a confirmed room departure: emit the leave command,
// then signal the navigator after the depart delay. Confirmation
// itself is owned by the presentation collaborator.
func (c *Controller) Leave() {
	c.logger.Info("leaving room", zap.String("room", c.identity.Room))
	c.send(types.LeaveCommand{Username: c.identity.Username, Room: c.identity.Room})
	c.scheduler.Schedule(c.departDelay, c.navigator.Depart)
}

// Teardown emits a best-effort leave for process exit. Fire and
// forget: no acknowledgement is awaited and no navigation follows.
func (c *Controller) Teardown() {
	c.send(types.LeaveCommand{Username: c.identity.Username, Room: c.identity.Room})
}
