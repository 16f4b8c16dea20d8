// Package engine wires the session components together: it owns the
// single event loop that consumes transport events and user actions,
// mutates session state, and emits render instructions.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chatterbox/internal/canon"
	"chatterbox/internal/notify"
	"chatterbox/internal/session"
	"chatterbox/internal/typing"
	"chatterbox/pkg/interfaces"
	"chatterbox/pkg/types"
)

// actionBuffer sizes the user-action queue. Keystrokes are the highest
// frequency producer; the buffer absorbs bursts without blocking the
// UI goroutine.
const actionBuffer = 256

// Options carries the engine's timing knobs.
type Options struct {
	TypingIdle      time.Duration // quiet period before a typing stop signal
	NotificationTTL time.Duration // auto-expiry window for system notifications
	DepartDelay     time.Duration // wait between leave command and navigation
}

// DefaultOptions mirrors the timings of the original client.
func DefaultOptions() Options {
	return Options{
		TypingIdle:      time.Second,
		NotificationTTL: 12 * time.Second,
		DepartDelay:     time.Second,
	}
}

// Engine is the composition root. Exactly one goroutine, the Run loop,
// touches session state: transport events arrive on the transport
// channel, user actions and timer callbacks are posted onto the action
// channel, and each is handled to completion before the next.
type Engine struct {
	identity   types.SessionIdentity
	transport  interfaces.Transport
	renderer   interfaces.Renderer
	controller *session.Controller
	typing     *typing.Coordinator
	notify     *notify.Lifecycle
	roster     types.PresenceRoster
	logger     *zap.Logger

	actions   chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// New creates an engine. scheduler is the raw timer collaborator; the
// engine wraps it so fired callbacks are marshaled back onto the event
// loop before touching state.
func New(
	identity types.SessionIdentity,
	transport interfaces.Transport,
	renderer interfaces.Renderer,
	scheduler interfaces.Scheduler,
	navigator interfaces.Navigator,
	opts Options,
	logger *zap.Logger,
) (*Engine, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		identity:  identity,
		transport: transport,
		renderer:  renderer,
		logger:    logger,
		actions:   make(chan func(), actionBuffer),
		done:      make(chan struct{}),
	}
	sched := &loopScheduler{engine: e, inner: scheduler}
	e.controller = session.NewController(
		identity, e.sendCommand, renderer, sched, navigator, opts.DepartDelay, logger,
	)
	e.typing = typing.NewCoordinator(
		identity.Username, opts.TypingIdle, sched, e.signalTyping, logger,
	)
	e.notify = notify.NewLifecycle(opts.NotificationTTL, sched, renderer.DismissNotification)
	return e, nil
}

// Run processes events until the transport closes or ctx is canceled.
// It must be called exactly once.
func (e *Engine) Run(ctx context.Context) error {
	e.controller.BeginConnecting()
	for {
		select {
		case ev, ok := <-e.transport.Events():
			if !ok {
				return nil
			}
			e.handleEvent(ev)
		case fn := <-e.actions:
			fn()
		case <-ctx.Done():
			e.Close()
			return ctx.Err()
		}
	}
}

// Close tears the session down: best-effort leave, then transport
// shutdown. Safe to call from any goroutine, any number of times.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
		e.controller.Teardown()
		if err := e.transport.Close(); err != nil {
			e.logger.Debug("transport close", zap.Error(err))
		}
	})
}

// Keystroke registers local input activity. Safe for UI goroutines.
func (e *Engine) Keystroke() {
	e.post(e.keystroke)
}

// Send publishes one chat line. Safe for UI goroutines.
func (e *Engine) Send(text string) {
	e.post(func() { e.sendMessage(text) })
}

// ConfirmLeave executes a departure the user already confirmed. Safe
// for UI goroutines.
func (e *Engine) ConfirmLeave() {
	e.post(e.controller.Leave)
}

// DismissNotification manually dismisses a shown notification. Safe
// for UI goroutines.
func (e *Engine) DismissNotification(id string) {
	e.post(func() { e.notify.Dismiss(id) })
}

// post queues fn for the event loop, dropping it if the session is
// already closed.
func (e *Engine) post(fn func()) {
	select {
	case <-e.done:
	case e.actions <- fn:
	}
}

func (e *Engine) handleEvent(ev types.Event) {
	switch ev := ev.(type) {
	case types.ConnectedEvent:
		e.controller.HandleConnected()
	case types.DisconnectedEvent:
		e.controller.HandleDisconnected(ev.Reason)
	case types.ConnectErrorEvent:
		e.controller.HandleConnectError(ev.Err)
	case types.ReconnectingEvent:
		e.controller.HandleReconnecting(ev.Attempt)
	case types.ReconnectedEvent:
		e.controller.HandleReconnected(ev.Attempt)
	case types.ReconnectFailedEvent:
		e.controller.HandleReconnectFailed()
	case types.MessageEvent:
		e.handleMessage(ev)
	case types.UserJoinedEvent:
		e.handleAnnouncement(ev.Message, ev.Timestamp)
	case types.UserLeftEvent:
		e.handleAnnouncement(ev.Message, ev.Timestamp)
	case types.PresenceEvent:
		e.handlePresence(ev)
	case types.TypingEvent:
		e.handleTyping(ev)
	default:
		e.logger.Debug("unhandled event", zap.Any("event", ev))
	}
}

// handleMessage turns a server chat frame into a rendered Message.
// Fail closed: frames missing required fields are dropped, not fatal.
func (e *Engine) handleMessage(ev types.MessageEvent) {
	if ev.Username == "" || ev.Text == "" {
		e.logger.Debug("dropping malformed message event")
		return
	}
	id := ev.ID
	if id == "" {
		id = uuid.NewString()
	}
	origin := types.OriginOther
	if ev.Username == e.identity.Username {
		origin = types.OriginOwn
	}
	e.renderer.AppendMessage(types.Message{
		ID:        id,
		Sender:    ev.Username,
		Raw:       ev.Text,
		Canonical: canon.Canonicalize(ev.Text),
		Timestamp: ev.Timestamp,
		Origin:    origin,
	})
}

// handleAnnouncement shows a join/leave notice as an ephemeral
// notification: Pending on construction, shown immediately, dismissed
// by timer or by the user, whichever comes first.
func (e *Engine) handleAnnouncement(text, timestamp string) {
	if text == "" {
		e.logger.Debug("dropping malformed announcement event")
		return
	}
	n := e.notify.Begin(uuid.NewString())
	n.Show()
	e.renderer.ShowNotification(types.SystemNotification{
		ID:        n.ID(),
		Text:      canon.Escape(text),
		Timestamp: timestamp,
		State:     types.NotificationVisible,
	})
}

func (e *Engine) handlePresence(ev types.PresenceEvent) {
	e.roster = types.PresenceRoster{Users: ev.Users}
	e.renderer.ReplacePresence(ev.Users, e.identity.Username)
}

func (e *Engine) handleTyping(ev types.TypingEvent) {
	e.typing.Remote(ev.Username, ev.IsTyping)
	text, _ := e.typing.Summary()
	e.renderer.SetTypingBanner(text)
}

// keystroke forwards input activity to the debounce. Keystrokes while
// not connected are a normal UI race and are silently ignored.
func (e *Engine) keystroke() {
	if e.controller.State() != types.StateConnected {
		return
	}
	e.typing.Keystroke()
}

func (e *Engine) sendMessage(text string) {
	msg, ok := e.controller.SendMessage(text)
	if !ok {
		return
	}
	e.typing.Stop()
	e.logger.Debug("message sent", zap.String("id", msg.ID))
}

// sendCommand is the shared outbound sink for the controller.
func (e *Engine) sendCommand(cmd types.Command) {
	if err := e.transport.Send(cmd); err != nil {
		e.logger.Debug("send failed", zap.String("command", cmd.Name()), zap.Error(err))
	}
}

func (e *Engine) signalTyping(isTyping bool) {
	e.sendCommand(types.TypingCommand{
		Username: e.identity.Username,
		Room:     e.identity.Room,
		IsTyping: isTyping,
	})
}

// loopScheduler wraps the injected scheduler so timer callbacks run on
// the event loop instead of the timer goroutine. This is what keeps the
// single-threaded state model honest under real timers.
type loopScheduler struct {
	engine *Engine
	inner  interfaces.Scheduler
}

func (s *loopScheduler) Schedule(d time.Duration, fn func()) interfaces.Cancel {
	return s.inner.Schedule(d, func() { s.engine.post(fn) })
}
