// Package typing owns both sides of the typing indicator: the local
// debounce that decides when start/stop signals go out, and the set of
// remote participants currently typing.
package typing

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"chatterbox/pkg/interfaces"
)

// Coordinator tracks local and remote typing activity. All methods are
// called from the engine's single event loop; no locking is needed.
type Coordinator struct {
	localUser string
	idle      time.Duration
	scheduler interfaces.Scheduler
	signal    func(isTyping bool) // outbound typing command sink
	logger    *zap.Logger

	active bool
	cancel interfaces.Cancel
	remote []string // insertion-ordered set, never contains localUser
}

// NewCoordinator creates a coordinator. idle is the quiet period after
// the last keystroke before a stop signal is emitted.
func NewCoordinator(localUser string, idle time.Duration, scheduler interfaces.Scheduler, signal func(bool), logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		localUser: localUser,
		idle:      idle,
		scheduler: scheduler,
		signal:    signal,
		logger:    logger,
	}
}

// Keystroke registers local input activity. The first keystroke of a
// burst emits one start signal; every keystroke re-arms the idle
// deadline, cancelling the previous one so at most one timer is ever
// outstanding.
func (c *Coordinator) Keystroke() {
	if !c.active {
		c.active = true
		c.logger.Debug("typing started", zap.String("user", c.localUser))
		c.signal(true)
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = c.scheduler.Schedule(c.idle, c.Stop)
}

// Stop clears the local typing flag and emits a stop signal if one is
// owed. Idempotent: calling it while already inactive emits nothing.
func (c *Coordinator) Stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if !c.active {
		return
	}
	c.active = false
	c.logger.Debug("typing stopped", zap.String("user", c.localUser))
	c.signal(false)
}

// Active reports whether a start signal is currently outstanding.
func (c *Coordinator) Active() bool { return c.active }

// Remote applies a remote participant's typing status. Events about the
// local user are ignored so the set never contains it.
func (c *Coordinator) Remote(username string, isTyping bool) {
	if username == "" || username == c.localUser {
		return
	}
	idx := -1
	for i, u := range c.remote {
		if u == username {
			idx = i
			break
		}
	}
	switch {
	case isTyping && idx == -1:
		c.remote = append(c.remote, username)
	case !isTyping && idx != -1:
		c.remote = append(c.remote[:idx], c.remote[idx+1:]...)
	}
}

// Summary renders the remote set as a human-readable line. ok is false
// when nobody is typing. Order follows set insertion order, so the
// two-name form is deterministic for a given event sequence.
func (c *Coordinator) Summary() (text string, ok bool) {
	switch len(c.remote) {
	case 0:
		return "", false
	case 1:
		return fmt.Sprintf("%s is typing", c.remote[0]), true
	case 2:
		return fmt.Sprintf("%s and %s are typing", c.remote[0], c.remote[1]), true
	default:
		return fmt.Sprintf("%d people are typing", len(c.remote)), true
	}
}
