// Package notify manages the transient lifetime of system
// notifications: each one is shown, then dismissed exactly once by
// whichever of the auto-expiry timer or a manual dismissal fires first.
package notify

import (
	"time"

	"chatterbox/pkg/interfaces"
)

// State is one notification's lifecycle position.
type State int

const (
	StatePending State = iota
	StateVisible
	StateDismissed
)

// Lifecycle tracks every live notification for one session. All methods
// run on the engine's event loop.
type Lifecycle struct {
	ttl       time.Duration
	scheduler interfaces.Scheduler
	dismissed func(id string) // renderer sink, invoked exactly once per id
	live      map[string]*Notification
}

// Notification controls the visible window of one announcement.
type Notification struct {
	id     string
	owner  *Lifecycle
	state  State
	cancel interfaces.Cancel
}

// NewLifecycle creates a lifecycle manager. ttl is the auto-expiry
// window armed when a notification is shown; dismissed receives each
// notification's id exactly once.
func NewLifecycle(ttl time.Duration, scheduler interfaces.Scheduler, dismissed func(id string)) *Lifecycle {
	return &Lifecycle{
		ttl:       ttl,
		scheduler: scheduler,
		dismissed: dismissed,
		live:      make(map[string]*Notification),
	}
}

// Begin registers a new notification in the Pending state.
func (l *Lifecycle) Begin(id string) *Notification {
	n := &Notification{id: id, owner: l, state: StatePending}
	l.live[id] = n
	return n
}

// Dismiss dismisses a live notification by id. Unknown or already
// dismissed ids are no-ops.
func (l *Lifecycle) Dismiss(id string) {
	if n, ok := l.live[id]; ok {
		n.Dismiss()
	}
}

// DismissAll dismisses every live notification, for session teardown.
func (l *Lifecycle) DismissAll() {
	for _, n := range l.live {
		n.Dismiss()
	}
}

// Live returns the number of notifications not yet dismissed.
func (l *Lifecycle) Live() int { return len(l.live) }

// ID returns the notification's handle.
func (n *Notification) ID() string { return n.id }

// State returns the current lifecycle state.
func (n *Notification) State() State { return n.state }

// Show transitions Pending -> Visible and arms the auto-expiry timer.
// Any other starting state is a no-op.
func (n *Notification) Show() {
	if n.state != StatePending {
		return
	}
	n.state = StateVisible
	n.cancel = n.owner.scheduler.Schedule(n.owner.ttl, n.Dismiss)
}

// Dismiss transitions Visible -> Dismissed. The auto-expiry timer and a
// manual call race through here; whichever arrives first wins and the
// loser is a no-op, so the dismissed sink fires exactly once.
func (n *Notification) Dismiss() {
	if n.state != StateVisible {
		return
	}
	n.state = StateDismissed
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	delete(n.owner.live, n.id)
	n.owner.dismissed(n.id)
}
