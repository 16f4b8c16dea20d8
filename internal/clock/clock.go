// Package clock provides the timer collaborators behind the scheduler
// interface: a wall-clock implementation for production and a manually
// advanced one for tests.
package clock

import (
	"sync"
	"time"

	"chatterbox/pkg/interfaces"
)

// System schedules on the wall clock via time.AfterFunc. Callbacks run
// on a timer goroutine; the engine wraps System so fired callbacks are
// posted back onto its event loop before they touch state.
type System struct{}

// Schedule arms a one-shot timer.
func (System) Schedule(d time.Duration, fn func()) interfaces.Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Manual is a deterministic scheduler for tests. Timers fire only when
// Advance moves the synthetic clock past their deadline, in deadline
// order, ties broken by arming order.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	deadline time.Duration
	seq      int
	fn       func()
	stopped  bool
}

// NewManual returns a manual scheduler starting at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Schedule registers a timer against the synthetic clock.
func (m *Manual) Schedule(d time.Duration, fn func()) interfaces.Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{deadline: m.now + d, seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		t.stopped = true
	}
}

// Advance moves the clock forward and fires every due timer. The clock
// steps through deadlines in order, so a callback that re-arms a timer
// sees it fire again within the same Advance if it falls inside the
// window, matching wall-clock behavior. Callbacks run outside the lock
// so they may schedule or cancel freely.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.mu.Lock()
		if t.deadline > m.now {
			m.now = t.deadline
		}
		m.mu.Unlock()
		t.fn()
	}
	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// Pending returns the number of armed, unfired timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(target time.Duration) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	best := -1
	for i, t := range m.timers {
		if t.stopped || t.deadline > target {
			continue
		}
		if best == -1 ||
			t.deadline < m.timers[best].deadline ||
			(t.deadline == m.timers[best].deadline && t.seq < m.timers[best].seq) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	t := m.timers[best]
	m.timers = append(m.timers[:best], m.timers[best+1:]...)
	return t
}
