package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chatterbox/internal/clock"
)

func newLifecycle() (*Lifecycle, *clock.Manual, *[]string) {
	sched := clock.NewManual()
	dismissed := &[]string{}
	l := NewLifecycle(12*time.Second, sched, func(id string) {
		*dismissed = append(*dismissed, id)
	})
	return l, sched, dismissed
}

func TestShowArmsAutoExpiry(t *testing.T) {
	l, sched, dismissed := newLifecycle()
	n := l.Begin("n1")
	assert.Equal(t, StatePending, n.State())

	n.Show()
	assert.Equal(t, StateVisible, n.State())

	sched.Advance(11999 * time.Millisecond)
	assert.Empty(t, *dismissed)

	sched.Advance(time.Millisecond)
	assert.Equal(t, []string{"n1"}, *dismissed)
	assert.Equal(t, StateDismissed, n.State())
	assert.Equal(t, 0, l.Live())
}

func TestManualDismissWinsOverExpiry(t *testing.T) {
	l, sched, dismissed := newLifecycle()
	n := l.Begin("n1")
	n.Show()

	n.Dismiss()
	assert.Equal(t, []string{"n1"}, *dismissed)

	sched.Advance(time.Minute)
	assert.Equal(t, []string{"n1"}, *dismissed, "expiry after manual dismiss has no effect")
}

func TestDoubleDismissNotifiesOnce(t *testing.T) {
	l, _, dismissed := newLifecycle()
	n := l.Begin("n1")
	n.Show()
	n.Dismiss()
	n.Dismiss()
	assert.Equal(t, []string{"n1"}, *dismissed)
}

func TestDismissBeforeShowIsANoOp(t *testing.T) {
	l, sched, dismissed := newLifecycle()
	n := l.Begin("n1")
	n.Dismiss()
	assert.Equal(t, StatePending, n.State(), "pending notifications cannot be dismissed")
	assert.Empty(t, *dismissed)

	n.Show()
	sched.Advance(12 * time.Second)
	assert.Equal(t, []string{"n1"}, *dismissed)
}

func TestShowIsSingleShot(t *testing.T) {
	l, sched, dismissed := newLifecycle()
	n := l.Begin("n1")
	n.Show()
	n.Show() // no second timer
	sched.Advance(12 * time.Second)
	assert.Equal(t, []string{"n1"}, *dismissed)
	assert.Equal(t, 0, sched.Pending())
}

func TestDismissById(t *testing.T) {
	l, _, dismissed := newLifecycle()
	a := l.Begin("a")
	b := l.Begin("b")
	a.Show()
	b.Show()

	l.Dismiss("a")
	l.Dismiss("unknown")
	assert.Equal(t, []string{"a"}, *dismissed)
	assert.Equal(t, 1, l.Live())
}

func TestDismissAll(t *testing.T) {
	l, sched, dismissed := newLifecycle()
	l.Begin("a").Show()
	l.Begin("b").Show()
	l.DismissAll()
	assert.ElementsMatch(t, []string{"a", "b"}, *dismissed)
	assert.Equal(t, 0, l.Live())

	sched.Advance(time.Minute)
	assert.Len(t, *dismissed, 2, "timers were cancelled with their notifications")
}
