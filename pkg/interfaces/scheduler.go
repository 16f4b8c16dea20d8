package interfaces

import "time"

// Cancel stops a pending timer. Calling it after the timer fired, or
// more than once, is a no-op.
type Cancel func()

// Scheduler arms one-shot timers. The production implementation wraps
// the wall clock; tests substitute a manually advanced one so timing
// properties hold without real waits. Implementations must run fn on
// the engine's event loop, never concurrently with event handling.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Cancel
}
