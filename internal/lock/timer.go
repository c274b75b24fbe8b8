// Package lock implements the countdown that keeps the notification pane
// from being dismissed for a while after it opens.
package lock

import "time"

// Timer is a countdown state machine. It is not safe for concurrent use; the
// owner drives it from a single event loop and schedules one tick per second
// for the generation returned by Activate.
type Timer struct {
	duration  time.Duration
	remaining int
	gen       int
}

// New returns an unlocked timer. A duration <= 0 disables locking.
func New(d time.Duration) *Timer {
	return &Timer{duration: d}
}

// Seconds converts a lock duration to whole countdown seconds, rounding up.
func Seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// Activate recomputes the state when the pane is shown or its contents change.
// It locks when visible, hasItems and the duration is positive, and unlocks
// otherwise. Any previous tick generation becomes stale either way.
func (t *Timer) Activate(visible, hasItems bool) (gen int, locked bool) {
	t.gen++
	if !visible || !hasItems || t.duration <= 0 {
		t.remaining = 0
		return t.gen, false
	}
	t.remaining = Seconds(t.duration)
	return t.gen, true
}

// Tick advances the countdown by one second. It reports whether another tick
// should be scheduled for the same generation.
func (t *Timer) Tick(gen int) bool {
	if gen != t.gen || t.remaining == 0 {
		return false
	}
	t.remaining--
	if t.remaining == 0 {
		t.gen++
		return false
	}
	return true
}

// Release unlocks immediately and retires the current generation.
func (t *Timer) Release() {
	t.remaining = 0
	t.gen++
}

// Locked reports whether dismissal is currently blocked.
func (t *Timer) Locked() bool { return t.remaining > 0 }

// Remaining is the number of seconds left, 0 when unlocked.
func (t *Timer) Remaining() int { return t.remaining }
