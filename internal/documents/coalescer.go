package documents

import "time"

// DefaultHistoryDelay is the idle gap after which free-text edits are
// recorded as one history entry.
const DefaultHistoryDelay = 500 * time.Millisecond

// CoalescerState is the state of a Coalescer.
type CoalescerState int

const (
	// Idle means every edit has been recorded.
	Idle CoalescerState = iota
	// Pending means edits have been made since the last recorded entry.
	Pending
)

func (s CoalescerState) String() string {
	if s == Pending {
		return "pending"
	}
	return "idle"
}

// Coalescer groups a burst of free-text edits into one history entry. It
// moves to Pending on every edit and is due once Delay has passed since
// the last one.
type Coalescer struct {
	Delay time.Duration
	state CoalescerState
	since time.Time
}

// State returns the current state and, when pending, the time of the last
// edit.
func (c *Coalescer) State() (CoalescerState, time.Time) {
	return c.state, c.since
}

// Touch records an edit at now.
func (c *Coalescer) Touch(now time.Time) {
	c.state = Pending
	c.since = now
}

// Due reports whether a pending burst has been idle for Delay at now.
func (c *Coalescer) Due(now time.Time) bool {
	return c.state == Pending && !now.Before(c.since.Add(c.delay()))
}

// Remaining returns how long until a pending burst is due.
func (c *Coalescer) Remaining(now time.Time) time.Duration {
	if c.state != Pending {
		return 0
	}
	return max(0, c.since.Add(c.delay()).Sub(now))
}

// Reset returns to Idle.
func (c *Coalescer) Reset() {
	c.state = Idle
	c.since = time.Time{}
}

func (c *Coalescer) delay() time.Duration {
	if c.Delay <= 0 {
		return DefaultHistoryDelay
	}
	return c.Delay
}
