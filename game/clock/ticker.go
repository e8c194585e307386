package clock

import "time"

// Ticker is a recurring schedule polled from a frame loop. It holds at most
// one registration: Start and SetInterval replace it, Stop clears it, and a
// stopped Ticker never reports a due tick.
//
// Ticker is not safe for concurrent use; its owner serialises access.
type Ticker struct {
	clock    Clock
	interval time.Duration
	next     time.Time
	active   bool
}

func NewTicker(c Clock) *Ticker {
	if c == nil {
		c = Real{}
	}
	return &Ticker{clock: c}
}

// Start schedules the first tick one interval from now.
func (t *Ticker) Start(interval time.Duration) {
	if interval <= 0 {
		return
	}
	t.interval = interval
	t.next = t.clock.Now().Add(interval)
	t.active = true
}

// SetInterval cancels the pending tick and reschedules at the new interval.
// The next tick fires a full interval after the call. An inactive ticker only
// records the interval.
func (t *Ticker) SetInterval(interval time.Duration) {
	if interval <= 0 {
		return
	}
	t.interval = interval
	if t.active {
		t.next = t.clock.Now().Add(interval)
	}
}

func (t *Ticker) Stop() {
	t.active = false
	t.next = time.Time{}
}

func (t *Ticker) Active() bool {
	return t.active
}

func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Due reports whether a tick is owed and, if so, schedules the following one
// a full interval from now. Missed ticks are not replayed.
func (t *Ticker) Due() bool {
	if !t.active {
		return false
	}
	now := t.clock.Now()
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}
