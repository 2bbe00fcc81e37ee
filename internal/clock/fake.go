package clock

import "time"

// FakeClock is a Clock pinned to a fixed instant for tests. It only moves
// when Advance is called, so reading and alert timestamps are deterministic.
type FakeClock struct {
	now time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{now: t.UTC()}
}

func (c *FakeClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d. Not safe for concurrent use.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
