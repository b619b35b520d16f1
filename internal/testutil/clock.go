package testutil

import (
	"slices"
	"sync"
)

// UnitClock is a logical clock for unit cache tests. It hands out 1, 2,
// 3... and remembers every value it issued, so a test can tell how many
// units a run actually inserted.
//
// All methods are safe for concurrent use.
type UnitClock struct {
	mu     sync.Mutex
	start  int64
	seq    int64
	issued []int64
}

// NewUnitClock returns a clock whose first Next is 1.
func NewUnitClock() *UnitClock {
	return NewUnitClockAt(0)
}

// NewUnitClockAt returns a clock whose first Next is start+1, as for a
// cache that already holds units up to start.
func NewUnitClockAt(start int64) *UnitClock {
	return &UnitClock{start: start, seq: start}
}

// Next advances the clock and returns the new value.
func (c *UnitClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.issued = append(c.issued, c.seq)
	return c.seq
}

// Current returns the last issued value, or the start value.
func (c *UnitClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Issued returns the values handed out so far, in order.
func (c *UnitClock) Issued() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.issued)
}

// Reset rewinds the clock to its start value and forgets what it issued.
func (c *UnitClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = c.start
	c.issued = nil
}
