package scheduler

import "sync/atomic"

// Cursor is a shared monotonic position over [0, limit).
type Cursor struct {
	limit int64
	next  atomic.Int64
}

// NewCursor returns a cursor positioned at 0.
func NewCursor(limit int) *Cursor {
	return &Cursor{limit: int64(limit)}
}

// ClaimNext returns the next unclaimed index. ok is false once the cursor has
// moved past the limit.
func (c *Cursor) ClaimNext() (idx int, ok bool) {
	v := c.next.Add(1) - 1
	if v >= c.limit {
		return 0, false
	}
	return int(v), true
}

// Reset moves the cursor back to 0. It must not run concurrently with
// ClaimNext.
func (c *Cursor) Reset() {
	c.next.Store(0)
}

// Limit returns the number of claimable indices per pass.
func (c *Cursor) Limit() int { return int(c.limit) }
