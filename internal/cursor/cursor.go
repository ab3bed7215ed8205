// Package cursor provides a bounded message-index cursor shared by the
// thread navigation mode and the browser drill-down preview. The cursor
// clamps to [0, length-1] for whatever sequence length it is pointed at.
package cursor

// Cursor is a bounded index over a sequence of the given length.
// The zero value is an inactive cursor at index 0.
type Cursor struct {
	index  int
	active bool
}

// Activate enables the cursor at the given index, clamped to the sequence.
// Activating against an empty sequence leaves the cursor inactive.
func (c *Cursor) Activate(index, length int) {
	if length <= 0 {
		c.Reset()
		return
	}
	c.index = clamp(index, 0, length-1)
	c.active = true
}

// ActivateLast enables the cursor at the final index of the sequence.
func (c *Cursor) ActivateLast(length int) {
	c.Activate(length-1, length)
}

// StepUp moves the cursor one position toward the start, floored at 0.
func (c *Cursor) StepUp() {
	if !c.active {
		return
	}
	if c.index > 0 {
		c.index--
	}
}

// StepDown moves the cursor one position toward the end of a sequence of
// the given length, capped at length-1.
func (c *Cursor) StepDown(length int) {
	if !c.active {
		return
	}
	if c.index < length-1 {
		c.index++
	}
}

// Clamp re-bounds the cursor after the sequence length changed.
func (c *Cursor) Clamp(length int) {
	if !c.active {
		return
	}
	if length <= 0 {
		c.Reset()
		return
	}
	c.index = clamp(c.index, 0, length-1)
}

// Reset deactivates the cursor and returns the index to 0.
func (c *Cursor) Reset() {
	c.index = 0
	c.active = false
}

// Index returns the current index. Meaningful only while active.
func (c *Cursor) Index() int {
	return c.index
}

// Active reports whether the cursor is engaged.
func (c *Cursor) Active() bool {
	return c.active
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
