package header

// cursor is a monotonic write/read position over a fixed buffer. It exists
// purely to avoid manual offset arithmetic scattered through the primitive
// codecs; it carries no validation logic of its own.
type cursor struct {
	pos int
}

// advance moves the cursor forward by n and returns the position before the
// move, i.e. the start offset of the field being written or read.
func (c *cursor) advance(n int) int {
	start := c.pos
	c.pos += n
	return start
}

// at returns the cursor's current position without moving it.
func (c *cursor) at() int {
	return c.pos
}
