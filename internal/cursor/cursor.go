// Package cursor provides forward-only readers over an in-memory byte
// buffer: a byte Cursor, and a BitReader layered on top of it that yields
// bits in DEFLATE order (least significant bit of each byte first).
package cursor

import (
	"encoding/binary"
	"io"
)

// Cursor reads sequentially from a byte slice.  It never copies: every
// slice it returns aliases the underlying buffer.
type Cursor struct {
	data []byte
	pos  int
}

// New returns a Cursor positioned at the start of p.
func New(p []byte) *Cursor {
	return &Cursor{data: p}
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.pos
}

// Len returns the number of bytes remaining.
func (c *Cursor) Len() int {
	return len(c.data) - c.pos
}

// IsEmpty returns true if no bytes remain.
func (c *Cursor) IsEmpty() bool {
	return c.pos >= len(c.data)
}

// Peek returns up to n bytes without consuming them.
func (c *Cursor) Peek(n int) []byte {
	if n > c.Len() {
		n = c.Len()
	}
	return c.data[c.pos : c.pos+n]
}

// Take consumes and returns up to n bytes.  The boolean is false if fewer
// than n bytes were available, in which case everything remaining was
// consumed.
func (c *Cursor) Take(n int) ([]byte, bool) {
	p := c.Peek(n)
	c.pos += len(p)
	return p, len(p) == n
}

// TakeRest consumes and returns all remaining bytes.
func (c *Cursor) TakeRest() []byte {
	p := c.data[c.pos:]
	c.pos = len(c.data)
	return p
}

// ReadByte consumes a single byte.  Conforms to io.ByteReader.
func (c *Cursor) ReadByte() (byte, error) {
	if c.IsEmpty() {
		return 0, io.EOF
	}
	ch := c.data[c.pos]
	c.pos++
	return ch, nil
}

// PeekUint32 decodes the next 4 bytes without consuming them.
func (c *Cursor) PeekUint32(bo binary.ByteOrder) (uint32, bool) {
	p := c.Peek(4)
	if len(p) < 4 {
		return 0, false
	}
	return bo.Uint32(p), true
}

var _ io.ByteReader = (*Cursor)(nil)
