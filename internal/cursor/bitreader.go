package cursor

import (
	"github.com/chronos-tachyon/assert"
)

const bitsPerByte = 8

const bitsPerBlock = bytesPerBlock * bitsPerByte

// MaxBitsPerRead is the widest value ReadBits accepts.
const MaxBitsPerRead = bitsPerBlock - bitsPerByte

func makeMask(shift byte) block {
	if shift == 0 {
		return 0
	} else if shift >= bitsPerBlock {
		return ^block(0)
	} else {
		return (block(1) << shift) - 1
	}
}

// BitReader reads a little-endian bit stream from a Cursor.  Bytes are
// pulled from the Cursor only as needed, so after any read fewer than 8
// buffered bits remain.
type BitReader struct {
	c       *Cursor
	start   int
	ibBlock block
	ibLen   byte
}

// NewBitReader returns a BitReader that starts at the Cursor's current
// position.  The Cursor must not be used directly while the BitReader is
// active.
func NewBitReader(c *Cursor) *BitReader {
	assert.NotNil(&c)
	return &BitReader{c: c, start: c.Offset()}
}

// BitOffset returns the number of bits consumed since the BitReader was
// created.
func (br *BitReader) BitOffset() uint64 {
	return uint64(br.c.Offset()-br.start)*bitsPerByte - uint64(br.ibLen)
}

// BitPosition returns the position within the current byte, 0..7.
func (br *BitReader) BitPosition() byte {
	return byte(br.BitOffset() % bitsPerByte)
}

// IsExhausted returns true if every bit has been consumed.
func (br *BitReader) IsExhausted() bool {
	return br.ibLen == 0 && br.c.IsEmpty()
}

func (br *BitReader) fill(atLeast byte) bool {
	assert.Assertf(atLeast <= MaxBitsPerRead, "atLeast %d > limit %d", atLeast, MaxBitsPerRead)

	for br.ibLen < atLeast {
		ch, err := br.c.ReadByte()
		if err != nil {
			return false
		}
		br.ibBlock |= (block(ch) << br.ibLen)
		br.ibLen += bitsPerByte
	}
	return true
}

func (br *BitReader) peek(wantLen byte) block {
	assert.Assertf(wantLen <= br.ibLen, "wantLen %d > ibLen %d", wantLen, br.ibLen)
	return (br.ibBlock & makeMask(wantLen))
}

func (br *BitReader) commit(wantLen byte) {
	assert.Assertf(wantLen <= br.ibLen, "wantLen %d > ibLen %d", wantLen, br.ibLen)
	br.ibBlock = (br.ibBlock >> wantLen)
	br.ibLen -= wantLen
}

// ReadBits consumes n bits and returns them with the first bit read in the
// least significant position.  The boolean is false if the stream ended
// first; in that case nothing is consumed from the buffered bits.
func (br *BitReader) ReadBits(n byte) (uint32, bool) {
	if n == 0 {
		return 0, true
	}
	if !br.fill(n) {
		return 0, false
	}
	out := br.peek(n)
	br.commit(n)
	return uint32(out), true
}

// PeekBits returns the next n bits without consuming them, in the same
// order as ReadBits.  The boolean is false if fewer than n bits remain.
func (br *BitReader) PeekBits(n byte) (uint32, bool) {
	if !br.fill(n) {
		return 0, false
	}
	return uint32(br.peek(n)), true
}

// Consume discards n bits that an earlier PeekBits returned.
func (br *BitReader) Consume(n byte) {
	br.commit(n)
}

// ReadBit consumes a single bit.
func (br *BitReader) ReadBit() (uint32, bool) {
	return br.ReadBits(1)
}

// AlignToByte discards bits up to the next byte boundary.
func (br *BitReader) AlignToByte() {
	br.commit(br.ibLen % bitsPerByte)
}

// ReadAlignedBytes consumes n whole bytes.  The reader must be byte
// aligned.  The boolean is false if fewer than n bytes remained, in which
// case everything remaining was consumed.
func (br *BitReader) ReadAlignedBytes(n int) ([]byte, bool) {
	assert.Assertf(br.ibLen%bitsPerByte == 0, "ReadAlignedBytes called at bit position %d", br.BitPosition())

	if br.ibLen == 0 {
		return br.c.Take(n)
	}

	out := make([]byte, 0, n)
	for len(out) < n && br.ibLen != 0 {
		out = append(out, byte(br.peek(bitsPerByte)))
		br.commit(bitsPerByte)
	}
	rest, ok := br.c.Take(n - len(out))
	return append(out, rest...), ok
}
