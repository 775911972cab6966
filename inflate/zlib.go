package inflate

import (
	"encoding/binary"
	"fmt"

	"github.com/chronos-tachyon/pnginspect/internal/adler32"
	"github.com/chronos-tachyon/pnginspect/internal/cursor"
)

// MethodDeflate is the only zlib compression method defined.
const MethodDeflate = 8

// MaxCompressInfo is the largest CINFO value permitted, which selects a
// 32 KiB window.
const MaxCompressInfo = 7

// Header holds the fields of a 2-byte zlib header.
type Header struct {
	Method        byte
	CompressInfo  byte
	CompressLevel CompressLevel
	HasDict       bool
}

// WindowSize returns the history size declared by CompressInfo.
func (h Header) WindowSize() uint {
	return uint(1) << (h.CompressInfo + 8)
}

// ParseHeader decodes and checks a zlib header.  The checks run in a fixed
// order and the first failure is reported: container too short, header
// checksum, compression method, compression info, preset dictionary.
func ParseHeader(p []byte) (Header, error) {
	if len(p) < 2 {
		return Header{}, CorruptInputError{Problem: "Invalid zlib container"}
	}

	h := Header{
		Method:        p[0] & 0x0f,
		CompressInfo:  p[0] >> 4,
		CompressLevel: CompressLevel(p[1] >> 6),
		HasDict:       (p[1] & 0x20) != 0,
	}

	u16 := binary.BigEndian.Uint16(p)
	switch {
	case (u16 % 31) != 0:
		return h, CorruptInputError{Problem: "zlib header checksum mismatch"}
	case h.Method != MethodDeflate:
		return h, CorruptInputError{Problem: fmt.Sprintf("Unsupported compression method (%d)", h.Method)}
	case h.CompressInfo > MaxCompressInfo:
		return h, CorruptInputError{Problem: fmt.Sprintf("Unsupported compression info (%d)", h.CompressInfo)}
	case h.HasDict:
		return h, CorruptInputError{BitOffset: 13, Problem: "Unsupported preset dictionary"}
	}
	return h, nil
}

// DecompressZlib decompresses a complete zlib container.  The container
// must hold exactly one stream: a valid header, a DEFLATE stream, padding
// to the next byte boundary, and the big-endian Adler-32 of the output.
// Any byte after the checksum is an error.
func DecompressZlib(p []byte, opts ...Option) ([]byte, error) {
	var o options
	o.reset()
	o.apply(opts)

	br := cursor.NewBitReader(cursor.New(p))
	inf := newInflator(br, &o)
	inf.sendEvent(Event{Type: StreamBeginEvent})

	h, err := ParseHeader(p)
	if err != nil {
		return nil, err
	}
	_, _ = br.ReadAlignedBytes(2)

	inf.sendEvent(Event{Type: StreamHeaderEvent, Header: &h})

	if !inf.run() {
		return nil, inf.err
	}

	br.AlignToByte()
	trailer, ok := br.ReadAlignedBytes(adler32.Size)
	if !ok {
		inf.truncated()
		return nil, inf.err
	}
	stored := binary.BigEndian.Uint32(trailer)

	if err := adler32.Verify(stored, inf.output); err != nil {
		inf.corruptErrf(err, "Adler-32 mismatch")
		return nil, inf.err
	}

	inf.sendEvent(Event{
		Type:   StreamCloseEvent,
		Footer: &FooterEvent{Adler32: Checksum32(stored)},
	})

	if !br.IsExhausted() {
		inf.corruptf("Unexpected data after zlib container")
		return nil, inf.err
	}
	return inf.output, nil
}
