// Package inflate decompresses DEFLATE (RFC 1951) streams and the zlib
// (RFC 1950) containers that wrap them.
//
// It operates on complete in-memory buffers, which is how compressed PNG
// text is stored, and reports every malformation as a CorruptInputError.
package inflate

import (
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
	buffer "github.com/chronos-tachyon/buffer/v3"
	"github.com/chronos-tachyon/pnginspect/internal/cursor"
)

// WindowBits is the base-2 logarithm of the DEFLATE history size.
const WindowBits = 15

// MaxDistance is the largest back-reference distance DEFLATE can express.
const MaxDistance = 1 << WindowBits

// Inflate decompresses the raw DEFLATE stream at the start of p.  It
// returns the decompressed bytes and the number of bits consumed, which
// locates any data following the final block.  Bytes after the final block
// are not examined.
func Inflate(p []byte, opts ...Option) ([]byte, uint64, error) {
	var o options
	o.reset()
	o.apply(opts)

	inf := newInflator(cursor.NewBitReader(cursor.New(p)), &o)
	inf.sendEvent(Event{Type: StreamBeginEvent})
	if !inf.run() {
		return nil, inf.br.BitOffset(), inf.err
	}
	return inf.output, inf.br.BitOffset(), nil
}

type inflator struct {
	br      *cursor.BitReader
	window  buffer.Window
	output  []byte
	limit   uint64
	tracers []Tracer
	err     error

	hLL *CanonicalCode
	hD  *CanonicalCode
}

func newInflator(br *cursor.BitReader, o *options) *inflator {
	assert.NotNil(&br)
	inf := &inflator{
		br:      br,
		limit:   o.limit,
		tracers: o.tracers,
	}
	inf.window.Init(WindowBits)
	return inf
}

func (inf *inflator) run() bool {
	for {
		isFinal, ok := inf.readBlock()
		if !ok {
			return false
		}
		if isFinal {
			break
		}
	}
	inf.sendEvent(Event{Type: StreamEndEvent})
	return true
}

func (inf *inflator) readBlock() (isFinal bool, ok bool) {
	out, ok := inf.readBits(3)
	if !ok {
		return false, false
	}

	isFinal = (out & 0x01) != 0
	blockType := blockTypeFromBits(out >> 1)

	block := &BlockEvent{Type: blockType, IsFinal: isFinal}
	inf.sendEvent(Event{Type: BlockBeginEvent, Block: block})

	switch blockType {
	case StoredBlock:
		ok = inf.readBlockStored()

	case FixedBlock:
		inf.hLL, inf.hD = gFixedCodeLL, gFixedCodeD
		inf.sendEvent(Event{
			Type:  BlockTreesEvent,
			Block: block,
			Trees: &TreesEvent{
				LiteralLengthSizes: inf.hLL.SizeBySymbol(),
				DistanceSizes:      inf.hD.SizeBySymbol(),
			},
		})
		ok = inf.decodeHuffmanBlock()

	case DynamicBlock:
		ok = inf.readDynamicTrees(block) && inf.decodeHuffmanBlock()

	default:
		inf.corruptf("Reserved block type")
		ok = false
	}

	if ok {
		inf.sendEvent(Event{Type: BlockEndEvent, Block: block})
	}
	return isFinal, ok
}

func (inf *inflator) readBlockStored() bool {
	inf.br.AlignToByte()

	length, ok := inf.readBits(16)
	if !ok {
		return false
	}
	nlength, ok := inf.readBits(16)
	if !ok {
		return false
	}
	if (length ^ 0xffff) != nlength {
		inf.corruptf("Invalid length in uncompressed block")
		return false
	}

	p, ok := inf.br.ReadAlignedBytes(int(length))
	if !ok {
		inf.truncated()
		return false
	}
	for _, ch := range p {
		if !inf.writeByte(ch) {
			return false
		}
	}
	return true
}

func (inf *inflator) readDynamicTrees(block *BlockEvent) bool {
	// https://www.rfc-editor.org/rfc/rfc1951.html - Section 3.2.7

	out, ok := inf.readBits(14)
	if !ok {
		return false
	}

	numLL := 257 + uint(out&0x1f)
	numD := 1 + uint((out>>5)&0x1f)
	numX := 4 + uint((out>>10)&0x0f)

	var sX [physicalNumXCodes]byte
	for i := uint(0); i < numX; i++ {
		size, ok := inf.readBits(3)
		if !ok {
			return false
		}
		sX[scramble[i]] = byte(size)
	}

	hX, err := NewCanonicalCode(sX[:])
	if err != nil {
		inf.corruptErrf(err, "%s", codeProblem(err))
		return false
	}

	total := numLL + numD
	lengths := make([]byte, 0, total)
	for uint(len(lengths)) < total {
		sym, ok := inf.decodeSymbol(hX)
		if !ok {
			return false
		}
		lengths, ok = inf.decodeX(sym, lengths)
		if !ok {
			return false
		}
	}
	if uint(len(lengths)) > total {
		inf.corruptf("Run exceeds number of codes")
		return false
	}

	sLL := lengths[:numLL]
	sD := lengths[numLL:]

	hLL, err := NewCanonicalCode(sLL)
	if err != nil {
		inf.corruptErrf(err, "%s", codeProblem(err))
		return false
	}

	var hD *CanonicalCode
	if len(sD) == 1 && sD[0] == 0 {
		// No distance codes at all: the block may only hold literals.
		hD = nil
	} else {
		sD = padSingleDistanceCode(sD)
		hD, err = NewCanonicalCode(sD)
		if err != nil {
			inf.corruptErrf(err, "%s", codeProblem(err))
			return false
		}
	}

	inf.sendEvent(Event{
		Type:  BlockTreesEvent,
		Block: block,
		Trees: &TreesEvent{
			CodeCount:          uint16(numX),
			LiteralLengthCount: uint16(numLL),
			DistanceCount:      uint16(numD),
			CodeSizes:          SizeList(sX[:]),
			LiteralLengthSizes: SizeList(sLL),
			DistanceSizes:      SizeList(sD),
		},
	})

	inf.hLL, inf.hD = hLL, hD
	return true
}

// padSingleDistanceCode handles the one-code distance table that RFC 1951
// permits: a lone length-1 code is completed with an unused length-1 code
// at symbol 31, which makes the table a full canonical code.
func padSingleDistanceCode(sizes []byte) []byte {
	var ones, others int
	for _, size := range sizes {
		switch {
		case size == 1:
			ones++
		case size > 1:
			others++
		}
	}
	if ones != 1 || others != 0 {
		return sizes
	}
	padded := make([]byte, physicalNumDCodes)
	copy(padded, sizes)
	padded[physicalNumDCodes-1] = 1
	return padded
}

func (inf *inflator) decodeX(sym uint16, lengths []byte) ([]byte, bool) {
	switch {
	case sym < 16:
		// next output symbol has length of sym bits
		return append(lengths, byte(sym)), true

	case sym == 16:
		// next 3 .. 6 output symbols have length equal to previous output symbol
		if len(lengths) == 0 {
			inf.corruptf("No code length value to copy")
			return lengths, false
		}
		out, ok := inf.readBits(2)
		if !ok {
			return lengths, false
		}
		return repeatByte(lengths, lengths[len(lengths)-1], 3+uint(out)), true

	case sym == 17:
		// next 3 .. 10 output symbols have length of 0 bits
		out, ok := inf.readBits(3)
		if !ok {
			return lengths, false
		}
		return repeatByte(lengths, 0, 3+uint(out)), true

	case sym == 18:
		// next 11 .. 138 output symbols have length of 0 bits
		out, ok := inf.readBits(7)
		if !ok {
			return lengths, false
		}
		return repeatByte(lengths, 0, 11+uint(out)), true

	default:
		inf.corruptf("Symbol out of range")
		return lengths, false
	}
}

func repeatByte(p []byte, ch byte, count uint) []byte {
	for ; count != 0; count-- {
		p = append(p, ch)
	}
	return p
}

func (inf *inflator) decodeHuffmanBlock() bool {
	hLL := inf.hLL
	hD := inf.hD

	for {
		symbol, ok := inf.decodeSymbol(hLL)
		if !ok {
			return false
		}

		if symbol < 256 {
			if !inf.writeByte(byte(symbol)) {
				return false
			}
			continue
		}
		if symbol == 256 {
			return true
		}

		length, ok := inf.decodeLength(symbol)
		if !ok {
			return false
		}
		if hD == nil {
			inf.corruptf("Length symbol encountered with empty distance code")
			return false
		}

		symbol, ok = inf.decodeSymbol(hD)
		if !ok {
			return false
		}
		distance, ok := inf.decodeDistance(symbol)
		if !ok {
			return false
		}

		if !inf.copyBack(distance, length) {
			return false
		}
	}
}

func (inf *inflator) decodeLength(symbol uint16) (uint, bool) {
	switch {
	case symbol <= 264:
		return uint(symbol) - 254, true

	case symbol <= 284:
		extraBits := byte((symbol - 261) / 4)
		out, ok := inf.readBits(extraBits)
		if !ok {
			return 0, false
		}
		return ((uint((symbol-265)%4) + 4) << extraBits) + 3 + uint(out), true

	case symbol == 285:
		return 258, true

	default:
		inf.corruptf("Reserved length symbol")
		return 0, false
	}
}

func (inf *inflator) decodeDistance(symbol uint16) (uint, bool) {
	switch {
	case symbol <= 3:
		return uint(symbol) + 1, true

	case symbol <= 29:
		extraBits := byte(symbol/2) - 1
		out, ok := inf.readBits(extraBits)
		if !ok {
			return 0, false
		}
		return ((uint(symbol%2) + 2) << extraBits) + 1 + uint(out), true

	default:
		inf.corruptf("Reserved distance symbol")
		return 0, false
	}
}

func (inf *inflator) copyBack(distance uint, length uint) bool {
	assert.Assertf(distance >= 1 && distance <= MaxDistance, "distance %d out of range", distance)
	if uint64(distance) > uint64(len(inf.output)) {
		inf.corruptf("Invalid distance %d with only %d bytes of history", distance, len(inf.output))
		return false
	}
	for ; length != 0; length-- {
		ch, err := inf.window.LookupByte(distance)
		if err != nil {
			inf.corruptErrf(err, "Invalid distance %d: %v", distance, err)
			return false
		}
		if !inf.writeByte(ch) {
			return false
		}
	}
	return true
}

func (inf *inflator) decodeSymbol(code *CanonicalCode) (uint16, bool) {
	symbol, ok := code.Decode(inf.br)
	if !ok {
		inf.truncated()
	}
	return symbol, ok
}

func (inf *inflator) readBits(n byte) (uint32, bool) {
	out, ok := inf.br.ReadBits(n)
	if !ok {
		inf.truncated()
	}
	return out, ok
}

func (inf *inflator) writeByte(ch byte) bool {
	if inf.limit != 0 && uint64(len(inf.output)) >= inf.limit {
		inf.corruptErrf(ErrOutputLimit, "Output exceeds limit of %d bytes", inf.limit)
		return false
	}
	inf.output = append(inf.output, ch)
	_ = inf.window.WriteByte(ch)
	return true
}

func (inf *inflator) truncated() {
	inf.fail(CorruptInputError{
		BitOffset: inf.br.BitOffset(),
		Problem:   "Unexpected end of data",
		Err:       io.ErrUnexpectedEOF,
	})
}

func (inf *inflator) corruptf(format string, v ...interface{}) {
	inf.corruptErrf(nil, format, v...)
}

func (inf *inflator) corruptErrf(cause error, format string, v ...interface{}) {
	inf.fail(CorruptInputError{
		BitOffset: inf.br.BitOffset(),
		Problem:   fmt.Sprintf(format, v...),
		Err:       cause,
	})
}

func (inf *inflator) fail(err error) {
	if inf.err == nil {
		inf.err = err
	}
}

func (inf *inflator) sendEvent(event Event) {
	event.BitOffset = inf.br.BitOffset()
	event.OutputBytes = uint64(len(inf.output))
	for _, tr := range inf.tracers {
		tr.OnEvent(event)
	}
}
