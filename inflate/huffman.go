package inflate

import (
	"encoding/json"
	"fmt"

	"github.com/chronos-tachyon/assert"
	"github.com/chronos-tachyon/huffman"
	"github.com/chronos-tachyon/pnginspect/internal/cursor"
)

// MaxCodeSize is the longest code length DEFLATE permits.
const MaxCodeSize = 15

const (
	logicalNumLLCodes  = 286
	logicalNumDCodes   = 30
	physicalNumLLCodes = 288
	physicalNumDCodes  = 32
	physicalNumXCodes  = 19
)

// Order in which code length code lengths are transmitted (RFC 1951,
// section 3.2.7).
var scramble = [physicalNumXCodes]byte{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

var (
	gFixedCodeLL *CanonicalCode
	gFixedCodeD  *CanonicalCode
)

func init() {
	// https://www.rfc-editor.org/rfc/rfc1951.html - Section 3.2.6
	gFixedCodeLL = mustCanonicalCode(FixedLiteralLengthSizes())
	gFixedCodeD = mustCanonicalCode(FixedDistanceSizes())
}

// FixedLiteralLengthSizes returns the code lengths of the fixed
// literal/length code: 144×8, 112×9, 24×7, 8×8.
func FixedLiteralLengthSizes() SizeList {
	sizes := make(SizeList, physicalNumLLCodes)
	for i := 0; i < 144; i++ {
		sizes[i] = 8
	}
	for i := 144; i < 256; i++ {
		sizes[i] = 9
	}
	for i := 256; i < 280; i++ {
		sizes[i] = 7
	}
	for i := 280; i < 288; i++ {
		sizes[i] = 8
	}
	return sizes
}

// FixedDistanceSizes returns the code lengths of the fixed distance code:
// 32×5.
func FixedDistanceSizes() SizeList {
	sizes := make(SizeList, physicalNumDCodes)
	for i := range sizes {
		sizes[i] = 5
	}
	return sizes
}

func mustCanonicalCode(sizes SizeList) *CanonicalCode {
	code, err := NewCanonicalCode(sizes)
	if err != nil {
		panic(fmt.Errorf("failed to initialize fixed Huffman code: %w", err))
	}
	return code
}

// CanonicalCode decodes one canonical Huffman code, as used for the
// literal/length, distance and code length alphabets.  Immutable once
// built.
type CanonicalCode struct {
	dec huffman.Decoder
}

// NewCanonicalCode builds a CanonicalCode from per-symbol code lengths,
// where 0 means the symbol is unused.  For each length from 1 to
// MaxCodeSize, symbols of that length receive consecutive codes in symbol
// order.  The lengths must describe a complete prefix code: ErrOverFull or
// ErrUnderFull is returned otherwise.
func NewCanonicalCode(sizes []byte) (*CanonicalCode, error) {
	// Kraft sum, scaled so that a complete code sums to 1<<MaxCodeSize.
	var kraft uint32
	for symbol, size := range sizes {
		if size > MaxCodeSize {
			return nil, fmt.Errorf("symbol %d has code length %d > maximum %d", symbol, size, MaxCodeSize)
		}
		if size != 0 {
			kraft += uint32(1) << (MaxCodeSize - size)
		}
	}
	switch {
	case kraft > (1 << MaxCodeSize):
		return nil, ErrOverFull
	case kraft < (1 << MaxCodeSize):
		return nil, ErrUnderFull
	}

	code := new(CanonicalCode)
	if err := code.dec.Init(sizes); err != nil {
		return nil, fmt.Errorf("failed to initialize Huffman decoder: %w", err)
	}
	return code, nil
}

// SizeBySymbol returns the code length of each symbol.
func (code *CanonicalCode) SizeBySymbol() SizeList {
	sizes := code.dec.SizeBySymbol()
	out := make(SizeList, len(sizes))
	copy(out, sizes)
	return out
}

// Decode reads one symbol.  Bits are pulled from br only as the code
// requires, so a short code at the very end of a stream still decodes.
// The boolean is false if the stream ended first, in which case nothing
// is consumed.
func (code *CanonicalCode) Decode(br *cursor.BitReader) (uint16, bool) {
	numBits := code.dec.MinSize()
	for {
		out, ok := br.PeekBits(numBits)
		if !ok {
			return 0, false
		}

		hc := huffman.MakeCode(numBits, out)
		symbol, newMin, newMax := code.dec.Decode(hc)
		if symbol >= 0 {
			br.Consume(numBits)
			return uint16(symbol), true
		}
		assert.Assertf(newMax != 0, "no symbol for code %v of a complete code", hc)
		numBits = newMin
	}
}

// SizeList represents a list of symbol sizes in a Canonical Huffman Code.
type SizeList []byte

// MarshalJSON returns the JSON representation of this SizeList, as a JSON
// Array of JSON Numbers.
func (sizelist SizeList) MarshalJSON() ([]byte, error) {
	var arr []uint
	if sizelist != nil {
		arr = make([]uint, len(sizelist))
		for index, size := range sizelist {
			arr[index] = uint(size)
		}
	}
	return json.Marshal(arr)
}
