package pnginspect

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/pnginspect/inflate"
	"github.com/chronos-tachyon/pnginspect/internal/text"
)

// checker carries the state of one type-specific validation: the chunk
// under inspection, every chunk that precedes it in file order, and the
// notes produced so far.
type checker struct {
	chunk   *Chunk
	earlier []*Chunk
	opts    *options
	nb      noteBuilder
}

func (ck *checker) data() []byte {
	return ck.chunk.Data
}

// hasEarlier returns true if any earlier chunk has the given type code.
func (ck *checker) hasEarlier(code string) bool {
	return hasType(ck.earlier, code)
}

// mustBeBefore records an ordering problem for each listed type that
// already appeared.
func (ck *checker) mustBeBefore(codes ...string) {
	for _, code := range codes {
		if ck.hasEarlier(code) {
			ck.nb.problemf("Chunk must be before %s chunk", code)
		}
	}
}

// expectLength returns false, after recording "Invalid data length", if
// the payload is not exactly n bytes long.
func (ck *checker) expectLength(n int) bool {
	if len(ck.data()) != n {
		ck.nb.problem("Invalid data length")
		return false
	}
	return true
}

// enumField renders a one-byte code as "label: Name (n)", or records
// problem and renders "label: Unknown (n)" for unlisted values.
func (ck *checker) enumField(label string, value byte, names map[byte]string, problem string) {
	name, found := names[value]
	if !found {
		name = "Unknown"
		ck.nb.problem(problem)
	}
	ck.nb.innerf("%s: %s (%d)", label, name, value)
}

// keyword annotates a Latin-1 keyword: 1 to 79 bytes, printable Latin-1
// only, no leading, trailing or consecutive spaces.
func (ck *checker) keyword(raw []byte, noteName string, errName string) {
	ck.nb.innerf("%s: %s", noteName, text.DecodeLatin1(raw))
	if len(raw) < 1 || len(raw) > 79 {
		ck.nb.problemf("Invalid %s length", errName)
	}
	for _, ch := range raw {
		if !isKeywordByte(ch) {
			ck.nb.problemf("Invalid character in %s", errName)
			break
		}
	}
	if bytes.HasPrefix(raw, []byte(" ")) || bytes.HasSuffix(raw, []byte(" ")) || bytes.Contains(raw, []byte("  ")) {
		ck.nb.problemf("Invalid space in %s", errName)
	}
}

func isKeywordByte(ch byte) bool {
	return (ch >= 0x20 && ch <= 0x7e) || ch >= 0xa1
}

// decompress runs the zlib decoder over an embedded text payload.  On
// failure it records the decoder's problem and returns false.
func (ck *checker) decompress(p []byte) ([]byte, bool) {
	out, err := inflate.DecompressZlib(p, ck.opts.inflateOpts...)
	if err != nil {
		ck.nb.problem("Text decompression error: " + describeInflateError(err))
		return nil, false
	}
	return out, true
}

func describeInflateError(err error) string {
	var cie inflate.CorruptInputError
	if errors.As(err, &cie) {
		return cie.Problem
	}
	return err.Error()
}

func (ck *checker) build() Notes {
	return ck.nb.build()
}

// type ihdrInfo {{{

// ihdrInfo is the decoded payload of the file's one valid IHDR chunk.
type ihdrInfo struct {
	Width       uint32
	Height      uint32
	BitDepth    byte
	ColorType   byte
	Compression byte
	Filter      byte
	Interlace   byte
}

const ihdrLength = 13

func parseIHDR(p []byte) ihdrInfo {
	return ihdrInfo{
		Width:       binary.BigEndian.Uint32(p[0:4]),
		Height:      binary.BigEndian.Uint32(p[4:8]),
		BitDepth:    p[8],
		ColorType:   p[9],
		Compression: p[10],
		Filter:      p[11],
		Interlace:   p[12],
	}
}

// validIHDR returns the header data if chunks holds exactly one IHDR chunk
// and its payload is exactly 13 bytes long.
func validIHDR(chunks []*Chunk) (ihdrInfo, bool) {
	var data []byte
	count := 0
	for _, c := range chunks {
		if c.IsType("IHDR") {
			count++
			if len(c.Data) == ihdrLength {
				data = c.Data
			}
		}
	}
	if count != 1 || data == nil {
		return ihdrInfo{}, false
	}
	return parseIHDR(data), true
}

// }}}

// validPLTEEntries returns the palette size if chunks holds exactly one
// PLTE chunk and its payload describes 1 to 256 whole entries.
func validPLTEEntries(chunks []*Chunk) (int, bool) {
	result := -1
	count := 0
	for _, c := range chunks {
		if c.IsType("PLTE") {
			count++
			if len(c.Data)%3 == 0 {
				n := len(c.Data) / 3
				if n >= 1 && n <= 256 {
					result = n
				}
			}
		}
	}
	if count != 1 || result < 0 {
		return 0, false
	}
	return result, true
}

// spltNames returns the set of palette names used by sPLT chunks.
func spltNames(chunks []*Chunk) map[string]struct{} {
	out := make(map[string]struct{})
	for _, c := range chunks {
		if c.IsType("sPLT") {
			name, _, _ := splitNull(c.Data)
			out[text.DecodeLatin1(name)] = struct{}{}
		}
	}
	return out
}

func hasType(chunks []*Chunk, code string) bool {
	for _, c := range chunks {
		if c.IsType(code) {
			return true
		}
	}
	return false
}

// splitNull splits p at its first NUL byte.  If there is none, head is
// all of p and found is false.
func splitNull(p []byte) (head []byte, tail []byte, found bool) {
	index := bytes.IndexByte(p, 0)
	if index < 0 {
		return p, nil, false
	}
	return p[:index], p[index+1:], true
}

// fixedPoint renders an unsigned integer with the given number of implied
// decimal places, e.g. fixedPoint(45455, 5) == "0.45455".
func fixedPoint(value uint32, decimals int) string {
	str := strconv.FormatUint(uint64(value), 10)
	if pad := decimals + 1 - len(str); pad > 0 {
		str = strings.Repeat("0", pad) + str
	}
	cut := len(str) - decimals
	return str[:cut] + "." + str[cut:]
}

// signedString renders an int32 with U+2212 MINUS SIGN for negatives.
func signedString(value int32) string {
	return strings.Replace(strconv.FormatInt(int64(value), 10), "-", "−", 1)
}

func readUint16(p []byte, offset int) uint16 {
	return binary.BigEndian.Uint16(p[offset : offset+2])
}

func readUint32(p []byte, offset int) uint32 {
	return binary.BigEndian.Uint32(p[offset : offset+4])
}

func readInt32(p []byte, offset int) int32 {
	return int32(readUint32(p, offset))
}
