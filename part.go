package pnginspect

import (
	"encoding/hex"
)

// Signature is the 8-byte sequence that begins every PNG file.
var Signature = [8]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}

// MaxDataLength is the largest chunk payload length PNG permits.
const MaxDataLength = 1<<31 - 1

// chunkOverhead is the length, type and CRC fields surrounding a payload.
const chunkOverhead = 12

// FilePart is a contiguous, labeled span of the input file.  The Bytes of
// all parts of a Result, concatenated in order, reproduce the input.
type FilePart struct {
	Kind   PartKind
	Offset int
	Bytes  []byte
	Notes  Notes

	// Chunk is non-nil only for ChunkPart.
	Chunk *Chunk
}

// End returns the offset just past the part.
func (part FilePart) End() int {
	return part.Offset + len(part.Bytes)
}

// HexPreview renders the part's bytes as space-separated hexadecimal.
// Spans longer than 100 bytes are abbreviated to their first 70 and last
// 30 bytes.
func (part FilePart) HexPreview() string {
	const maxFull = 100
	const head = 70
	const tail = 30

	p := part.Bytes
	if len(p) <= maxFull {
		return hexWords(p)
	}
	return hexWords(p[:head]) + " ... " + hexWords(p[len(p)-tail:])
}

func hexWords(p []byte) string {
	sb := takeStringsBuilder()
	defer giveStringsBuilder(sb)
	var tmp [2]byte
	for i, ch := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		hex.Encode(tmp[:], []byte{ch})
		sb.Write(tmp[:])
	}
	return sb.String()
}

// Chunk is the decoded framing of a ChunkPart.
type Chunk struct {
	// Length is the declared payload length.  Zero if the part is too
	// short to hold a length field.
	Length uint32

	// TypeCode holds the raw type bytes; shorter than 4 if truncated.
	TypeCode []byte

	// TypeName is TypeCode rendered readably, or "" if the type field is
	// incomplete.
	TypeName string

	// Type is the registry variant for TypeName, or UnknownChunk.
	Type ChunkType

	// Data is the payload, cut short if the file ended early.
	Data []byte

	StoredCRC   uint32
	ComputedCRC uint32

	// HasCRC is true if the CRC field was fully present.
	HasCRC bool

	// CRCValid is true if HasCRC and the stored CRC matches.
	CRCValid bool

	// IsDataComplete is true if the whole declared payload was present.
	IsDataComplete bool
}

// IsType returns true if the chunk's type code is exactly code.
func (c *Chunk) IsType(code string) bool {
	return c.TypeName == code
}
