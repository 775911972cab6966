package pnginspect

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// PartKind indicates which kind of span a FilePart covers.
type PartKind byte

const (
	// SignaturePart is the 8-byte PNG file signature, or as much of it as
	// the file holds.
	SignaturePart PartKind = iota

	// ChunkPart is a chunk, possibly truncated.
	ChunkPart

	// UnknownPart is either the remainder of a file whose signature did
	// not match, or a zero-length part carrying file-level errors.
	UnknownPart
)

var partKindData = []enumhelper.EnumData{
	{GoName: "SignaturePart", Name: "signature"},
	{GoName: "ChunkPart", Name: "chunk"},
	{GoName: "UnknownPart", Name: "unknown"},
}

// GoString returns the Go string representation of this PartKind constant.
func (kind PartKind) GoString() string {
	return enumhelper.DereferenceEnumData("PartKind", partKindData, uint(kind)).GoName
}

// String returns the string representation of this PartKind constant.
func (kind PartKind) String() string {
	return enumhelper.DereferenceEnumData("PartKind", partKindData, uint(kind)).Name
}

// MarshalJSON returns the JSON representation of this PartKind constant.
func (kind PartKind) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("PartKind", partKindData, uint(kind))
}

var _ fmt.GoStringer = PartKind(0)
var _ fmt.Stringer = PartKind(0)
