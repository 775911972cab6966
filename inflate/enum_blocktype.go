package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// BlockType indicates the type of a DEFLATE-compressed block.  The value is
// the 2-bit BTYPE field of the block header plus one.
type BlockType byte

const (
	// InvalidBlock is a dummy value indicating an invalid block.
	InvalidBlock BlockType = iota

	// StoredBlock indicates a stored (uncompressed) block.
	StoredBlock

	// FixedBlock indicates a Huffman-compressed block that uses the
	// fixed (pre-defined) Huffman codes.
	FixedBlock

	// DynamicBlock indicates a Huffman-compressed block whose codes are
	// described in the block header.
	DynamicBlock

	// ReservedBlock indicates the reserved BTYPE 11, which is always an
	// error.
	ReservedBlock
)

var blockTypeData = []enumhelper.EnumData{
	{GoName: "InvalidBlock", Name: "invalid"},
	{GoName: "StoredBlock", Name: "stored"},
	{GoName: "FixedBlock", Name: "fixed", Aliases: []string{"static"}},
	{GoName: "DynamicBlock", Name: "dynamic"},
	{GoName: "ReservedBlock", Name: "reserved"},
}

func blockTypeFromBits(btype uint32) BlockType {
	return BlockType(1 + byte(btype&0x03))
}

// GoString returns the Go string representation of this BlockType constant.
func (b BlockType) GoString() string {
	return enumhelper.DereferenceEnumData("BlockType", blockTypeData, uint(b)).GoName
}

// String returns the string representation of this BlockType constant.
func (b BlockType) String() string {
	return enumhelper.DereferenceEnumData("BlockType", blockTypeData, uint(b)).Name
}

// MarshalJSON returns the JSON representation of this BlockType constant.
func (b BlockType) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("BlockType", blockTypeData, uint(b))
}

var _ fmt.GoStringer = BlockType(0)
var _ fmt.Stringer = BlockType(0)
