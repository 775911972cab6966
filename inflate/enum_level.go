package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// CompressLevel is the 2-bit FLEVEL hint in a zlib header.  It records the
// effort the compressor claims to have spent and has no effect on
// decompression.
type CompressLevel byte

const (
	// FastestCompression is FLEVEL 0.
	FastestCompression CompressLevel = iota

	// FastCompression is FLEVEL 1.
	FastCompression

	// DefaultCompression is FLEVEL 2.
	DefaultCompression

	// BestCompression is FLEVEL 3.
	BestCompression
)

var compressLevelData = []enumhelper.EnumData{
	{GoName: "FastestCompression", Name: "fastest"},
	{GoName: "FastCompression", Name: "fast"},
	{GoName: "DefaultCompression", Name: "default"},
	{GoName: "BestCompression", Name: "best", Aliases: []string{"maximum"}},
}

// GoString returns the Go string representation of this CompressLevel constant.
func (clevel CompressLevel) GoString() string {
	return enumhelper.DereferenceEnumData("CompressLevel", compressLevelData, uint(clevel)).GoName
}

// String returns the string representation of this CompressLevel constant.
func (clevel CompressLevel) String() string {
	return enumhelper.DereferenceEnumData("CompressLevel", compressLevelData, uint(clevel)).Name
}

// MarshalJSON returns the JSON representation of this CompressLevel constant.
func (clevel CompressLevel) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("CompressLevel", compressLevelData, uint(clevel))
}

// Parse parses a string representation of a CompressLevel constant.
func (clevel *CompressLevel) Parse(str string) error {
	value, err := enumhelper.ParseEnum("CompressLevel", compressLevelData, str)
	*clevel = CompressLevel(value)
	return err
}

var _ fmt.GoStringer = CompressLevel(0)
var _ fmt.Stringer = CompressLevel(0)
