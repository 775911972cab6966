package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// EventType indicates the type of an Event.
type EventType byte

const (
	// StreamBeginEvent indicates that decompression of a stream started.
	StreamBeginEvent EventType = iota

	// StreamHeaderEvent indicates that the zlib header was successfully
	// processed.  Raw DEFLATE streams have no header and no such event.
	StreamHeaderEvent

	// BlockBeginEvent indicates that a block header was read.
	BlockBeginEvent

	// BlockTreesEvent indicates that the Huffman codes for the current
	// block are ready.
	BlockTreesEvent

	// BlockEndEvent indicates that the data for the current block has been
	// successfully processed.
	BlockEndEvent

	// StreamEndEvent indicates that the final block was processed.
	StreamEndEvent

	// StreamCloseEvent indicates that the zlib trailer was successfully
	// verified.
	StreamCloseEvent
)

var eventTypeData = []enumhelper.EnumData{
	{GoName: "StreamBeginEvent", Name: "stream-begin"},
	{GoName: "StreamHeaderEvent", Name: "stream-header"},
	{GoName: "BlockBeginEvent", Name: "block-begin"},
	{GoName: "BlockTreesEvent", Name: "block-trees"},
	{GoName: "BlockEndEvent", Name: "block-end"},
	{GoName: "StreamEndEvent", Name: "stream-end"},
	{GoName: "StreamCloseEvent", Name: "stream-close"},
}

// GoString returns the Go string representation of this EventType constant.
func (e EventType) GoString() string {
	return enumhelper.DereferenceEnumData("EventType", eventTypeData, uint(e)).GoName
}

// String returns the string representation of this EventType constant.
func (e EventType) String() string {
	return enumhelper.DereferenceEnumData("EventType", eventTypeData, uint(e)).Name
}

// MarshalJSON returns the JSON representation of this EventType constant.
func (e EventType) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("EventType", eventTypeData, uint(e))
}

var _ fmt.GoStringer = EventType(0)
var _ fmt.Stringer = EventType(0)
