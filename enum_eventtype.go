package pnginspect

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// EventType indicates the type of an Event.
type EventType byte

const (
	// InspectBeginEvent indicates that inspection of a file started.
	InspectBeginEvent EventType = iota

	// SignatureEvent indicates that the file signature was examined.
	SignatureEvent

	// ChunkFramedEvent indicates that a chunk's length, type and CRC
	// fields were decoded.
	ChunkFramedEvent

	// ChunkCheckedEvent indicates that the ordering and type-specific
	// rules for a chunk were applied.
	ChunkCheckedEvent

	// InspectEndEvent indicates that every part of the file has its
	// final notes.
	InspectEndEvent
)

var eventTypeData = []enumhelper.EnumData{
	{GoName: "InspectBeginEvent", Name: "inspect-begin"},
	{GoName: "SignatureEvent", Name: "signature"},
	{GoName: "ChunkFramedEvent", Name: "chunk-framed"},
	{GoName: "ChunkCheckedEvent", Name: "chunk-checked"},
	{GoName: "InspectEndEvent", Name: "inspect-end"},
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
