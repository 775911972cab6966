package main

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// OutputFormat selects how reports are written to standard output.
type OutputFormat byte

const (
	// TextFormat writes one indented block per part.
	TextFormat OutputFormat = iota

	// JSONFormat writes a single JSON array with one object per file.
	JSONFormat
)

var outputFormatData = []enumhelper.EnumData{
	{GoName: "TextFormat", Name: "text", Aliases: []string{"default"}},
	{GoName: "JSONFormat", Name: "json"},
}

// GoString returns the Go string representation of this OutputFormat constant.
func (f OutputFormat) GoString() string {
	return enumhelper.DereferenceEnumData("OutputFormat", outputFormatData, uint(f)).GoName
}

// String returns the string representation of this OutputFormat constant.
func (f OutputFormat) String() string {
	return enumhelper.DereferenceEnumData("OutputFormat", outputFormatData, uint(f)).Name
}

// MarshalJSON returns the JSON representation of this OutputFormat constant.
func (f OutputFormat) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("OutputFormat", outputFormatData, uint(f))
}

// Parse parses a string representation of an OutputFormat constant.
func (f *OutputFormat) Parse(str string) error {
	value, err := enumhelper.ParseEnum("OutputFormat", outputFormatData, str)
	*f = OutputFormat(value)
	return err
}

var _ fmt.GoStringer = OutputFormat(0)
var _ fmt.Stringer = OutputFormat(0)
