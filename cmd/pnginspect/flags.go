package main

import (
	"strconv"

	getopt "github.com/pborman/getopt/v2"
)

// type OutputFormatFlag {{{

// OutputFormatFlag implements getopt.Value for OutputFormat.
type OutputFormatFlag struct {
	Value OutputFormat
}

// Set fulfills getopt.Value.
func (flag *OutputFormatFlag) Set(str string, opt getopt.Option) error {
	return flag.Value.Parse(str)
}

// String fulfills getopt.Value.
func (flag OutputFormatFlag) String() string {
	return flag.Value.String()
}

var _ getopt.Value = (*OutputFormatFlag)(nil)

// }}}

// type ByteSizeFlag {{{

// ByteSizeFlag implements getopt.Value for a byte count.  Zero means
// unlimited.
type ByteSizeFlag struct {
	Value uint64
}

// Set fulfills getopt.Value.
func (flag *ByteSizeFlag) Set(str string, opt getopt.Option) error {
	u64, err := strconv.ParseUint(str, 0, 64)
	if err != nil {
		return err
	}
	flag.Value = u64
	return nil
}

// String fulfills getopt.Value.
func (flag ByteSizeFlag) String() string {
	return strconv.FormatUint(flag.Value, 10)
}

var _ getopt.Value = (*ByteSizeFlag)(nil)

// }}}
