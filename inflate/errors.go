package inflate

import (
	"errors"
	"fmt"
	"io"
)

// CorruptInputError is returned when the stream being decompressed contains
// data that violates the DEFLATE or zlib format, or ends prematurely.
type CorruptInputError struct {
	BitOffset uint64
	Problem   string
	Err       error
}

// Error fulfills the error interface.
func (err CorruptInputError) Error() string {
	return fmt.Sprintf("corrupt input at/near bit offset %d: %s", err.BitOffset, err.Problem)
}

// Unwrap returns the underlying cause, if any.  Truncated streams unwrap to
// io.ErrUnexpectedEOF.
func (err CorruptInputError) Unwrap() error {
	return err.Err
}

var _ error = CorruptInputError{}

var (
	// ErrOverFull is returned when a set of code lengths assigns more
	// codes of some length than that length can hold.
	ErrOverFull = errors.New("canonical code produces an over-full Huffman code tree")

	// ErrUnderFull is returned when a set of code lengths leaves part of
	// the code space unused.
	ErrUnderFull = errors.New("canonical code produces an under-full Huffman code tree")

	// ErrOutputLimit is returned when decompression would exceed the
	// limit set by WithOutputLimit.
	ErrOutputLimit = errors.New("decompressed output exceeds limit")
)

// codeProblem describes a failure of NewCanonicalCode for use as a
// CorruptInputError problem.
func codeProblem(err error) string {
	switch {
	case errors.Is(err, ErrOverFull):
		return "This canonical code produces an over-full Huffman code tree"
	case errors.Is(err, ErrUnderFull):
		return "This canonical code produces an under-full Huffman code tree"
	default:
		return err.Error()
	}
}

// IsTruncated returns true if err reports a stream that ended too early.
func IsTruncated(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
