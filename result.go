package pnginspect

import (
	"fmt"
	"strconv"

	multierror "github.com/hashicorp/go-multierror"
)

// Result is the outcome of Inspect.
type Result struct {
	Parts []FilePart
}

// HasErrors returns true if any part carries an error note.
func (r Result) HasErrors() bool {
	for _, part := range r.Parts {
		if part.Notes.HasErrors() {
			return true
		}
	}
	return false
}

// NumErrors returns the total number of error notes.
func (r Result) NumErrors() int {
	n := 0
	for _, part := range r.Parts {
		n += len(part.Notes.Errors)
	}
	return n
}

// Err returns nil if the file has no error notes.  Otherwise it returns a
// *multierror.Error with one PartError per error note, in file order.
func (r Result) Err() error {
	var errs *multierror.Error
	for _, part := range r.Parts {
		for _, problem := range part.Notes.Errors {
			pe := PartError{Offset: part.Offset, Kind: part.Kind, Problem: problem}
			if part.Chunk != nil {
				pe.ChunkType = part.Chunk.TypeName
			}
			errs = multierror.Append(errs, pe)
		}
	}
	return errs.ErrorOrNil()
}

// Chunks returns the Chunk of every ChunkPart, in file order.
func (r Result) Chunks() []*Chunk {
	out := make([]*Chunk, 0, len(r.Parts))
	for _, part := range r.Parts {
		if part.Kind == ChunkPart {
			out = append(out, part.Chunk)
		}
	}
	return out
}

// Summary lists the chunk types in file order, separated by ", ".  A run
// of N > 1 consecutive IDAT chunks is written "IDAT ×N".
func (r Result) Summary() string {
	sb := takeStringsBuilder()
	defer giveStringsBuilder(sb)

	chunks := r.Chunks()
	for i := 0; i < len(chunks); i++ {
		if sb.Len() > 0 {
			sb.WriteString(", ")
		}
		code := chunks[i].TypeName
		sb.WriteString(code)
		if code != "IDAT" {
			continue
		}
		run := 1
		for i+1 < len(chunks) && chunks[i+1].IsType("IDAT") {
			i++
			run++
		}
		if run > 1 {
			sb.WriteString(" ×")
			sb.WriteString(strconv.Itoa(run))
		}
	}
	return sb.String()
}

// PartError is one error note, located within the file.
type PartError struct {
	Offset    int
	Kind      PartKind
	ChunkType string
	Problem   string
}

// Error fulfills the error interface.
func (err PartError) Error() string {
	if err.Kind == ChunkPart && err.ChunkType != "" {
		return fmt.Sprintf("offset %d: %s chunk: %s", err.Offset, err.ChunkType, err.Problem)
	}
	return fmt.Sprintf("offset %d: %v: %s", err.Offset, err.Kind, err.Problem)
}

var _ error = PartError{}
