package pnginspect

import (
	"fmt"
)

// Notes holds the diagnostics attached to a FilePart, in the order they
// were produced.  Outer notes describe framing (lengths, type codes,
// checksums), Inner notes describe decoded field values, and Errors
// describe violations.
type Notes struct {
	Outer  []string `json:"outer,omitempty"`
	Inner  []string `json:"inner,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// Merge returns a new Notes holding the notes of n followed by those of
// each of others.  Neither n nor others is modified.
func (n Notes) Merge(others ...Notes) Notes {
	out := Notes{
		Outer:  appendCopy(nil, n.Outer),
		Inner:  appendCopy(nil, n.Inner),
		Errors: appendCopy(nil, n.Errors),
	}
	for _, other := range others {
		out.Outer = appendCopy(out.Outer, other.Outer)
		out.Inner = appendCopy(out.Inner, other.Inner)
		out.Errors = appendCopy(out.Errors, other.Errors)
	}
	return out
}

// HasErrors returns true if there is at least one error note.
func (n Notes) HasErrors() bool {
	return len(n.Errors) != 0
}

// IsEmpty returns true if there are no notes of any kind.
func (n Notes) IsEmpty() bool {
	return len(n.Outer) == 0 && len(n.Inner) == 0 && len(n.Errors) == 0
}

func appendCopy(dst []string, src []string) []string {
	if len(src) == 0 {
		return dst
	}
	return append(dst, src...)
}

// type noteBuilder {{{

// noteBuilder accumulates the notes of one annotation stage.
type noteBuilder struct {
	notes Notes
}

func (nb *noteBuilder) outer(str string) {
	nb.notes.Outer = append(nb.notes.Outer, str)
}

func (nb *noteBuilder) outerf(format string, v ...interface{}) {
	nb.outer(fmt.Sprintf(format, v...))
}

func (nb *noteBuilder) inner(str string) {
	nb.notes.Inner = append(nb.notes.Inner, str)
}

func (nb *noteBuilder) innerf(format string, v ...interface{}) {
	nb.inner(fmt.Sprintf(format, v...))
}

func (nb *noteBuilder) problem(str string) {
	nb.notes.Errors = append(nb.notes.Errors, str)
}

func (nb *noteBuilder) problemf(format string, v ...interface{}) {
	nb.problem(fmt.Sprintf(format, v...))
}

func (nb *noteBuilder) hasProblems() bool {
	return nb.notes.HasErrors()
}

func (nb *noteBuilder) build() Notes {
	return Notes{}.Merge(nb.notes)
}

// }}}
