// Package text decodes the byte strings stored inside PNG chunks.
package text

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DecodeError reports the first byte offset at which decoding failed.
type DecodeError struct {
	Encoding string
	Offset   int
	Problem  string
}

// Error fulfills the error interface.
func (err DecodeError) Error() string {
	return fmt.Sprintf("invalid %s at byte offset %d: %s", err.Encoding, err.Offset, err.Problem)
}

var _ error = DecodeError{}

// DecodeUTF8 decodes p as strict UTF-8.  Overlong forms, encoded UTF-16
// surrogates, code points above U+10FFFF, stray continuation bytes and
// truncated sequences are all rejected.
func DecodeUTF8(p []byte) (string, error) {
	for i := 0; i < len(p); {
		ch := p[i]
		if ch < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size <= 1 {
			return "", DecodeError{Encoding: "UTF-8", Offset: i, Problem: utf8Problem(p[i:])}
		}
		i += size
	}
	return string(p), nil
}

func utf8Problem(p []byte) string {
	lead := p[0]
	var want int
	switch {
	case lead&0xc0 == 0x80:
		return "unexpected continuation byte"
	case lead&0xe0 == 0xc0:
		want = 2
	case lead&0xf0 == 0xe0:
		want = 3
	case lead&0xf8 == 0xf0:
		want = 4
	default:
		return fmt.Sprintf("invalid lead byte %#02x", lead)
	}
	for i := 1; i < want; i++ {
		if i >= len(p) {
			return "truncated sequence"
		}
		if p[i]&0xc0 != 0x80 {
			return "missing continuation byte"
		}
	}
	switch {
	case lead == 0xc0 || lead == 0xc1:
		return "overlong encoding"
	case lead == 0xe0 && p[1] < 0xa0:
		return "overlong encoding"
	case lead == 0xf0 && p[1] < 0x90:
		return "overlong encoding"
	case lead == 0xed && p[1] >= 0xa0:
		return "encoded surrogate code point"
	default:
		return "code point out of range"
	}
}

// DecodeLatin1 decodes p as ISO 8859-1.  Bytes 0x80..0x9F are unassigned
// in that standard and decode to U+FFFD.
func DecodeLatin1(p []byte) string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, ch := range p {
		if ch >= 0x80 && ch < 0xa0 {
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.WriteRune(rune(ch))
		}
	}
	return sb.String()
}

// Readable renders arbitrary bytes for display: printable ASCII and
// Latin-1 map to themselves, C0 controls to the Control Pictures block,
// DEL to U+2421, and C1 controls to U+25AF.
func Readable(p []byte) string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, ch := range p {
		r := rune(ch)
		switch {
		case ch < 0x20:
			r += 0x2400
		case ch == 0x7f:
			r = 0x2421
		case ch >= 0x80 && ch < 0xa0:
			r = 0x25af
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
