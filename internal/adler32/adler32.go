// Package adler32 computes the Adler-32 checksum used to seal zlib streams
// (RFC 1950, section 8.2).
package adler32

import (
	"fmt"
)

// Size is the size of an Adler-32 checksum in bytes.
const Size = 4

// Initial is the checksum of the empty input.
const Initial uint32 = 1

const modulus = 65521

// nmax is the largest n such that 255n(n+1)/2 + (n+1)(modulus-1) fits in
// 32 bits, i.e. how many bytes may be summed before reducing.
const nmax = 5552

// Update folds p into a running checksum.
func Update(sum uint32, p []byte) uint32 {
	s1, s2 := (sum & 0xffff), (sum >> 16)
	for len(p) > 0 {
		n := len(p)
		if n > nmax {
			n = nmax
		}
		q := p[:n]
		p = p[n:]
		for len(q) >= 4 {
			s1 += uint32(q[0])
			s2 += s1
			s1 += uint32(q[1])
			s2 += s1
			s1 += uint32(q[2])
			s2 += s1
			s1 += uint32(q[3])
			s2 += s1
			q = q[4:]
		}
		for _, ch := range q {
			s1 += uint32(ch)
			s2 += s1
		}
		s1 %= modulus
		s2 %= modulus
	}
	return (s2 << 16) | s1
}

// Checksum returns the Adler-32 checksum of p.
func Checksum(p []byte) uint32 {
	return Update(Initial, p)
}

// MismatchError reports that a stored checksum disagrees with the one
// computed over the decoded data.
type MismatchError struct {
	Stored   uint32
	Computed uint32
}

// Error fulfills the error interface.
func (err MismatchError) Error() string {
	return fmt.Sprintf("Adler-32 mismatch (stored %08X, calculated %08X)", err.Stored, err.Computed)
}

var _ error = MismatchError{}

// Verify returns a MismatchError if the checksum of p is not stored.
func Verify(stored uint32, p []byte) error {
	if computed := Checksum(p); computed != stored {
		return MismatchError{Stored: stored, Computed: computed}
	}
	return nil
}
