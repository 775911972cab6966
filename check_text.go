package pnginspect

import (
	"bytes"

	"github.com/chronos-tachyon/pnginspect/internal/text"
)

func checkTEXT(ck *checker) {
	keyword, rest, found := splitNull(ck.data())
	if !found {
		ck.nb.problem("Missing null separator")
		ck.keyword(keyword, "Keyword", "keyword")
		return
	}
	ck.keyword(keyword, "Keyword", "keyword")
	ck.nb.inner("Text string: " + text.DecodeLatin1(rest))
	if bytes.IndexByte(rest, 0) >= 0 {
		ck.nb.problem("Null character in text string")
	}
	if hasUnassignedLatin1(rest) {
		ck.nb.problem("Invalid ISO 8859-1 byte in text string")
	}
}

func checkZTXT(ck *checker) {
	keyword, rest, found := splitNull(ck.data())
	if !found {
		ck.nb.problem("Missing null separator")
		ck.keyword(keyword, "Keyword", "keyword")
		return
	}
	ck.keyword(keyword, "Keyword", "keyword")
	if len(rest) == 0 {
		ck.nb.problem("Missing compression method")
		return
	}
	method := rest[0]
	ck.enumField("Compression method", method, gDeflateMethodNames, "Unknown compression method")
	if method != 0 {
		return
	}
	plain, ok := ck.decompress(rest[1:])
	if !ok {
		return
	}
	ck.nb.inner("Text string: " + text.DecodeLatin1(plain))
	if hasUnassignedLatin1(plain) {
		ck.nb.problem("Invalid ISO 8859-1 byte in text string")
	}
}

var gCompressionFlagNames = map[byte]string{0: "Uncompressed", 1: "Compressed"}

func checkITXT(ck *checker) {
	keyword, rest, found := splitNull(ck.data())
	ck.keyword(keyword, "Keyword", "keyword")
	if !found {
		ck.nb.problem("Missing null separator")
		return
	}

	if len(rest) == 0 {
		ck.nb.problem("Missing compression flag")
		return
	}
	flag := rest[0]
	rest = rest[1:]
	ck.enumField("Compression flag", flag, gCompressionFlagNames, "Unknown compression flag")

	if len(rest) == 0 {
		ck.nb.problem("Missing compression method")
		return
	}
	method := rest[0]
	rest = rest[1:]
	ck.enumField("Compression method", method, gDeflateMethodNames, "Unknown compression method")

	var ok bool
	if rest, ok = ck.utf8Field(rest, "Language tag", "language tag"); !ok {
		return
	}
	if rest, ok = ck.utf8Field(rest, "Translated keyword", "translated keyword"); !ok {
		return
	}

	payload := rest
	switch {
	case flag == 0:
		// stored as-is
	case flag == 1 && method == 0:
		if payload, ok = ck.decompress(payload); !ok {
			return
		}
	default:
		return
	}

	str, err := text.DecodeUTF8(payload)
	if err != nil {
		ck.nb.problem("Invalid UTF-8 in text string")
		return
	}
	ck.nb.inner("Text string: " + str)
}

// utf8Field annotates one NUL-terminated UTF-8 field of an iTXt chunk and
// returns the bytes following the terminator.  It returns false when the
// terminator is missing.
func (ck *checker) utf8Field(p []byte, noteName string, errName string) ([]byte, bool) {
	field, rest, found := splitNull(p)
	if str, err := text.DecodeUTF8(field); err != nil {
		ck.nb.problem("Invalid UTF-8 in " + errName)
	} else {
		ck.nb.inner(noteName + ": " + str)
	}
	if !found {
		ck.nb.problem("Missing null separator")
		return nil, false
	}
	return rest, true
}

var gSampleDepthEntrySize = map[byte]int{8: 6, 16: 10}

func checkSPLT(ck *checker) {
	ck.mustBeBefore("IDAT")
	name, rest, found := splitNull(ck.data())
	if !found {
		ck.nb.problem("Missing null separator")
	}
	ck.keyword(name, "Palette name", "name")
	if _, dup := spltNames(ck.earlier)[text.DecodeLatin1(name)]; dup {
		ck.nb.problem("Duplicate palette name")
	}
	if !found {
		return
	}
	if len(rest) == 0 {
		ck.nb.problem("Missing sample depth")
		return
	}
	depth := rest[0]
	rest = rest[1:]
	ck.nb.innerf("Sample depth: %d", depth)
	entrySize, known := gSampleDepthEntrySize[depth]
	if !known {
		return
	}
	if len(rest)%entrySize != 0 {
		ck.nb.problem("Invalid data length")
		return
	}
	ck.nb.innerf("Number of entries: %d", len(rest)/entrySize)
}

// hasUnassignedLatin1 reports bytes in 0x80..0x9F, which ISO 8859-1 leaves
// unassigned.
func hasUnassignedLatin1(p []byte) bool {
	for _, ch := range p {
		if ch >= 0x80 && ch < 0xa0 {
			return true
		}
	}
	return false
}
