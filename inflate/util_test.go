package inflate

import (
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"

	"github.com/chronos-tachyon/huffman"
)

func mustDecodeHex(str string) []byte {
	raw, err := hex.DecodeString(strings.ReplaceAll(str, " ", ""))
	if err != nil {
		panic(err)
	}
	return raw
}

func hexDump(p []byte) []string {
	lines := make([]string, 0, (len(p)+15)>>4)
	var buf strings.Builder
	for offset := 0; offset < len(p) || offset == 0; offset += 16 {
		buf.Reset()
		fmt.Fprintf(&buf, "%08x|", offset)
		for i := 0; i < 16; i++ {
			if index := offset + i; index < len(p) {
				fmt.Fprintf(&buf, " %02x", p[index])
			} else {
				buf.WriteString(" --")
			}
			if i == 7 {
				buf.WriteByte(' ')
			}
		}
		lines = append(lines, buf.String())
		if len(p) == 0 {
			break
		}
	}
	return lines
}

func hexDiff(a, b []byte) []string {
	aLines := hexDump(a)
	bLines := hexDump(b)

	var diffLines []string
	for i := 0; i < len(aLines) || i < len(bLines); i++ {
		switch {
		case i >= len(aLines):
			diffLines = append(diffLines, "+"+bLines[i])
		case i >= len(bLines):
			diffLines = append(diffLines, "-"+aLines[i])
		case aLines[i] != bLines[i]:
			diffLines = append(diffLines, "-"+aLines[i], "+"+bLines[i])
		}
	}
	return diffLines
}

func tabify(lines []string) string {
	var buf strings.Builder
	for _, line := range lines {
		buf.WriteByte('\n')
		buf.WriteByte('\t')
		buf.WriteString(line)
	}
	return buf.String()
}

// sampleInputs returns payloads that exercise literals, short and long
// matches, and histories longer than the window.
func sampleInputs() map[string][]byte {
	rng := rand.New(rand.NewSource(0x504e47))
	random := make([]byte, 50000)
	rng.Read(random)

	var sb strings.Builder
	for i := 0; i < 3000; i++ {
		fmt.Fprintf(&sb, "line %d: Sphinx of black quartz, judge my vow.\n", i%97)
	}

	return map[string][]byte{
		"empty":      {},
		"one-byte":   {'x'},
		"pangram":    []byte("Sphinx of black quartz, judge my vow."),
		"repetitive": []byte(strings.Repeat(" abcd efgh", 500)),
		"text":       []byte(sb.String()),
		"random":     random,
	}
}

// type bitWriter {{{

// bitWriter assembles DEFLATE bit streams by hand, least significant bit
// first, for inputs no conforming compressor would produce.
type bitWriter struct {
	out  []byte
	bits uint64
	n    byte
}

func (bw *bitWriter) writeBits(size byte, bits uint32) *bitWriter {
	for i := byte(0); i < size; i++ {
		bw.bits |= uint64((bits>>i)&1) << bw.n
		bw.n++
		if bw.n == 8 {
			bw.out = append(bw.out, byte(bw.bits))
			bw.bits = 0
			bw.n = 0
		}
	}
	return bw
}

func (bw *bitWriter) writeCode(hc huffman.Code) *bitWriter {
	return bw.writeBits(hc.Size, hc.Bits)
}

func (bw *bitWriter) writeSymbol(enc *huffman.Encoder, symbol int) *bitWriter {
	return bw.writeCode(enc.Encode(huffman.Symbol(symbol)))
}

func (bw *bitWriter) bytes() []byte {
	out := bw.out
	if bw.n != 0 {
		out = append(out, byte(bw.bits))
	}
	return out
}

// }}}

func mustEncoder(sizes []byte) *huffman.Encoder {
	enc := new(huffman.Encoder)
	if err := enc.InitFromSizes(sizes); err != nil {
		panic(err)
	}
	return enc
}
