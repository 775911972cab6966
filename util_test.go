package pnginspect

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/chronos-tachyon/pnginspect/internal/crc32"
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

// makeChunk frames data as a chunk with a correct CRC.
func makeChunk(code string, data []byte) []byte {
	out := make([]byte, 0, len(data)+chunkOverhead)
	out = binary.BigEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, code...)
	out = append(out, data...)
	out = binary.BigEndian.AppendUint32(out, crc32.ChunkChecksum([]byte(code), data))
	return out
}

// makePNG concatenates the signature and the given chunks.
func makePNG(chunks ...[]byte) []byte {
	out := append([]byte(nil), Signature[:]...)
	for _, chunk := range chunks {
		out = append(out, chunk...)
	}
	return out
}

func ihdrChunk(width, height uint32, bitDepth, colorType byte) []byte {
	data := make([]byte, 0, ihdrLength)
	data = binary.BigEndian.AppendUint32(data, width)
	data = binary.BigEndian.AppendUint32(data, height)
	data = append(data, bitDepth, colorType, 0, 0, 0)
	return makeChunk("IHDR", data)
}

// minimalIDAT holds one zlib-compressed row of a 1x1 8-bit grayscale image.
var minimalIDAT = makeChunk("IDAT", mustDecodeHex("78 9c 63 60 00 00 00 02 00 01"))

var iendChunk = makeChunk("IEND", nil)

// minimalPNG returns a well-formed 1x1 grayscale file with extra chunks
// inserted between IHDR and IDAT.
func minimalPNG(extra ...[]byte) []byte {
	chunks := [][]byte{ihdrChunk(1, 1, 8, 0)}
	chunks = append(chunks, extra...)
	chunks = append(chunks, minimalIDAT, iendChunk)
	return makePNG(chunks...)
}

func mustCompressZlib(p []byte) []byte {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		panic(err)
	}
	if _, err := zw.Write(p); err != nil {
		panic(err)
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// partFor returns the first part whose chunk has the given type code.
func partFor(result Result, code string) *FilePart {
	for index := range result.Parts {
		part := &result.Parts[index]
		if part.Chunk != nil && part.Chunk.IsType(code) {
			return part
		}
	}
	return nil
}

func concatParts(result Result) []byte {
	var out []byte
	for _, part := range result.Parts {
		out = append(out, part.Bytes...)
	}
	return out
}
