package inflate

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/flate"
)

func TestInflate(t *testing.T) {
	type testRow struct {
		name    string
		input   []byte
		expect  []byte
		problem string
	}

	var testData = [...]testRow{
		{
			name:   "stored-hello",
			input:  mustDecodeHex("01 0500 faff 68656c6c6f"),
			expect: []byte("hello"),
		},
		{
			name:   "stored-empty",
			input:  mustDecodeHex("01 0000 ffff"),
			expect: []byte{},
		},
		{
			name:    "stored-bad-nlen",
			input:   mustDecodeHex("01 0500 feff 68656c6c6f"),
			problem: "Invalid length in uncompressed block",
		},
		{
			name:    "stored-truncated",
			input:   mustDecodeHex("01 0500 faff 6865"),
			problem: "Unexpected end of data",
		},
		{
			name:   "fixed-empty",
			input:  mustDecodeHex("0300"),
			expect: []byte{},
		},
		{
			name:    "fixed-truncated",
			input:   mustDecodeHex("03"),
			problem: "Unexpected end of data",
		},
		{
			name:    "no-input",
			input:   nil,
			problem: "Unexpected end of data",
		},
		{
			name:    "reserved-block-type",
			input:   mustDecodeHex("07"),
			problem: "Reserved block type",
		},
		{
			name:   "stored-then-fixed",
			input:  mustDecodeHex("00 0200 fdff 6869 0300"),
			expect: []byte("hi"),
		},
	}

	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			actual, _, err := Inflate(row.input)
			if row.problem != "" {
				var cie CorruptInputError
				if !errors.As(err, &cie) {
					t.Fatalf("expected CorruptInputError, got %v", err)
				}
				if cie.Problem != row.problem {
					t.Errorf("expected problem %q, got %q", row.problem, cie.Problem)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(row.expect, actual) {
				t.Errorf("wrong output:%s", tabify(hexDiff(row.expect, actual)))
			}
		})
	}
}

func TestInflate_Truncated(t *testing.T) {
	_, _, err := Inflate(mustDecodeHex("03"))
	if !IsTruncated(err) {
		t.Errorf("expected IsTruncated, got %v", err)
	}

	_, _, err = Inflate(mustDecodeHex("07"))
	if IsTruncated(err) {
		t.Errorf("reserved block type reported as truncation: %v", err)
	}
}

func TestInflate_RoundTrip(t *testing.T) {
	levels := []int{flate.HuffmanOnly, flate.NoCompression, flate.BestSpeed, flate.DefaultCompression, flate.BestCompression}

	inputs := sampleInputs()
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, level := range levels {
		for _, name := range names {
			input := inputs[name]
			t.Run(fmt.Sprintf("%s/level=%d", name, level), func(t *testing.T) {
				var buf bytes.Buffer
				fw, err := flate.NewWriter(&buf, level)
				if err != nil {
					t.Fatalf("flate.NewWriter: %v", err)
				}
				if _, err := fw.Write(input); err != nil {
					t.Fatalf("Write: %v", err)
				}
				if err := fw.Close(); err != nil {
					t.Fatalf("Close: %v", err)
				}
				compressed := buf.Bytes()

				actual, bitOffset, err := Inflate(compressed)
				if err != nil {
					t.Fatalf("Inflate: %v", err)
				}
				if !bytes.Equal(input, actual) {
					t.Fatalf("wrong output: expected %d bytes, got %d bytes", len(input), len(actual))
				}
				if consumed := (bitOffset + 7) / 8; consumed != uint64(len(compressed)) {
					t.Errorf("expected all %d bytes consumed, got %d", len(compressed), consumed)
				}
			})
		}
	}
}

func TestInflate_TrailingBytesIgnored(t *testing.T) {
	actual, bitOffset, err := Inflate(mustDecodeHex("0300 deadbeef"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(actual) != 0 {
		t.Errorf("expected empty output, got %x", actual)
	}
	if bitOffset != 10 {
		t.Errorf("expected bit offset 10, got %d", bitOffset)
	}
}

// dynamicHeader writes a final dynamic block header whose literal/length
// code covers 'a' (1 bit), end-of-block and length 3 (2 bits each), and
// whose distance code is a single length-1 code.  With overrun set, the
// distance length is replaced by a run that overshoots the table.
func dynamicHeader(bw *bitWriter, overrun bool) {
	var sX [physicalNumXCodes]byte
	sX[18] = 1
	sX[1] = 2
	sX[2] = 2
	hX := mustEncoder(sX[:])

	bw.writeBits(1, 1)  // BFINAL
	bw.writeBits(2, 2)  // BTYPE = dynamic
	bw.writeBits(5, 1)  // HLIT: 258 codes
	bw.writeBits(5, 0)  // HDIST: 1 code
	bw.writeBits(4, 14) // HCLEN: 18 code length codes
	for i := 0; i < 18; i++ {
		bw.writeBits(3, uint32(sX[scramble[i]]))
	}

	// 97 zeros, 'a'=1, 158 zeros, 256=2, 257=2, distance 0.
	bw.writeSymbol(hX, 18).writeBits(7, 97-11)
	bw.writeSymbol(hX, 1)
	bw.writeSymbol(hX, 18).writeBits(7, 138-11)
	bw.writeSymbol(hX, 18).writeBits(7, 20-11)
	bw.writeSymbol(hX, 2)
	bw.writeSymbol(hX, 2)
	if overrun {
		bw.writeSymbol(hX, 18).writeBits(7, 0) // 11 zeros where 1 code remains
	} else {
		bw.writeSymbol(hX, 1)
	}
}

func dynamicLiteralCode() SizeList {
	sizes := make(SizeList, 258)
	sizes['a'] = 1
	sizes[256] = 2
	sizes[257] = 2
	return sizes
}

func TestInflate_SingleDistanceCode(t *testing.T) {
	hLL := mustEncoder(dynamicLiteralCode())

	var bw bitWriter
	dynamicHeader(&bw, false)
	bw.writeSymbol(hLL, 'a')
	bw.writeSymbol(hLL, 257) // length 3
	bw.writeBits(1, 0)       // distance symbol 0: distance 1
	bw.writeSymbol(hLL, 256)

	var trees []*TreesEvent
	tracer := TracerFunc(func(event Event) {
		if event.Type == BlockTreesEvent {
			trees = append(trees, event.Trees)
		}
	})

	actual, _, err := Inflate(bw.bytes(), WithTracers(tracer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(actual) != "aaaa" {
		t.Errorf("expected %q, got %q", "aaaa", actual)
	}

	if len(trees) != 1 {
		t.Fatalf("expected 1 BlockTreesEvent, got %d", len(trees))
	}
	if n := len(trees[0].DistanceSizes); n != physicalNumDCodes {
		t.Errorf("expected distance code padded to %d entries, got %d", physicalNumDCodes, n)
	}
	if diff := cmp.Diff(dynamicLiteralCode(), trees[0].LiteralLengthSizes); diff != "" {
		t.Errorf("wrong literal/length sizes (-want +got):\n%s", diff)
	}
}

func TestInflate_EmptyDistanceCode(t *testing.T) {
	// A distance code of a single zero length is legal for literal-only
	// blocks, but cannot serve a length symbol.
	hLL := mustEncoder(dynamicLiteralCode())

	t.Run("literals-only", func(t *testing.T) {
		var bw bitWriter
		dynamicHeaderZeroDistance(&bw)
		bw.writeSymbol(hLL, 'a')
		bw.writeSymbol(hLL, 256)

		actual, _, err := Inflate(bw.bytes())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(actual) != "a" {
			t.Errorf("expected %q, got %q", "a", actual)
		}
	})

	t.Run("length-symbol", func(t *testing.T) {
		var bw bitWriter
		dynamicHeaderZeroDistance(&bw)
		bw.writeSymbol(hLL, 'a')
		bw.writeSymbol(hLL, 257)
		bw.writeBits(8, 0)

		_, _, err := Inflate(bw.bytes())
		var cie CorruptInputError
		if !errors.As(err, &cie) {
			t.Fatalf("expected CorruptInputError, got %v", err)
		}
		if expect := "Length symbol encountered with empty distance code"; cie.Problem != expect {
			t.Errorf("expected problem %q, got %q", expect, cie.Problem)
		}
	})
}

// dynamicHeaderZeroDistance is dynamicHeader with a zero-length distance
// code, which needs the literal 0 in the code length alphabet.
func dynamicHeaderZeroDistance(bw *bitWriter) {
	// Code length code: 0, 1, 2 and 18, each 2 bits.
	var sX [physicalNumXCodes]byte
	sX[0] = 2
	sX[1] = 2
	sX[2] = 2
	sX[18] = 2
	hX := mustEncoder(sX[:])

	bw.writeBits(1, 1)
	bw.writeBits(2, 2)
	bw.writeBits(5, 1)
	bw.writeBits(5, 0)
	bw.writeBits(4, 14)
	for i := 0; i < 18; i++ {
		bw.writeBits(3, uint32(sX[scramble[i]]))
	}

	bw.writeSymbol(hX, 18).writeBits(7, 97-11)
	bw.writeSymbol(hX, 1)
	bw.writeSymbol(hX, 18).writeBits(7, 138-11)
	bw.writeSymbol(hX, 18).writeBits(7, 20-11)
	bw.writeSymbol(hX, 2)
	bw.writeSymbol(hX, 2)
	bw.writeSymbol(hX, 0)
}

func TestInflate_DynamicTreeErrors(t *testing.T) {
	type testRow struct {
		name    string
		build   func(bw *bitWriter)
		problem string
	}

	var testData = [...]testRow{
		{
			name: "run-overflow",
			build: func(bw *bitWriter) {
				dynamicHeader(bw, true)
			},
			problem: "Run exceeds number of codes",
		},
		{
			name: "repeat-without-previous",
			build: func(bw *bitWriter) {
				var sX [physicalNumXCodes]byte
				sX[16] = 1
				sX[18] = 1
				hX := mustEncoder(sX[:])
				bw.writeBits(1, 1).writeBits(2, 2)
				bw.writeBits(5, 0).writeBits(5, 0).writeBits(4, 0)
				for i := 0; i < 4; i++ {
					bw.writeBits(3, uint32(sX[scramble[i]]))
				}
				bw.writeSymbol(hX, 16).writeBits(2, 0)
			},
			problem: "No code length value to copy",
		},
		{
			name: "under-full-code-length-code",
			build: func(bw *bitWriter) {
				bw.writeBits(1, 1).writeBits(2, 2)
				bw.writeBits(5, 0).writeBits(5, 0).writeBits(4, 0)
				bw.writeBits(3, 1).writeBits(3, 0).writeBits(3, 0).writeBits(3, 0)
			},
			problem: "This canonical code produces an under-full Huffman code tree",
		},
	}

	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var bw bitWriter
			row.build(&bw)
			_, _, err := Inflate(bw.bytes())
			var cie CorruptInputError
			if !errors.As(err, &cie) {
				t.Fatalf("expected CorruptInputError, got %v", err)
			}
			if cie.Problem != row.problem {
				t.Errorf("expected problem %q, got %q", row.problem, cie.Problem)
			}
		})
	}
}

func TestInflate_DistanceBeyondOutput(t *testing.T) {
	hLL := mustEncoder(FixedLiteralLengthSizes())
	hD := mustEncoder(FixedDistanceSizes())

	var bw bitWriter
	bw.writeBits(1, 1).writeBits(2, 1)
	bw.writeSymbol(hLL, 'x')
	bw.writeSymbol(hLL, 257)
	bw.writeSymbol(hD, 1) // distance 2
	bw.writeSymbol(hLL, 256)

	_, _, err := Inflate(bw.bytes())
	var cie CorruptInputError
	if !errors.As(err, &cie) {
		t.Fatalf("expected CorruptInputError, got %v", err)
	}
	if expect := "Invalid distance 2 with only 1 bytes of history"; cie.Problem != expect {
		t.Errorf("expected problem %q, got %q", expect, cie.Problem)
	}
}

func TestInflate_ReservedSymbols(t *testing.T) {
	hLL := mustEncoder(FixedLiteralLengthSizes())
	hD := mustEncoder(FixedDistanceSizes())

	t.Run("length", func(t *testing.T) {
		var bw bitWriter
		bw.writeBits(1, 1).writeBits(2, 1)
		bw.writeSymbol(hLL, 286)
		_, _, err := Inflate(bw.bytes())
		var cie CorruptInputError
		if !errors.As(err, &cie) || cie.Problem != "Reserved length symbol" {
			t.Errorf("expected reserved length symbol, got %v", err)
		}
	})

	t.Run("distance", func(t *testing.T) {
		var bw bitWriter
		bw.writeBits(1, 1).writeBits(2, 1)
		bw.writeSymbol(hLL, 'x')
		bw.writeSymbol(hLL, 257)
		bw.writeSymbol(hD, 30)
		_, _, err := Inflate(bw.bytes())
		var cie CorruptInputError
		if !errors.As(err, &cie) || cie.Problem != "Reserved distance symbol" {
			t.Errorf("expected reserved distance symbol, got %v", err)
		}
	})
}

func TestInflate_LengthAndDistanceExtraBits(t *testing.T) {
	hLL := mustEncoder(FixedLiteralLengthSizes())
	hD := mustEncoder(FixedDistanceSizes())

	// 300 literal bytes, then a copy of length 258 from distance 300,
	// then a copy of length 11 (symbol 265, extra 0) from distance 5
	// (symbol 4, extra 0).
	var expect []byte
	var bw bitWriter
	bw.writeBits(1, 1).writeBits(2, 1)
	for i := 0; i < 300; i++ {
		ch := byte('a' + i%26)
		expect = append(expect, ch)
		bw.writeSymbol(hLL, int(ch))
	}

	// length 258: symbol 285; distance 300: symbol 16 (base 257, 7 extra bits)
	bw.writeSymbol(hLL, 285)
	bw.writeSymbol(hD, 16).writeBits(7, 300-257)
	expect = append(expect, expect[len(expect)-300:len(expect)-300+258]...)

	bw.writeSymbol(hLL, 265).writeBits(1, 0)
	bw.writeSymbol(hD, 4).writeBits(1, 0)
	for i := 0; i < 11; i++ {
		expect = append(expect, expect[len(expect)-5])
	}

	bw.writeSymbol(hLL, 256)

	actual, _, err := Inflate(bw.bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(expect, actual) {
		t.Errorf("wrong output:%s", tabify(hexDiff(expect, actual)))
	}
}

func TestInflate_OutputLimit(t *testing.T) {
	var buf bytes.Buffer
	fw, _ := flate.NewWriter(&buf, flate.BestCompression)
	_, _ = fw.Write(bytes.Repeat([]byte("0123456789"), 1000))
	_ = fw.Close()

	_, _, err := Inflate(buf.Bytes(), WithOutputLimit(100))
	if !errors.Is(err, ErrOutputLimit) {
		t.Errorf("expected ErrOutputLimit, got %v", err)
	}

	actual, _, err := Inflate(buf.Bytes(), WithOutputLimit(10000))
	if err != nil || len(actual) != 10000 {
		t.Errorf("expected 10000 bytes at the limit, got %d bytes, %v", len(actual), err)
	}
}

func TestInflate_Events(t *testing.T) {
	var events []EventType
	tracer := TracerFunc(func(event Event) {
		events = append(events, event.Type)
	})

	_, _, err := Inflate(mustDecodeHex("01 0500 faff 68656c6c6f"), WithTracers(tracer, NoOpTracer{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := []EventType{StreamBeginEvent, BlockBeginEvent, BlockEndEvent, StreamEndEvent}
	if diff := cmp.Diff(expect, events); diff != "" {
		t.Errorf("wrong events (-want +got):\n%s", diff)
	}
}
