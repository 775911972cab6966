package crc32

import (
	"testing"
)

// bitwiseUpdate is the textbook one-bit-at-a-time CRC, used as a reference.
func bitwiseUpdate(sum uint32, p []byte) uint32 {
	sum = ^sum
	for _, ch := range p {
		for i := 0; i < 8; i++ {
			sum ^= uint32(ch>>i) & 1
			sum = (sum >> 1) ^ (-(sum & 1) & ieeePolynomial)
		}
	}
	return ^sum
}

func TestChecksum(t *testing.T) {
	type testRow struct {
		name  string
		input []byte
	}

	long := make([]byte, 1000)
	for i := range long {
		long[i] = byte(i*7 + 3)
	}

	var testData = [...]testRow{
		{"empty", nil},
		{"check", []byte("123456789")},
		{"iend", []byte("IEND")},
		{"short", long[:15]},
		{"medium", long[:63]},
		{"long", long},
	}

	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			expect := bitwiseUpdate(0, row.input)
			if actual := Update(0, row.input); actual != expect {
				t.Errorf("Update: expected %#08x, got %#08x", expect, actual)
			}
			if actual := genericUpdate(0, row.input); actual != expect {
				t.Errorf("genericUpdate: expected %#08x, got %#08x", expect, actual)
			}
		})
	}

	if actual := Update(0, []byte("123456789")); actual != 0xcbf43926 {
		t.Errorf("check value: expected %#08x, got %#08x", 0xcbf43926, actual)
	}
}

func TestChunkChecksum(t *testing.T) {
	// IEND's CRC is fixed by the format: AE 42 60 82.
	if actual := ChunkChecksum([]byte("IEND"), nil); actual != 0xae426082 {
		t.Errorf("IEND: expected %#08x, got %#08x", 0xae426082, actual)
	}

	if actual := ChunkChecksum([]byte("IEN"), []byte("D")); actual != 0xae426082 {
		t.Errorf("split type code: expected %#08x, got %#08x", 0xae426082, actual)
	}
}
