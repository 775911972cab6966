//go:build amd64
// +build amd64

package crc32

import (
	stdcrc32 "hash/crc32"

	"golang.org/x/sys/cpu"
)

// The standard library carries a PCLMULQDQ folding kernel for IEEE; use it
// when the CPU has the instructions and fall back to slicing-by-8 otherwise.
var ieeeTable = stdcrc32.MakeTable(stdcrc32.IEEE)

func archAvailable() bool {
	return cpu.X86.HasPCLMULQDQ && cpu.X86.HasSSE41
}

func archUpdate(sum uint32, p []byte) uint32 {
	if len(p) < 64 {
		return genericUpdate(sum, p)
	}
	return stdcrc32.Update(sum, ieeeTable, p)
}
