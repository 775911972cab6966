//go:build arm64
// +build arm64

package crc32

import (
	stdcrc32 "hash/crc32"

	"golang.org/x/sys/cpu"
)

var ieeeTable = stdcrc32.MakeTable(stdcrc32.IEEE)

func archAvailable() bool {
	return cpu.ARM64.HasCRC32
}

func archUpdate(sum uint32, p []byte) uint32 {
	return stdcrc32.Update(sum, ieeeTable, p)
}
