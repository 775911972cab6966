//go:build 386 || arm
// +build 386 arm

package cursor

const bytesPerBlock = 4

type block uint32
