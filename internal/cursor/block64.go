//go:build !386 && !arm
// +build !386,!arm

package cursor

const bytesPerBlock = 8

type block uint64
