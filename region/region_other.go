//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package region

import "unsafe"

func allocate(size int) ([]byte, func([]byte) error, error) {
	// Backing the bytes with uint64s gives the 8-byte alignment 64-bit
	// words need.
	cells := make([]uint64, (size+7)/8)
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&cells[0])), size)
	return buf, func([]byte) error { return nil }, nil
}
