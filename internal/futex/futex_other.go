//go:build !linux

package futex

import (
	"errors"
	"time"
)

// Supported reports whether this build talks to the kernel futex.
const Supported = false

// Wait is unavailable outside Linux.
func Wait(addr *uint32, val uint32, timeout time.Duration) error {
	return errors.ErrUnsupported
}

// Wake is unavailable outside Linux.
func Wake(addr *uint32, n int) (int, error) {
	return 0, errors.ErrUnsupported
}
