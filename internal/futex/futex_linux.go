//go:build linux

package futex

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Supported reports whether this build talks to the kernel futex.
const Supported = true

const (
	opWait = 0 // FUTEX_WAIT
	opWake = 1 // FUTEX_WAKE
)

// Wait blocks the calling thread while *addr == val, until Wake is called on
// addr or timeout elapses. Interrupted waits are resumed with whatever time is
// left. A nil error means the thread was woken.
func Wait(addr *uint32, val uint32, timeout time.Duration) error {
	var deadline time.Time
	if timeout != Forever {
		deadline = time.Now().Add(timeout)
	}
	for {
		var ts *unix.Timespec
		if timeout != Forever {
			t := unix.NsecToTimespec(int64(timeout))
			ts = &t
		}
		_, _, e := unix.Syscall6(unix.SYS_FUTEX,
			uintptr(unsafe.Pointer(addr)),
			uintptr(opWait),
			uintptr(val),
			uintptr(unsafe.Pointer(ts)),
			0, 0)
		switch e {
		case 0:
			return nil
		case unix.EAGAIN:
			return ErrNotEqual
		case unix.ETIMEDOUT:
			return ErrTimedOut
		case unix.EINTR:
			if timeout != Forever {
				timeout = time.Until(deadline)
				if timeout <= 0 {
					return ErrTimedOut
				}
			}
		default:
			return e
		}
	}
}

// Wake wakes at most n threads blocked in Wait on addr and returns how many
// were woken.
func Wake(addr *uint32, n int) (int, error) {
	if n < 1 {
		n = 1
	}
	if n > 1<<31-1 {
		n = 1<<31 - 1
	}
	woken, _, e := unix.Syscall6(unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(opWake),
		uintptr(n),
		0, 0, 0)
	if e != 0 {
		return 0, e
	}
	return int(woken), nil
}
