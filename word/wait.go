package word

import (
	"errors"
	"math"
	"runtime"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/a2y-d5l/go-shmsync/internal/futex"
	"github.com/a2y-d5l/go-shmsync/internal/parking"
)

// Forever is the timeout that never elapses.
const Forever = time.Duration(math.MaxInt64)

// WaitResult is the outcome of Wait.
type WaitResult int

const (
	// OK means the waiter was released by a Notify or saw the word change while spinning.
	OK WaitResult = iota
	// NotEqual means the word already differed from the expected value.
	NotEqual
	// TimedOut means the timeout elapsed with the word unchanged.
	TimedOut
)

func (r WaitResult) String() string {
	switch r {
	case OK:
		return "ok"
	case NotEqual:
		return "not-equal"
	case TimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Clamp maps a caller timeout onto the range Wait accepts: negative durations
// become 0, everything else is kept.
func Clamp(timeout time.Duration) time.Duration {
	if timeout < 0 {
		return 0
	}
	return timeout
}

// Remaining returns how much of timeout is left after the time elapsed since
// start. Forever stays Forever.
func Remaining(timeout time.Duration, start time.Time) time.Duration {
	if timeout == Forever {
		return Forever
	}
	return max(timeout-time.Since(start), 0)
}

// Wait blocks the calling agent while the word holds expected, for at most
// timeout. A zero timeout never blocks. Whether the agent parks or spins is
// decided by the word's mode and, for ModeAuto, by BlockingAllowed.
func (w *Word[T]) Wait(expected T, timeout time.Duration) WaitResult {
	timeout = Clamp(timeout)
	if !w.blocking() {
		return w.spinWait(expected, timeout)
	}
	return w.blockingWait(expected, timeout)
}

// Notify wakes up to count agents parked in Wait on this word and returns the
// number woken. count is raised to 1 if lower. Spinning agents notice the
// change on their own and are not counted.
func (w *Word[T]) Notify(count int) int {
	count = max(count, 1)
	if p, ok := any(w.p).(*int32); ok && futex.Supported {
		n, err := futex.Wake((*uint32)(unsafe.Pointer(p)), count)
		if err != nil {
			return 0
		}
		return n
	}
	return parking.Wake(w.addr(), count)
}

// NotifyAll wakes every agent parked in Wait on this word.
func (w *Word[T]) NotifyAll() int {
	return w.Notify(math.MaxInt32)
}

func (w *Word[T]) blocking() bool {
	switch w.mode {
	case ModeBlock:
		return true
	case ModeSpin:
		return false
	}
	return BlockingAllowed()
}

func (w *Word[T]) spinWait(expected T, timeout time.Duration) WaitResult {
	if w.Load() != expected {
		return NotEqual
	}
	if timeout == 0 {
		return TimedOut
	}
	start := time.Now()
	for {
		runtime.Gosched()
		if w.Load() != expected {
			return OK
		}
		if timeout != Forever && time.Since(start) >= timeout {
			return TimedOut
		}
	}
}

func (w *Word[T]) blockingWait(expected T, timeout time.Duration) WaitResult {
	if p, ok := any(w.p).(*int32); ok && futex.Supported {
		res, err := platformWait32(p, int32(expected), timeout)
		if err != nil {
			// The kernel refused the wait; spinning keeps the contract
			// without needing a matching wake.
			return w.spinWait(expected, timeout)
		}
		return res
	}

	switch parking.Wait(w.addr(), func() bool { return w.Load() == expected }, timeout) {
	case parking.Mismatch:
		return NotEqual
	case parking.TimedOut:
		return TimedOut
	default:
		return OK
	}
}

func platformWait32(p *int32, expected int32, timeout time.Duration) (WaitResult, error) {
	if !futex.Supported {
		switch parking.Wait(unsafe.Pointer(p), func() bool { return atomic.LoadInt32(p) == expected }, timeout) {
		case parking.Mismatch:
			return NotEqual, nil
		case parking.TimedOut:
			return TimedOut, nil
		default:
			return OK, nil
		}
	}

	err := futex.Wait((*uint32)(unsafe.Pointer(p)), uint32(expected), timeout)
	switch {
	case err == nil:
		return OK, nil
	case errors.Is(err, futex.ErrNotEqual):
		return NotEqual, nil
	case errors.Is(err, futex.ErrTimedOut):
		return TimedOut, nil
	default:
		return TimedOut, err
	}
}
