// Package futex wraps the kernel futex wait/wake operations used as the
// blocking primitive for 32-bit words.
//
// Only the plain FUTEX_WAIT and FUTEX_WAKE operations are issued. The private
// flag is never set so a word that lives in a MAP_SHARED mapping can be waited
// on and woken from different processes.
package futex

import (
	"errors"
	"time"
)

// Forever disables the timeout of Wait.
const Forever = time.Duration(1<<63 - 1)

var (
	// ErrNotEqual is returned by Wait when the word no longer held the expected value.
	ErrNotEqual = errors.New("futex: value changed")
	// ErrTimedOut is returned by Wait when the timeout elapsed without a wake.
	ErrTimedOut = errors.New("futex: timed out")
)
