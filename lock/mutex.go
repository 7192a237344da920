package lock

import (
	"fmt"
	"time"

	"github.com/a2y-d5l/go-shmsync/word"
)

const (
	unlocked = 0
	locked   = 1
)

// Mutex is a handle over a lock word. Any number of handles, in any number of
// agents, may refer to the same word.
type Mutex[T word.Int] struct {
	w *word.Word[T]
}

// NewMutex returns a Mutex over w. The word must be zero (unlocked) before
// agents start using it.
func NewMutex[T word.Int](w *word.Word[T]) (*Mutex[T], error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil mutex word", word.ErrInvalidArgument)
	}
	return &Mutex[T]{w: w}, nil
}

// Lock acquires the mutex, blocking until it is available.
//
// If tok is nil a new Token is returned. Otherwise tok must be empty; it is
// associated with the lock and returned. An associated tok fails with
// ErrIllegalState before the mutex is touched.
func (m *Mutex[T]) Lock(tok *Token) (*Token, error) {
	return m.LockIfAvailable(word.Forever, tok)
}

// TryLock acquires the mutex only if it is free right now. It returns a nil
// Token when it is not.
func (m *Mutex[T]) TryLock(tok *Token) (*Token, error) {
	return m.LockIfAvailable(0, tok)
}

// LockIfAvailable acquires the mutex, waiting at most timeout. A zero timeout
// tries once without blocking. On timeout it returns a nil Token and leaves
// tok untouched.
func (m *Mutex[T]) LockIfAvailable(timeout time.Duration, tok *Token) (*Token, error) {
	if m == nil || m.w == nil {
		return nil, fmt.Errorf("%w: uninitialised mutex", word.ErrInvalidArgument)
	}
	if tok != nil && tok.held != nil {
		return nil, fmt.Errorf("%w: token already holds a lock", word.ErrIllegalState)
	}

	if !m.acquire(word.Clamp(timeout)) {
		return nil, nil
	}

	if tok == nil {
		tok = &Token{}
	}
	tok.held = m
	return tok, nil
}

// Locked reports whether the mutex word is currently locked by any agent. It
// is false for an uninitialised handle.
func (m *Mutex[T]) Locked() bool {
	if m == nil || m.w == nil {
		return false
	}
	return m.w.Load() != unlocked
}

// acquire runs the CAS/wait loop until the word goes 0 -> 1 or timeout
// elapses.
func (m *Mutex[T]) acquire(timeout time.Duration) bool {
	start := time.Now()
	remaining := timeout
	for {
		observed := m.w.CompareAndExchange(unlocked, locked)
		if observed == unlocked {
			return true
		}
		if remaining == 0 {
			return false
		}
		// NotEqual means the holder released between our CAS and the wait:
		// retry at once.
		if m.w.Wait(observed, remaining) == word.TimedOut {
			return false
		}
		remaining = word.Remaining(timeout, start)
	}
}

// release flips the word 1 -> 0 and wakes one waiter.
func (m *Mutex[T]) release() bool {
	if !m.w.CompareAndSwap(locked, unlocked) {
		return false
	}
	m.w.Notify(1)
	return true
}

func (m *Mutex[T]) isLocked() bool {
	return m.Locked()
}

// relock re-acquires the mutex into tok without a timeout.
func (m *Mutex[T]) relock(tok *Token) {
	m.acquire(word.Forever)
	tok.held = m
}
