package lock

import (
	"fmt"
	"math"
	"time"

	"github.com/a2y-d5l/go-shmsync/word"
)

// testHookBeforeWait runs between releasing the lock and waiting on the
// condition word.
var testHookBeforeWait func()

// Condition is a handle over a condition word. The word is a change counter:
// only whether it moved since a waiter looked at it matters, never its value.
//
// A Condition stores no reference to a Mutex. Callers pair each Condition
// with one Mutex and always wait with a Token of that Mutex. The two words
// may have different widths.
type Condition[T word.Int] struct {
	w *word.Word[T]
}

// NewCondition returns a Condition over w.
func NewCondition[T word.Int](w *word.Word[T]) (*Condition[T], error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil condition word", word.ErrInvalidArgument)
	}
	return &Condition[T]{w: w}, nil
}

// Wait releases the lock held by tok, blocks until the condition is
// notified, and re-acquires the lock before returning.
//
// Wait has no predicate to absorb a notification that lands between taking
// the snapshot and starting to wait; that case is reported as
// ErrIllegalState, with the lock held again. Prefer WaitFor with a predicate.
func (c *Condition[T]) Wait(tok *Token) error {
	_, err := c.WaitFor(tok, word.Forever, nil)
	return err
}

// WaitFor releases the lock held by tok and blocks until the condition is
// notified or timeout elapses, then re-acquires the lock. The lock is always
// held again when WaitFor returns, including on error.
//
// Without a predicate it waits once and reports whether it was notified
// (true) or timed out (false).
//
// With a predicate it returns true as soon as pred holds, checking it before
// the first wait and after every wakeup, always with the lock held. On
// timeout it returns the predicate's final value.
//
// tok must be associated with a lock; an empty token fails with
// ErrInvalidArgument.
func (c *Condition[T]) WaitFor(tok *Token, timeout time.Duration, pred func() bool) (bool, error) {
	if c == nil || c.w == nil {
		return false, fmt.Errorf("%w: uninitialised condition", word.ErrInvalidArgument)
	}
	if tok == nil || tok.held == nil {
		return false, fmt.Errorf("%w: condition wait needs a held lock", word.ErrInvalidArgument)
	}

	timeout = word.Clamp(timeout)
	start := time.Now()
	remaining := timeout
	mu := tok.held

	for pred == nil || !pred() {
		// The snapshot precedes the unlock, so a notify issued by anyone who
		// takes the lock after us moves the counter away from it.
		snapshot := c.w.Load()
		if !tok.Unlock() {
			return false, fmt.Errorf("%w: token does not hold its lock", word.ErrInvalidArgument)
		}

		if testHookBeforeWait != nil {
			testHookBeforeWait()
		}
		res := c.w.Wait(snapshot, remaining)
		mu.relock(tok)

		switch res {
		case word.TimedOut:
			if pred != nil {
				return pred(), nil
			}
			return false, nil
		case word.NotEqual:
			if pred == nil {
				return false, fmt.Errorf("%w: condition changed before the wait started", word.ErrIllegalState)
			}
		}

		if pred == nil {
			return true, nil
		}

		remaining = word.Remaining(timeout, start)
		if remaining == 0 {
			return pred(), nil
		}
	}
	return true, nil
}

// Notify bumps the change counter and wakes up to count waiters, at least
// one. It returns the number of waiters woken.
func (c *Condition[T]) Notify(count int) (int, error) {
	if c == nil || c.w == nil {
		return 0, fmt.Errorf("%w: uninitialised condition", word.ErrInvalidArgument)
	}
	c.w.Add(1)
	return c.w.Notify(max(count, 1)), nil
}

// NotifyAll bumps the change counter and wakes every waiter.
func (c *Condition[T]) NotifyAll() (int, error) {
	return c.Notify(math.MaxInt32)
}
