// Package lock implements a mutual-exclusion lock and a condition variable
// over shared atomic words.
//
// A Mutex is a handle over one word that is 0 when unlocked and 1 when
// locked. Acquiring it yields a Token, the capability that represents "this
// agent holds the lock". The token is the only way to release the lock and
// the only way to wait on a Condition:
//
//	tok, err := mu.Lock(nil)
//	if err != nil {
//		return err
//	}
//	defer tok.Dispose()
//
//	ok, err := cv.WaitFor(tok, time.Second, func() bool { return ready() })
//
// A Condition is a handle over a second word used as a change counter.
// Waiters follow Mesa semantics: a wakeup is a hint, and the predicate passed
// to WaitFor is re-evaluated with the lock held after every wakeup.
//
// Neither primitive is fair. A newly arriving agent may take the lock ahead
// of one that has been waiting longer. Locks are not reentrant.
package lock
