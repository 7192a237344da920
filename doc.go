// Package shmsync provides synchronization primitives built on shared atomic
// memory words: a mutual-exclusion lock with unlock tokens, a condition
// variable, and counting and binary semaphores.
//
// Every primitive is a handle over one or two caller-owned words. The handles
// hold no state of their own, so any number of agents (goroutines, or
// processes sharing a mapping) can each build a handle over the same memory
// and coordinate through it. The functionality lives in focused subpackages:
//
//   - github.com/a2y-d5l/go-shmsync/word      - atomic words, wait and notify, the blocking probe
//   - github.com/a2y-d5l/go-shmsync/lock      - Mutex, Token and Condition
//   - github.com/a2y-d5l/go-shmsync/semaphore - Semaphore and binary semaphores
//   - github.com/a2y-d5l/go-shmsync/region    - shared memory to lay words out in
//
// The root package re-exports the common entry points.
//
// Example usage:
//
//	r, err := region.New(16)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	mw, _ := shmsync.WordFromBytes[int32](r.Bytes(), 0)
//	cw, _ := shmsync.WordFromBytes[int32](r.Bytes(), 4)
//	mu, _ := shmsync.NewMutex(mw)
//	cv, _ := shmsync.NewCondition(cw)
//
//	tok, err := mu.Lock(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer tok.Dispose()
//	ok, err := cv.WaitFor(tok, time.Second, func() bool { return ready() })
//
// Where an agent must never block, set the mode with Configure before the
// first wait, or per word with WithMode. Waits then spin on the word instead
// of parking.
package shmsync
