// Package semaphore implements counting and binary semaphores over a single
// 32-bit shared word.
//
// The word holds the permit count, read as an unsigned value. Acquirers take
// permits with a compare-and-swap loop and wait on the word while the count
// is too low; releasers add permits and wake waiters. Any number of
// Semaphore handles in any number of agents may share the same word.
//
// Waiters are not queued: an agent that has waited longest may lose permits
// to one that just arrived.
package semaphore
