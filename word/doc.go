// Package word provides the shared atomic word every primitive in go-shmsync
// is built on, together with its blocking wait/notify operation.
//
// A Word is a 32-bit or 64-bit integer cell that several agents reference at
// the same address. All access goes through Load, CompareAndSwap,
// CompareAndExchange and Add; the cell is never updated with a plain
// read-modify-write.
//
// # Waiting
//
// Wait implements "wait if unchanged": it returns NotEqual when the word no
// longer holds the expected value, OK when a Notify released the caller, and
// TimedOut when the timeout elapsed first. How the caller waits depends on the
// wait mode:
//
//   - Blocking: the agent is parked on the platform primitive. On Linux 32-bit
//     words use the kernel futex, which also works for words placed in a
//     MAP_SHARED mapping and waited on from other processes. 64-bit words and
//     other platforms use an in-process parking table.
//   - Spinning: the agent re-loads the word until it changes or the timeout
//     elapses, and never parks.
//
// The process-wide mode is resolved once, lazily, by the capability probe
// (see BlockingAllowed). It can be forced with Configure before first use, and
// individual words can opt out with WithMode:
//
//	w, err := word.New(&shared.lock, word.WithMode(word.ModeSpin))
package word
