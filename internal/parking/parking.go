// Package parking implements an in-process, address-keyed waiter table.
//
// It backs the blocking wait of words the kernel futex cannot serve (64-bit
// words, non-Linux builds). Waiters are hashed by address into a fixed table
// of buckets; the value check and the enqueue happen under the bucket lock,
// and Wake takes the same lock, so a wake issued after the value changed can
// never miss a waiter that observed the old value.
package parking

import (
	"sync"
	"time"
	"unsafe"
)

// Forever disables the timeout of Wait.
const Forever = time.Duration(1<<63 - 1)

// Result is the outcome of Wait.
type Result int

const (
	// Woken means a Wake call released the waiter.
	Woken Result = iota
	// Mismatch means the value had already changed when Wait was called.
	Mismatch
	// TimedOut means the timeout elapsed first.
	TimedOut
)

const (
	tableSize     = 251
	cacheLinePad  = 64
	addrHashShift = 3
)

type waiter struct {
	addr       uintptr
	ready      chan struct{}
	prev, next *waiter
	queued     bool
}

type bucket struct {
	mu         sync.Mutex
	head, tail *waiter
}

var table [tableSize]struct {
	b bucket
	_ [cacheLinePad]byte
}

func bucketFor(addr unsafe.Pointer) *bucket {
	return &table[(uintptr(addr)>>addrHashShift)%tableSize].b
}

func (b *bucket) push(w *waiter) {
	w.queued = true
	w.prev = b.tail
	if b.tail != nil {
		b.tail.next = w
	} else {
		b.head = w
	}
	b.tail = w
}

func (b *bucket) remove(w *waiter) {
	if w.prev != nil {
		w.prev.next = w.next
	} else {
		b.head = w.next
	}
	if w.next != nil {
		w.next.prev = w.prev
	} else {
		b.tail = w.prev
	}
	w.prev, w.next = nil, nil
	w.queued = false
}

// Wait parks the calling goroutine on addr if unchanged reports true, until a
// Wake on the same address releases it or timeout elapses. unchanged is called
// with the bucket lock held and must only load the word.
func Wait(addr unsafe.Pointer, unchanged func() bool, timeout time.Duration) Result {
	b := bucketFor(addr)
	b.mu.Lock()
	if !unchanged() {
		b.mu.Unlock()
		return Mismatch
	}
	if timeout <= 0 {
		b.mu.Unlock()
		return TimedOut
	}
	w := &waiter{addr: uintptr(addr), ready: make(chan struct{})}
	b.push(w)
	b.mu.Unlock()

	if timeout == Forever {
		<-w.ready
		return Woken
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-w.ready:
		return Woken
	case <-timer.C:
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if w.queued {
		b.remove(w)
		return TimedOut
	}
	// Claimed by a Wake that raced the timer.
	return Woken
}

// Wake releases up to n goroutines parked on addr, oldest first, and returns
// how many were released.
func Wake(addr unsafe.Pointer, n int) int {
	if n < 1 {
		return 0
	}
	b := bucketFor(addr)
	b.mu.Lock()
	defer b.mu.Unlock()

	woken := 0
	for w := b.head; w != nil && woken < n; {
		next := w.next
		if w.addr == uintptr(addr) {
			b.remove(w)
			close(w.ready)
			woken++
		}
		w = next
	}
	return woken
}

// Waiters returns the number of goroutines currently parked on addr.
func Waiters(addr unsafe.Pointer) int {
	b := bucketFor(addr)
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for w := b.head; w != nil; w = w.next {
		if w.addr == uintptr(addr) {
			n++
		}
	}
	return n
}
