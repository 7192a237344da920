package word

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Int is the set of integer widths a Word can hold.
type Int interface {
	int32 | int64
}

// Word is a handle over an atomic integer cell shared between agents. The
// handle itself is immutable and may be copied; all copies address the same
// cell.
type Word[T Int] struct {
	p    *T
	mode Mode
}

// New returns a Word over the cell at p. p must be non-nil and naturally
// aligned for its width.
func New[T Int](p *T, opts ...Option) (*Word[T], error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil word", ErrInvalidArgument)
	}
	if uintptr(unsafe.Pointer(p))%unsafe.Sizeof(*p) != 0 {
		return nil, fmt.Errorf("%w: %d-bit word at %p is misaligned",
			ErrInvalidArgument, unsafe.Sizeof(*p)*8, p)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Word[T]{p: p, mode: cfg.mode}, nil
}

// FromBytes views the bytes of buf starting at offset as a Word. The view must
// fit inside buf and be aligned for the width, which is what makes a view of
// the wrong width fail: a 4-byte buffer cannot back an int64 word.
func FromBytes[T Int](buf []byte, offset int, opts ...Option) (*Word[T], error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if offset < 0 || len(buf)-offset < size {
		return nil, fmt.Errorf("%w: %d-bit word at offset %d does not fit a %d-byte buffer",
			ErrInvalidArgument, size*8, offset, len(buf))
	}
	return New((*T)(unsafe.Pointer(&buf[offset])), opts...)
}

// Bits returns the width of the word, 32 or 64.
func (w *Word[T]) Bits() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// Mode returns the wait mode the word was created with.
func (w *Word[T]) Mode() Mode {
	return w.mode
}

// Load atomically reads the word.
func (w *Word[T]) Load() T {
	switch p := any(w.p).(type) {
	case *int32:
		return T(atomic.LoadInt32(p))
	case *int64:
		return T(atomic.LoadInt64(p))
	}
	panic("word: unsupported width")
}

// Store atomically writes the word. Protocols never use it; it exists to
// initialise memory before agents start sharing it.
func (w *Word[T]) Store(v T) {
	switch p := any(w.p).(type) {
	case *int32:
		atomic.StoreInt32(p, int32(v))
	case *int64:
		atomic.StoreInt64(p, int64(v))
	}
}

// CompareAndSwap replaces old with replacement if the word holds old, and
// reports whether it did.
func (w *Word[T]) CompareAndSwap(old, replacement T) bool {
	switch p := any(w.p).(type) {
	case *int32:
		return atomic.CompareAndSwapInt32(p, int32(old), int32(replacement))
	case *int64:
		return atomic.CompareAndSwapInt64(p, int64(old), int64(replacement))
	}
	panic("word: unsupported width")
}

// CompareAndExchange is CompareAndSwap that returns the value the word held:
// old on success, the conflicting value on failure.
func (w *Word[T]) CompareAndExchange(old, replacement T) T {
	for {
		if w.CompareAndSwap(old, replacement) {
			return old
		}
		if cur := w.Load(); cur != old {
			return cur
		}
	}
}

// Add atomically adds delta and returns the previous value.
func (w *Word[T]) Add(delta T) T {
	switch p := any(w.p).(type) {
	case *int32:
		return T(atomic.AddInt32(p, int32(delta)) - int32(delta))
	case *int64:
		return T(atomic.AddInt64(p, int64(delta)) - int64(delta))
	}
	panic("word: unsupported width")
}

func (w *Word[T]) addr() unsafe.Pointer {
	return unsafe.Pointer(w.p)
}
