// Package region provides memory regions that agents can share and lay
// synchronization words out in.
//
// On Unix systems a Region is a shared anonymous mapping, so it stays shared
// with child processes across fork. Elsewhere it is ordinary heap memory,
// which is shared only between goroutines of one process.
package region

import (
	"fmt"
	"sync"

	"github.com/a2y-d5l/go-shmsync/word"
)

// Region is a fixed-size block of zeroed memory, aligned to at least 8
// bytes.
type Region struct {
	mu   sync.Mutex
	buf  []byte
	free func([]byte) error
}

// New allocates a Region of size bytes.
func New(size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: region size %d", word.ErrInvalidArgument, size)
	}
	buf, free, err := allocate(size)
	if err != nil {
		return nil, fmt.Errorf("allocate %d-byte region: %w", size, err)
	}
	return &Region{buf: buf, free: free}, nil
}

// Bytes returns the region's memory, or nil once it has been closed. Words
// created over it must not be used after Close.
func (r *Region) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf
}

// Len returns the size of the region in bytes, 0 once closed.
func (r *Region) Len() int {
	return len(r.Bytes())
}

// Close releases the region. Closing twice is a no-op.
func (r *Region) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.buf == nil {
		return nil
	}
	buf := r.buf
	r.buf = nil
	return r.free(buf)
}
