package semaphore

import (
	"fmt"
	"math"
	"time"

	"github.com/a2y-d5l/go-shmsync/word"
)

// Unavailable is returned by the acquire operations when the permits could
// not be taken.
const Unavailable int64 = -1

// Semaphore is a handle over a permit-count word.
type Semaphore struct {
	w   *word.Word[int32]
	max uint32
}

// New returns a counting Semaphore over w. The count ranges over
// [0, math.MaxUint32].
func New(w *word.Word[int32]) (*Semaphore, error) {
	return newSemaphore(w, math.MaxUint32)
}

// NewBinary returns a Semaphore over w whose count is at most 1.
func NewBinary(w *word.Word[int32]) (*Semaphore, error) {
	return newSemaphore(w, 1)
}

func newSemaphore(w *word.Word[int32], limit uint32) (*Semaphore, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil semaphore word", word.ErrInvalidArgument)
	}
	if v := uint32(w.Load()); v > limit {
		return nil, fmt.Errorf("%w: initial count %d exceeds %d", word.ErrRange, v, limit)
	}
	return &Semaphore{w: w, max: limit}, nil
}

// Max returns the largest count the semaphore can hold, 0 for an
// uninitialised handle.
func (s *Semaphore) Max() uint32 {
	if s.valid() != nil {
		return 0
	}
	return s.max
}

// Value returns the current permit count, 0 for an uninitialised handle.
func (s *Semaphore) Value() uint32 {
	if s.valid() != nil {
		return 0
	}
	return s.load()
}

// TryAcquire takes n permits if they are available right now and returns the
// count left. It returns Unavailable, changing nothing, when fewer than n
// permits are available. n == 0 returns the current count.
func (s *Semaphore) TryAcquire(n uint32) (int64, error) {
	if err := s.valid(); err != nil {
		return Unavailable, err
	}
	v := s.load()
	if n == 0 {
		return int64(v), nil
	}
	for v >= n {
		old := uint32(s.w.CompareAndExchange(int32(v), int32(v-n)))
		if old == v {
			return int64(v - n), nil
		}
		v = old
	}
	return Unavailable, nil
}

// TryAcquireFor takes n permits, waiting at most timeout for enough of them
// to be released, and returns the count left. It returns Unavailable on
// timeout, including when n exceeds Max.
func (s *Semaphore) TryAcquireFor(timeout time.Duration, n uint32) (int64, error) {
	if err := s.valid(); err != nil {
		return Unavailable, err
	}
	v := s.load()
	if n == 0 {
		return int64(v), nil
	}

	timeout = word.Clamp(timeout)
	start := time.Now()
	for {
		for v < n {
			if s.w.Wait(int32(v), word.Remaining(timeout, start)) == word.TimedOut {
				return Unavailable, nil
			}
			v = s.load()
		}
		old := uint32(s.w.CompareAndExchange(int32(v), int32(v-n)))
		if old == v {
			return int64(v - n), nil
		}
		v = old
	}
}

// Acquire takes n permits, blocking until they are available, and returns
// the count left. Asking for more than Max permits could never succeed and
// fails with ErrRange instead of blocking forever.
func (s *Semaphore) Acquire(n uint32) (int64, error) {
	if err := s.valid(); err != nil {
		return Unavailable, err
	}
	if n > s.max {
		return Unavailable, fmt.Errorf("%w: %d permits requested, at most %d exist", word.ErrRange, n, s.max)
	}
	return s.TryAcquireFor(word.Forever, n)
}

// Release adds n permits and returns the count before the release. It fails
// with ErrRange, changing nothing, when the count would exceed Max.
//
// Release wakes up to n waiters whatever number of permits each of them
// asked for. A waiter that still cannot proceed goes back to waiting.
func (s *Semaphore) Release(n uint32) (uint32, error) {
	if err := s.valid(); err != nil {
		return 0, err
	}
	for {
		v := s.load()
		if n == 0 {
			return v, nil
		}
		if n > s.max-v {
			return v, fmt.Errorf("%w: releasing %d permits onto %d exceeds %d", word.ErrRange, n, v, s.max)
		}
		if s.w.CompareAndSwap(int32(v), int32(v+n)) {
			s.w.Notify(int(min(n, math.MaxInt32)))
			return v, nil
		}
	}
}

func (s *Semaphore) load() uint32 {
	return uint32(s.w.Load())
}

func (s *Semaphore) valid() error {
	if s == nil || s.w == nil {
		return fmt.Errorf("%w: uninitialised semaphore", word.ErrInvalidArgument)
	}
	return nil
}
