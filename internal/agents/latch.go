package agents

import (
	"context"
	"sync"
)

// Latch is a one-shot gate. Agents block in Await until CountDown opens it.
type Latch struct {
	done chan struct{}
	once sync.Once
}

// NewLatch returns a latch that has not been opened.
func NewLatch() *Latch {
	return &Latch{done: make(chan struct{})}
}

// CountDown opens the latch. Later calls have no effect.
func (l *Latch) CountDown() {
	l.once.Do(func() { close(l.done) })
}

// Await blocks until the latch opens or ctx is done.
func (l *Latch) Await(ctx context.Context) error {
	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsReleased reports whether the latch is open.
func (l *Latch) IsReleased() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}
