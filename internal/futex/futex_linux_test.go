//go:build linux

package futex

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait_NotEqual(t *testing.T) {
	var v uint32 = 7
	assert.ErrorIs(t, Wait(&v, 3, time.Second), ErrNotEqual)
}

func TestWait_ZeroTimeout(t *testing.T) {
	var v uint32
	start := time.Now()
	assert.ErrorIs(t, Wait(&v, 0, 0), ErrTimedOut)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWait_Timeout(t *testing.T) {
	var v uint32
	start := time.Now()
	assert.ErrorIs(t, Wait(&v, 0, 20*time.Millisecond), ErrTimedOut)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestWaitWake(t *testing.T) {
	var v uint32
	done := make(chan error, 1)
	go func() {
		done <- Wait(&v, 0, Forever)
	}()

	// Keep waking until the waiter is registered and returns.
	deadline := time.After(5 * time.Second)
	for {
		atomic.StoreUint32(&v, 1)
		_, err := Wake(&v, 1)
		require.NoError(t, err)
		select {
		case err := <-done:
			// Either woken, or the store landed before the waiter slept.
			if err != nil {
				assert.ErrorIs(t, err, ErrNotEqual)
			}
			return
		case <-deadline:
			t.Fatal("waiter never returned")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestWake_NoWaiters(t *testing.T) {
	var v uint32
	n, err := Wake(&v, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
