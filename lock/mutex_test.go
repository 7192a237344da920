package lock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2y-d5l/go-shmsync/word"
)

func testLockUnlock[T word.Int](t *testing.T) {
	m := newMutex[T](t, word.ModeAuto)

	tok, err := m.Lock(nil)
	require.NoError(t, err)
	defer tok.Dispose()

	assert.True(t, tok.Locked())
	assert.True(t, m.Locked())

	assert.True(t, tok.Unlock())
	assert.False(t, tok.Locked())
	assert.False(t, m.Locked())

	assert.False(t, tok.Unlock(), "second unlock is a no-op")
}

func TestLockUnlock32(t *testing.T) { testLockUnlock[int32](t) }
func TestLockUnlock64(t *testing.T) { testLockUnlock[int64](t) }

func TestNewMutex_Nil(t *testing.T) {
	_, err := NewMutex[int32](nil)
	assert.ErrorIs(t, err, word.ErrInvalidArgument)
}

func TestMutex_ZeroValue(t *testing.T) {
	var m Mutex[int32]
	_, err := m.Lock(nil)
	assert.ErrorIs(t, err, word.ErrInvalidArgument)

	assert.False(t, m.Locked())

	var nilMutex *Mutex[int64]
	_, err = nilMutex.TryLock(nil)
	assert.ErrorIs(t, err, word.ErrInvalidArgument)
	assert.False(t, nilMutex.Locked())
}

func TestLock_ReusesEmptyToken(t *testing.T) {
	m := newMutex[int32](t, word.ModeAuto)

	var tok Token
	got, err := m.Lock(&tok)
	require.NoError(t, err)
	assert.Same(t, &tok, got)
	assert.True(t, tok.Locked())

	require.True(t, tok.Unlock())
	got, err = m.Lock(&tok)
	require.NoError(t, err)
	assert.Same(t, &tok, got, "an emptied token can be associated again")
	tok.Dispose()
}

func TestLock_AssociatedTokenFails(t *testing.T) {
	m1 := newMutex[int32](t, word.ModeAuto)
	m2 := newMutex[int64](t, word.ModeAuto)

	tok, err := m1.Lock(nil)
	require.NoError(t, err)
	defer tok.Dispose()

	_, err = m2.Lock(tok)
	assert.ErrorIs(t, err, word.ErrIllegalState)
	assert.False(t, m2.Locked(), "a rejected token must not leave the mutex locked")

	_, err = m1.TryLock(tok)
	assert.ErrorIs(t, err, word.ErrIllegalState)
}

func TestLockIfAvailable_Unlocked(t *testing.T) {
	m := newMutex[int32](t, word.ModeAuto)

	tok, err := m.LockIfAvailable(0, nil)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.True(t, tok.Locked())
	assert.True(t, tok.Unlock())
	assert.False(t, tok.Locked())
}

func TestLockIfAvailable_ZeroTimeoutOnLocked(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			m := newMutex[int32](t, mode)
			held, err := m.Lock(nil)
			require.NoError(t, err)
			defer held.Dispose()

			var tok Token
			start := time.Now()
			got, err := m.LockIfAvailable(0, &tok)
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.Less(t, time.Since(start), 100*time.Millisecond)
			assert.False(t, tok.Locked(), "a timed out attempt leaves the token empty")

			got, err = m.TryLock(nil)
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestLockIfAvailable_Timeout(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			m := newMutex[int64](t, mode)
			held, err := m.Lock(nil)
			require.NoError(t, err)
			defer held.Dispose()

			start := time.Now()
			got, err := m.LockIfAvailable(20*time.Millisecond, nil)
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
		})
	}
}

func TestLockIfAvailable_AcquiresAfterRelease(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			m := newMutex[int32](t, mode)
			held, err := m.Lock(nil)
			require.NoError(t, err)

			go func() {
				time.Sleep(10 * time.Millisecond)
				held.Unlock()
			}()

			tok, err := m.LockIfAvailable(5*time.Second, nil)
			require.NoError(t, err)
			require.NotNil(t, tok)
			assert.True(t, tok.Locked())
			tok.Dispose()
		})
	}
}

func TestUnlock_WordNotLocked(t *testing.T) {
	var cell int32
	w, _ := word.New(&cell)
	m, _ := NewMutex(w)

	tok, err := m.Lock(nil)
	require.NoError(t, err)

	w.Store(0)
	assert.False(t, tok.Unlock(), "unlock fails when the word is not locked")
	assert.False(t, tok.Locked())

	w.Store(1)
	assert.True(t, tok.Unlock(), "the token kept its association")
}

func TestToken_NilAndEmpty(t *testing.T) {
	var empty Token
	assert.False(t, empty.Locked())
	assert.False(t, empty.Unlock())
	empty.Dispose()

	var nilTok *Token
	assert.False(t, nilTok.Locked())
	assert.False(t, nilTok.Unlock())
	nilTok.Dispose()
}

func testMutualExclusion[T word.Int](t *testing.T, mode word.Mode) {
	const (
		agents     = 4
		iterations = 10000
	)
	m := newMutex[T](t, mode)
	counter := 0

	var wg sync.WaitGroup
	wg.Add(agents)
	for range agents {
		go func() {
			defer wg.Done()
			for range iterations {
				tok, err := m.Lock(nil)
				if err != nil {
					t.Error(err)
					return
				}
				counter++
				tok.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, agents*iterations, counter)
	assert.False(t, m.Locked())
}

func TestMutualExclusion(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode.String()+"/32", func(t *testing.T) { testMutualExclusion[int32](t, mode) })
		t.Run(mode.String()+"/64", func(t *testing.T) { testMutualExclusion[int64](t, mode) })
	}
}

func TestUnguardedIncrement(t *testing.T) {
	if raceEnabled {
		t.Skip("unguarded increments are a deliberate data race")
	}
	const (
		agents     = 2
		iterations = 10000
	)
	counter := 0

	var wg sync.WaitGroup
	wg.Add(agents)
	for range agents {
		go func() {
			defer wg.Done()
			for range iterations {
				counter++
			}
		}()
	}
	wg.Wait()

	// Lost updates are possible but not guaranteed on any given run.
	assert.LessOrEqual(t, counter, agents*iterations)
}

func BenchmarkMutex_Uncontended(b *testing.B) {
	var cell int32
	w, _ := word.New(&cell)
	m, _ := NewMutex(w)
	var tok Token

	for b.Loop() {
		m.Lock(&tok)
		tok.Unlock()
	}
}

func BenchmarkMutex_Contended(b *testing.B) {
	var cell int32
	w, _ := word.New(&cell)
	m, _ := NewMutex(w)

	b.RunParallel(func(pb *testing.PB) {
		var tok Token
		for pb.Next() {
			m.Lock(&tok)
			tok.Unlock()
		}
	})
}
