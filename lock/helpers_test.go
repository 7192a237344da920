package lock

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a2y-d5l/go-shmsync/word"
)

var modes = []word.Mode{word.ModeBlock, word.ModeSpin}

func newMutex[T word.Int](t *testing.T, mode word.Mode) *Mutex[T] {
	t.Helper()
	var cell T
	w, err := word.New(&cell, word.WithMode(mode))
	require.NoError(t, err)
	m, err := NewMutex(w)
	require.NoError(t, err)
	return m
}

func newCondition[T word.Int](t *testing.T, mode word.Mode) (*Condition[T], *T) {
	t.Helper()
	cell := new(T)
	w, err := word.New(cell, word.WithMode(mode))
	require.NoError(t, err)
	c, err := NewCondition(w)
	require.NoError(t, err)
	return c, cell
}
