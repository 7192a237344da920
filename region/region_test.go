package region

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2y-d5l/go-shmsync/word"
)

func TestNew_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := New(size)
		assert.ErrorIs(t, err, word.ErrInvalidArgument)
	}
}

func TestRegion(t *testing.T) {
	r, err := New(100)
	require.NoError(t, err)

	assert.Equal(t, 100, r.Len())
	buf := r.Bytes()
	assert.Zero(t, uintptr(unsafe.Pointer(&buf[0]))%8, "region must be 8-byte aligned")
	for _, b := range buf {
		require.Zero(t, b)
	}

	require.NoError(t, r.Close())
	assert.Nil(t, r.Bytes())
	assert.Zero(t, r.Len())
	assert.NoError(t, r.Close(), "second close is a no-op")
}

func TestRegion_Words(t *testing.T) {
	r, err := New(16)
	require.NoError(t, err)
	defer r.Close()

	w32, err := word.FromBytes[int32](r.Bytes(), 0)
	require.NoError(t, err)
	w64, err := word.FromBytes[int64](r.Bytes(), 8)
	require.NoError(t, err)

	w32.Store(7)
	w64.Add(1 << 40)

	again, err := word.FromBytes[int64](r.Bytes(), 8)
	require.NoError(t, err)
	assert.EqualValues(t, 1<<40, again.Load())
	assert.EqualValues(t, 7, w32.Load())

	_, err = word.FromBytes[int64](r.Bytes(), 12)
	assert.ErrorIs(t, err, word.ErrInvalidArgument, "does not fit")
	_, err = word.FromBytes[int64](r.Bytes(), 4)
	assert.ErrorIs(t, err, word.ErrInvalidArgument, "misaligned")
}
