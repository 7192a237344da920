package word

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Nil(t *testing.T) {
	_, err := New[int32](nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New[int64](nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFromBytes_Validation(t *testing.T) {
	buf := make([]byte, 16)
	require.Zero(t, uintptr(unsafe.Pointer(&buf[0]))%8, "test buffer must be 8-byte aligned")

	tests := []struct {
		name    string
		build   func() error
		wantErr bool
	}{
		{"int32 at 0", func() error { _, err := FromBytes[int32](buf, 0); return err }, false},
		{"int32 at 4", func() error { _, err := FromBytes[int32](buf, 4); return err }, false},
		{"int64 at 8", func() error { _, err := FromBytes[int64](buf, 8); return err }, false},
		{"int32 misaligned", func() error { _, err := FromBytes[int32](buf, 1); return err }, true},
		{"int64 misaligned", func() error { _, err := FromBytes[int64](buf, 4); return err }, true},
		{"int64 over 4 bytes", func() error { _, err := FromBytes[int64](buf[:4], 0); return err }, true},
		{"int32 over 2 bytes", func() error { _, err := FromBytes[int32](buf[:2], 0); return err }, true},
		{"past the end", func() error { _, err := FromBytes[int32](buf, 16); return err }, true},
		{"negative offset", func() error { _, err := FromBytes[int32](buf, -4); return err }, true},
		{"empty buffer", func() error { _, err := FromBytes[int32](nil, 0); return err }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromBytes_SharesMemory(t *testing.T) {
	buf := make([]byte, 16)
	a, err := FromBytes[int32](buf, 4)
	require.NoError(t, err)
	b, err := FromBytes[int32](buf, 4)
	require.NoError(t, err)

	a.Store(42)
	assert.Equal(t, int32(42), b.Load())
}

func TestBits(t *testing.T) {
	var v32 int32
	var v64 int64
	w32, _ := New(&v32)
	w64, _ := New(&v64)
	assert.Equal(t, 32, w32.Bits())
	assert.Equal(t, 64, w64.Bits())
}

func testOps[T Int](t *testing.T) {
	var cell T
	w, err := New(&cell)
	require.NoError(t, err)

	assert.Equal(t, T(0), w.Load())

	w.Store(5)
	assert.Equal(t, T(5), w.Load())

	assert.False(t, w.CompareAndSwap(4, 9))
	assert.True(t, w.CompareAndSwap(5, 9))
	assert.Equal(t, T(9), w.Load())

	assert.Equal(t, T(9), w.CompareAndExchange(9, 1), "success returns the expected value")
	assert.Equal(t, T(1), w.CompareAndExchange(0, 7), "failure returns the conflicting value")
	assert.Equal(t, T(1), w.Load())

	assert.Equal(t, T(1), w.Add(3), "Add returns the previous value")
	assert.Equal(t, T(4), w.Load())
	assert.Equal(t, T(4), w.Add(-4))
	assert.Equal(t, T(0), w.Load())
}

func TestOps32(t *testing.T) { testOps[int32](t) }
func TestOps64(t *testing.T) { testOps[int64](t) }

func TestAdd_Wraps32(t *testing.T) {
	var cell int32 = 1<<31 - 1
	w, _ := New(&cell)
	w.Add(1)
	assert.Equal(t, int32(-1<<31), w.Load())
	assert.Equal(t, uint32(1<<31), uint32(w.Load()))
}

func TestNew_Options(t *testing.T) {
	var cell int64
	w, err := New(&cell, WithMode(ModeSpin))
	require.NoError(t, err)
	assert.Equal(t, ModeSpin, w.Mode())

	w, err = New(&cell)
	require.NoError(t, err)
	assert.Equal(t, ModeAuto, w.Mode())
}
