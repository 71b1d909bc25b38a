package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryFlashAlignmentEnforced(t *testing.T) {
	f := NewMemoryFlash(8192, 4096)

	// Misaligned offset.
	kind := f.EraseWrite(100, make([]byte, 4096))
	require.EqualValues(t, "Misaligned", kind)

	// Misaligned length.
	kind = f.EraseWrite(0, make([]byte, 100))
	require.EqualValues(t, "Misaligned", kind)

	// Aligned offset and length succeeds.
	kind = f.EraseWrite(4096, make([]byte, 4096))
	require.Empty(t, kind)
}

func TestMemoryFlashAlignmentDisabled(t *testing.T) {
	f := NewMemoryFlash(8192, 0)
	kind := f.EraseWrite(100, make([]byte, 37))
	require.Empty(t, kind)
}

func TestMemoryFlashOutOfRange(t *testing.T) {
	f := NewMemoryFlash(128, 0)
	require.EqualValues(t, "OutOfRange", f.Read(100, make([]byte, 64)))
	require.EqualValues(t, "OutOfRange", f.EraseWrite(100, make([]byte, 64)))
}

func TestMemoryFlashReadWriteRoundTrip(t *testing.T) {
	f := NewMemoryFlash(4096, 0)
	payload := []byte("hello flash")
	require.Empty(t, f.EraseWrite(16, payload))

	dst := make([]byte, len(payload))
	require.Empty(t, f.Read(16, dst))
	require.Equal(t, payload, dst)
}

func TestFileFlashRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")
	f, err := OpenFileFlash(path, 4096, 4096)
	require.NoError(t, err)
	defer f.Close()

	require.EqualValues(t, "Misaligned", f.EraseWrite(1, make([]byte, 4096)))

	payload := make([]byte, 4096)
	copy(payload, "manifest bytes")
	require.Empty(t, f.EraseWrite(0, payload))
	require.Empty(t, f.Flush())

	dst := make([]byte, 4096)
	require.Empty(t, f.Read(0, dst))
	require.Equal(t, payload, dst)
}

func TestPadLen(t *testing.T) {
	tests := []struct {
		n, block, want int
	}{
		{0, 0, 0},
		{100, 0, 100},
		{4096, 4096, 4096},
		{4097, 4096, 8192},
		{1, 4096, 4096},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, PadLen(tt.n, tt.block))
	}
}
