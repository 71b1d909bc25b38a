package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceSourceZeroCopy(t *testing.T) {
	buf := []byte("manifest bytes")
	src := NewSliceSource(buf)

	got, kind := ReadAll(src)
	require.Empty(t, kind)
	require.Equal(t, buf, got)

	// Zero-copy: mutating the original mutates what the source returns.
	buf[0] = 'M'
	got2, _ := ReadAll(src)
	require.Equal(t, byte('M'), got2[0])
}

func TestBufferedStoreFromHAL(t *testing.T) {
	flash := NewMemoryFlash(64, 0)
	payload := make([]byte, 64)
	copy(payload, "hello from flash")
	require.Empty(t, flash.EraseWrite(0, payload))

	src := BufferedStoreFromHAL(flash)
	got, kind := ReadAll(src)
	require.Empty(t, kind)
	require.Equal(t, payload, got)
}

func TestOnDemandStoreFromHAL(t *testing.T) {
	flash := NewMemoryFlash(64, 0)
	payload := make([]byte, 64)
	copy(payload, "pulled on demand")
	require.Empty(t, flash.EraseWrite(0, payload))

	src := OnDemandStoreFromHAL(flash)
	got, kind := ReadAll(src)
	require.Empty(t, kind)
	require.Equal(t, payload, got)
}

func TestMemoryStoreReplace(t *testing.T) {
	store := NewMemoryStore([]byte("first"))
	got, _ := ReadAll(store)
	require.Equal(t, []byte("first"), got)

	store.Replace([]byte("second"))
	got, _ = ReadAll(store)
	require.Equal(t, []byte("second"), got)
}
