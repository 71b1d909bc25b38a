package smny

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/smny/internal/enginefake"
	"github.com/tetratelabs/smny/manifest"
)

func testHeader(seq uint32) manifest.Header {
	return manifest.Header{ModuleID: 1, ModuleLen: 4, Sequence: seq, EntryName: "main"}
}

func TestCachedEngineHitOnUnchangedManifest(t *testing.T) {
	inner := &enginefake.Engine{}
	cache := NewCachedEngine(inner)

	module := []byte("wasm")
	h1, kind := cache.loadCached(testHeader(1), module)
	require.Empty(t, kind)
	h2, kind := cache.loadCached(testHeader(1), module)
	require.Empty(t, kind)

	require.Equal(t, 1, inner.LoadCount, "second run over an unchanged manifest must not re-load")
	require.Equal(t, h1, h2)
}

func TestCachedEngineInvalidatesOnHeaderChange(t *testing.T) {
	inner := &enginefake.Engine{}
	cache := NewCachedEngine(inner)

	module := []byte("wasm")
	_, kind := cache.loadCached(testHeader(1), module)
	require.Empty(t, kind)
	_, kind = cache.loadCached(testHeader(2), module) // sequence bumped, module bytes unchanged
	require.Empty(t, kind)

	require.Equal(t, 2, inner.LoadCount, "a changed header must force a re-load")
}

func TestCachedEngineFallsBackWhenResetUnsupported(t *testing.T) {
	inner := &enginefake.Engine{ResetSupport: false}
	cache := NewCachedEngine(inner)

	module := []byte("wasm")
	_, kind := cache.loadCached(testHeader(1), module)
	require.Empty(t, kind)
	_, kind = cache.loadCached(testHeader(1), module)
	require.Empty(t, kind)

	require.Equal(t, 2, inner.LoadCount, "without Reset support, a hit still re-loads")
}

func TestCachedEngineReusesViaResetWhenSupported(t *testing.T) {
	inner := &enginefake.Engine{ResetSupport: true}
	cache := NewCachedEngine(inner)

	module := []byte("wasm")
	_, kind := cache.loadCached(testHeader(1), module)
	require.Empty(t, kind)
	_, kind = cache.loadCached(testHeader(1), module)
	require.Empty(t, kind)

	require.Equal(t, 1, inner.LoadCount)
}

func TestContentHashCoversFirstAndLastKilobyte(t *testing.T) {
	small := []byte("short")
	require.Equal(t, contentHash(small), contentHash(small))

	big := make([]byte, 1<<20)
	big2 := append([]byte(nil), big...)
	big2[1<<19] ^= 0xff // flip a byte in the middle, outside either 1KiB window

	require.Equal(t, contentHash(big), contentHash(big2), "middle-byte changes outside the sampled windows are not detected by design")

	big2[0] ^= 0xff
	require.NotEqual(t, contentHash(big), contentHash(big2))
}
