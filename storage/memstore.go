package storage

import "github.com/tetratelabs/smny/api"

// MemoryStore is a RAM-backed api.ModuleSource built from an owned byte
// buffer: spec.md §4.4's use for tests, for in-RAM modules, and as a
// staging buffer when copying a manifest out of flash before, say,
// overwriting that flash region with a new one.
//
// No build configuration in this repository excludes it; there is no
// separate no-heap build.
type MemoryStore struct{ buf []byte }

// NewMemoryStore wraps buf as a MemoryStore. buf is taken by reference, not
// copied.
func NewMemoryStore(buf []byte) *MemoryStore { return &MemoryStore{buf: buf} }

// Replace swaps the store's backing buffer, e.g. after staging a freshly
// downloaded manifest.
func (m *MemoryStore) Replace(buf []byte) { m.buf = buf }

func (m *MemoryStore) Open() (interface{}, api.ErrorKind) { return sliceSource{bytes: m.buf}, "" }
