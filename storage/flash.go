// Package storage presents module bytes to the core over two access
// shapes, §4.2 of spec.md: a zero-copy slice view for directly addressable
// regions (RAM, memory-mapped flash), and a buffered/on-demand view for
// storage that isn't directly addressable (HAL flash behind read/erase
// callbacks).
//
// Adapters over vendor HALs (ESP-IDF partition APIs, STM32 HAL callback
// pairs) are external collaborators that implement api.FlashIo; this
// package ships two host adapters, MemoryFlash and FileFlash, used by
// tests and by in-RAM staging.
package storage

import (
	"io"
	"os"

	"github.com/tetratelabs/smny/api"
)

// MemoryFlash is an in-RAM api.FlashIo used in tests to exercise erase-block
// alignment without real hardware. It keeps its own copy of the region.
type MemoryFlash struct {
	buf        []byte
	eraseBlock int
}

// NewMemoryFlash allocates a MemoryFlash of capacity bytes with the given
// erase block size (0 disables alignment checks).
func NewMemoryFlash(capacity, eraseBlock int) *MemoryFlash {
	return &MemoryFlash{buf: make([]byte, capacity), eraseBlock: eraseBlock}
}

func (f *MemoryFlash) Capacity() int   { return len(f.buf) }
func (f *MemoryFlash) EraseBlock() int { return f.eraseBlock }

func (f *MemoryFlash) Read(offset int, dst []byte) api.ErrorKind {
	if offset < 0 || offset+len(dst) > len(f.buf) {
		return api.ErrOutOfRange
	}
	copy(dst, f.buf[offset:offset+len(dst)])
	return ""
}

func (f *MemoryFlash) EraseWrite(offset int, src []byte) api.ErrorKind {
	if kind := checkAlignment(offset, len(src), f.eraseBlock); kind != "" {
		return kind
	}
	if offset < 0 || offset+len(src) > len(f.buf) {
		return api.ErrOutOfRange
	}
	copy(f.buf[offset:offset+len(src)], src)
	return ""
}

// FileFlash adapts a host file into api.FlashIo, for integration tests that
// want manifests to survive process restarts the way an on-device flash
// partition would.
type FileFlash struct {
	f          *os.File
	capacity   int
	eraseBlock int
}

// OpenFileFlash opens (creating if needed) path as a FileFlash of the given
// capacity and erase block size.
func OpenFileFlash(path string, capacity, eraseBlock int) (*FileFlash, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(capacity)); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &FileFlash{f: f, capacity: capacity, eraseBlock: eraseBlock}, nil
}

func (f *FileFlash) Close() error { return f.f.Close() }

func (f *FileFlash) Capacity() int   { return f.capacity }
func (f *FileFlash) EraseBlock() int { return f.eraseBlock }

func (f *FileFlash) Read(offset int, dst []byte) api.ErrorKind {
	if offset < 0 || offset+len(dst) > f.capacity {
		return api.ErrOutOfRange
	}
	if _, err := f.f.ReadAt(dst, int64(offset)); err != nil && err != io.EOF {
		return api.ErrFlashRead
	}
	return ""
}

func (f *FileFlash) EraseWrite(offset int, src []byte) api.ErrorKind {
	if kind := checkAlignment(offset, len(src), f.eraseBlock); kind != "" {
		return kind
	}
	if offset < 0 || offset+len(src) > f.capacity {
		return api.ErrOutOfRange
	}
	if _, err := f.f.WriteAt(src, int64(offset)); err != nil {
		return api.ErrFlashWrite
	}
	return ""
}

func (f *FileFlash) Flush() api.ErrorKind {
	if err := f.f.Sync(); err != nil {
		return api.ErrFlashWrite
	}
	return ""
}

// checkAlignment enforces spec.md §4.2: when eraseBlock is non-zero, both
// offset and length must be a multiple of it.
func checkAlignment(offset, length, eraseBlock int) api.ErrorKind {
	if eraseBlock <= 0 {
		return ""
	}
	if offset%eraseBlock != 0 || length%eraseBlock != 0 {
		return api.ErrMisaligned
	}
	return ""
}
