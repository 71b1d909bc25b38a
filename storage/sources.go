package storage

import "github.com/tetratelabs/smny/api"

// sliceSource is the zero-copy api.SliceSource view: a borrowed byte slice
// over a directly addressable region (RAM, a memory-mapped flash
// partition, or a file mapped into memory for tests).
type sliceSource struct{ bytes []byte }

// NewSliceSource wraps bytes, a directly addressable region, as an
// api.ModuleSource. bytes is borrowed, not copied: callers must keep the
// backing mapping alive for as long as the source is in use.
func NewSliceSource(bytes []byte) api.ModuleSource { return sliceSource{bytes: bytes} }

func (s sliceSource) Open() (interface{}, api.ErrorKind) { return s, "" }
func (s sliceSource) Bytes() []byte                      { return s.bytes }

// rangeSource is the api.BufferedSource view over an api.FlashIo region
// that is not directly addressable. It never materializes the whole
// manifest: each ReadAt is forwarded straight to the underlying FlashIo.
type rangeSource struct {
	flash api.FlashIo
	size  int
}

func (s rangeSource) Open() (interface{}, api.ErrorKind) { return s, "" }
func (s rangeSource) Len() int                           { return s.size }
func (s rangeSource) ReadAt(dst []byte, offset int) api.ErrorKind {
	if offset < 0 || offset+len(dst) > s.size {
		return api.ErrOutOfRange
	}
	return s.flash.Read(offset, dst)
}

// bufferedSource is the api.BufferedSource view that eagerly copies the
// whole region into an owned buffer (allocated on the first Open and reused
// after) at Open time, so subsequent reads serve from RAM instead of hitting
// flash again.
type bufferedSource struct {
	flash api.FlashIo
	size  int
	scratch []byte
}

func (s *bufferedSource) Open() (interface{}, api.ErrorKind) {
	if cap(s.scratch) < s.size {
		s.scratch = make([]byte, s.size)
	}
	buf := s.scratch[:s.size]
	if kind := s.flash.Read(0, buf); kind != "" {
		return nil, kind
	}
	return bufferedView{buf: buf}, ""
}

// bufferedView is the materialized, already-read form of a bufferedSource.
type bufferedView struct{ buf []byte }

func (v bufferedView) Len() int { return len(v.buf) }
func (v bufferedView) ReadAt(dst []byte, offset int) api.ErrorKind {
	if offset < 0 || offset+len(dst) > len(v.buf) {
		return api.ErrOutOfRange
	}
	copy(dst, v.buf[offset:offset+len(dst)])
	return ""
}

// ReadAll materializes a full []byte from whatever view a ModuleSource
// returned, used by the orchestrator before handing bytes to the manifest
// codec (which operates on a plain slice, not a reader interface).
func ReadAll(source api.ModuleSource) ([]byte, api.ErrorKind) {
	view, kind := source.Open()
	if kind != "" {
		return nil, kind
	}
	switch v := view.(type) {
	case api.SliceSource:
		return v.Bytes(), ""
	case api.BufferedSource:
		buf := make([]byte, v.Len())
		if kind := v.ReadAt(buf, 0); kind != "" {
			return nil, kind
		}
		return buf, ""
	default:
		return nil, api.ErrOutOfRange
	}
}
