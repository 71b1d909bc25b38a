package api

// ModuleSource presents manifest bytes to the core. Storage regions come in
// two shapes depending on whether they are directly addressable:
//
//   - SliceSource: the region is memory-mapped or otherwise directly
//     addressable (RAM, a memory-mapped flash partition, a file mapped for
//     tests). Bytes returns a borrowed slice with no copy; its lifetime is
//     tied to the underlying mapping.
//   - BufferedSource: the region is not directly addressable (flash behind
//     HAL read callbacks), so bytes are either copied wholesale into a
//     buffer or pulled on demand via ReadAt.
//
// A concrete source implements whichever shape fits its backing storage; the
// orchestrator type-switches on the result of Open.
type ModuleSource interface {
	// Open returns a view over the full manifest blob currently staged in
	// this source's region, as either a SliceSource or a BufferedSource.
	Open() (interface{}, ErrorKind)
}

// SliceSource is a ModuleSource view backed by a directly addressable byte
// slice. Zero-copy.
type SliceSource interface {
	// Bytes returns the manifest blob as a borrowed slice.
	Bytes() []byte
}

// BufferedSource is a ModuleSource view backed by storage that is not
// directly addressable. Len reports the manifest's total size; ReadAt pulls
// an arbitrary range into dst, mirroring io.ReaderAt but with an ErrorKind
// result so the caller need not allocate a wrapping error.
type BufferedSource interface {
	// Len returns the total size in bytes of the manifest blob.
	Len() int

	// ReadAt copies len(dst) bytes starting at offset into dst. It returns
	// ErrOutOfRange if the read would run past Len.
	ReadAt(dst []byte, offset int) ErrorKind
}

// FlashIo is the HAL-level contract a storage adapter implements over a raw
// flash device. Offsets are relative to the start of the module region the
// adapter was constructed over, not to the physical device.
type FlashIo interface {
	// Read copies len(dst) bytes starting at offset into dst.
	Read(offset int, dst []byte) ErrorKind

	// EraseWrite erases (if necessary) and writes src at offset. When
	// EraseBlock is non-zero, both offset and len(src) must be a multiple
	// of it, or this returns ErrMisaligned.
	EraseWrite(offset int, src []byte) ErrorKind

	// Capacity returns the total addressable size of the region in bytes.
	Capacity() int

	// EraseBlock returns the minimum erase alignment in bytes, or zero if
	// this device has no alignment requirement.
	EraseBlock() int
}

// Flush is implemented by a FlashIo adapter that buffers writes and needs an
// explicit commit point. It is optional: adapters that write through need
// not implement it.
type Flush interface {
	Flush() ErrorKind
}
