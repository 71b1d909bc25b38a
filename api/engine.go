package api

// Handle is an opaque, engine-owned reference to a loaded module. A Handle's
// lifetime is bounded by the Engine instance that produced it: handles are
// not portable across engines, and a nil Handle is never valid.
//
// Concrete engines define their own Handle implementation (typically a
// small struct wrapping a native module/instance reference); callers only
// ever pass a Handle back to the Engine that produced it, never inspect it.
type Handle interface{}

// Engine virtualizes a WebAssembly backend behind a uniform load/invoke
// contract. Three shapes are foreseen by this repository: a small
// interpreter suitable for MCUs, a stub reserved for a second interpreter,
// and a host-only interpreter used for integration testing. Exactly one
// needs to be present in any given build; callers select it by importing
// the corresponding engine/* package and nothing else.
//
// Implementations must be idempotent with respect to byte content: loading
// the same module bytes twice must produce functionally equivalent handles.
// Errors are always an api.ErrorKind; no allocation is permitted on an
// error path.
type Engine interface {
	// Load parses and instantiates a WebAssembly module from bytes.
	Load(bytes []byte) (Handle, ErrorKind)

	// Invoke looks up the named export on handle, which must be a nullary
	// function returning no values, and runs it to completion. Host traps
	// surface as ErrTrap.
	Invoke(handle Handle, entry string) ErrorKind

	// Reset returns handle to a pristine state without re-parsing the
	// module it was loaded from. Engines that cannot support this return
	// ErrUnsupported, and callers (namely CachedEngine) fall back to
	// re-loading from scratch.
	Reset(handle Handle) ErrorKind
}
