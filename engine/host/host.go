// Package host implements engine C from spec.md §4.3: a host-only
// interpreter used for integration testing. It wraps
// github.com/bytecodealliance/wasmtime-go, present in the teacher's own
// go.mod as a benchmark dependency. wasmtime needs cgo and a native
// libwasmtime, which rules it out for MCU builds but makes it a faithful
// stand-in for "the real interpreter" in host-side integration tests.
package host

import (
	"github.com/bytecodealliance/wasmtime-go"

	"github.com/tetratelabs/smny/api"
)

// Engine adapts a wasmtime store to api.Engine.
type Engine struct {
	engine *wasmtime.Engine
}

// New constructs a host-only Engine. One wasmtime.Engine is shared across
// every Load call; each Load gets its own Store so handles don't share
// mutable instance state.
func New() *Engine {
	return &Engine{engine: wasmtime.NewEngine()}
}

// handle is the api.Handle this engine produces.
type handle struct {
	store *wasmtime.Store
	inst  *wasmtime.Instance
}

// Load implements api.Engine.
func (e *Engine) Load(bytes []byte) (api.Handle, api.ErrorKind) {
	store := wasmtime.NewStore(e.engine)
	module, err := wasmtime.NewModule(e.engine, bytes)
	if err != nil {
		return nil, api.ErrLoadFailed
	}
	inst, err := wasmtime.NewInstance(store, module, []wasmtime.AsExtern{})
	if err != nil {
		return nil, api.ErrLoadFailed
	}
	return handle{store: store, inst: inst}, ""
}

// Invoke implements api.Engine.
func (e *Engine) Invoke(h api.Handle, entry string) api.ErrorKind {
	hd, ok := h.(handle)
	if !ok {
		return api.ErrUnsupported
	}
	extern := hd.inst.GetExport(hd.store, entry)
	if extern == nil {
		return api.ErrEntryNotFound
	}
	fn := extern.Func()
	if fn == nil {
		return api.ErrEntryNotFound
	}
	if _, err := fn.Call(hd.store); err != nil {
		return api.ErrTrap
	}
	return ""
}

// Reset implements api.Engine. wasmtime instances aren't resettable
// in-place; CachedEngine falls back to a fresh Load.
func (e *Engine) Reset(api.Handle) api.ErrorKind {
	return api.ErrUnsupported
}
