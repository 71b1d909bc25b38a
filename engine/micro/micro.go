// Package micro implements engine A from spec.md §4.3: a small interpreter
// suitable for MCUs. spec.md names wasm3 for this role, but no pure-Go or
// pack-grounded wasm3 binding exists (see DESIGN.md); this backend wraps
// wazero's own interpreter-mode runtime instead, which is pure Go, needs no
// cgo toolchain, and is built for exactly this "no native dependency, small
// footprint" niche.
package micro

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	wazeroapi "github.com/tetratelabs/wazero/api"

	"github.com/tetratelabs/smny/api"
)

// Engine adapts a wazero interpreter-mode runtime to api.Engine.
type Engine struct {
	ctx     context.Context
	runtime wazero.Runtime

	mu sync.Mutex
}

// New constructs an Engine. ctx is the context passed to every wazero call;
// callers on a device with no deadline/cancellation story can pass
// context.Background().
func New(ctx context.Context) *Engine {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	return &Engine{ctx: ctx, runtime: rt}
}

// Close releases the underlying wazero runtime and every module it
// instantiated.
func (e *Engine) Close() error {
	return e.runtime.Close(e.ctx)
}

// handle is the api.Handle this engine produces.
type handle struct {
	mod wazeroapi.Module
}

// Load implements api.Engine.
func (e *Engine) Load(bytes []byte) (api.Handle, api.ErrorKind) {
	e.mu.Lock()
	defer e.mu.Unlock()

	compiled, err := e.runtime.CompileModule(e.ctx, bytes)
	if err != nil {
		return nil, api.ErrLoadFailed
	}
	mod, err := e.runtime.InstantiateModule(e.ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		return nil, api.ErrLoadFailed
	}
	return handle{mod: mod}, ""
}

// Invoke implements api.Engine.
func (e *Engine) Invoke(h api.Handle, entry string) api.ErrorKind {
	hd, ok := h.(handle)
	if !ok {
		return api.ErrUnsupported
	}
	fn := hd.mod.ExportedFunction(entry)
	if fn == nil {
		return api.ErrEntryNotFound
	}
	if _, err := fn.Call(e.ctx); err != nil {
		return api.ErrTrap
	}
	return ""
}

// Reset implements api.Engine. wazero has no in-place reset of an
// instantiated module; callers (CachedEngine) fall back to a fresh Load.
func (e *Engine) Reset(api.Handle) api.ErrorKind {
	return api.ErrUnsupported
}
