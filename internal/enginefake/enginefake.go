// Package enginefake provides a minimal api.Engine test double used by this
// repository's own orchestrator and cache tests: it records how many times
// Load was called instead of actually parsing WebAssembly, the same role
// wazero's own test fakes (e.g. testfs.FS in namespace_test.go) play for
// their respective interfaces.
package enginefake

import "github.com/tetratelabs/smny/api"

// Engine counts Load calls and always succeeds unless configured not to.
type Engine struct {
	LoadCount    int
	InvokeCount  int
	FailLoad     api.ErrorKind
	FailInvoke   api.ErrorKind
	ResetSupport bool
}

func (e *Engine) Load(bytes []byte) (api.Handle, api.ErrorKind) {
	e.LoadCount++
	if e.FailLoad != "" {
		return nil, e.FailLoad
	}
	return fakeHandle{bytes: string(bytes)}, ""
}

func (e *Engine) Invoke(api.Handle, string) api.ErrorKind {
	e.InvokeCount++
	return e.FailInvoke
}

func (e *Engine) Reset(api.Handle) api.ErrorKind {
	if e.ResetSupport {
		return ""
	}
	return api.ErrUnsupported
}

// fakeHandle satisfies api.Handle.
type fakeHandle struct{ bytes string }
