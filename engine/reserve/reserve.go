// Package reserve is engine B from spec.md §4.3: "a stub placeholder for a
// second interpreter, reserved for future wiring." It satisfies api.Engine
// so callers can select it at build time and get a predictable
// api.ErrUnsupported instead of a link error, but it loads nothing.
//
// The eventual target for this slot is WAMR (the WebAssembly Micro
// Runtime), per the out-of-scope upstream-interpreters line in spec.md §1.
// No WAMR Go binding is wired here: doing so would contradict what this
// backend is — see DESIGN.md.
package reserve

import "github.com/tetratelabs/smny/api"

// Engine is the reserved stub backend. Its zero value is ready to use.
type Engine struct{}

func (Engine) Load([]byte) (api.Handle, api.ErrorKind) { return nil, api.ErrUnsupported }
func (Engine) Invoke(api.Handle, string) api.ErrorKind { return api.ErrUnsupported }
func (Engine) Reset(api.Handle) api.ErrorKind          { return api.ErrUnsupported }
