// Package wasmtest holds a tiny hand-assembled WebAssembly module shared by
// this repository's own tests: a single nullary export, "main", with an
// empty body. It exists only so engine and orchestrator tests can exercise
// Load/Invoke without a guest example module, which spec.md §1 puts out of
// scope for this repository.
package wasmtest

import _ "embed"

// Nullary is a minimal valid WebAssembly module exporting a nullary
// function, "main", that returns no values and does nothing.
//
//go:embed testdata/nullary.wasm
var Nullary []byte
