// Package smny is the caller-facing surface of the SMNY device-side
// runtime: validate, load, and invoke a signed manifest blob against a
// pluggable WebAssembly engine. See SPEC_FULL.md for the full design; this
// package is deliberately small, following wazero's own split between a
// thin root package (Runtime, Policy, CachedEngine) and the leaf packages
// that do the actual work (manifest, storage, engine/...).
package smny

import "github.com/tetratelabs/smny/manifest"

// Policy configures how Runtime.Run decodes and accepts a manifest. It is
// the exact record spec.md §6 defines; manifest.Policy is the same type
// (kept there because the codec needs it directly), and its With* methods
// are usable here unchanged through this alias.
type Policy = manifest.Policy

// NewPolicy returns the zero-value Policy: no public key configured, no
// sequence floor, unknown reserved flags rejected. Chain its With* methods
// to configure it, e.g. smny.NewPolicy().WithSequenceFloor(7).
func NewPolicy() Policy {
	return manifest.NewPolicy()
}
