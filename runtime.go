package smny

import (
	"github.com/tetratelabs/smny/api"
	"github.com/tetratelabs/smny/manifest"
	"github.com/tetratelabs/smny/storage"
)

// Runtime composes a storage source, a policy, and an engine (optionally
// wrapped in a CachedEngine) into the verified load-and-run pipeline
// spec.md §4.4 describes: acquire manifest bytes, decode and verify against
// policy, load the module into the engine, invoke the named export.
//
// Run is strictly sequential and single-threaded, spec.md §5: it blocks
// until the pipeline completes or the first error aborts it. A Runtime
// holds no process-wide state; callers construct a new one per
// source/engine/policy combination they want to run.
type Runtime struct {
	source api.ModuleSource
	policy Policy

	engine api.Engine    // set when caching is not in use
	cached *CachedEngine // set when caching is in use; mutually exclusive with engine
}

// New constructs a Runtime over source and engine under policy.
func New(source api.ModuleSource, engine api.Engine, policy Policy) *Runtime {
	return &Runtime{source: source, policy: policy, engine: engine}
}

// NewCached constructs a Runtime over source and a CachedEngine under
// policy, enabling module-handle reuse across Run calls (spec.md §4.4).
func NewCached(source api.ModuleSource, cached *CachedEngine, policy Policy) *Runtime {
	return &Runtime{source: source, policy: policy, cached: cached}
}

// Run executes one pass of the state machine in spec.md §4.4:
//
//	Idle -> Decoding -> Verifying -> Loading -> Invoking -> Idle
//
// Failure at any step aborts the pipeline immediately and returns the
// first error encountered; later steps never run. On success it returns
// the manifest's accepted sequence number, which the caller is responsible
// for persisting as the new sequence floor (the core holds no floor
// storage of its own, spec.md §3).
func (r *Runtime) Run(entry string) (acceptedSequence uint32, kind api.ErrorKind) {
	// Idle -> Decoding: acquire the manifest bytes.
	blob, kind := storage.ReadAll(r.source)
	if kind != "" {
		return 0, kind
	}

	// Decoding -> Verifying: split and validate the header shape.
	header, module, signature, kind := manifest.DecodeAndSplit(blob, r.policy)
	if kind != "" {
		return 0, kind
	}

	// Verifying: apply signature-required and rollback-protected policy.
	// The preimage must be built from the raw header bytes exactly as they
	// appeared on the wire, not a re-encoding: if unknown reserved flags
	// were masked out during decode, re-encoding would change the bytes
	// fed to Ed25519 and every legitimately signed manifest using them
	// would fail to verify.
	headerBytes := blob[:manifest.HeaderSize]
	acceptedSequence, kind = manifest.Apply(header, signature, r.policy, manifest.Verify, headerBytes, module)
	if kind != "" {
		return 0, kind
	}

	// Verifying -> Loading.
	handle, kind := r.load(header, module)
	if kind != "" {
		return 0, kind
	}

	// Loading -> Invoking.
	if kind := r.invoke(handle, entry); kind != "" {
		return 0, kind
	}

	// Invoking -> Idle.
	return acceptedSequence, ""
}

func (r *Runtime) load(header manifest.Header, module []byte) (api.Handle, api.ErrorKind) {
	if r.cached != nil {
		return r.cached.loadCached(header, module)
	}
	return r.engine.Load(module)
}

func (r *Runtime) invoke(h api.Handle, entry string) api.ErrorKind {
	if r.cached != nil {
		return r.cached.invoke(h, entry)
	}
	return r.engine.Invoke(h, entry)
}
