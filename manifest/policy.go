package manifest

import "github.com/tetratelabs/smny/api"

// Policy configures how a manifest is decoded and accepted. The codec holds
// no state of its own: every key and floor a caller wants enforced is
// passed in on every call.
//
// This is the exact record spec.md §6 defines for the caller-facing
// runtime surface; the root smny package re-exports it as smny.Policy.
type Policy struct {
	// PublicKey, when non-nil, is the 32-byte Ed25519 key manifests must be
	// signed with. Required when a manifest sets FlagSignatureRequired.
	PublicKey *[32]byte

	// SequenceFloor, when non-nil, rejects any FlagRollbackProtected
	// manifest whose Sequence is strictly less than it.
	SequenceFloor *uint32

	// AcceptUnknownReservedFlags, when true, masks out and ignores flag
	// bits outside FlagSignatureRequired|FlagRollbackProtected instead of
	// rejecting the manifest with api.ErrReservedBitsSet.
	AcceptUnknownReservedFlags bool
}

// NewPolicy returns the zero-value Policy: no public key, no sequence
// floor, unknown reserved flags rejected.
func NewPolicy() Policy { return Policy{} }

// WithPublicKey returns a copy of p that requires manifests with
// FlagSignatureRequired set to verify against pub. Mirrors wazero's
// RuntimeConfig clone-before-mutate With* methods; Policy is a small
// comparable value so the copy is implicit in the value receiver.
func (p Policy) WithPublicKey(pub [32]byte) Policy {
	p.PublicKey = &pub
	return p
}

// WithSequenceFloor returns a copy of p that rejects, under
// FlagRollbackProtected, any manifest whose sequence is strictly less than
// floor.
func (p Policy) WithSequenceFloor(floor uint32) Policy {
	p.SequenceFloor = &floor
	return p
}

// WithAcceptUnknownReservedFlags returns a copy of p that masks out and
// ignores header flag bits this version of the format doesn't assign,
// instead of rejecting them with api.ErrReservedBitsSet.
func (p Policy) WithAcceptUnknownReservedFlags(accept bool) Policy {
	p.AcceptUnknownReservedFlags = accept
	return p
}

// Apply runs the policy checks spec.md §4.1 assigns to "the codec (or a
// thin policy layer above it)": signature-required, then rollback
// protection. It does not re-check module length bounds; DecodeAndSplit
// already did that.
//
// verify is the Ed25519 verification function to use when a signature is
// required; tests and no-signature builds may pass a function that always
// reports ok=false, which is equivalent to the capability being compiled
// out (spec.md invariant 4).
func Apply(h Header, signature []byte, policy Policy, verify func(preimage, signature []byte, pub [32]byte) bool, headerBytes, moduleBytes []byte) (acceptedSequence uint32, kind api.ErrorKind) {
	if h.HasFlag(FlagSignatureRequired) {
		if len(signature) != SignatureSize || policy.PublicKey == nil {
			return 0, api.ErrSignatureRequired
		}
		preimage := SigningPreimage(headerBytes, moduleBytes)
		if !verify(preimage, signature, *policy.PublicKey) {
			return 0, api.ErrBadSignature
		}
	}

	if h.HasFlag(FlagRollbackProtected) && policy.SequenceFloor != nil {
		if h.Sequence < *policy.SequenceFloor {
			return 0, api.ErrRollbackRejected
		}
	}

	return h.Sequence, ""
}
