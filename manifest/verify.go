package manifest

import "crypto/ed25519"

// Verify checks signature against preimage under pub using standard
// Ed25519 over curve25519 with SHA-512 — no pre-hashed or context variant,
// matching spec.md §4.1 exactly. It reports true iff the signature is
// valid.
//
// Grounded the same way other_examples' Bedrock mempool validator verifies
// a signed transaction envelope: stdlib crypto/ed25519, no third-party
// curve library.
func Verify(preimage, signature []byte, pub [32]byte) bool {
	if len(signature) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub[:]), preimage, signature)
}

// Sign is the packer-side counterpart to Verify. It is exported from this
// package (rather than kept in the out-of-scope packer tool) because
// spec.md requires the packer's signing preimage and the device's
// verification preimage to be byte-identical; sharing this function is
// what guarantees that.
func Sign(priv ed25519.PrivateKey, preimage []byte) []byte {
	return ed25519.Sign(priv, preimage)
}
