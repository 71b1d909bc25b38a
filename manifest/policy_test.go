package manifest

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func alwaysFalse([]byte, []byte, [32]byte) bool { return false }

func TestApplyRollbackMonotonicity(t *testing.T) {
	floor := uint32(7)
	tests := []struct {
		name     string
		sequence uint32
		wantKind string
		wantSeq  uint32
	}{
		{"below floor rejected", 6, "RollbackRejected", 0},
		{"equal floor accepted (idempotent reinstall)", 7, "", 7},
		{"above floor accepted", 8, "", 8},
	}
	for _, tt := range tests {
		tc := tt
		t.Run(tc.name, func(t *testing.T) {
			h := Header{Flags: FlagRollbackProtected, Sequence: tc.sequence, EntryName: "main"}
			seq, kind := Apply(h, nil, Policy{SequenceFloor: &floor}, alwaysFalse, nil, nil)
			require.EqualValues(t, tc.wantKind, kind)
			require.Equal(t, tc.wantSeq, seq)
		})
	}
}

func TestApplySignatureRequiredMissing(t *testing.T) {
	h := Header{Flags: FlagSignatureRequired, EntryName: "main"}
	_, kind := Apply(h, nil, Policy{}, alwaysFalse, nil, nil)
	require.EqualValues(t, "SignatureRequired", kind)
}

func TestApplySignatureRequiredSucceeds(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	header := EncodeHeader(Header{Flags: FlagSignatureRequired, ModuleLen: 4, EntryName: "main"})
	module := []byte("wasm")
	preimage := SigningPreimage(header[:], module)
	signature := Sign(priv, preimage)

	var pubArr [32]byte
	copy(pubArr[:], pub)

	h := Header{Flags: FlagSignatureRequired, EntryName: "main"}
	_, kind := Apply(h, signature, Policy{PublicKey: &pubArr}, Verify, header[:], module)
	require.Empty(t, kind)
}

func TestApplyBadSignature(t *testing.T) {
	var pubArr [32]byte
	h := Header{Flags: FlagSignatureRequired, EntryName: "main"}
	sig := make([]byte, SignatureSize)
	_, kind := Apply(h, sig, Policy{PublicKey: &pubArr}, func([]byte, []byte, [32]byte) bool { return false }, nil, nil)
	require.EqualValues(t, "BadSignature", kind)
}
