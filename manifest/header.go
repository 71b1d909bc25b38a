// Package manifest implements the SMNY on-flash manifest envelope: a fixed
// 36-byte header, followed by module bytes, an optional Ed25519 signature,
// and optional erase-block padding.
//
// Every operation here is a pure function over byte slices: no allocation
// beyond what's needed to return the decoded fields, no I/O, no global
// state. This is what lets the same code run on the packer (encoding) and
// the device (decoding) and guarantees their signing preimages match
// byte-for-byte.
package manifest

import (
	"encoding/binary"

	"github.com/tetratelabs/smny/api"
)

const (
	// HeaderSize is the fixed size in bytes of the encoded header.
	HeaderSize = 36

	// Magic is the 4-byte ASCII magic every manifest starts with.
	Magic = "SMNY"

	// Version is the only manifest version this package accepts.
	Version = 2

	// EntryNameSize is the fixed width in bytes of the zero-padded entry
	// name field.
	EntryNameSize = 16

	// SignatureSize is the size in bytes of the trailing Ed25519 signature,
	// present only when FlagSignatureRequired is set.
	SignatureSize = 64
)

// Flag bits of Header.Flags. Bits 2-7 are reserved: on encode they must be
// zero, and on decode they are rejected as api.ErrReservedBitsSet unless the
// policy explicitly opts in to ignoring them.
const (
	FlagSignatureRequired byte = 1 << 0
	FlagRollbackProtected byte = 1 << 1

	knownFlagsMask = FlagSignatureRequired | FlagRollbackProtected
)

// headerLayoutSize documents the byte accounting behind HeaderSize:
// magic(4) + version(1) + flags(1) + reserved(2) + module id(4) +
// module len(4) + sequence(4) + entry name(16) = 36.
const headerLayoutSize = 4 + 1 + 1 + 2 + 4 + 4 + 4 + EntryNameSize

// Static assert: a width change in either constant fails the build here
// instead of corrupting manifests in the field.
var _ [HeaderSize]byte = [headerLayoutSize]byte{}

// Header is the decoded, validated content of a manifest's fixed header.
// EntryName has already had its trailing NUL padding stripped.
type Header struct {
	Flags     byte
	ModuleID  uint32
	ModuleLen uint32
	Sequence  uint32
	EntryName string
}

// HasFlag reports whether f is set in h.Flags.
func (h Header) HasFlag(f byte) bool { return h.Flags&f != 0 }

// EncodeHeader deterministically encodes fields into the fixed 36-byte
// on-flash header layout. Identical input always yields identical output.
func EncodeHeader(fields Header) [HeaderSize]byte {
	var buf [HeaderSize]byte
	copy(buf[0:4], Magic)
	buf[4] = Version
	buf[5] = fields.Flags
	// buf[6:8] reserved, left zero.
	binary.LittleEndian.PutUint32(buf[8:12], fields.ModuleID)
	binary.LittleEndian.PutUint32(buf[12:16], fields.ModuleLen)
	binary.LittleEndian.PutUint32(buf[16:20], fields.Sequence)
	copy(buf[20:20+EntryNameSize], fields.EntryName)
	return buf
}

// DecodeAndSplit parses the fixed header from blob, bounds-checks
// ModuleLen and, when the signature-required flag is set and bytes follow
// the module, the trailing signature, and returns the decoded header plus
// the module and signature slices (borrowed from blob, not copied). When
// the flag is set but nothing follows the module, the returned signature
// is nil and Apply reports api.ErrSignatureRequired.
//
// Reserved flag bits (anything outside FlagSignatureRequired |
// FlagRollbackProtected) are rejected with api.ErrReservedBitsSet unless
// policy.AcceptUnknownReservedFlags is true, in which case they are masked
// out of the returned Header.
func DecodeAndSplit(blob []byte, policy Policy) (header Header, module []byte, signature []byte, kind api.ErrorKind) {
	if len(blob) < HeaderSize {
		return Header{}, nil, nil, api.ErrTruncated
	}
	if string(blob[0:4]) != Magic {
		return Header{}, nil, nil, api.ErrBadMagic
	}
	if blob[4] != Version {
		return Header{}, nil, nil, api.ErrBadVersion
	}
	if blob[6] != 0 || blob[7] != 0 {
		return Header{}, nil, nil, api.ErrReservedBitsSet
	}

	flags := blob[5]
	if unknown := flags &^ knownFlagsMask; unknown != 0 {
		if !policy.AcceptUnknownReservedFlags {
			return Header{}, nil, nil, api.ErrReservedBitsSet
		}
		flags &^= unknown
	}

	h := Header{
		Flags:     flags,
		ModuleID:  binary.LittleEndian.Uint32(blob[8:12]),
		ModuleLen: binary.LittleEndian.Uint32(blob[12:16]),
		Sequence:  binary.LittleEndian.Uint32(blob[16:20]),
		EntryName: trimEntryName(blob[20 : 20+EntryNameSize]),
	}

	moduleEnd := HeaderSize + int(h.ModuleLen)
	if moduleEnd < HeaderSize || moduleEnd > len(blob) {
		return Header{}, nil, nil, api.ErrTruncated
	}
	module = blob[HeaderSize:moduleEnd]

	if h.HasFlag(FlagSignatureRequired) && len(blob) > moduleEnd {
		sigEnd := moduleEnd + SignatureSize
		if sigEnd > len(blob) {
			return Header{}, nil, nil, api.ErrLengthMismatch
		}
		signature = blob[moduleEnd:sigEnd]
	}

	if kind := ValidateEntryName(h.EntryName); kind != "" {
		return Header{}, nil, nil, kind
	}

	return h, module, signature, ""
}

// trimEntryName returns the prefix of raw up to (not including) the first
// NUL byte.
func trimEntryName(raw []byte) string {
	for i, b := range raw {
		if b == 0 {
			return string(raw[:i])
		}
	}
	return string(raw)
}

// ValidateEntryName reports api.ErrBadEntryName if name is empty or
// contains a byte outside printable ASCII. Engines additionally reject
// entry names that don't resolve to an export of the loaded module with
// api.ErrEntryNotFound; this only validates the wire-level shape.
func ValidateEntryName(name string) api.ErrorKind {
	if name == "" {
		return api.ErrBadEntryName
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] > 0x7e {
			return api.ErrBadEntryName
		}
	}
	return ""
}

// SigningPreimage returns the exact byte sequence fed to the Ed25519
// signature primitive: the encoded header concatenated with the module
// bytes. The packer (signing) and the device (verifying) must both call
// this function so their preimages are byte-identical.
func SigningPreimage(headerBytes []byte, moduleBytes []byte) []byte {
	out := make([]byte, 0, len(headerBytes)+len(moduleBytes))
	out = append(out, headerBytes...)
	out = append(out, moduleBytes...)
	return out
}

