package proof

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// BackendTag identifies the backend family that produced a Proof.
type BackendTag uint8

const (
	// Bulletproofs is the only backend family spec.md names today.
	Bulletproofs BackendTag = iota
)

// ErrIncorrectProofType indicates a Proof's tag does not match the
// backend attempting to verify it.
var ErrIncorrectProofType = errors.New("proof: incorrect proof type")

// ErrProofDecodeError indicates malformed wire bytes: Unmarshal given
// input too short to carry a tag, or SplitLengthPrefixed given a truncated
// length prefix or field.
var ErrProofDecodeError = errors.New("proof: decode error")

// Proof is a backend-tagged, opaque payload (spec.md §7's "algebraic-
// union tag identifying the backend family ... plus an opaque payload").
type Proof struct {
	Tag     BackendTag
	Payload []byte
}

// New wraps payload with tag.
func New(tag BackendTag, payload []byte) Proof {
	return Proof{Tag: tag, Payload: append([]byte(nil), payload...)}
}

// CheckTag fails with ErrIncorrectProofType unless p.Tag == want.
func (p Proof) CheckTag(want BackendTag) error {
	if p.Tag != want {
		return fmt.Errorf("proof: want tag %d, got %d: %w", want, p.Tag, ErrIncorrectProofType)
	}

	return nil
}

// Marshal serializes p as a one-byte tag followed by its payload.
func (p Proof) Marshal() []byte {
	out := make([]byte, 1+len(p.Payload))
	out[0] = byte(p.Tag)
	copy(out[1:], p.Payload)

	return out
}

// Unmarshal is Marshal's inverse.
func Unmarshal(data []byte) (Proof, error) {
	if len(data) < 1 {
		return Proof{}, fmt.Errorf("proof: %w: empty payload", ErrProofDecodeError)
	}

	return Proof{Tag: BackendTag(data[0]), Payload: append([]byte(nil), data[1:]...)}, nil
}

// JoinLengthPrefixed concatenates fields with 4-byte big-endian length
// prefixes, for backends to build a Proof.Payload from several wire
// components (e.g. commitments + scalar responses) without ambiguity.
func JoinLengthPrefixed(fields ...[]byte) []byte {
	var out []byte
	for _, f := range fields {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(f)))
		out = append(out, lenBuf[:]...)
		out = append(out, f...)
	}

	return out
}

// SplitLengthPrefixed is JoinLengthPrefixed's inverse.
func SplitLengthPrefixed(data []byte) ([][]byte, error) {
	var out [][]byte
	for len(data) > 0 {
		if len(data) < 4 {
			return nil, fmt.Errorf("proof: %w: truncated length prefix", ErrProofDecodeError)
		}
		n := binary.BigEndian.Uint32(data[:4])
		data = data[4:]
		if uint32(len(data)) < n {
			return nil, fmt.Errorf("proof: %w: truncated field", ErrProofDecodeError)
		}
		out = append(out, data[:n])
		data = data[n:]
	}

	return out, nil
}
