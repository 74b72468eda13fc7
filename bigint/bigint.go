package bigint

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gtank/ristretto255"
)

// NumWords is the word count of the fixed-width representation: 8×64 bits.
const NumWords = 8

// ErrOutOfRange indicates a BigInt value is not strictly less than
// FieldModulus and therefore has no corresponding field scalar.
var ErrOutOfRange = errors.New("bigint: value out of range for field scalar")

// BigInt is a fixed 8×64-bit little-endian unsigned integer: words[0] holds
// the least-significant 64 bits.
type BigInt struct {
	words [NumWords]uint64
}

// FieldModulus is the Ristretto/curve25519 scalar-field modulus
// 2^252 + 27742317777372353535851937790883648493, expressed word-for-word
// exactly as the original Rust backend's BackendField::FIELD_MODULUS.
var FieldModulus = BigInt{words: [NumWords]uint64{
	6346243789798364141, 1503914060200516822, 0x0, 0x1000000000000000,
	0, 0, 0, 0,
}}

// FromWords constructs a BigInt from its little-endian words.
func FromWords(words [NumWords]uint64) BigInt {
	return BigInt{words: words}
}

// FromUint64 constructs a BigInt equal to v.
func FromUint64(v uint64) BigInt {
	return BigInt{words: [NumWords]uint64{v}}
}

// Words returns the little-endian word representation.
func (b BigInt) Words() [NumWords]uint64 {
	return b.words
}

// Cmp returns -1, 0, or +1 as b is less than, equal to, or greater than o.
func (b BigInt) Cmp(o BigInt) int {
	for i := NumWords - 1; i >= 0; i-- {
		if b.words[i] != o.words[i] {
			if b.words[i] < o.words[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}

// ToScalar converts b to a ristretto255 field scalar. It fails with
// ErrOutOfRange when b is not strictly less than FieldModulus (spec.md §8
// S2, mirroring try_uint_to_scalar's upper-limb/modulus bounds check).
func (b BigInt) ToScalar() (*ristretto255.Scalar, error) {
	if b.Cmp(FieldModulus) >= 0 {
		return nil, ErrOutOfRange
	}

	buf := make([]byte, 32)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(buf[i*8:], b.words[i])
	}

	s, err := ristretto255.NewScalar().SetCanonicalBytes(buf)
	if err != nil {
		return nil, fmt.Errorf("bigint: ToScalar: %w", err)
	}

	return s, nil
}

// FromScalar recovers the BigInt encoded by a field scalar (the inverse of
// ToScalar; always succeeds, since every canonical scalar is < FieldModulus).
func FromScalar(s *ristretto255.Scalar) BigInt {
	buf := s.Bytes()
	var words [NumWords]uint64
	for i := 0; i < 4; i++ {
		words[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}

	return BigInt{words: words}
}
