package fhe

import "errors"

// Ciphertext is an opaque encrypted value. The executor never inspects its
// contents — only Evaluator does — so a single interface value (backed by
// whatever scheme-specific type a caller's Evaluator implementation uses)
// is all this layer needs.
type Ciphertext interface{}

// RelinKeys are opaque relinearization keys, required only when ir
// contains a Relinearize node.
type RelinKeys interface{}

// Evaluator performs the homomorphic operations the executor dispatches
// to, matching the three methods spec.md §6 requires (mirroring SEAL's
// Evaluator: Add, Multiply, Relinearize).
type Evaluator interface {
	Add(a, b Ciphertext) (Ciphertext, error)
	Multiply(a, b Ciphertext) (Ciphertext, error)
	Relinearize(c Ciphertext, keys RelinKeys) (Ciphertext, error)
}

// ErrUnimplementedOperation indicates ir contains one of the reserved but
// unimplemented FheOp kinds (ShiftLeft, ShiftRight, SwapRows, Negate, Sub,
// Literal).
var ErrUnimplementedOperation = errors.New("fhe: unimplemented operation")

// ErrMissingInput indicates ir references an InputCiphertext(i) with no
// corresponding entry in inputs. Per the "_unchecked" contract this is
// caller error surfaced as an error return rather than a silent zero
// value, not a defense this package otherwise performs.
var ErrMissingInput = errors.New("fhe: missing input ciphertext")

// ErrMissingRelinKeys indicates ir contains a Relinearize node but
// relinKeys is nil.
var ErrMissingRelinKeys = errors.New("fhe: relinearize requires keys")
