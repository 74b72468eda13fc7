// Package proof implements the proof wire format (spec.md §7): a tagged
// union identifying the producing backend family plus an opaque payload
// serialized by that backend's own conventions. A verifier bound to one
// backend rejects a payload tagged for another with ErrIncorrectProofType
// rather than attempting to decode bytes it cannot interpret.
package proof
