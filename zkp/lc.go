package zkp

import (
	"github.com/gtank/ristretto255"

	"github.com/katalvlaran/circuitrt/bigint"
)

// zero returns the additive identity scalar.
func zero() *ristretto255.Scalar { return ristretto255.NewScalar() }

// one returns the multiplicative identity scalar.
func one() *ristretto255.Scalar {
	s, _ := bigint.FromUint64(1).ToScalar()

	return s
}

// constLC builds a LinearCombination with no wire terms, equal to the
// constant s.
func constLC(s *ristretto255.Scalar) LinearCombination {
	return LinearCombination{Terms: map[Variable]*ristretto255.Scalar{}, Constant: s}
}

// cloneLC deep-copies an LC's term map so arithmetic never mutates an
// operand still referenced elsewhere.
func cloneLC(lc LinearCombination) LinearCombination {
	terms := make(map[Variable]*ristretto255.Scalar, len(lc.Terms))
	for v, c := range lc.Terms {
		terms[v] = ristretto255.NewScalar().Add(c, zero())
	}
	constant := lc.Constant
	if constant == nil {
		constant = zero()
	} else {
		constant = ristretto255.NewScalar().Add(constant, zero())
	}

	return LinearCombination{Terms: terms, Constant: constant}
}

// addLC returns a + b.
func addLC(a, b LinearCombination) LinearCombination {
	out := cloneLC(a)
	for v, c := range b.Terms {
		if existing, ok := out.Terms[v]; ok {
			out.Terms[v] = ristretto255.NewScalar().Add(existing, c)
		} else {
			out.Terms[v] = ristretto255.NewScalar().Add(c, zero())
		}
	}
	if b.Constant != nil {
		out.Constant = ristretto255.NewScalar().Add(out.Constant, b.Constant)
	}

	return out
}

// negLC returns -a.
func negLC(a LinearCombination) LinearCombination {
	out := LinearCombination{Terms: make(map[Variable]*ristretto255.Scalar, len(a.Terms))}
	for v, c := range a.Terms {
		out.Terms[v] = ristretto255.NewScalar().Negate(c)
	}
	constant := a.Constant
	if constant == nil {
		constant = zero()
	}
	out.Constant = ristretto255.NewScalar().Negate(constant)

	return out
}

// subLC returns a - b.
func subLC(a, b LinearCombination) LinearCombination {
	return addLC(a, negLC(b))
}

// scalarMulLC returns lc scaled by s.
func scalarMulLC(lc LinearCombination, s *ristretto255.Scalar) LinearCombination {
	out := LinearCombination{Terms: make(map[Variable]*ristretto255.Scalar, len(lc.Terms))}
	for v, c := range lc.Terms {
		out.Terms[v] = ristretto255.NewScalar().Multiply(c, s)
	}
	constant := lc.Constant
	if constant == nil {
		constant = zero()
	}
	out.Constant = ristretto255.NewScalar().Multiply(constant, s)

	return out
}
