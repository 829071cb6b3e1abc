package arith

import (
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrNotInvertible is returned when gcd(a, p) ≠ 1.
	ErrNotInvertible = errors.New("arith: element is not invertible")

	one = big.NewInt(1)
)

// ModExp returns baseᵉˣᵖᵒⁿᵉⁿᵗ (mod modulus) using left-to-right square-and-multiply.
//
// The base is reduced modulo modulus first, so negative bases are accepted.
// ModExp is variable-time in the exponent and must only be used on public values.
// It panics if modulus ≤ 0 or exponent < 0.
func ModExp(base, exponent, modulus *big.Int) *big.Int {
	if modulus.Sign() <= 0 {
		panic("arith.ModExp: modulus must be positive")
	}
	if exponent.Sign() < 0 {
		panic("arith.ModExp: exponent must be non-negative")
	}
	if modulus.Cmp(one) == 0 {
		return new(big.Int)
	}

	b := new(big.Int).Mod(base, modulus)
	result := big.NewInt(1)
	for i := exponent.BitLen() - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, modulus)
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
	}
	return result
}

// ModInverse returns x ∈ [0, p) such that a⋅x ≡ 1 (mod p).
//
// It runs the extended Euclidean algorithm on the pairs (r₀, r₁) and (s₀, s₁),
// where s tracks the Bézout coefficient of a. ErrNotInvertible is returned
// whenever gcd(a, p) ≠ 1, which includes a ≡ 0 and any a sharing a factor with a composite p.
func ModInverse(a, p *big.Int) (*big.Int, error) {
	if p.Sign() <= 0 {
		return nil, errors.WithMessage(ErrNotInvertible, "arith: modulus must be positive")
	}

	oldR := new(big.Int).Mod(a, p)
	r := new(big.Int).Set(p)
	oldS := big.NewInt(1)
	s := new(big.Int)

	var quo, tmp big.Int
	for r.Sign() != 0 {
		quo.Quo(oldR, r)

		// (r₀, r₁) ← (r₁, r₀ - quo⋅r₁)
		tmp.Mul(&quo, r)
		tmp.Sub(oldR, &tmp)
		oldR.Set(r)
		r.Set(&tmp)

		// (s₀, s₁) ← (s₁, s₀ - quo⋅s₁)
		tmp.Mul(&quo, s)
		tmp.Sub(oldS, &tmp)
		oldS.Set(s)
		s.Set(&tmp)
	}

	if oldR.Cmp(one) != 0 {
		return nil, errors.WithMessagef(ErrNotInvertible, "arith: gcd(%s, %s) = %s", a, p, oldR)
	}

	// the Bézout coefficient may be negative, Mod is Euclidean
	return oldS.Mod(oldS, p), nil
}
