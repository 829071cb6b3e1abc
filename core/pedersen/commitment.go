package pedersen

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/pedersen-lib/core/math/sample"
	"github.com/pkg/errors"
)

// Commit returns C = gᵐ⋅hʳ (mod p).
//
// Both exponentiations run in constant time. Negative m or r are rejected with
// ErrInvalidInput; negative logical values must be encoded by the caller.
func (pp *Parameters) Commit(m, r *saferith.Int) (*saferith.Nat, error) {
	if m == nil || r == nil {
		return nil, errors.WithMessage(ErrInvalidInput, "pedersen: nil message or blinding factor")
	}
	if m.IsNegative() == 1 {
		return nil, errors.WithMessage(ErrInvalidInput, "pedersen: negative message")
	}
	if r.IsNegative() == 1 {
		return nil, errors.WithMessage(ErrInvalidInput, "pedersen: negative blinding factor")
	}

	gm := pp.p.Exp(pp.g, m.Abs())
	hr := pp.p.Exp(pp.h, r.Abs())
	return pp.p.Mul(gm, hr), nil
}

// CommitRandom commits to m with a fresh blinding factor of sample.DefaultBlindingBytes
// drawn from rand, and returns the commitment together with the blinding factor.
func (pp *Parameters) CommitRandom(rand io.Reader, m *saferith.Int) (*saferith.Nat, *saferith.Int, error) {
	r, err := sample.Blinding(rand, sample.DefaultBlindingBytes)
	if err != nil {
		return nil, nil, err
	}
	c, err := pp.Commit(m, r)
	if err != nil {
		return nil, nil, err
	}
	return c, r, nil
}

// Add returns c₁⋅c₂ (mod p), a commitment to (m₁+m₂, r₁+r₂).
func (pp *Parameters) Add(c1, c2 *saferith.Nat) *saferith.Nat {
	return pp.p.Mul(c1, c2)
}

// Subtract returns c₁⋅c₂⁻¹ (mod p), a commitment to (m₁-m₂, r₁-r₂).
// ErrNotInvertible means p is not prime and must be treated as a configuration error.
func (pp *Parameters) Subtract(c1, c2 *saferith.Nat) (*saferith.Nat, error) {
	inv, err := pp.p.Inverse(c2)
	if err != nil {
		return nil, errors.WithMessage(err, "pedersen: subtrahend is not invertible")
	}
	return pp.p.Mul(c1, inv), nil
}

// Scale returns cᵏ (mod p), a commitment to (k⋅m, k⋅r).
// Neither k⋅m nor k⋅r is reduced; a negative k is applied to c⁻¹.
func (pp *Parameters) Scale(c *saferith.Nat, k *saferith.Int) *saferith.Nat {
	return pp.p.ExpI(c, k)
}

// Verify returns true if (m, r) opens c.
func (pp *Parameters) Verify(c *saferith.Nat, m, r *saferith.Int) bool {
	if !pp.IsCommitment(c) {
		return false
	}
	expected, err := pp.Commit(m, r)
	if err != nil {
		return false
	}
	reduced := new(saferith.Nat).Mod(c, pp.p.Modulus)
	return expected.Eq(reduced) == 1
}

// IsCommitment returns true if c ∈ [1, p-1].
func (pp *Parameters) IsCommitment(c *saferith.Nat) bool {
	if c == nil {
		return false
	}
	cb := c.Big()
	return cb.Sign() > 0 && cb.Cmp(pp.p.Big()) < 0
}

// Commit returns the commitment to (m, r) under params.
func Commit(m, r *saferith.Int, params *Parameters) (*saferith.Nat, error) {
	return params.Commit(m, r)
}

// Add combines two commitments under params.
func Add(c1, c2 *saferith.Nat, params *Parameters) *saferith.Nat {
	return params.Add(c1, c2)
}

// Subtract removes c2 from c1 under params.
func Subtract(c1, c2 *saferith.Nat, params *Parameters) (*saferith.Nat, error) {
	return params.Subtract(c1, c2)
}

// Scale multiplies the committed values of c by k under params.
func Scale(c *saferith.Nat, k *saferith.Int, params *Parameters) *saferith.Nat {
	return params.Scale(c, k)
}

// RandomBlinding returns a fresh blinding factor of nBytes bytes drawn from rand,
// crypto/rand if nil. nBytes ≤ 0 selects sample.DefaultBlindingBytes.
func RandomBlinding(rand io.Reader, nBytes int) (*saferith.Int, error) {
	return sample.Blinding(rand, nBytes)
}
