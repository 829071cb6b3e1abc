package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// Modulus wraps a saferith.Modulus for a safe prime p = 2q + 1 and caches the
// order q of the quadratic residue subgroup.
// Exponentiations of secret values go through saferith and run in constant time.
type Modulus struct {
	// represents modulus p
	*saferith.Modulus
	// q = (p - 1) / 2
	order *saferith.Nat
}

type rawModulus struct {
	P []byte
}

// ModulusFromSafePrime creates a Modulus for p. The primality of p is not checked here.
func ModulusFromSafePrime(p *big.Int) *Modulus {
	pNat := new(saferith.Nat).SetBig(p, p.BitLen())
	return newModulus(saferith.ModulusFromNat(pNat))
}

// ModulusFromBytes creates a Modulus from the big-endian bytes of p.
func ModulusFromBytes(data []byte) *Modulus {
	return newModulus(saferith.ModulusFromBytes(data))
}

func newModulus(p *saferith.Modulus) *Modulus {
	q := new(big.Int).Rsh(p.Big(), 1)
	return &Modulus{
		Modulus: p,
		order:   new(saferith.Nat).SetBig(q, q.BitLen()),
	}
}

// Order returns q = (p - 1) / 2.
func (n *Modulus) Order() *saferith.Nat {
	return n.order
}

// Reduce returns x mod p. Negative x are mapped into [0, p).
func (n *Modulus) Reduce(x *big.Int) *saferith.Nat {
	r := new(big.Int).Mod(x, n.Big())
	return new(saferith.Nat).SetBig(r, n.BitLen())
}

// Mul returns x⋅y (mod p).
func (n *Modulus) Mul(x, y *saferith.Nat) *saferith.Nat {
	xr := new(saferith.Nat).Mod(x, n.Modulus)
	yr := new(saferith.Nat).Mod(y, n.Modulus)
	return xr.ModMul(xr, yr, n.Modulus)
}

// Exp returns xᵉ (mod p).
func (n *Modulus) Exp(x, e *saferith.Nat) *saferith.Nat {
	xr := new(saferith.Nat).Mod(x, n.Modulus)
	return new(saferith.Nat).Exp(xr, e, n.Modulus)
}

// ExpI returns xᵉ (mod p). A negative e is applied to x⁻¹.
func (n *Modulus) ExpI(x *saferith.Nat, e *saferith.Int) *saferith.Nat {
	xr := new(saferith.Nat).Mod(x, n.Modulus)
	return new(saferith.Nat).ExpI(xr, e, n.Modulus)
}

// Inverse returns x⁻¹ (mod p) computed with ModInverse.
func (n *Modulus) Inverse(x *saferith.Nat) (*saferith.Nat, error) {
	inv, err := ModInverse(x.Big(), n.Big())
	if err != nil {
		return nil, err
	}
	return new(saferith.Nat).SetBig(inv, n.BitLen()), nil
}

// IsSafeGenerator returns true if x ∈ [2, p-2] and x^q ≠ 1 (mod p),
// i.e. x is not confined to the subgroup of quadratic residues.
func (n *Modulus) IsSafeGenerator(x *saferith.Nat) bool {
	if x == nil {
		return false
	}
	xb := x.Big()
	upper := new(big.Int).Sub(n.Big(), big.NewInt(2))
	if xb.Cmp(big.NewInt(2)) < 0 || xb.Cmp(upper) > 0 {
		return false
	}
	return n.Exp(x, n.order).Big().Cmp(one) != 0
}

// Equal reports whether both moduli hold the same p.
func (n *Modulus) Equal(other *Modulus) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Big().Cmp(other.Big()) == 0
}

func (n *Modulus) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(rawModulus{P: n.Modulus.Bytes()})
}

func (n *Modulus) UnmarshalBinary(data []byte) error {
	var raw rawModulus
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(err, "arith: failed to decode modulus")
	}
	if len(raw.P) == 0 {
		return errors.New("arith: empty modulus")
	}
	*n = *ModulusFromBytes(raw.P)
	return nil
}
