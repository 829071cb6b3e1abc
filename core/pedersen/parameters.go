package pedersen

import (
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/mr-shifu/pedersen-lib/core/math/arith"
	"github.com/mr-shifu/pedersen-lib/core/math/prime"
	"github.com/pkg/errors"
)

// Parameters is the immutable triple {p, g, h} shared by all commitments of a
// security context. It is safe for concurrent use.
type Parameters struct {
	p    *arith.Modulus
	g, h *saferith.Nat
}

type rawParameters struct {
	P []byte
	G []byte
	H []byte
}

// New validates and returns the parameters {p, g, h}.
func New(p, g, h *big.Int) (*Parameters, error) {
	if err := ValidateParameters(p, g, h); err != nil {
		return nil, err
	}
	return newParameters(arith.ModulusFromSafePrime(p), g, h), nil
}

func newParameters(p *arith.Modulus, g, h *big.Int) *Parameters {
	return &Parameters{
		p: p,
		g: new(saferith.Nat).SetBig(g, p.BitLen()),
		h: new(saferith.Nat).SetBig(h, p.BitLen()),
	}
}

// PArith returns p with its cached subgroup order.
func (pp *Parameters) PArith() *arith.Modulus { return pp.p }

// P returns the modulus p.
func (pp *Parameters) P() *saferith.Modulus { return pp.p.Modulus }

// G returns the message generator g.
func (pp *Parameters) G() *saferith.Nat { return pp.g }

// H returns the blinding generator h.
func (pp *Parameters) H() *saferith.Nat { return pp.h }

// BitLen returns the size of p in bits.
func (pp *Parameters) BitLen() int { return pp.p.BitLen() }

// Equal reports whether both parameter sets hold the same triple.
func (pp *Parameters) Equal(other *Parameters) bool {
	if pp == nil || other == nil {
		return pp == other
	}
	return pp.p.Equal(other.p) &&
		pp.g.Big().Cmp(other.g.Big()) == 0 &&
		pp.h.Big().Cmp(other.h.Big()) == 0
}

// Validate checks the parameters with ValidateParameters.
func (pp *Parameters) Validate() error {
	return ValidateParameters(pp.p.Big(), pp.g.Big(), pp.h.Big())
}

// ValidateParameters checks that
//   - p is odd and greater than 3,
//   - g ∈ [2, p-2] and g^((p-1)/2) ≠ 1 (mod p),
//   - h ∈ [2, p-2] and h ≠ g.
//
// The order of h is not checked, see StrictValidate.
func ValidateParameters(p, g, h *big.Int) error {
	if p == nil || g == nil || h == nil {
		return errors.WithMessage(ErrInvalidParameters, "pedersen: nil parameter")
	}
	if p.Cmp(big.NewInt(3)) <= 0 || p.Bit(0) == 0 {
		return errors.WithMessage(ErrInvalidParameters, "pedersen: p must be an odd integer greater than 3")
	}

	two := big.NewInt(2)
	upper := new(big.Int).Sub(p, two)
	inRange := func(x *big.Int) bool {
		return x.Cmp(two) >= 0 && x.Cmp(upper) <= 0
	}

	if !inRange(g) {
		return errors.WithMessage(ErrInvalidParameters, "pedersen: g must be in [2, p-2]")
	}
	if !inRange(h) {
		return errors.WithMessage(ErrInvalidParameters, "pedersen: h must be in [2, p-2]")
	}
	if g.Cmp(h) == 0 {
		return errors.WithMessage(ErrInvalidParameters, "pedersen: g and h must be distinct")
	}

	q := new(big.Int).Rsh(p, 1)
	if arith.ModExp(g, q, p).Cmp(big.NewInt(1)) == 0 {
		return errors.WithMessage(ErrInvalidParameters, "pedersen: g lies in the subgroup of quadratic residues")
	}
	return nil
}

// StrictValidate runs ValidateParameters, then checks that p is a safe prime
// and that h satisfies the same generator condition as g.
func (pp *Parameters) StrictValidate(rounds int) error {
	if err := pp.Validate(); err != nil {
		return err
	}
	if !prime.IsSafePrime(pp.p.Big(), rounds) {
		return errors.WithMessage(ErrInvalidParameters, "pedersen: p is not a safe prime")
	}
	if !pp.p.IsSafeGenerator(pp.h) {
		return errors.WithMessage(ErrInvalidParameters, "pedersen: h lies in the subgroup of quadratic residues")
	}
	return nil
}

func (pp *Parameters) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(rawParameters{
		P: pp.p.Big().Bytes(),
		G: pp.g.Big().Bytes(),
		H: pp.h.Big().Bytes(),
	})
}

// UnmarshalBinary decodes and validates parameters.
func (pp *Parameters) UnmarshalBinary(data []byte) error {
	var raw rawParameters
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return errors.WithMessage(err, "pedersen: failed to decode parameters")
	}
	decoded, err := New(
		new(big.Int).SetBytes(raw.P),
		new(big.Int).SetBytes(raw.G),
		new(big.Int).SetBytes(raw.H),
	)
	if err != nil {
		return err
	}
	*pp = *decoded
	return nil
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (pp *Parameters) WriteTo(w io.Writer) (int64, error) {
	if pp == nil {
		return 0, io.ErrUnexpectedEOF
	}
	buf, err := pp.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain, and separates this type within hash.Hash.
func (Parameters) Domain() string {
	return "Pedersen Parameters"
}
