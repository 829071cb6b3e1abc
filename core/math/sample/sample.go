package sample

import (
	cryptorand "crypto/rand"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
)

// DefaultBlindingBytes is the size of a fresh blinding factor.
const DefaultBlindingBytes = 32

var ErrEmptyInterval = errors.New("sample: empty interval")

// reader falls back to crypto/rand when no source is injected.
func reader(rand io.Reader) io.Reader {
	if rand == nil {
		return cryptorand.Reader
	}
	return rand
}

// IntervalBig returns x ∈ [lo, hi] sampled uniformly from rand.
func IntervalBig(rand io.Reader, lo, hi *big.Int) (*big.Int, error) {
	if hi.Cmp(lo) < 0 {
		return nil, ErrEmptyInterval
	}

	width := new(big.Int).Sub(hi, lo)
	width.Add(width, big.NewInt(1))

	x, err := cryptorand.Int(reader(rand), width)
	if err != nil {
		return nil, errors.WithMessage(err, "sample: failed to read random bytes")
	}
	return x.Add(x, lo), nil
}

// ModN returns x ∈ [0, n) sampled uniformly from rand.
func ModN(rand io.Reader, n *saferith.Modulus) (*saferith.Nat, error) {
	x, err := cryptorand.Int(reader(rand), n.Big())
	if err != nil {
		return nil, errors.WithMessage(err, "sample: failed to read random bytes")
	}
	return new(saferith.Nat).SetBig(x, n.BitLen()), nil
}

// Blinding returns a uniform non-negative integer of 8⋅nBytes bits.
// nBytes ≤ 0 selects DefaultBlindingBytes.
func Blinding(rand io.Reader, nBytes int) (*saferith.Int, error) {
	if nBytes <= 0 {
		nBytes = DefaultBlindingBytes
	}

	buf := make([]byte, nBytes)
	if _, err := io.ReadFull(reader(rand), buf); err != nil {
		return nil, errors.WithMessage(err, "sample: failed to read blinding factor")
	}

	r := new(saferith.Nat).SetBytes(buf)
	return new(saferith.Int).SetNat(r), nil
}
