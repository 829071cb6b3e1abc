package prime

import (
	"io"
	"math/big"

	"github.com/mr-shifu/pedersen-lib/core/math/arith"
	"github.com/mr-shifu/pedersen-lib/core/math/sample"
)

// DefaultRounds bounds the error of MillerRabin by 4⁻¹⁰⁰ against an adversarial composite.
const DefaultRounds = 100

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// IsProbablePrime runs MillerRabin with witnesses drawn from crypto/rand.
func IsProbablePrime(n *big.Int, rounds int) bool {
	return MillerRabin(nil, n, rounds)
}

// MillerRabin returns false if n is proven composite, and true if all rounds
// pass. Witnesses a ∈ [2, n-2] are drawn uniformly from rand (crypto/rand if nil).
// rounds ≤ 0 selects DefaultRounds.
//
// A failing rand yields false: no verdict is returned without the requested witnesses.
func MillerRabin(rand io.Reader, n *big.Int, rounds int) bool {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true
	}
	if n.Cmp(two) < 0 || n.Bit(0) == 0 {
		return false
	}

	// n - 1 = d⋅2ʳ with d odd
	nMinus1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinus1)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	nMinus2 := new(big.Int).Sub(n, two)
	for i := 0; i < rounds; i++ {
		a, err := sample.IntervalBig(rand, two, nMinus2)
		if err != nil {
			return false
		}
		if !passesWitness(a, d, r, n, nMinus1) {
			return false
		}
	}
	return true
}

// passesWitness returns false if a proves n composite.
func passesWitness(a, d *big.Int, r int, n, nMinus1 *big.Int) bool {
	x := arith.ModExp(a, d, n)
	if x.Cmp(one) == 0 || x.Cmp(nMinus1) == 0 {
		return true
	}
	for j := 1; j < r; j++ {
		x.Mul(x, x)
		x.Mod(x, n)
		if x.Cmp(nMinus1) == 0 {
			return true
		}
	}
	return false
}

// IsSafePrime returns true if both p and (p-1)/2 pass MillerRabin.
func IsSafePrime(p *big.Int, rounds int) bool {
	if p.Cmp(big.NewInt(5)) < 0 || p.Bit(0) == 0 {
		return false
	}
	q := new(big.Int).Rsh(p, 1)
	return IsProbablePrime(q, rounds) && IsProbablePrime(p, rounds)
}
