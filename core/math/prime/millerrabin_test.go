package prime

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"
)

func TestIsProbablePrime(t *testing.T) {
	for _, n := range []int64{2, 3, 5, 7, 11, 23, 47, 101, 2039, 999983, 2147483647} {
		assert.True(t, IsProbablePrime(big.NewInt(n), 0), "%d is prime", n)
	}
	for _, n := range []int64{-7, 0, 1, 4, 9, 15, 20, 24, 561, 1105, 999981, 2147483649} {
		assert.False(t, IsProbablePrime(big.NewInt(n), 0), "%d is composite", n)
	}
}

func TestMillerRabin_MatchesProbablyPrime(t *testing.T) {
	rand := sha3.NewShake256()
	_, _ = rand.Write([]byte("miller-rabin"))

	for n := int64(0); n < 5000; n++ {
		x := big.NewInt(n)
		assert.Equal(t, x.ProbablyPrime(20), MillerRabin(rand, x, 20), "verdict for %d", n)
	}
}

func TestMillerRabin_Large(t *testing.T) {
	// 2¹²⁷ - 1 is a Mersenne prime, 2¹²⁸ + 1 is composite
	m127 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	f7 := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	assert.True(t, IsProbablePrime(m127, 40))
	assert.False(t, IsProbablePrime(f7, 40))

	// product of two 64-bit primes
	p1, _ := new(big.Int).SetString("18446744073709551557", 10)
	p2, _ := new(big.Int).SetString("18446744073709551533", 10)
	assert.False(t, IsProbablePrime(new(big.Int).Mul(p1, p2), 0))
}

func TestMillerRabin_StrongPseudoprime(t *testing.T) {
	// 3215031751 is a strong pseudoprime to bases 2, 3, 5 and 7
	n := big.NewInt(3215031751)
	assert.False(t, IsProbablePrime(n, 0))
}

func TestMillerRabin_ReaderFailure(t *testing.T) {
	assert.False(t, MillerRabin(bytes.NewReader(nil), big.NewInt(999983), 10))
	// the fast paths do not consume randomness
	assert.True(t, MillerRabin(bytes.NewReader(nil), big.NewInt(3), 10))
	assert.False(t, MillerRabin(bytes.NewReader(nil), big.NewInt(20), 10))
}

func TestIsSafePrime(t *testing.T) {
	for _, p := range []int64{5, 7, 11, 23, 47, 59, 83, 107, 2039} {
		assert.True(t, IsSafePrime(big.NewInt(p), 0), "%d is a safe prime", p)
	}
	for _, p := range []int64{2, 3, 13, 17, 29, 101, 999983} {
		assert.False(t, IsSafePrime(big.NewInt(p), 0), "%d is not a safe prime", p)
	}
}
