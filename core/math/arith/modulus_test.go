package arith

import (
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func natFromUint64(x uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(x)
}

func TestModulus_Order(t *testing.T) {
	n := ModulusFromSafePrime(big.NewInt(23))
	assert.Equal(t, "11", n.Order().Big().String())
	assert.Equal(t, 5, n.BitLen())
}

func TestModulus_IsSafeGenerator(t *testing.T) {
	n := ModulusFromSafePrime(big.NewInt(23))

	// quadratic non-residues mod 23, excluding p-1
	for _, x := range []uint64{5, 7, 10, 11, 14, 15, 17, 19, 20, 21} {
		assert.True(t, n.IsSafeGenerator(natFromUint64(x)), "%d should be a safe generator", x)
	}
	// quadratic residues and the excluded endpoints
	for _, x := range []uint64{0, 1, 2, 3, 4, 6, 8, 9, 22} {
		assert.False(t, n.IsSafeGenerator(natFromUint64(x)), "%d should not be a safe generator", x)
	}
	assert.False(t, n.IsSafeGenerator(nil))
}

func TestModulus_Exp(t *testing.T) {
	n := ModulusFromSafePrime(big.NewInt(101))

	assert.Equal(t, "14", n.Exp(natFromUint64(2), natFromUint64(10)).Big().String())
	assert.Equal(t, "52", n.Exp(natFromUint64(5), natFromUint64(7)).Big().String())
	assert.Equal(t, "1", n.Exp(natFromUint64(0), natFromUint64(0)).Big().String())
	assert.Equal(t, "14", n.Exp(natFromUint64(103), natFromUint64(10)).Big().String())

	// 2⁻¹⁰ = 14⁻¹ = 65 (mod 101)
	e := new(saferith.Int).SetBig(big.NewInt(-10), 8)
	assert.Equal(t, "65", n.ExpI(natFromUint64(2), e).Big().String())
}

func TestModulus_MulInverse(t *testing.T) {
	n := ModulusFromSafePrime(big.NewInt(101))

	assert.Equal(t, "21", n.Mul(natFromUint64(14), natFromUint64(52)).Big().String())

	inv, err := n.Inverse(natFromUint64(14))
	require.NoError(t, err)
	assert.Equal(t, "65", inv.Big().String())
	assert.Equal(t, "1", n.Mul(inv, natFromUint64(14)).Big().String())

	_, err = n.Inverse(natFromUint64(0))
	assert.True(t, errors.Is(err, ErrNotInvertible))

	composite := ModulusFromSafePrime(big.NewInt(15))
	_, err = composite.Inverse(natFromUint64(6))
	assert.True(t, errors.Is(err, ErrNotInvertible))
}

func TestModulus_Reduce(t *testing.T) {
	n := ModulusFromSafePrime(big.NewInt(23))
	assert.Equal(t, "22", n.Reduce(big.NewInt(-1)).Big().String())
	assert.Equal(t, "1", n.Reduce(big.NewInt(47)).Big().String())
}

func TestModulus_Binary(t *testing.T) {
	n := ModulusFromSafePrime(big.NewInt(2039))

	data, err := n.MarshalBinary()
	require.NoError(t, err)

	decoded := new(Modulus)
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.True(t, n.Equal(decoded))
	assert.Equal(t, "1019", decoded.Order().Big().String())

	assert.Error(t, new(Modulus).UnmarshalBinary([]byte{0xff}))
}
