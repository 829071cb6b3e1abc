package hash

import (
	"encoding/hex"
	"io"
	"math/big"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_WriteAny(t *testing.T) {
	testFunc := func(vs ...interface{}) error {
		h := New()
		for _, v := range vs {
			if err := h.WriteAny(v); err != nil {
				return err
			}
		}
		return nil
	}
	b := big.NewInt(35)
	n := new(saferith.Nat).SetBig(b, b.BitLen())
	m := saferith.ModulusFromBytes(b.Bytes())

	assert.NoError(t, testFunc(b, n, m))
	assert.NoError(t, testFunc([]byte{1, 4, 6}))
	assert.NoError(t, testFunc(BytesWithDomain{"test", []byte{1}}))

	assert.Error(t, testFunc([]byte(nil)))
	assert.Error(t, testFunc((*big.Int)(nil)))
	assert.Error(t, testFunc("unsupported"))
}

func TestHash_WriteAny_Collision(t *testing.T) {
	testFunc := func(vs ...interface{}) []byte {
		h := New()
		require.NoError(t, h.WriteAny(vs...))
		return h.Sum()
	}
	b1 := []byte("1)(big.Int\x02*data_added*")
	b2 := []byte("3")
	n2 := new(big.Int)
	n2.SetString(hex.EncodeToString(b2), 16)
	h1 := testFunc(b1, n2)

	b1 = []byte("1")
	b2 = []byte("*data_added*)(big.Int\x023")
	n2 = new(big.Int)
	n2.SetString(hex.EncodeToString(b2), 16)
	h2 := testFunc(b1, n2)

	assert.NotEqual(t, h1, h2)

	// same bytes under different domains
	assert.NotEqual(t,
		testFunc(BytesWithDomain{"g", []byte{7}}),
		testFunc(BytesWithDomain{"h", []byte{7}}),
	)
}

func TestHash_Clone(t *testing.T) {
	h := New()

	h1 := h.Clone()
	h2 := h.Clone()

	require.NoError(t, h1.WriteAny([]byte("123")))
	require.NoError(t, h2.WriteAny([]byte("123")))
	assert.Equal(t, h1.Sum(), h2.Sum())

	h3 := h.Fork([]byte("124"))
	assert.NotEqual(t, h1.Sum(), h3.Sum())
	assert.Len(t, h3.Sum(), DigestLengthBytes)
}

func TestHash_Digest(t *testing.T) {
	h := New(BytesWithDomain{"seed", []byte("pedersen")})

	out1 := make([]byte, 300)
	_, err := io.ReadFull(h.Digest(), out1)
	require.NoError(t, err)

	out2 := make([]byte, 300)
	_, err = io.ReadFull(h.Digest(), out2)
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
	assert.Equal(t, out1[:DigestLengthBytes], h.Sum())
}
