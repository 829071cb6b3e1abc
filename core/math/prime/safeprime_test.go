package prime

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestSieveSource_SafePrime(t *testing.T) {
	source := NewSieveSource(nil, SieveConfig{Concurrency: 2})

	for _, bits := range []int{6, 7, 16, 64, 128, 256} {
		p, err := source.SafePrime(context.Background(), bits)
		require.NoError(t, err)
		assert.Equal(t, bits, p.BitLen())
		assert.True(t, IsSafePrime(p, 0), "%s should be a safe prime", p)
	}
}

func TestSieveSource_Deterministic(t *testing.T) {
	newSource := func() *SieveSource {
		rand := sha3.NewShake256()
		_, _ = rand.Write([]byte("safe-prime"))
		return NewSieveSource(rand, SieveConfig{Concurrency: 1, Rounds: 20})
	}

	p1, err := newSource().SafePrime(context.Background(), 128)
	require.NoError(t, err)
	p2, err := newSource().SafePrime(context.Background(), 128)
	require.NoError(t, err)
	assert.Equal(t, p1.String(), p2.String())
}

func TestSieveSource_TooSmall(t *testing.T) {
	_, err := NewSieveSource(nil, SieveConfig{}).SafePrime(context.Background(), 5)
	assert.True(t, errors.Is(err, ErrPrimeGeneration))
}

func TestSieveSource_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSieveSource(nil, SieveConfig{Concurrency: 2}).SafePrime(ctx, 2048)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, errors.Is(err, ErrPrimeGeneration))
}

func TestSieveSource_Timeout(t *testing.T) {
	source := NewSieveSource(nil, SieveConfig{Concurrency: 1, Timeout: time.Millisecond})

	_, err := source.SafePrime(context.Background(), 4096)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrimeGeneration))
}

func TestSieveSource_ReaderFailure(t *testing.T) {
	source := NewSieveSource(bytes.NewReader([]byte{1, 2}), SieveConfig{Concurrency: 2})

	_, err := source.SafePrime(context.Background(), 512)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrimeGeneration))
}
