package commitstore

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr-shifu/pedersen-lib/pkg/common/commitstore"
)

func TestCommitStore(t *testing.T) {
	cs := NewInMemoryCommitstore()

	rec := &commitstore.Commitment{Commitment: []byte{7}}
	require.NoError(t, cs.Import("c1", rec))

	got, err := cs.Get("c1")
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, got.Commitment)
	assert.Empty(t, got.Decommitment)

	// attach an opening
	require.NoError(t, cs.Import("c1", &commitstore.Commitment{Commitment: []byte{7}, Decommitment: []byte{1}}))
	got, err = cs.Get("c1")
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, got.Decommitment)

	require.NoError(t, cs.Delete("c1"))
	_, err = cs.Get("c1")
	assert.True(t, errors.Is(err, ErrCommitmentNotFound))
	assert.True(t, errors.Is(cs.Delete("c1"), ErrCommitmentNotFound))

	assert.True(t, errors.Is(cs.Import("c2", nil), ErrEmptyCommitment))
	assert.True(t, errors.Is(cs.Import("c2", &commitstore.Commitment{}), ErrEmptyCommitment))
}
