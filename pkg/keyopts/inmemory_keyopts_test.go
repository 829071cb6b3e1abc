package keyopts

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportKeys(t *testing.T) {
	kr := NewInMemoryKeyOpts()

	ids := []string{"default", "generated", "imported"}
	for i, id := range ids {
		opts, err := NewOptions().Set("id", id)
		require.NoError(t, err)
		assert.NoError(t, kr.Import(fmt.Sprintf("ski-%d", i), opts), "Import should not return an error")
	}

	all := kr.GetAll()
	assert.Len(t, all, len(ids), fmt.Sprintf("GetAll should return %d keys", len(ids)))

	opts, err := NewOptions().Set("id", "generated")
	require.NoError(t, err)
	kd, err := kr.Get(opts)
	require.NoError(t, err)
	assert.Equal(t, "generated", kd.ID)
	assert.Equal(t, "ski-1", kd.SKI)

	// re-importing an ID relinks it
	require.NoError(t, kr.Import("ski-new", opts))
	kd, err = kr.Get(opts)
	require.NoError(t, err)
	assert.Equal(t, "ski-new", kd.SKI)

	require.NoError(t, kr.Delete(opts))
	_, err = kr.Get(opts)
	assert.True(t, errors.Is(err, ErrKeyNotFound))
	assert.True(t, errors.Is(kr.Delete(opts), ErrKeyNotFound))
}

func TestInvalidOptions(t *testing.T) {
	kr := NewInMemoryKeyOpts()

	_, err := NewOptions().Set("id")
	assert.True(t, errors.Is(err, ErrInvalidOptions))

	_, err = NewOptions().Set(1, "id")
	assert.True(t, errors.Is(err, ErrInvalidOptions))

	assert.True(t, errors.Is(kr.Import("ski", NewOptions()), ErrInvalidParamsKeyID))

	opts, err := NewOptions().Set("id", 7)
	require.NoError(t, err)
	_, err = kr.Get(opts)
	assert.True(t, errors.Is(err, ErrInvalidParamsKeyID))

	opts, err = NewOptions().Set("id", "x")
	require.NoError(t, err)
	assert.True(t, errors.Is(kr.Import("", opts), ErrInvalidSKI))
}
