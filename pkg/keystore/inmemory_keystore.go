package keystore

import (
	"github.com/pkg/errors"

	"github.com/mr-shifu/pedersen-lib/pkg/common/keyopts"
	"github.com/mr-shifu/pedersen-lib/pkg/common/keystore"
	"github.com/mr-shifu/pedersen-lib/pkg/common/vault"
)

var ErrKeyNotFound = errors.New("keystore: key not found")

type InMemoryKeystore struct {
	v  vault.Vault
	kr keyopts.KeyOpts
}

var _ keystore.Keystore = (*InMemoryKeystore)(nil)

func NewInMemoryKeystore(v vault.Vault, kr keyopts.KeyOpts) *InMemoryKeystore {
	return &InMemoryKeystore{
		v:  v,
		kr: kr,
	}
}

func (ks *InMemoryKeystore) Import(ski string, key []byte, opts keyopts.Options) error {
	// store key to vault
	if err := ks.v.Import(ski, key); err != nil {
		return errors.WithMessage(err, "keystore: failed to store key")
	}

	// link the ID to the key
	if err := ks.kr.Import(ski, opts); err != nil {
		return errors.WithMessage(err, "keystore: failed to link key")
	}

	return nil
}

func (ks *InMemoryKeystore) Get(opts keyopts.Options) ([]byte, error) {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return nil, errors.WithMessage(ErrKeyNotFound, err.Error())
	}

	return ks.v.Get(kd.SKI)
}

// Delete unlinks the ID and drops the key once no other ID refers to it.
func (ks *InMemoryKeystore) Delete(opts keyopts.Options) error {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return errors.WithMessage(ErrKeyNotFound, err.Error())
	}

	if err := ks.kr.Delete(opts); err != nil {
		return err
	}

	for _, other := range ks.kr.GetAll() {
		if other.SKI == kd.SKI {
			return nil
		}
	}
	return ks.v.Delete(kd.SKI)
}

func (ks *InMemoryKeystore) KeyAccessor(ski string, opts keyopts.Options) keystore.KeyAccessor {
	return NewInMemoryKeyAccessor(ski, opts, ks)
}
