package keyopts

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/mr-shifu/pedersen-lib/pkg/common/keyopts"
)

var (
	ErrInvalidParamsKeyID = errors.New("keyopts: invalid keyID")
	ErrInvalidSKI         = errors.New("keyopts: invalid ski")
	ErrKeyNotFound        = errors.New("keyopts: key not found")
)

type KeyOpts struct {
	lock sync.RWMutex

	// keys maps an ID to its key metadata.
	keys map[string]*keyopts.KeyData
}

var _ keyopts.KeyOpts = (*KeyOpts)(nil)

func NewInMemoryKeyOpts() *KeyOpts {
	return &KeyOpts{
		keys: make(map[string]*keyopts.KeyData),
	}
}

func (kr *KeyOpts) Import(ski string, opts keyopts.Options) error {
	id, err := ID(opts)
	if err != nil {
		return err
	}
	if ski == "" {
		return ErrInvalidSKI
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	kr.keys[id] = &keyopts.KeyData{
		ID:  id,
		SKI: ski,
	}
	return nil
}

func (kr *KeyOpts) Get(opts keyopts.Options) (*keyopts.KeyData, error) {
	id, err := ID(opts)
	if err != nil {
		return nil, err
	}

	kr.lock.RLock()
	defer kr.lock.RUnlock()

	kd, ok := kr.keys[id]
	if !ok {
		return nil, errors.WithMessagef(ErrKeyNotFound, "keyopts: id %s", id)
	}
	cp := *kd
	return &cp, nil
}

func (kr *KeyOpts) GetAll() map[string]*keyopts.KeyData {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	result := make(map[string]*keyopts.KeyData, len(kr.keys))
	for id, kd := range kr.keys {
		cp := *kd
		result[id] = &cp
	}
	return result
}

func (kr *KeyOpts) Delete(opts keyopts.Options) error {
	id, err := ID(opts)
	if err != nil {
		return err
	}

	kr.lock.Lock()
	defer kr.lock.Unlock()

	if _, ok := kr.keys[id]; !ok {
		return errors.WithMessagef(ErrKeyNotFound, "keyopts: id %s", id)
	}
	delete(kr.keys, id)
	return nil
}
