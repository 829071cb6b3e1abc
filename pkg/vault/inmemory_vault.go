package vault

import (
	"sync"

	"github.com/mr-shifu/pedersen-lib/pkg/common/vault"
	"github.com/pkg/errors"
)

var (
	ErrKeyNotFound = errors.New("vault: key not found")
	ErrEmptyKeyID  = errors.New("vault: empty key id")
)

// InMemoryVault keeps copies of the imported keys so callers cannot alter stored material.
type InMemoryVault struct {
	lock sync.RWMutex
	keys map[string][]byte
}

var _ vault.Vault = (*InMemoryVault)(nil)

func NewInMemoryVault() *InMemoryVault {
	return &InMemoryVault{
		keys: make(map[string][]byte),
	}
}

func (store *InMemoryVault) Import(keyID string, key []byte) error {
	if keyID == "" {
		return ErrEmptyKeyID
	}

	store.lock.Lock()
	defer store.lock.Unlock()

	store.keys[keyID] = append([]byte(nil), key...)
	return nil
}

func (store *InMemoryVault) Get(keyID string) ([]byte, error) {
	store.lock.RLock()
	defer store.lock.RUnlock()

	key, ok := store.keys[keyID]
	if !ok {
		return nil, errors.WithMessagef(ErrKeyNotFound, "vault: key %s", keyID)
	}
	return append([]byte(nil), key...), nil
}

func (store *InMemoryVault) Delete(keyID string) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	delete(store.keys, keyID)
	return nil
}
