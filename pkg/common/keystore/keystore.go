package keystore

import "github.com/mr-shifu/pedersen-lib/pkg/common/keyopts"

// Keystore stores encoded keys by SKI and resolves them through the ID in opts.
type Keystore interface {
	Import(ski string, key []byte, opts keyopts.Options) error
	Get(opts keyopts.Options) ([]byte, error)
	Delete(opts keyopts.Options) error
	KeyAccessor(ski string, opts keyopts.Options) KeyAccessor
}

// KeyAccessor is a Keystore bound to a single key.
type KeyAccessor interface {
	Import(key []byte) error
	Get() ([]byte, error)
	Delete() error
}
