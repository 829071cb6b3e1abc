package pedersen

import (
	"context"
	"encoding/hex"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mr-shifu/pedersen-lib/core/math/prime"
	pedersencore "github.com/mr-shifu/pedersen-lib/core/pedersen"
	"github.com/mr-shifu/pedersen-lib/pkg/common/keyopts"
	"github.com/mr-shifu/pedersen-lib/pkg/common/keystore"
	"github.com/mr-shifu/pedersen-lib/pkg/config"
)

var ErrUnsupportedKey = errors.New("pedersen: unsupported key type")

type Config struct {
	*config.Config

	// Rand is the randomness source, nil means crypto/rand.
	Rand io.Reader

	// Source supplies safe primes, nil means a sieve built from Config.
	Source prime.SafePrimeSource
}

type PedersenKeyManagerImpl struct {
	ks  keystore.Keystore
	cfg *Config
}

var _ PedersenKeyManager = (*PedersenKeyManagerImpl)(nil)

func NewPedersenKeymanager(ks keystore.Keystore, cfg *Config) *PedersenKeyManagerImpl {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Config == nil {
		cfg.Config = config.Default()
	}
	if cfg.Source == nil {
		cfg.Source = prime.NewSieveSource(cfg.Rand, cfg.SieveConfig())
	}
	return &PedersenKeyManagerImpl{
		ks:  ks,
		cfg: cfg,
	}
}

// GenerateKey generates new parameters of cfg.Bits and stores them.
func (mgr *PedersenKeyManagerImpl) GenerateKey(ctx context.Context, opts keyopts.Options) (PedersenKey, error) {
	if err := mgr.cfg.Validate(); err != nil {
		return nil, err
	}

	params, err := pedersencore.GenerateParameters(ctx, mgr.cfg.Rand, mgr.cfg.Source, mgr.cfg.Bits)
	if err != nil {
		return nil, err
	}

	key := NewPedersenKey(params)
	if err := mgr.store(key, opts); err != nil {
		return nil, err
	}
	return key, nil
}

func (mgr *PedersenKeyManagerImpl) ImportKey(raw interface{}, opts keyopts.Options) (PedersenKey, error) {
	var key *PedersenKeyImpl
	switch raw := raw.(type) {
	case []byte:
		k, err := fromBytes(raw)
		if err != nil {
			return nil, err
		}
		key = k
	case *PedersenKeyImpl:
		key = raw
	case *pedersencore.Parameters:
		key = NewPedersenKey(raw)
	default:
		return nil, errors.WithMessagef(ErrUnsupportedKey, "pedersen: %T", raw)
	}

	if key == nil || key.public == nil {
		return nil, errors.WithMessage(pedersencore.ErrInvalidParameters, "pedersen: empty key")
	}
	if err := key.public.Validate(); err != nil {
		return nil, err
	}

	if err := mgr.store(key, opts); err != nil {
		return nil, err
	}
	return key, nil
}

func (mgr *PedersenKeyManagerImpl) ImportDefault(opts keyopts.Options) (PedersenKey, error) {
	return mgr.ImportKey(pedersencore.Default(), opts)
}

func (mgr *PedersenKeyManagerImpl) GetKey(opts keyopts.Options) (PedersenKey, error) {
	kb, err := mgr.ks.Get(opts)
	if err != nil {
		return nil, err
	}
	return fromBytes(kb)
}

func (mgr *PedersenKeyManagerImpl) DeleteKey(opts keyopts.Options) error {
	return mgr.ks.Delete(opts)
}

func (mgr *PedersenKeyManagerImpl) Commit(m, r *saferith.Int, opts keyopts.Options) (*saferith.Nat, error) {
	key, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}
	return key.Commit(m, r)
}

// CommitRandom commits to m with a blinding factor of cfg.BlindingBytes.
func (mgr *PedersenKeyManagerImpl) CommitRandom(m *saferith.Int, opts keyopts.Options) (*saferith.Nat, *saferith.Int, error) {
	key, err := mgr.GetKey(opts)
	if err != nil {
		return nil, nil, err
	}
	return key.CommitRandom(mgr.cfg.Rand, m, mgr.cfg.BlindingBytes)
}

func (mgr *PedersenKeyManagerImpl) Add(c1, c2 *saferith.Nat, opts keyopts.Options) (*saferith.Nat, error) {
	key, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}
	return key.Add(c1, c2), nil
}

func (mgr *PedersenKeyManagerImpl) Subtract(c1, c2 *saferith.Nat, opts keyopts.Options) (*saferith.Nat, error) {
	key, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}
	return key.Subtract(c1, c2)
}

func (mgr *PedersenKeyManagerImpl) Scale(c *saferith.Nat, k *saferith.Int, opts keyopts.Options) (*saferith.Nat, error) {
	key, err := mgr.GetKey(opts)
	if err != nil {
		return nil, err
	}
	return key.Scale(c, k), nil
}

func (mgr *PedersenKeyManagerImpl) Verify(c *saferith.Nat, m, r *saferith.Int, opts keyopts.Options) bool {
	key, err := mgr.GetKey(opts)
	if err != nil {
		return false
	}
	return key.Verify(c, m, r)
}

func (mgr *PedersenKeyManagerImpl) store(key *PedersenKeyImpl, opts keyopts.Options) error {
	kb, err := key.Bytes()
	if err != nil {
		return err
	}

	// the hex encoded SKI is the vault key
	ski := hex.EncodeToString(key.SKI())
	if err := mgr.ks.Import(ski, kb, opts); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"ski":  ski,
		"bits": key.public.BitLen(),
	}).Debug("pedersen: stored parameters")
	return nil
}
