package commitment

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	pedersencore "github.com/mr-shifu/pedersen-lib/core/pedersen"
	"github.com/mr-shifu/pedersen-lib/pkg/common/commitstore"
	"github.com/mr-shifu/pedersen-lib/pkg/config"
	"github.com/mr-shifu/pedersen-lib/pkg/cryptosuite/sw/pedersen"
)

type CommitmentManagerImpl struct {
	cs            commitstore.CommitStore
	rand          io.Reader
	blindingBytes int
}

var _ CommitmentManager = (*CommitmentManagerImpl)(nil)

// NewCommitmentManagerImpl returns a manager drawing blinding factors of
// cfg.BlindingBytes from rand (crypto/rand if nil).
func NewCommitmentManagerImpl(cs commitstore.CommitStore, cfg *config.Config, rand io.Reader) *CommitmentManagerImpl {
	if cfg == nil {
		cfg = config.Default()
	}
	return &CommitmentManagerImpl{
		cs:            cs,
		rand:          rand,
		blindingBytes: cfg.BlindingBytes,
	}
}

func (cm *CommitmentManagerImpl) Commit(key pedersen.PedersenKey, m *saferith.Int) (string, Commitment, error) {
	c, r, err := key.CommitRandom(cm.rand, m, cm.blindingBytes)
	if err != nil {
		return "", nil, err
	}
	cmt, err := newCommitment(c, m.Abs(), r.Abs())
	if err != nil {
		return "", nil, err
	}
	return cm.store(cmt)
}

func (cm *CommitmentManagerImpl) Import(c *saferith.Nat) (string, error) {
	if c == nil {
		return "", errors.WithMessage(pedersencore.ErrInvalidInput, "commitment: nil commitment")
	}
	cmt, err := newCommitment(c, nil, nil)
	if err != nil {
		return "", err
	}
	id, _, err := cm.store(cmt)
	return id, err
}

// ImportDecommitment does not check the opening; call Verify once it is attached.
func (cm *CommitmentManagerImpl) ImportDecommitment(id string, m, r *saferith.Int) error {
	if m == nil || r == nil || m.IsNegative() == 1 || r.IsNegative() == 1 {
		return errors.WithMessage(pedersencore.ErrInvalidInput, "commitment: opening must be non-negative")
	}
	cmt, err := cm.get(id)
	if err != nil {
		return err
	}
	dcmt, err := encodeOpening(m.Abs(), r.Abs())
	if err != nil {
		return err
	}
	cmt.dcmt = dcmt
	return cm.cs.Import(id, cmt.record())
}

func (cm *CommitmentManagerImpl) Get(id string) (Commitment, error) {
	return cm.get(id)
}

func (cm *CommitmentManagerImpl) Verify(key pedersen.PedersenKey, id string) (bool, error) {
	cmt, err := cm.get(id)
	if err != nil {
		return false, err
	}
	c, err := cmt.Value()
	if err != nil {
		return false, err
	}
	m, r, err := cmt.Opening()
	if err != nil {
		return false, err
	}
	return key.Verify(c, m, r), nil
}

func (cm *CommitmentManagerImpl) Add(key pedersen.PedersenKey, id1, id2 string) (string, Commitment, error) {
	a, err := cm.get(id1)
	if err != nil {
		return "", nil, err
	}
	b, err := cm.get(id2)
	if err != nil {
		return "", nil, err
	}
	ca, err := a.Value()
	if err != nil {
		return "", nil, err
	}
	cb, err := b.Value()
	if err != nil {
		return "", nil, err
	}

	var m, r *saferith.Nat
	if a.Opened() && b.Opened() {
		ma, ra, err := a.openingNat()
		if err != nil {
			return "", nil, err
		}
		mb, rb, err := b.openingNat()
		if err != nil {
			return "", nil, err
		}
		m = new(saferith.Nat).Add(ma, mb, -1)
		r = new(saferith.Nat).Add(ra, rb, -1)
	}

	cmt, err := newCommitment(key.Add(ca, cb), m, r)
	if err != nil {
		return "", nil, err
	}
	return cm.store(cmt)
}

func (cm *CommitmentManagerImpl) Scale(key pedersen.PedersenKey, id string, k *saferith.Int) (string, Commitment, error) {
	if k == nil || k.IsNegative() == 1 {
		return "", nil, errors.WithMessage(pedersencore.ErrInvalidInput, "commitment: scalar must be non-negative")
	}
	a, err := cm.get(id)
	if err != nil {
		return "", nil, err
	}
	ca, err := a.Value()
	if err != nil {
		return "", nil, err
	}

	var m, r *saferith.Nat
	if a.Opened() {
		ma, ra, err := a.openingNat()
		if err != nil {
			return "", nil, err
		}
		m = new(saferith.Nat).Mul(ma, k.Abs(), -1)
		r = new(saferith.Nat).Mul(ra, k.Abs(), -1)
	}

	cmt, err := newCommitment(key.Scale(ca, k), m, r)
	if err != nil {
		return "", nil, err
	}
	return cm.store(cmt)
}

func (cm *CommitmentManagerImpl) Delete(id string) error {
	return cm.cs.Delete(id)
}

func (cm *CommitmentManagerImpl) get(id string) (*CommitmentImpl, error) {
	rec, err := cm.cs.Get(id)
	if err != nil {
		return nil, err
	}
	return fromRecord(rec), nil
}

func (cm *CommitmentManagerImpl) store(cmt *CommitmentImpl) (string, Commitment, error) {
	id := uuid.New().String()
	if err := cm.cs.Import(id, cmt.record()); err != nil {
		return "", nil, err
	}
	log.WithFields(log.Fields{
		"id":     id,
		"opened": cmt.Opened(),
	}).Debug("commitment: stored")
	return id, cmt, nil
}
