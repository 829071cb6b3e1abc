package commitstore

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/mr-shifu/pedersen-lib/pkg/common/commitstore"
)

var (
	ErrCommitmentNotFound = errors.New("commitstore: commitment not found")
	ErrEmptyCommitment    = errors.New("commitstore: empty commitment")
)

type InMemoryCommitStore struct {
	lock  sync.RWMutex
	store map[string]*commitstore.Commitment
}

var _ commitstore.CommitStore = (*InMemoryCommitStore)(nil)

func NewInMemoryCommitstore() *InMemoryCommitStore {
	return &InMemoryCommitStore{
		store: make(map[string]*commitstore.Commitment),
	}
}

func (cs *InMemoryCommitStore) Get(ID string) (*commitstore.Commitment, error) {
	cs.lock.RLock()
	defer cs.lock.RUnlock()

	commitment, ok := cs.store[ID]
	if !ok {
		return nil, errors.WithMessagef(ErrCommitmentNotFound, "commitstore: id %s", ID)
	}

	return clone(commitment), nil
}

// Import stores commitment under ID, replacing any previous record.
func (cs *InMemoryCommitStore) Import(ID string, commitment *commitstore.Commitment) error {
	if commitment == nil || len(commitment.Commitment) == 0 {
		return ErrEmptyCommitment
	}

	cs.lock.Lock()
	defer cs.lock.Unlock()

	cs.store[ID] = clone(commitment)
	return nil
}

func (cs *InMemoryCommitStore) Delete(ID string) error {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	if _, ok := cs.store[ID]; !ok {
		return errors.WithMessagef(ErrCommitmentNotFound, "commitstore: id %s", ID)
	}

	delete(cs.store, ID)
	return nil
}

func clone(c *commitstore.Commitment) *commitstore.Commitment {
	return &commitstore.Commitment{
		Commitment:   append([]byte(nil), c.Commitment...),
		Decommitment: append([]byte(nil), c.Decommitment...),
	}
}
