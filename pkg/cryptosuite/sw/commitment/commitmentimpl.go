package commitment

import (
	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/mr-shifu/pedersen-lib/pkg/common/commitstore"
)

var ErrNoOpening = errors.New("commitment: opening is not known")

type CommitmentImpl struct {
	cmt  []byte
	dcmt []byte
}

var _ Commitment = (*CommitmentImpl)(nil)

type rawCommitment struct {
	Commitment   []byte
	Decommitment []byte
}

type rawOpening struct {
	Message  []byte
	Blinding []byte
}

func newCommitment(c *saferith.Nat, m, r *saferith.Nat) (*CommitmentImpl, error) {
	cb, err := c.MarshalBinary()
	if err != nil {
		return nil, err
	}
	cmt := &CommitmentImpl{cmt: cb}
	if m == nil || r == nil {
		return cmt, nil
	}

	dcmt, err := encodeOpening(m, r)
	if err != nil {
		return nil, err
	}
	cmt.dcmt = dcmt
	return cmt, nil
}

func (cmt *CommitmentImpl) Bytes() ([]byte, error) {
	raw := rawCommitment{
		Commitment:   cmt.cmt,
		Decommitment: cmt.dcmt,
	}
	return cbor.Marshal(raw)
}

func (cmt *CommitmentImpl) Commitment() []byte {
	return cmt.cmt
}

func (cmt *CommitmentImpl) Decommitment() []byte {
	return cmt.dcmt
}

func (cmt *CommitmentImpl) Opened() bool {
	return len(cmt.dcmt) != 0
}

func (cmt *CommitmentImpl) Value() (*saferith.Nat, error) {
	c := new(saferith.Nat)
	if err := c.UnmarshalBinary(cmt.cmt); err != nil {
		return nil, errors.WithMessage(err, "commitment: failed to decode value")
	}
	return c, nil
}

func (cmt *CommitmentImpl) Opening() (*saferith.Int, *saferith.Int, error) {
	m, r, err := cmt.openingNat()
	if err != nil {
		return nil, nil, err
	}
	return new(saferith.Int).SetNat(m), new(saferith.Int).SetNat(r), nil
}

func (cmt *CommitmentImpl) openingNat() (*saferith.Nat, *saferith.Nat, error) {
	if !cmt.Opened() {
		return nil, nil, ErrNoOpening
	}
	raw := &rawOpening{}
	if err := cbor.Unmarshal(cmt.dcmt, raw); err != nil {
		return nil, nil, errors.WithMessage(err, "commitment: failed to decode opening")
	}
	m, r := new(saferith.Nat), new(saferith.Nat)
	if err := m.UnmarshalBinary(raw.Message); err != nil {
		return nil, nil, err
	}
	if err := r.UnmarshalBinary(raw.Blinding); err != nil {
		return nil, nil, err
	}
	return m, r, nil
}

func (cmt *CommitmentImpl) record() *commitstore.Commitment {
	return &commitstore.Commitment{
		Commitment:   cmt.cmt,
		Decommitment: cmt.dcmt,
	}
}

func encodeOpening(m, r *saferith.Nat) ([]byte, error) {
	mb, err := m.MarshalBinary()
	if err != nil {
		return nil, err
	}
	rb, err := r.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&rawOpening{Message: mb, Blinding: rb})
}

func fromRecord(rec *commitstore.Commitment) *CommitmentImpl {
	return &CommitmentImpl{
		cmt:  rec.Commitment,
		dcmt: rec.Decommitment,
	}
}

func fromBytes(data []byte) (*CommitmentImpl, error) {
	raw := &rawCommitment{}
	if err := cbor.Unmarshal(data, raw); err != nil {
		return nil, err
	}
	cmt := &CommitmentImpl{
		cmt:  raw.Commitment,
		dcmt: raw.Decommitment,
	}
	return cmt, nil
}
