package pedersen

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/mr-shifu/pedersen-lib/core/hash"
	"github.com/mr-shifu/pedersen-lib/core/math/sample"
	pedersencore "github.com/mr-shifu/pedersen-lib/core/pedersen"
)

var ErrEmptyEncodedData = errors.New("pedersen: encoded key has empty data")

type PedersenKeyImpl struct {
	public *pedersencore.Parameters // p, g, h
}

type rawPedersenKey struct {
	Public []byte
}

var _ PedersenKey = (*PedersenKeyImpl)(nil)

func NewPedersenKey(p *pedersencore.Parameters) *PedersenKeyImpl {
	return &PedersenKeyImpl{
		public: p,
	}
}

// Bytes returns the byte representation of the key.
func (k *PedersenKeyImpl) Bytes() ([]byte, error) {
	pkb, err := k.public.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(&rawPedersenKey{Public: pkb})
}

// SKI returns the blake3 digest of the parameters.
func (k *PedersenKeyImpl) SKI() []byte {
	h := hash.New()
	if err := h.WriteAny(k.public); err != nil {
		return nil
	}
	return h.Sum()
}

func (k *PedersenKeyImpl) Parameters() *pedersencore.Parameters {
	return k.public
}

func (k *PedersenKeyImpl) Commit(m, r *saferith.Int) (*saferith.Nat, error) {
	return k.public.Commit(m, r)
}

func (k *PedersenKeyImpl) CommitRandom(rand io.Reader, m *saferith.Int, nBytes int) (*saferith.Nat, *saferith.Int, error) {
	r, err := sample.Blinding(rand, nBytes)
	if err != nil {
		return nil, nil, err
	}
	c, err := k.public.Commit(m, r)
	if err != nil {
		return nil, nil, err
	}
	return c, r, nil
}

func (k *PedersenKeyImpl) Add(c1, c2 *saferith.Nat) *saferith.Nat {
	return k.public.Add(c1, c2)
}

func (k *PedersenKeyImpl) Subtract(c1, c2 *saferith.Nat) (*saferith.Nat, error) {
	return k.public.Subtract(c1, c2)
}

func (k *PedersenKeyImpl) Scale(c *saferith.Nat, k2 *saferith.Int) *saferith.Nat {
	return k.public.Scale(c, k2)
}

func (k *PedersenKeyImpl) Verify(c *saferith.Nat, m, r *saferith.Int) bool {
	return k.public.Verify(c, m, r)
}

// fromBytes decodes a key and rejects parameters that fail validation.
func fromBytes(data []byte) (*PedersenKeyImpl, error) {
	if len(data) == 0 {
		return nil, ErrEmptyEncodedData
	}
	raw := &rawPedersenKey{}
	if err := cbor.Unmarshal(data, raw); err != nil {
		return nil, errors.WithMessage(err, "pedersen: failed to decode key")
	}
	if len(raw.Public) == 0 {
		return nil, ErrEmptyEncodedData
	}

	p := new(pedersencore.Parameters)
	if err := p.UnmarshalBinary(raw.Public); err != nil {
		return nil, err
	}
	return NewPedersenKey(p), nil
}
