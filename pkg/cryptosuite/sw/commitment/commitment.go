package commitment

import (
	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/pedersen-lib/pkg/cryptosuite/sw/pedersen"
)

type Commitment interface {
	Bytes() ([]byte, error)

	// Commitment returns the encoded commitment value.
	Commitment() []byte

	// Decommitment returns the encoded opening, or nil if it is not known.
	Decommitment() []byte

	// Value decodes the commitment value.
	Value() (*saferith.Nat, error)

	// Opening decodes the message and blinding factor.
	Opening() (m, r *saferith.Int, err error)

	Opened() bool
}

// CommitmentManager keeps commitments and their openings by ID.
type CommitmentManager interface {
	// Commit commits to m under key with a fresh blinding factor and stores the opening.
	Commit(key pedersen.PedersenKey, m *saferith.Int) (string, Commitment, error)

	// Import stores a commitment received without its opening.
	Import(c *saferith.Nat) (string, error)

	// ImportDecommitment attaches a revealed opening to a stored commitment.
	ImportDecommitment(id string, m, r *saferith.Int) error

	Get(id string) (Commitment, error)

	// Verify checks the stored opening against the stored commitment.
	Verify(key pedersen.PedersenKey, id string) (bool, error)

	// Add stores the product of two commitments, with the summed opening when both are known.
	Add(key pedersen.PedersenKey, id1, id2 string) (string, Commitment, error)

	// Scale stores c^k, with the scaled opening when it is known. k must not be negative.
	Scale(key pedersen.PedersenKey, id string, k *saferith.Int) (string, Commitment, error)

	Delete(id string) error
}
