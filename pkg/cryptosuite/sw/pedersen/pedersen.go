package pedersen

import (
	"context"
	"io"

	"github.com/cronokirby/saferith"
	pedersencore "github.com/mr-shifu/pedersen-lib/core/pedersen"
	"github.com/mr-shifu/pedersen-lib/pkg/common/keyopts"
)

type PedersenKey interface {
	// Bytes returns the byte representation of the key.
	Bytes() ([]byte, error)

	// SKI returns the serialized key identifier.
	SKI() []byte

	// Parameters returns the group parameters (p, g, h) held by the key.
	Parameters() *pedersencore.Parameters

	// Commit returns the commitment of m under blinding factor r.
	Commit(m, r *saferith.Int) (*saferith.Nat, error)

	// CommitRandom commits to m with a fresh blinding factor of nBytes.
	CommitRandom(rand io.Reader, m *saferith.Int, nBytes int) (*saferith.Nat, *saferith.Int, error)

	Add(c1, c2 *saferith.Nat) *saferith.Nat
	Subtract(c1, c2 *saferith.Nat) (*saferith.Nat, error)
	Scale(c *saferith.Nat, k *saferith.Int) *saferith.Nat

	// Verify returns true if c opens to (m, r).
	Verify(c *saferith.Nat, m, r *saferith.Int) bool
}

type PedersenKeyManager interface {
	// GenerateKey generates fresh parameters and stores them under the ID in opts.
	GenerateKey(ctx context.Context, opts keyopts.Options) (PedersenKey, error)

	// ImportKey validates and stores encoded parameters, a PedersenKey or *pedersencore.Parameters.
	ImportKey(raw interface{}, opts keyopts.Options) (PedersenKey, error)

	// ImportDefault stores the built-in 2048-bit parameters under the ID in opts.
	ImportDefault(opts keyopts.Options) (PedersenKey, error)

	// GetKey returns the key stored under the ID in opts.
	GetKey(opts keyopts.Options) (PedersenKey, error)

	DeleteKey(opts keyopts.Options) error

	Commit(m, r *saferith.Int, opts keyopts.Options) (*saferith.Nat, error)
	CommitRandom(m *saferith.Int, opts keyopts.Options) (*saferith.Nat, *saferith.Int, error)
	Add(c1, c2 *saferith.Nat, opts keyopts.Options) (*saferith.Nat, error)
	Subtract(c1, c2 *saferith.Nat, opts keyopts.Options) (*saferith.Nat, error)
	Scale(c *saferith.Nat, k *saferith.Int, opts keyopts.Options) (*saferith.Nat, error)
	Verify(c *saferith.Nat, m, r *saferith.Int, opts keyopts.Options) bool
}
