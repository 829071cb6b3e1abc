package pedersen

import (
	"github.com/mr-shifu/pedersen-lib/core/math/arith"
	"github.com/mr-shifu/pedersen-lib/core/math/prime"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput is returned by Commit for a negative message or blinding factor.
	ErrInvalidInput = errors.New("pedersen: invalid input")

	// ErrInvalidParameters is returned when {p, g, h} violates the scheme's conditions.
	ErrInvalidParameters = errors.New("pedersen: invalid parameters")

	// ErrNotInvertible is returned by Subtract when the subtrahend shares a factor with p,
	// which only happens if p is not prime.
	ErrNotInvertible = arith.ErrNotInvertible

	// ErrPrimeGeneration is returned when the safe prime source fails.
	ErrPrimeGeneration = prime.ErrPrimeGeneration
)
