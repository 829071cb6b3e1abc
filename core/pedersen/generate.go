package pedersen

import (
	"context"
	"io"
	"math/big"
	"time"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/pedersen-lib/core/math/arith"
	"github.com/mr-shifu/pedersen-lib/core/math/prime"
	"github.com/mr-shifu/pedersen-lib/core/math/sample"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultBits is the size of p generated when no size is given.
	DefaultBits = 2048

	// maxSamplingAttempts bounds generator sampling; half of the candidates
	// modulo a safe prime succeed, so reaching it means p is not a safe prime.
	maxSamplingAttempts = 1 << 12
)

// GenerateParameters returns fresh parameters with a safe prime p of bits bits
// (DefaultBits if bits ≤ 0) requested from source, and generators g and h
// sampled independently from rand (crypto/rand if nil).
//
// g is resampled until g^((p-1)/2) ≠ 1 (mod p); h is resampled until h ∉ {1, g}.
// Both are drawn from [2, p-2]. If source is nil, a prime.SieveSource reading
// from rand is used. Cancelling ctx abandons the search.
func GenerateParameters(ctx context.Context, rand io.Reader, source prime.SafePrimeSource, bits int) (*Parameters, error) {
	if bits <= 0 {
		bits = DefaultBits
	}
	if source == nil {
		source = prime.NewSieveSource(rand, prime.SieveConfig{})
	}

	logger := log.WithField("bits", bits)
	logger.Debug("generating pedersen parameters")
	start := time.Now()

	pBig, err := source.SafePrime(ctx, bits)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, ErrPrimeGeneration) {
			return nil, errors.WithMessage(err, "pedersen: failed to obtain safe prime")
		}
		return nil, errors.WithMessagef(ErrPrimeGeneration, "pedersen: %v", err)
	}
	if pBig == nil || pBig.Cmp(big.NewInt(5)) < 0 || pBig.Bit(0) == 0 {
		return nil, errors.WithMessage(ErrPrimeGeneration, "pedersen: safe prime source returned an invalid modulus")
	}
	p := arith.ModulusFromSafePrime(pBig)

	g, err := sampleElement(ctx, rand, p, func(x *saferith.Nat) bool {
		return p.IsSafeGenerator(x)
	})
	if err != nil {
		return nil, errors.WithMessage(err, "pedersen: failed to sample g")
	}
	gBig := g.Big()

	h, err := sampleElement(ctx, rand, p, func(x *saferith.Nat) bool {
		return inGroupRange(p, x) && x.Big().Cmp(gBig) != 0
	})
	if err != nil {
		return nil, errors.WithMessage(err, "pedersen: failed to sample h")
	}

	logger.WithField("elapsed", time.Since(start)).Info("generated pedersen parameters")
	return &Parameters{p: p, g: g, h: h}, nil
}

// sampleElement draws uniform candidates in [0, p) until accept returns true.
func sampleElement(ctx context.Context, rand io.Reader, p *arith.Modulus, accept func(*saferith.Nat) bool) (*saferith.Nat, error) {
	for i := 0; i < maxSamplingAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x, err := sample.ModN(rand, p.Modulus)
		if err != nil {
			return nil, err
		}
		if accept(x) {
			return x, nil
		}
	}
	return nil, errors.WithMessagef(ErrInvalidParameters, "pedersen: no suitable element after %d attempts", maxSamplingAttempts)
}

// inGroupRange returns true if x ∈ [2, p-2].
func inGroupRange(p *arith.Modulus, x *saferith.Nat) bool {
	xb := x.Big()
	upper := new(big.Int).Sub(p.Big(), big.NewInt(2))
	return xb.Cmp(big.NewInt(2)) >= 0 && xb.Cmp(upper) <= 0
}

// Pending is the handle of a parameter generation running in the background.
type Pending struct {
	done   chan struct{}
	cancel context.CancelFunc
	params *Parameters
	err    error
}

// GenerateParametersAsync starts GenerateParameters in its own goroutine and
// returns immediately. The search stops when ctx is cancelled or Cancel is called.
func GenerateParametersAsync(ctx context.Context, rand io.Reader, source prime.SafePrimeSource, bits int) *Pending {
	ctx, cancel := context.WithCancel(ctx)
	pending := &Pending{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(pending.done)
		defer cancel()
		pending.params, pending.err = GenerateParameters(ctx, rand, source, bits)
	}()
	return pending
}

// Done is closed once the generation has finished, failed or been cancelled.
func (pd *Pending) Done() <-chan struct{} {
	return pd.done
}

// Cancel abandons the generation. It is safe to call more than once.
func (pd *Pending) Cancel() {
	pd.cancel()
}

// Wait blocks until the generation finishes or ctx is done. Giving up on ctx
// does not stop the generation, use Cancel for that.
func (pd *Pending) Wait(ctx context.Context) (*Parameters, error) {
	select {
	case <-pd.done:
		return pd.params, pd.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
