package prime

import (
	"context"
	cryptorand "crypto/rand"
	"io"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mr-shifu/pedersen-lib/core/math/arith"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	// MinSafePrimeBits is the smallest size SieveSource accepts.
	MinSafePrimeBits = 6

	// maxDeltaSearch is the number of 2-increments tried from one random start.
	maxDeltaSearch = 1 << 20
)

var ErrPrimeGeneration = errors.New("prime: safe prime generation failed")

// SafePrimeSource produces a safe prime p = 2q + 1 of exactly bits bits, or fails.
type SafePrimeSource interface {
	SafePrime(ctx context.Context, bits int) (*big.Int, error)
}

// SieveConfig tunes a SieveSource. Zero values select defaults.
type SieveConfig struct {
	// Rounds of MillerRabin used to confirm q and p.
	Rounds int
	// Concurrency is the number of search workers, runtime.NumCPU() by default.
	Concurrency int
	// Timeout bounds a single SafePrime call. No bound when zero.
	Timeout time.Duration
}

// SieveSource searches safe primes with the combined sieve: candidates q and
// p = 2q + 1 are sieved by small primes, q ≡ 1 (mod 3) is skipped, q is
// confirmed with MillerRabin and p with Pocklington's criterion.
type SieveSource struct {
	rand io.Reader
	cfg  SieveConfig
}

var _ SafePrimeSource = (*SieveSource)(nil)

var (
	smallPrimes = []uint64{
		3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
	}
	// smallPrimesProduct fits into a uint64
	smallPrimesProduct = new(big.Int).SetUint64(16294579238595022365)
)

// NewSieveSource returns a SieveSource drawing candidates and witnesses from rand
// (crypto/rand if nil). rand is shared between workers behind a lock.
func NewSieveSource(rand io.Reader, cfg SieveConfig) *SieveSource {
	if rand == nil {
		rand = cryptorand.Reader
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = DefaultRounds
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	return &SieveSource{
		rand: newLockedReader(rand),
		cfg:  cfg,
	}
}

// SafePrime runs the configured number of workers and returns the first safe
// prime found; the remaining workers are cancelled.
// Cancelling ctx abandons the search and returns the context error.
// Every other failure, including the configured timeout, wraps ErrPrimeGeneration.
func (s *SieveSource) SafePrime(ctx context.Context, bits int) (*big.Int, error) {
	if bits < MinSafePrimeBits {
		return nil, errors.WithMessagef(ErrPrimeGeneration, "prime: safe prime size must be at least %d bits", MinSafePrimeBits)
	}

	searchCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		searchCtx, cancelTimeout = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancelTimeout()
	}
	searchCtx, cancel := context.WithCancel(searchCtx)
	defer cancel()

	logger := log.WithFields(log.Fields{
		"bits":    bits,
		"workers": s.cfg.Concurrency,
	})
	logger.Debug("searching for safe prime")
	start := time.Now()

	var candidates int64
	found := make(chan *big.Int, 1)
	group, groupCtx := errgroup.WithContext(searchCtx)
	for i := 0; i < s.cfg.Concurrency; i++ {
		group.Go(func() error {
			p, err := s.search(groupCtx, bits, &candidates)
			if err != nil {
				return err
			}
			select {
			case found <- p:
			default:
			}
			cancel()
			return nil
		})
	}
	err := group.Wait()

	select {
	case p := <-found:
		logger.WithFields(log.Fields{
			"candidates": atomic.LoadInt64(&candidates),
			"elapsed":    time.Since(start),
		}).Debug("found safe prime")
		return p, nil
	default:
	}

	if ctx.Err() != nil {
		return nil, errors.WithMessage(ctx.Err(), "prime: safe prime search abandoned")
	}
	if err == nil {
		err = searchCtx.Err()
	}
	return nil, errors.WithMessagef(ErrPrimeGeneration, "prime: %v", err)
}

// search draws random q of bits-1 bits with the two top bits set and walks
// q, q+2, q+4, ... until a safe prime 2q+1 is found.
func (s *SieveSource) search(ctx context.Context, pBits int, candidates *int64) (*big.Int, error) {
	qBits := pBits - 1
	b := uint(qBits % 8)
	if b == 0 {
		b = 8
	}
	buf := make([]byte, (qBits+7)/8)

	var (
		q, p, qBase, delta, tmp big.Int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(s.rand, buf); err != nil {
			return nil, errors.WithMessage(err, "prime: failed to read random bytes")
		}

		// clear the excess bits and set the two most significant ones
		buf[0] &= uint8(int(1<<b) - 1)
		if b >= 2 {
			buf[0] |= 3 << (b - 2)
		} else {
			buf[0] |= 1
			if len(buf) > 1 {
				buf[1] |= 0x80
			}
		}
		// odd
		buf[len(buf)-1] |= 1

		qBase.SetBytes(buf)
		mod := tmp.Mod(&qBase, smallPrimesProduct).Uint64()

	NextDelta:
		for d := uint64(0); d < maxDeltaSearch; d += 2 {
			m := mod + d
			for _, prime := range smallPrimes {
				// for qBits ≤ 6, q itself may be one of the small primes
				if m%prime == 0 && (m != prime || qBits > 6) {
					continue NextDelta
				}
			}

			// q ≡ 1 (mod 3) ⟹ p ≡ 0 (mod 3)
			if m%3 == 1 {
				continue
			}

			q.Add(&qBase, delta.SetUint64(d))
			if q.BitLen() != qBits {
				break
			}
			p.Lsh(&q, 1)
			p.Add(&p, one)
			if !isSieveCandidate(&p, &tmp) {
				continue
			}

			atomic.AddInt64(candidates, 1)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			// BPSW filter before the expensive rounds
			if !q.ProbablyPrime(0) {
				continue
			}
			if !MillerRabin(s.rand, &q, s.cfg.Rounds) {
				continue
			}
			if !pocklington(&p) {
				continue
			}
			if !MillerRabin(s.rand, &p, 1) {
				continue
			}
			return new(big.Int).Set(&p), nil
		}
	}
}

// pocklington proves p = 2q + 1 prime for a prime q when 2ᵖ⁻¹ ≡ 1 (mod p).
func pocklington(p *big.Int) bool {
	pMinus1 := new(big.Int).Sub(p, one)
	return arith.ModExp(two, pMinus1, p).Cmp(one) == 0
}

func isSieveCandidate(n, tmp *big.Int) bool {
	m := tmp.Mod(n, smallPrimesProduct).Uint64()
	for _, prime := range smallPrimes {
		if m != prime && m%prime == 0 {
			return false
		}
	}
	return true
}

// lockedReader serializes reads of a reader shared between search workers.
type lockedReader struct {
	lock sync.Mutex
	r    io.Reader
}

func newLockedReader(r io.Reader) *lockedReader {
	return &lockedReader{r: r}
}

func (l *lockedReader) Read(buf []byte) (int, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.r.Read(buf)
}
