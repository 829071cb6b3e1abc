package pedersen

import (
	"encoding/binary"
	"io"
	"math/big"
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/mr-shifu/pedersen-lib/core/hash"
	"github.com/mr-shifu/pedersen-lib/core/math/arith"
	"github.com/pkg/errors"
)

// rfc3526Group14 is the 2048-bit MODP safe prime of RFC 3526, section 3.
const rfc3526Group14 = "" +
	"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74" +
	"020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437" +
	"4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
	"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05" +
	"98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB" +
	"9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B" +
	"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718" +
	"3995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF"

var (
	defaultSeedG = []byte("pedersen-lib/default/g")
	defaultSeedH = []byte("pedersen-lib/default/h")

	defaultOnce   sync.Once
	defaultParams *Parameters
)

// Default returns the process-wide 2048-bit parameter set. p is the RFC 3526
// group 14 prime; g and h are derived with DeriveGenerator from two distinct
// public seeds. The value is built once and must not be modified.
func Default() *Parameters {
	defaultOnce.Do(func() {
		pBig, _ := new(big.Int).SetString(rfc3526Group14, 16)
		p := arith.ModulusFromSafePrime(pBig)

		g, err := DeriveGenerator(p, defaultSeedG)
		if err != nil {
			panic(err)
		}
		h, err := DeriveGenerator(p, defaultSeedH)
		if err != nil {
			panic(err)
		}
		defaultParams = &Parameters{p: p, g: g, h: h}
	})
	return defaultParams
}

// DeriveGenerator maps seed to the first element x = H(seed, counter) mod p
// satisfying x^((p-1)/2) ≠ 1. Generators derived from distinct seeds have no
// known discrete logarithm relation.
func DeriveGenerator(p *arith.Modulus, seed []byte) (*saferith.Nat, error) {
	// 128 extra bits make the reduction mod p statistically uniform
	buf := make([]byte, (p.BitLen()+7)/8+16)
	var counter [8]byte
	for i := uint64(0); i < maxSamplingAttempts; i++ {
		binary.BigEndian.PutUint64(counter[:], i)
		h := hash.New(hash.BytesWithDomain{TheDomain: "Pedersen Generator", Bytes: seed})
		if err := h.WriteAny(counter[:]); err != nil {
			return nil, err
		}
		if _, err := io.ReadFull(h.Digest(), buf); err != nil {
			return nil, errors.WithMessage(err, "pedersen: failed to read digest")
		}

		x := p.Reduce(new(big.Int).SetBytes(buf))
		if p.IsSafeGenerator(x) {
			return x, nil
		}
	}
	return nil, errors.WithMessage(ErrInvalidParameters, "pedersen: no generator found for seed")
}
