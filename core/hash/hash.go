package hash

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"reflect"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

// DigestLengthBytes is the size of Sum.
const DigestLengthBytes = 32

// Hash is the domain-separated hash used for key identifiers and for deriving
// group elements from public seeds.
//
// Internally, this is a wrapper around blake3, whose extendable output is read through Digest.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash initialized with "PEDERSEN-BLAKE".
func New(initialData ...WriterToWithDomain) *Hash {
	hash := &Hash{h: blake3.New()}
	_, _ = hash.h.WriteString("PEDERSEN-BLAKE")
	for _, d := range initialData {
		_ = hash.WriteAny(d)
	}
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length DigestLengthBytes resulting from the current hash state.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLengthBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny writes each of data to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - *big.Int
//   - *saferith.Nat
//   - *saferith.Modulus
//   - hash.WriterToWithDomain
//   - encoding.BinaryMarshaler
//
// Each value is written as (<domain_size><domain><data_size><data>), so that
// values with different types or boundaries never collide.
func (hash *Hash) WriteAny(data ...interface{}) error {
	for _, d := range data {
		var toBeWritten BytesWithDomain
		switch t := d.(type) {
		case []byte:
			if t == nil {
				return errors.New("hash.WriteAny: nil []byte")
			}
			toBeWritten = BytesWithDomain{"[]byte", t}
		case *big.Int:
			if t == nil {
				return errors.New("hash.WriteAny: write *big.Int: nil")
			}
			b, _ := t.GobEncode()
			toBeWritten = BytesWithDomain{"big.Int", b}
		case *saferith.Nat:
			if t == nil {
				return errors.New("hash.WriteAny: write *saferith.Nat: nil")
			}
			toBeWritten = BytesWithDomain{"saferith.Nat", t.Big().Bytes()}
		case *saferith.Modulus:
			if t == nil {
				return errors.New("hash.WriteAny: write *saferith.Modulus: nil")
			}
			toBeWritten = BytesWithDomain{"saferith.Modulus", t.Bytes()}
		case WriterToWithDomain:
			var buf = new(bytes.Buffer)
			if _, err := t.WriteTo(buf); err != nil {
				name := reflect.TypeOf(t)
				return errors.WithMessagef(err, "hash.WriteAny: %s", name.String())
			}
			toBeWritten = BytesWithDomain{t.Domain(), buf.Bytes()}
		case encoding.BinaryMarshaler:
			name := reflect.TypeOf(t)
			b, err := t.MarshalBinary()
			if err != nil {
				return errors.WithMessagef(err, "hash.WriteAny: %s", name.String())
			}
			toBeWritten = BytesWithDomain{name.String(), b}
		default:
			return errors.Errorf("hash.WriteAny: invalid type %T provided as input", d)
		}
		hash.writeBytesWithDomain(toBeWritten)
	}
	return nil
}

func (hash *Hash) writeBytesWithDomain(toBeWritten BytesWithDomain) {
	var sizeBuf [8]byte

	_, _ = hash.h.WriteString("(")
	// <domain_size>
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(toBeWritten.TheDomain)))
	_, _ = hash.h.Write(sizeBuf[:])
	// <domain>
	_, _ = hash.h.WriteString(toBeWritten.TheDomain)
	// <data_size>
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(toBeWritten.Bytes)))
	_, _ = hash.h.Write(sizeBuf[:])
	// <data>
	_, _ = hash.h.Write(toBeWritten.Bytes)
	_, _ = hash.h.WriteString(")")
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}

// Fork clones this hash, and then writes some data.
func (hash *Hash) Fork(data ...interface{}) *Hash {
	newHash := hash.Clone()
	_ = newHash.WriteAny(data...)
	return newHash
}
