package hash

import "io"

// WriterToWithDomain is implemented by values that write their own encoding
// and name the domain separating it from other types.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a context string which is unique for each implementing type.
	Domain() string
}

// BytesWithDomain is a byte string tagged with the domain it belongs to.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}
