package keyopts

// KeyData is the metadata kept for a stored key.
type KeyData struct {
	ID  string
	SKI string
}

type Options interface {
	Set(kVs ...interface{}) (Options, error)
	Get(key string) (interface{}, bool)
}

// KeyOpts maps a caller chosen ID to the SKI of the key stored under it.
type KeyOpts interface {
	// Import links the ID found in opts to ski.
	Import(ski string, opts Options) error

	// Get returns the key metadata linked to the ID found in opts.
	Get(opts Options) (*KeyData, error)

	// GetAll returns the metadata of every linked ID.
	GetAll() map[string]*KeyData

	Delete(opts Options) error
}
