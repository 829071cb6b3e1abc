package vault

// Vault holds encoded key material by key identifier.
type Vault interface {
	// Import stores key under keyID, replacing any previous value.
	Import(keyID string, key []byte) error

	// Get returns the key stored under keyID.
	Get(keyID string) ([]byte, error)

	// Delete removes the key stored under keyID.
	Delete(keyID string) error
}
