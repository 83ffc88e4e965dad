package auth

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Hasher derives a stable storage representation from a plaintext password.
// The representation is deterministic for a given configuration so that
// credential verification can compare stored and derived values directly.
type Hasher interface {
	Hash(password string) string
}

// DefaultIterations is the default PBKDF2 iteration count.
const DefaultIterations = 600000

// keyLength is the derived key length in bytes.
const keyLength = 32

// PBKDF2Hasher derives PBKDF2-SHA256 hashes with a deployment-wide salt.
// The salt comes from configuration and is validated to be non-empty at
// startup. Per-user salts would be stronger but change the storage contract;
// that migration is tracked as a deployment policy decision.
type PBKDF2Hasher struct {
	salt       []byte
	iterations int
}

// NewPBKDF2Hasher creates a hasher with the given salt and iteration count.
// A non-positive iteration count falls back to DefaultIterations.
func NewPBKDF2Hasher(salt string, iterations int) *PBKDF2Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &PBKDF2Hasher{salt: []byte(salt), iterations: iterations}
}

// Hash derives the hex-encoded PBKDF2-SHA256 representation of password.
func (h *PBKDF2Hasher) Hash(password string) string {
	key := pbkdf2.Key([]byte(password), h.salt, h.iterations, keyLength, sha256.New)
	return hex.EncodeToString(key)
}

// HasherFunc adapts a plain function into a Hasher.
type HasherFunc func(password string) string

// Hash implements the Hasher interface.
func (f HasherFunc) Hash(password string) string {
	return f(password)
}
