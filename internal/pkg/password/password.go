// Package password wraps bcrypt behind a small hasher so the work factor is
// tunable and the rest of the codebase never touches crypto primitives.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with bcrypt. Each Hash call embeds a
// fresh random salt, so equal inputs produce different hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// valid bcrypt range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a one-way hash of plaintext. Fails only on an internal bcrypt
// error (e.g. input beyond 72 bytes).
func (h *Hasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Verify reports whether plaintext matches hash. Empty plaintext or a
// malformed hash yields false, never an error; bcrypt's comparison is
// constant-time over the digest.
func (h *Hasher) Verify(plaintext, hash string) bool {
	if plaintext == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
