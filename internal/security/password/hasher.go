// Package password hashes and verifies user passwords.
//
// New digests are bcrypt. Unsalted SHA-256 hex digests written by the legacy
// system are still accepted by Verify so existing accounts keep working.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when hashing an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

const legacyDigestLen = sha256.Size * 2

// Hasher hashes passwords with bcrypt and verifies bcrypt or legacy digests.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Out of range costs fall back to the default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt digest of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plain matches digest. A mismatch is not an error.
func (h *Hasher) Verify(plain, digest string) (bool, error) {
	if plain == "" || digest == "" {
		return false, nil
	}
	if isLegacy(digest) {
		return subtle.ConstantTimeCompare([]byte(LegacyDigest(plain)), []byte(digest)) == 1, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("bcrypt compare: %w", err)
	}
}

// NeedsRehash reports whether digest was produced by the legacy scheme or a lower cost.
func (h *Hasher) NeedsRehash(digest string) bool {
	if isLegacy(digest) {
		return true
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		return true
	}
	return cost < h.cost
}

// LegacyDigest returns the unsalted SHA-256 hex digest used by the legacy system.
func LegacyDigest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func isLegacy(digest string) bool {
	if len(digest) != legacyDigestLen {
		return false
	}
	_, err := hex.DecodeString(digest)
	return err == nil
}
