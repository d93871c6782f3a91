// Package hash provides password hashing and verification.
package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher abstracts the password hashing algorithm.
type Hasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, digest string) bool
}

// BcryptHasher implements Hasher using bcrypt with a configurable cost.
type BcryptHasher struct {
	cost int
}

// BcryptHasher implements Hasher; verified at compile time.
var _ Hasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a BcryptHasher with the given cost factor.
// Costs outside bcrypt's supported range fall back to the bcrypt default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash derives a salted bcrypt digest from the plaintext password.
// bcrypt generates a fresh random salt per call, so hashing the same
// password twice yields different digests.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Check reports whether the plaintext password matches the digest.
// This is the only correct way to compare; digests are never equal byte-wise.
func (h *BcryptHasher) Check(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
