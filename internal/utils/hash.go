package utils

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptCredential is returned by [PasswordHasher.Verify] when the
// stored hash is not a well-formed bcrypt hash and therefore can never
// match any password. A plain mismatch is NOT an error; it is reported
// via the boolean result.
var ErrCorruptCredential = errors.New("stored credential is corrupt")

// PasswordHasher derives and verifies salted bcrypt password hashes.
//
// bcrypt embeds a random per-hash salt and a tunable work factor in the
// produced hash string, so hashing the same password twice yields
// different hashes and the cost can be raised over time without schema
// changes. The zero value is not usable; construct via [NewPasswordHasher].
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher constructs a [PasswordHasher] with the given bcrypt
// cost. Costs outside the valid bcrypt range fall back to
// [bcrypt.DefaultCost].
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a salted bcrypt hash of plaintext using the configured cost.
// The output is non-deterministic: two calls with the same input produce
// different hashes, each carrying its own salt.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify compares plaintext against a stored bcrypt hash.
//
// Returns:
//   - (true, nil) when the password matches;
//   - (false, nil) when the password does not match;
//   - (false, [ErrCorruptCredential]) when the stored hash is malformed.
//
// A mismatch never produces an error, so callers can branch on the boolean
// without inspecting error values.
func (h *PasswordHasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}

	return false, fmt.Errorf("%w: %w", ErrCorruptCredential, err)
}
