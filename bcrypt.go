package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a password digest. Length policy (8 to 72
// characters) must have been enforced by the caller: bcrypt rejects inputs
// beyond 72 bytes instead of truncating silently.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the digest. Any failure, including an algorithmically malformed digest,
// reports as a credential mismatch rather than an internal error.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		// malformed digests are indistinguishable from a mismatch on purpose
		return ErrInvalidCredentials
	}
	return nil
}
