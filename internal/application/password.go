package application

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher derives a salted digest from a plaintext password.
type PasswordHasher func(password string) (string, error)

// PasswordVerifier compares a stored digest with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// NewPasswordHasher returns a bcrypt hasher with the given cost. Costs
// outside the supported range fall back to the library default.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return func(password string) (string, error) {
		digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return "", err
		}
		return string(digest), nil
	}
}

// VerifyPassword compares a bcrypt digest with a candidate password,
// returning ErrInvalidCredentials on mismatch.
func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return err
	}
	return nil
}
