// Package auth issues and verifies credentials for API requests.
package auth

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"gitlab.com/yelinaung/expense-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// ValidatePassword checks a new password against length limits.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return models.NewValidationError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return models.NewValidationError("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares password with a stored hash. A mismatch returns
// models.ErrInvalidCredentials.
func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return models.ErrInvalidCredentials
	}
	return fmt.Errorf("failed to compare password: %w", err)
}

// dummyHash is compared against when the account does not exist, so unknown
// and known emails cost the same bcrypt work.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("expense-api-unknown-account"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("auth: failed to build dummy hash: %v", err))
	}
	return hash
})

// RejectUnknownAccount runs a bcrypt comparison against a fixed hash and
// always returns models.ErrInvalidCredentials.
func RejectUnknownAccount(password string) error {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
	return models.ErrInvalidCredentials
}
