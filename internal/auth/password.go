package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrUsernameExists     = errors.New("username already taken")
	ErrUnknownUser        = errors.New("user not found")
)

// ValidatePassword checks if the password meets minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}
	return nil
}

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the password matches the stored hash.
// Neither the password nor the hash is ever logged or returned to callers.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
