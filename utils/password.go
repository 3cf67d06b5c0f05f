package utils

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

// CredentialVerifier decides whether an admin login is valid.
type CredentialVerifier interface {
	Verify(email, password string) error
}

// BcryptVerifier checks a single admin account whose password is stored as a
// bcrypt hash. No lockout or throttling is applied.
type BcryptVerifier struct {
	Email        string
	PasswordHash string
}

func (v BcryptVerifier) Verify(email, password string) error {
	if v.Email == "" || v.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(v.Email)),
	) == 1
	pwErr := bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password))
	if !emailOK || pwErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
