package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid passphrase")
	ErrWeakPassphrase     = errors.New("passphrase must be at least 8 characters")
)

// MinPassphraseLength is the shortest passphrase HashPassphrase accepts.
const MinPassphraseLength = 8

// PassphraseAuthenticator implements Authenticator against one bcrypt hash.
type PassphraseAuthenticator struct {
	hash []byte
}

// Ensure PassphraseAuthenticator implements Authenticator
var _ Authenticator = (*PassphraseAuthenticator)(nil)

// NewPassphraseAuthenticator creates an authenticator for a bcrypt hash.
// It fails if hash is not a bcrypt hash.
func NewPassphraseAuthenticator(hash string) (*PassphraseAuthenticator, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid passphrase hash: %w", err)
	}
	return &PassphraseAuthenticator{hash: []byte(hash)}, nil
}

// ValidateCredential checks if the passphrase meets minimum requirements.
func (a *PassphraseAuthenticator) ValidateCredential(credential string) error {
	return validatePassphrase(credential)
}

// Authenticate compares the passphrase with the configured hash.
func (a *PassphraseAuthenticator) Authenticate(ctx context.Context, credential string) error {
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassphrase returns the bcrypt hash to put in ROSTER_PASSPHRASE_HASH.
func HashPassphrase(passphrase string) (string, error) {
	if err := validatePassphrase(passphrase); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash passphrase: %w", err)
	}
	return string(hashed), nil
}

func validatePassphrase(passphrase string) error {
	if len(passphrase) < MinPassphraseLength {
		return ErrWeakPassphrase
	}
	return nil
}
