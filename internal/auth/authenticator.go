// Package auth guards the interactive shell with an operator passphrase and
// short-lived session tokens.
package auth

import "context"

// Authenticator defines the interface for unlocking the shell.
// This abstraction allows swapping the passphrase check for another method
// without changing the shell.
type Authenticator interface {
	// Authenticate verifies the credential. It returns ErrInvalidCredentials
	// when the credential does not match.
	Authenticate(ctx context.Context, credential string) error

	// ValidateCredential checks if a new credential meets the implementation's
	// requirements, before it is hashed.
	ValidateCredential(credential string) error
}
