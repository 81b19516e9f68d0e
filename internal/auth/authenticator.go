// Package auth issues and checks the credentials that tie valuations to an owner.
package auth

import (
	"context"

	"github.com/mmynk/valuator/internal/models"
)

var _ Authenticator = (*PasswordAuthenticator)(nil)

// Authenticator registers and signs in users.
type Authenticator interface {
	// Register creates an account. The credential format is implementation specific.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user the credential belongs to.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
