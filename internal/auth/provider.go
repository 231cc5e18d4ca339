// Package auth isolates credential checking behind a provider interface so
// the fixture-backed demo list can later be swapped for a real credential
// backend without touching the identity store's contract.
package auth

import (
	"context"

	"chatterverse/internal/models"
)

// Provider authenticates and registers users. Implementations never return
// secret material; the user records they hand back are safe to persist.
// Operations take a context so a networked provider can be substituted.
type Provider interface {
	// Authenticate returns the user matching the email/password pair, or an
	// INVALID_CREDENTIALS error.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	// Register adds a new user with the given password. It fails with a
	// DUPLICATE_USER error when the email or username is already known.
	// Registration commits to the provider's own state immediately: the
	// provider is externally owned (a real backend is a remote service),
	// so callers must not assume a failed step after Register rolls the
	// account back. A registered account is always reachable via
	// Authenticate.
	Register(ctx context.Context, user *models.User, password string) error
}
