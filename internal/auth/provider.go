// Package auth defines the hosted auth provider collaborator. The provider
// owns credentials and password flows; the directory remains the source of
// truth for roles and scopes.
package auth

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Provider is the credential collaborator contract. Link minting is separate
// from delivery: the engine mails minted links through the email service, so
// the provider never sends mail itself.
type Provider interface {
	// IssueCredential ensures an auth account exists for the email and
	// returns the provider's principal id. Idempotent: an existing account
	// is returned as-is. No password is ever set here (reset-email-only
	// flow).
	IssueCredential(ctx context.Context, email string) (string, error)

	// PasswordSetupLink mints a link the recipient uses to choose their
	// first password.
	PasswordSetupLink(ctx context.Context, email string) (string, error)

	// PasswordResetLink mints a password reset link for an existing account.
	PasswordResetLink(ctx context.Context, email string) (string, error)

	// VerifyPassword checks the credentials and returns the provider's
	// principal id, or ErrInvalidCredentials.
	VerifyPassword(ctx context.Context, email, password string) (string, error)
}
