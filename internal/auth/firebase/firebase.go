// Package firebase implements the auth provider on Firebase Authentication.
// Account management and link minting go through the Admin SDK; password
// verification goes through the Identity Toolkit REST API, which is the only
// surface Firebase exposes for server-side password checks.
package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"

	"github.com/Girthywoody/law-loyalty-backend/internal/auth"
	"github.com/Girthywoody/law-loyalty-backend/internal/logger"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

type Provider struct {
	client    *fbauth.Client
	webAPIKey string
	httpc     *http.Client
}

// NewProvider builds a provider from an initialized Firebase app. The web API
// key authorizes Identity Toolkit sign-in calls; it is not a secret but is
// project-specific.
func NewProvider(ctx context.Context, app *firebase.App, webAPIKey string) (*Provider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &Provider{
		client:    client,
		webAPIKey: webAPIKey,
		httpc:     http.DefaultClient,
	}, nil
}

func (p *Provider) IssueCredential(ctx context.Context, email string) (string, error) {
	record, err := p.client.GetUserByEmail(ctx, email)
	if err == nil {
		return record.UID, nil
	}
	if !fbauth.IsUserNotFound(err) {
		return "", fmt.Errorf("failed to look up auth account: %w", err)
	}

	created, err := p.client.CreateUser(ctx, (&fbauth.UserToCreate{}).Email(email))
	if err != nil {
		return "", fmt.Errorf("failed to create auth account: %w", err)
	}
	logger.Info("Auth account created", "email", email, "uid", created.UID)
	return created.UID, nil
}

func (p *Provider) PasswordSetupLink(ctx context.Context, email string) (string, error) {
	// Firebase has no dedicated first-password flow; the reset link doubles
	// as the setup link for accounts created without a password.
	return p.PasswordResetLink(ctx, email)
}

func (p *Provider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := p.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to mint password reset link: %w", err)
	}
	return link, nil
}

func (p *Provider) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", signInEndpoint, p.webAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call identity toolkit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		// Identity Toolkit reports wrong password, unknown user, and
		// disabled account all as 400.
		return "", auth.ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity toolkit sign-in returned status %d", resp.StatusCode)
	}

	var result struct {
		LocalID string `json:"localId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode identity toolkit response: %w", err)
	}
	if result.LocalID == "" {
		return "", auth.ErrInvalidCredentials
	}
	return result.LocalID, nil
}
