// Package memory implements the auth provider in process memory for local
// development and tests. Selected by config the same way as the in-memory
// directory backend.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Girthywoody/law-loyalty-backend/internal/auth"
)

type account struct {
	id           string
	passwordHash []byte
}

type Provider struct {
	mu       sync.Mutex
	accounts map[string]*account
}

func NewProvider() *Provider {
	return &Provider{accounts: make(map[string]*account)}
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *Provider) IssueCredential(ctx context.Context, email string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if acc, ok := p.accounts[key(email)]; ok {
		return acc.id, nil
	}
	acc := &account{id: uuid.NewString()}
	p.accounts[key(email)] = acc
	return acc.id, nil
}

func (p *Provider) PasswordSetupLink(ctx context.Context, email string) (string, error) {
	return fmt.Sprintf("http://localhost/password-setup?email=%s", key(email)), nil
}

func (p *Provider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.accounts[key(email)]; !ok {
		return "", auth.ErrInvalidCredentials
	}
	return fmt.Sprintf("http://localhost/password-reset?email=%s", key(email)), nil
}

func (p *Provider) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	acc, ok := p.accounts[key(email)]
	if !ok || acc.passwordHash == nil {
		return "", auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return "", auth.ErrInvalidCredentials
	}
	return acc.id, nil
}

// SetPassword assigns a password to an account, creating the account if
// needed. Used to seed development environments.
func (p *Provider) SetPassword(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	acc, ok := p.accounts[key(email)]
	if !ok {
		acc = &account{id: uuid.NewString()}
		p.accounts[key(email)] = acc
	}
	acc.passwordHash = hash
	return nil
}
