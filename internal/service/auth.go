package service

import (
	"context"
	"fmt"

	"github.com/Girthywoody/law-loyalty-backend/internal/auth"
	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
	"github.com/Girthywoody/law-loyalty-backend/internal/logger"
	"github.com/Girthywoody/law-loyalty-backend/internal/security"
)

type authService struct {
	index    directory.EmailIndex
	empRepo  directory.EmployeeRepository
	mgrRepo  directory.ManagerRepository
	provider auth.Provider
	tokens   security.TokenManager
	emailSvc EmailService
}

func NewAuthService(
	index directory.EmailIndex,
	empRepo directory.EmployeeRepository,
	mgrRepo directory.ManagerRepository,
	provider auth.Provider,
	tokens security.TokenManager,
	emailSvc EmailService,
) AuthService {
	return &authService{
		index:    index,
		empRepo:  empRepo,
		mgrRepo:  mgrRepo,
		provider: provider,
		tokens:   tokens,
		emailSvc: emailSvc,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Principal, string, error) {
	if _, err := s.provider.VerifyPassword(ctx, email, password); err != nil {
		return nil, "", err
	}

	principal, err := s.resolvePrincipal(ctx, email)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateSessionToken(principal)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return principal, token, nil
}

// resolvePrincipal maps an authenticated email to its directory record with a
// single index lookup; the kind tag tells us which collection to read.
func (s *authService) resolvePrincipal(ctx context.Context, email string) (*domain.Principal, error) {
	entry, err := s.index.Lookup(ctx, email)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	switch entry.Kind {
	case domain.KindRegistration:
		return nil, fmt.Errorf("%w: registration is still pending approval", domain.ErrUnauthorized)

	case domain.KindEmployee:
		emp, err := s.empRepo.GetByID(ctx, entry.RecordID)
		if err != nil {
			return nil, err
		}
		if emp.Status != domain.EmployeeStatusActive {
			return nil, fmt.Errorf("%w: employment has been terminated", domain.ErrUnauthorized)
		}
		return &domain.Principal{ID: emp.ID, Email: emp.Email, Role: domain.RoleEmployee}, nil

	case domain.KindManager:
		mgr, err := s.mgrRepo.GetByID(ctx, entry.RecordID)
		if err != nil {
			return nil, err
		}
		if mgr.Status != domain.ManagerStatusActive {
			return nil, fmt.Errorf("%w: manager account is not active", domain.ErrUnauthorized)
		}
		role := mgr.Role
		if role == "" {
			role = domain.RoleManager
		}
		return &domain.Principal{ID: mgr.ID, Email: mgr.Email, Role: role, Restaurants: mgr.Restaurants}, nil

	default:
		return nil, fmt.Errorf("unknown directory record kind: %s", entry.Kind)
	}
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	link, err := s.provider.PasswordResetLink(ctx, email)
	if err != nil {
		// Do not reveal whether an account exists; log and report success.
		logger.Warn("Password reset request for unknown or failing account", "email", email, "error", err)
		return nil
	}
	if err := s.emailSvc.SendPasswordResetEmail(ctx, email, link); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCredentialIssuance, err)
	}
	return nil
}
