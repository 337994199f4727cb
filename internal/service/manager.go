package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Girthywoody/law-loyalty-backend/internal/catalog"
	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
	"github.com/Girthywoody/law-loyalty-backend/internal/logger"
)

type managerService struct {
	mgrRepo      directory.ManagerRepository
	activityRepo directory.ActivityRepository
	catalog      *catalog.Catalog
	authProvider AuthProvider
	emailSvc     EmailService
}

func NewManagerService(
	mgrRepo directory.ManagerRepository,
	activityRepo directory.ActivityRepository,
	cat *catalog.Catalog,
	authProvider AuthProvider,
	emailSvc EmailService,
) ManagerService {
	return &managerService{
		mgrRepo:      mgrRepo,
		activityRepo: activityRepo,
		catalog:      cat,
		authProvider: authProvider,
		emailSvc:     emailSvc,
	}
}

func requireAdmin(actor *domain.Principal) error {
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("%w: manager administration requires the admin role", domain.ErrUnauthorized)
	}
	return nil
}

func (s *managerService) Create(ctx context.Context, actor *domain.Principal, firstName, lastName, email string, restaurants []string) (*domain.Manager, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	if firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: first and last name are required", domain.ErrValidation)
	}
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: malformed email address", domain.ErrValidation)
	}
	if err := s.validateRestaurants(restaurants); err != nil {
		return nil, err
	}

	mgr := &domain.Manager{
		ID:          uuid.NewString(),
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		Role:        domain.RoleManager,
		Restaurants: restaurants,
		Status:      domain.ManagerStatusActive,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.mgrRepo.Create(ctx, mgr); err != nil {
		return nil, err
	}

	s.record(ctx, &domain.ActivityEntry{
		Type:         domain.ActivityManagerCreated,
		ActorID:      actor.ID,
		SubjectID:    mgr.ID,
		SubjectEmail: mgr.Email,
		Detail:       strings.Join(restaurants, ","),
	})

	// Same policy as approval: the manager record stands even if the setup
	// email cannot go out.
	if err := s.issueSetupCredential(ctx, mgr); err != nil {
		logger.Error("Credential issuance failed after manager creation", "manager_id", mgr.ID, "email", mgr.Email, "error", err)
		return mgr, fmt.Errorf("%w: %v", domain.ErrCredentialIssuance, err)
	}
	return mgr, nil
}

func (s *managerService) issueSetupCredential(ctx context.Context, mgr *domain.Manager) error {
	if _, err := s.authProvider.IssueCredential(ctx, mgr.Email); err != nil {
		return err
	}
	link, err := s.authProvider.PasswordSetupLink(ctx, mgr.Email)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s %s", mgr.FirstName, mgr.LastName)
	return s.emailSvc.SendPasswordSetupEmail(ctx, mgr.Email, name, link, "")
}

func (s *managerService) validateRestaurants(restaurants []string) error {
	if len(restaurants) == 0 {
		return fmt.Errorf("%w: a manager needs at least one restaurant", domain.ErrValidation)
	}
	seen := make(map[string]bool, len(restaurants))
	for _, id := range restaurants {
		if s.catalog.ByID(id) == nil {
			return fmt.Errorf("%w: unknown restaurant %q", domain.ErrValidation, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate restaurant %q", domain.ErrValidation, id)
		}
		seen[id] = true
	}
	return nil
}

func (s *managerService) Get(ctx context.Context, actor *domain.Principal, managerID string) (*domain.Manager, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.mgrRepo.GetByID(ctx, managerID)
}

func (s *managerService) List(ctx context.Context, actor *domain.Principal) ([]domain.Manager, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.mgrRepo.List(ctx)
}

func (s *managerService) UpdateRestaurants(ctx context.Context, actor *domain.Principal, managerID string, restaurants []string) (*domain.Manager, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validateRestaurants(restaurants); err != nil {
		return nil, err
	}

	mgr, err := s.mgrRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	// Scope governs future authorization checks only; records already tied
	// to a removed restaurant are unaffected.
	mgr.Restaurants = restaurants
	if err := s.mgrRepo.Update(ctx, mgr); err != nil {
		return nil, err
	}

	s.record(ctx, &domain.ActivityEntry{
		Type:         domain.ActivityManagerUpdated,
		ActorID:      actor.ID,
		SubjectID:    mgr.ID,
		SubjectEmail: mgr.Email,
		Detail:       strings.Join(restaurants, ","),
	})
	return mgr, nil
}

func (s *managerService) Delete(ctx context.Context, actor *domain.Principal, managerID string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	mgr, err := s.mgrRepo.GetByID(ctx, managerID)
	if err != nil {
		return err
	}
	if err := s.mgrRepo.Delete(ctx, managerID); err != nil {
		return err
	}

	s.record(ctx, &domain.ActivityEntry{
		Type:         domain.ActivityManagerDeleted,
		ActorID:      actor.ID,
		SubjectID:    mgr.ID,
		SubjectEmail: mgr.Email,
	})
	return nil
}

func (s *managerService) record(ctx context.Context, entry *domain.ActivityEntry) {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		logger.Warn("Failed to record activity entry", "type", entry.Type, "subject_id", entry.SubjectID, "error", err)
	}
}
