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

type registrationService struct {
	regRepo      directory.RegistrationRepository
	empRepo      directory.EmployeeRepository
	index        directory.EmailIndex
	activityRepo directory.ActivityRepository
	catalog      *catalog.Catalog
	authProvider AuthProvider
	emailSvc     EmailService
}

// AuthProvider is the slice of the auth collaborator the engine needs for the
// credential side effect of approval.
type AuthProvider interface {
	IssueCredential(ctx context.Context, email string) (string, error)
	PasswordSetupLink(ctx context.Context, email string) (string, error)
}

func NewRegistrationService(
	regRepo directory.RegistrationRepository,
	empRepo directory.EmployeeRepository,
	index directory.EmailIndex,
	activityRepo directory.ActivityRepository,
	cat *catalog.Catalog,
	authProvider AuthProvider,
	emailSvc EmailService,
) RegistrationService {
	return &registrationService{
		regRepo:      regRepo,
		empRepo:      empRepo,
		index:        index,
		activityRepo: activityRepo,
		catalog:      cat,
		authProvider: authProvider,
		emailSvc:     emailSvc,
	}
}

func (s *registrationService) Submit(ctx context.Context, sub RegistrationSubmission) (*domain.RegistrationRequest, error) {
	if err := s.validateSubmission(&sub); err != nil {
		return nil, err
	}

	// Cheap duplicate check up front; the directory create re-checks
	// transactionally so a racing submission still fails cleanly.
	if _, err := s.index.Lookup(ctx, sub.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	req := &domain.RegistrationRequest{
		ID:           uuid.NewString(),
		Email:        sub.Email,
		FirstName:    sub.FirstName,
		LastName:     sub.LastName,
		RestaurantID: sub.RestaurantID,
		LocationID:   sub.LocationID,
		Status:       domain.RegistrationStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.regRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.record(ctx, &domain.ActivityEntry{
		Type:         domain.ActivityRegistrationSubmitted,
		SubjectID:    req.ID,
		SubjectEmail: req.Email,
		RestaurantID: req.RestaurantID,
	})
	return req, nil
}

func (s *registrationService) validateSubmission(sub *RegistrationSubmission) error {
	sub.FirstName = strings.TrimSpace(sub.FirstName)
	sub.LastName = strings.TrimSpace(sub.LastName)
	sub.Email = strings.TrimSpace(sub.Email)

	if sub.FirstName == "" || sub.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", domain.ErrValidation)
	}
	if !validEmail(sub.Email) {
		return fmt.Errorf("%w: malformed email address", domain.ErrValidation)
	}
	if sub.RestaurantID == "" {
		return fmt.Errorf("%w: restaurant is required", domain.ErrValidation)
	}

	restaurant := s.catalog.ByID(sub.RestaurantID)
	if restaurant == nil {
		return fmt.Errorf("%w: unknown restaurant %q", domain.ErrValidation, sub.RestaurantID)
	}
	if restaurant.HasLocations() {
		if sub.LocationID == "" {
			return fmt.Errorf("%w: %s requires a location", domain.ErrValidation, restaurant.Name)
		}
		if restaurant.Location(sub.LocationID) == nil {
			return fmt.Errorf("%w: unknown location %q for %s", domain.ErrValidation, sub.LocationID, restaurant.Name)
		}
	} else if sub.LocationID != "" {
		return fmt.Errorf("%w: %s has no locations", domain.ErrValidation, restaurant.Name)
	}
	return nil
}

// validEmail applies the minimal syntactic check: a local part, an "@", and a
// dotted domain.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	domainPart := email[at+1:]
	return strings.Contains(domainPart, ".") && !strings.HasPrefix(domainPart, ".") && !strings.HasSuffix(domainPart, ".")
}

func (s *registrationService) ListPending(ctx context.Context, actor *domain.Principal, restaurantIDs []string) ([]domain.RegistrationRequest, error) {
	scope, err := resolveScope(actor, restaurantIDs, s.catalog)
	if err != nil {
		return nil, err
	}
	return s.regRepo.ListByRestaurants(ctx, scope)
}

func (s *registrationService) Approve(ctx context.Context, actor *domain.Principal, requestID string) (*domain.Employee, error) {
	req, err := s.regRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActOn(req.RestaurantID) {
		return nil, fmt.Errorf("%w: restaurant %s is outside the manager's scope", domain.ErrUnauthorized, req.RestaurantID)
	}

	now := time.Now().UTC()
	emp := &domain.Employee{
		ID:           uuid.NewString(),
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		RestaurantID: req.RestaurantID,
		LocationID:   req.LocationID,
		Status:       domain.EmployeeStatusActive,
		CreatedAt:    req.CreatedAt,
		ApprovedAt:   &now,
	}
	// Promote resolves the approve/reject race: whichever operation commits
	// second sees ErrNotFound from the directory's conditional write.
	if err := s.regRepo.Promote(ctx, requestID, emp); err != nil {
		return nil, err
	}

	s.record(ctx, &domain.ActivityEntry{
		Type:         domain.ActivityRegistrationApproved,
		ActorID:      actor.ID,
		SubjectID:    emp.ID,
		SubjectEmail: emp.Email,
		RestaurantID: emp.RestaurantID,
	})

	// Credential issuance is best effort: the directory mutation above is
	// authoritative and is never rolled back on email failure.
	if err := s.issueSetupCredential(ctx, emp); err != nil {
		logger.Error("Credential issuance failed after approval", "employee_id", emp.ID, "email", emp.Email, "error", err)
		return emp, fmt.Errorf("%w: %v", domain.ErrCredentialIssuance, err)
	}
	return emp, nil
}

func (s *registrationService) issueSetupCredential(ctx context.Context, emp *domain.Employee) error {
	if _, err := s.authProvider.IssueCredential(ctx, emp.Email); err != nil {
		return err
	}
	link, err := s.authProvider.PasswordSetupLink(ctx, emp.Email)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s %s", emp.FirstName, emp.LastName)
	return s.emailSvc.SendPasswordSetupEmail(ctx, emp.Email, name, link, s.catalog.FullName(emp.RestaurantID, emp.LocationID))
}

func (s *registrationService) Reject(ctx context.Context, actor *domain.Principal, requestID string) error {
	req, err := s.regRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !actor.CanActOn(req.RestaurantID) {
		return fmt.Errorf("%w: restaurant %s is outside the manager's scope", domain.ErrUnauthorized, req.RestaurantID)
	}

	if err := s.regRepo.Delete(ctx, requestID); err != nil {
		return err
	}

	s.record(ctx, &domain.ActivityEntry{
		Type:         domain.ActivityRegistrationRejected,
		ActorID:      actor.ID,
		SubjectID:    requestID,
		SubjectEmail: req.Email,
		RestaurantID: req.RestaurantID,
	})
	return nil
}

func (s *registrationService) UpdateEmployeeStatus(ctx context.Context, actor *domain.Principal, employeeID string, status domain.EmployeeStatus) (*domain.Employee, error) {
	emp, err := s.empRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActOn(emp.RestaurantID) {
		return nil, fmt.Errorf("%w: restaurant %s is outside the manager's scope", domain.ErrUnauthorized, emp.RestaurantID)
	}
	if !emp.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s is not a valid employee status", domain.ErrInvalidTransition, status)
	}
	if emp.Status == status {
		// Re-asserting the current status is a no-op success.
		return emp, nil
	}

	prev := emp.Status
	emp.Status = status
	switch status {
	case domain.EmployeeStatusTerminated:
		now := time.Now().UTC()
		emp.TerminatedAt = &now
	case domain.EmployeeStatusActive:
		emp.TerminatedAt = nil
	}
	if err := s.empRepo.Update(ctx, emp); err != nil {
		return nil, err
	}

	s.record(ctx, &domain.ActivityEntry{
		Type:         domain.ActivityEmployeeStatusChanged,
		ActorID:      actor.ID,
		SubjectID:    emp.ID,
		SubjectEmail: emp.Email,
		RestaurantID: emp.RestaurantID,
		Detail:       fmt.Sprintf("%s -> %s", prev, status),
	})

	// Notify the employee; failure never unwinds the committed transition.
	name := fmt.Sprintf("%s %s", emp.FirstName, emp.LastName)
	_ = s.emailSvc.SendStatusNotification(ctx, emp.Email, name, s.catalog.FullName(emp.RestaurantID, emp.LocationID), string(status))

	return emp, nil
}

func (s *registrationService) ListEmployees(ctx context.Context, actor *domain.Principal, restaurantID string) ([]domain.Employee, error) {
	if !actor.CanActOn(restaurantID) {
		return nil, fmt.Errorf("%w: restaurant %s is outside the manager's scope", domain.ErrUnauthorized, restaurantID)
	}
	if s.catalog.ByID(restaurantID) == nil {
		return nil, fmt.Errorf("%w: unknown restaurant %q", domain.ErrValidation, restaurantID)
	}
	return s.empRepo.ListByRestaurant(ctx, restaurantID)
}

// record appends an activity entry; audit failures are logged, never fatal.
func (s *registrationService) record(ctx context.Context, entry *domain.ActivityEntry) {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		logger.Warn("Failed to record activity entry", "type", entry.Type, "subject_id", entry.SubjectID, "error", err)
	}
}

// resolveScope narrows the requested restaurant set to what the actor may
// see. An empty request means the actor's whole scope (every catalog
// restaurant for admins).
func resolveScope(actor *domain.Principal, requested []string, cat *catalog.Catalog) ([]string, error) {
	if actor.Role == domain.RoleEmployee {
		return nil, fmt.Errorf("%w: employees cannot review registrations", domain.ErrUnauthorized)
	}
	if len(requested) == 0 {
		if actor.Role == domain.RoleAdmin {
			var all []string
			for _, r := range cat.Restaurants() {
				all = append(all, r.ID)
			}
			return all, nil
		}
		return actor.Restaurants, nil
	}
	for _, id := range requested {
		if !actor.CanActOn(id) {
			return nil, fmt.Errorf("%w: restaurant %s is outside the manager's scope", domain.ErrUnauthorized, id)
		}
	}
	return requested, nil
}
