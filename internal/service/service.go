package service

import (
	"context"

	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

// RegistrationSubmission is the input to a prospective employee's
// registration.
type RegistrationSubmission struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	RestaurantID string `json:"restaurant_id"`
	LocationID   string `json:"location_id,omitempty"`
}

// EmployeeProfile is the read-only view an employee sees of their own record,
// joined with catalog data.
type EmployeeProfile struct {
	Employee        *domain.Employee `json:"employee"`
	RestaurantName  string           `json:"restaurant_name"`
	DiscountPercent int              `json:"discount_percent"`
	RecentVisits    []domain.Visit   `json:"recent_visits,omitempty"`
}

type RegistrationService interface {
	Submit(ctx context.Context, sub RegistrationSubmission) (*domain.RegistrationRequest, error)
	ListPending(ctx context.Context, actor *domain.Principal, restaurantIDs []string) ([]domain.RegistrationRequest, error)
	Approve(ctx context.Context, actor *domain.Principal, requestID string) (*domain.Employee, error)
	Reject(ctx context.Context, actor *domain.Principal, requestID string) error
	UpdateEmployeeStatus(ctx context.Context, actor *domain.Principal, employeeID string, status domain.EmployeeStatus) (*domain.Employee, error)
	ListEmployees(ctx context.Context, actor *domain.Principal, restaurantID string) ([]domain.Employee, error)
}

type ManagerService interface {
	Create(ctx context.Context, actor *domain.Principal, firstName, lastName, email string, restaurants []string) (*domain.Manager, error)
	Get(ctx context.Context, actor *domain.Principal, managerID string) (*domain.Manager, error)
	List(ctx context.Context, actor *domain.Principal) ([]domain.Manager, error)
	UpdateRestaurants(ctx context.Context, actor *domain.Principal, managerID string, restaurants []string) (*domain.Manager, error)
	Delete(ctx context.Context, actor *domain.Principal, managerID string) error
}

type AuthService interface {
	// Login verifies the password with the auth provider, resolves the
	// principal through the email index, and returns a signed session token.
	Login(ctx context.Context, email, password string) (*domain.Principal, string, error)
	RequestPasswordReset(ctx context.Context, email string) error
}

type EmployeeService interface {
	Profile(ctx context.Context, actor *domain.Principal) (*EmployeeProfile, error)
	RecordVisit(ctx context.Context, actor *domain.Principal, locationID string) (*domain.Visit, error)
}

type ActivityService interface {
	ListRecent(ctx context.Context, actor *domain.Principal, limit int) ([]domain.ActivityEntry, error)
}

type EmailService interface {
	SendPasswordSetupEmail(ctx context.Context, email, name, link, restaurantName string) error
	SendPasswordResetEmail(ctx context.Context, email, link string) error
	SendStatusNotification(ctx context.Context, email, name, restaurantName, status string) error
}
