package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Girthywoody/law-loyalty-backend/internal/catalog"
	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
	"github.com/Girthywoody/law-loyalty-backend/internal/security"
)

// MockRegistrationRepo
type MockRegistrationRepo struct {
	mock.Mock
}

func (m *MockRegistrationRepo) Create(ctx context.Context, req *domain.RegistrationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.RegistrationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistrationRequest), args.Error(1)
}
func (m *MockRegistrationRepo) ListByRestaurants(ctx context.Context, restaurantIDs []string) ([]domain.RegistrationRequest, error) {
	args := m.Called(ctx, restaurantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegistrationRequest), args.Error(1)
}
func (m *MockRegistrationRepo) Promote(ctx context.Context, requestID string, emp *domain.Employee) error {
	args := m.Called(ctx, requestID, emp)
	return args.Error(0)
}
func (m *MockRegistrationRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRegistrationRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

// MockEmployeeRepo
type MockEmployeeRepo struct {
	mock.Mock
}

func (m *MockEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}
func (m *MockEmployeeRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Employee, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}
func (m *MockEmployeeRepo) Update(ctx context.Context, emp *domain.Employee) error {
	args := m.Called(ctx, emp)
	return args.Error(0)
}

// MockManagerRepo
type MockManagerRepo struct {
	mock.Mock
}

func (m *MockManagerRepo) Create(ctx context.Context, mgr *domain.Manager) error {
	args := m.Called(ctx, mgr)
	return args.Error(0)
}
func (m *MockManagerRepo) GetByID(ctx context.Context, id string) (*domain.Manager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Manager), args.Error(1)
}
func (m *MockManagerRepo) List(ctx context.Context) ([]domain.Manager, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Manager), args.Error(1)
}
func (m *MockManagerRepo) Update(ctx context.Context, mgr *domain.Manager) error {
	args := m.Called(ctx, mgr)
	return args.Error(0)
}
func (m *MockManagerRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailIndex
type MockEmailIndex struct {
	mock.Mock
}

func (m *MockEmailIndex) Lookup(ctx context.Context, email string) (*directory.EmailEntry, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.EmailEntry), args.Error(1)
}

// MockActivityRepo
type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockActivityRepo) ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityEntry), args.Error(1)
}
func (m *MockActivityRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

// MockVisitRepo
type MockVisitRepo struct {
	mock.Mock
}

func (m *MockVisitRepo) Create(ctx context.Context, visit *domain.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}
func (m *MockVisitRepo) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]domain.Visit, error) {
	args := m.Called(ctx, employeeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Visit), args.Error(1)
}

// MockAuthProvider
type MockAuthProvider struct {
	mock.Mock
}

func (m *MockAuthProvider) IssueCredential(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
func (m *MockAuthProvider) PasswordSetupLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
func (m *MockAuthProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
func (m *MockAuthProvider) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPasswordSetupEmail(ctx context.Context, email, name, link, restaurantName string) error {
	args := m.Called(ctx, email, name, link, restaurantName)
	return args.Error(0)
}
func (m *MockEmailService) SendPasswordResetEmail(ctx context.Context, email, link string) error {
	args := m.Called(ctx, email, link)
	return args.Error(0)
}
func (m *MockEmailService) SendStatusNotification(ctx context.Context, email, name, restaurantName, status string) error {
	args := m.Called(ctx, email, name, restaurantName, status)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateSessionToken(p *domain.Principal) (string, error) {
	args := m.Called(p)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.SessionClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.SessionClaims), args.Error(1)
}

// testCatalog builds the catalog fixture used across the service tests.
func testCatalog() *catalog.Catalog {
	cat, err := catalog.New([]domain.Restaurant{
		{ID: "montanas", Name: "Montana's", DiscountPercent: 20},
		{ID: "kelseys", Name: "Kelsey's", DiscountPercent: 20},
		{
			ID: "overtime-bar", Name: "Overtime Bar", DiscountPercent: 20,
			Locations: []domain.Location{
				{ID: "overtime-sudbury", Name: "Sudbury"},
				{ID: "overtime-val-caron", Name: "Val Caron"},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return cat
}
