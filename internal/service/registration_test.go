package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
	"github.com/Girthywoody/law-loyalty-backend/internal/service"
)

func newRegistrationFixture() (*MockRegistrationRepo, *MockEmployeeRepo, *MockEmailIndex, *MockActivityRepo, *MockAuthProvider, *MockEmailService, service.RegistrationService) {
	regRepo := new(MockRegistrationRepo)
	empRepo := new(MockEmployeeRepo)
	index := new(MockEmailIndex)
	actRepo := new(MockActivityRepo)
	provider := new(MockAuthProvider)
	emailSvc := new(MockEmailService)
	svc := service.NewRegistrationService(regRepo, empRepo, index, actRepo, testCatalog(), provider, emailSvc)
	return regRepo, empRepo, index, actRepo, provider, emailSvc, svc
}

func TestRegistrationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Submission", func(t *testing.T) {
		regRepo, _, index, actRepo, _, _, svc := newRegistrationFixture()
		index.On("Lookup", ctx, "alice@example.com").Return(nil, domain.ErrNotFound)
		regRepo.On("Create", ctx, mock.AnythingOfType("*domain.RegistrationRequest")).Return(nil)
		actRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityEntry")).Return(nil)

		req, err := svc.Submit(ctx, service.RegistrationSubmission{
			FirstName:    "Alice",
			LastName:     "Tremblay",
			Email:        "alice@example.com",
			RestaurantID: "overtime-bar",
			LocationID:   "overtime-sudbury",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, req.ID)
		assert.Equal(t, domain.RegistrationStatusPending, req.Status)
		assert.Equal(t, "overtime-bar", req.RestaurantID)
		assert.Equal(t, "overtime-sudbury", req.LocationID)
		assert.False(t, req.CreatedAt.IsZero())
		regRepo.AssertExpectations(t)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		_, _, index, _, _, _, svc := newRegistrationFixture()
		index.On("Lookup", ctx, "taken@example.com").Return(&directory.EmailEntry{
			Email: "taken@example.com", Kind: domain.KindEmployee, RecordID: "emp-9",
		}, nil)

		_, err := svc.Submit(ctx, service.RegistrationSubmission{
			FirstName:    "Bob",
			LastName:     "Roy",
			Email:        "taken@example.com",
			RestaurantID: "montanas",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})

	t.Run("Missing Location For Multi Location Restaurant", func(t *testing.T) {
		_, _, _, _, _, _, svc := newRegistrationFixture()
		_, err := svc.Submit(ctx, service.RegistrationSubmission{
			FirstName:    "Alice",
			LastName:     "Tremblay",
			Email:        "alice@example.com",
			RestaurantID: "overtime-bar",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Location For Single Location Restaurant", func(t *testing.T) {
		_, _, _, _, _, _, svc := newRegistrationFixture()
		_, err := svc.Submit(ctx, service.RegistrationSubmission{
			FirstName:    "Alice",
			LastName:     "Tremblay",
			Email:        "alice@example.com",
			RestaurantID: "montanas",
			LocationID:   "overtime-sudbury",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unknown Restaurant", func(t *testing.T) {
		_, _, _, _, _, _, svc := newRegistrationFixture()
		_, err := svc.Submit(ctx, service.RegistrationSubmission{
			FirstName:    "Alice",
			LastName:     "Tremblay",
			Email:        "alice@example.com",
			RestaurantID: "burger-chain",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Malformed Email", func(t *testing.T) {
		_, _, _, _, _, _, svc := newRegistrationFixture()
		for _, email := range []string{"", "alice", "alice@", "@example.com", "alice@nodots"} {
			_, err := svc.Submit(ctx, service.RegistrationSubmission{
				FirstName:    "Alice",
				LastName:     "Tremblay",
				Email:        email,
				RestaurantID: "montanas",
			})
			assert.ErrorIs(t, err, domain.ErrValidation, "email %q should be rejected", email)
		}
	})
}

func TestRegistrationService_Approve(t *testing.T) {
	ctx := context.Background()
	pending := func() *domain.RegistrationRequest {
		return &domain.RegistrationRequest{
			ID:           "req-1",
			Email:        "alice@example.com",
			FirstName:    "Alice",
			LastName:     "Tremblay",
			RestaurantID: "overtime-bar",
			LocationID:   "overtime-sudbury",
			Status:       domain.RegistrationStatusPending,
			CreatedAt:    time.Now().Add(-time.Hour).UTC(),
		}
	}
	manager := &domain.Principal{ID: "mgr-1", Role: domain.RoleManager, Restaurants: []string{"overtime-bar"}}
	admin := &domain.Principal{ID: "adm-1", Role: domain.RoleAdmin}

	t.Run("Promotes And Issues Credential", func(t *testing.T) {
		regRepo, _, _, actRepo, provider, emailSvc, svc := newRegistrationFixture()
		req := pending()
		regRepo.On("GetByID", ctx, "req-1").Return(req, nil)
		regRepo.On("Promote", ctx, "req-1", mock.AnythingOfType("*domain.Employee")).Return(nil)
		actRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityEntry")).Return(nil)
		provider.On("IssueCredential", ctx, "alice@example.com").Return("uid-1", nil)
		provider.On("PasswordSetupLink", ctx, "alice@example.com").Return("https://reset.example/alice", nil)
		emailSvc.On("SendPasswordSetupEmail", ctx, "alice@example.com", "Alice Tremblay", "https://reset.example/alice", "Overtime Bar - Sudbury").Return(nil)

		emp, err := svc.Approve(ctx, manager, "req-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.EmployeeStatusActive, emp.Status)
		assert.Equal(t, req.CreatedAt, emp.CreatedAt)
		assert.NotNil(t, emp.ApprovedAt)
		assert.NotEqual(t, req.ID, emp.ID, "promoted employee gets a fresh id")
		regRepo.AssertExpectations(t)
		emailSvc.AssertExpectations(t)
	})

	t.Run("Out Of Scope Manager", func(t *testing.T) {
		regRepo, _, _, _, _, _, svc := newRegistrationFixture()
		regRepo.On("GetByID", ctx, "req-1").Return(pending(), nil)
		other := &domain.Principal{ID: "mgr-2", Role: domain.RoleManager, Restaurants: []string{"kelseys"}}

		_, err := svc.Approve(ctx, other, "req-1")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		regRepo.AssertNotCalled(t, "Promote", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Admin Bypasses Scope", func(t *testing.T) {
		regRepo, _, _, actRepo, provider, emailSvc, svc := newRegistrationFixture()
		regRepo.On("GetByID", ctx, "req-1").Return(pending(), nil)
		regRepo.On("Promote", ctx, "req-1", mock.AnythingOfType("*domain.Employee")).Return(nil)
		actRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityEntry")).Return(nil)
		provider.On("IssueCredential", ctx, "alice@example.com").Return("uid-1", nil)
		provider.On("PasswordSetupLink", ctx, "alice@example.com").Return("link", nil)
		emailSvc.On("SendPasswordSetupEmail", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.Approve(ctx, admin, "req-1")
		assert.NoError(t, err)
	})

	t.Run("Already Consumed", func(t *testing.T) {
		regRepo, _, _, _, _, _, svc := newRegistrationFixture()
		regRepo.On("GetByID", ctx, "req-1").Return(pending(), nil)
		regRepo.On("Promote", ctx, "req-1", mock.AnythingOfType("*domain.Employee")).Return(domain.ErrNotFound)

		_, err := svc.Approve(ctx, manager, "req-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Credential Failure Keeps Employee", func(t *testing.T) {
		regRepo, _, _, actRepo, provider, _, svc := newRegistrationFixture()
		regRepo.On("GetByID", ctx, "req-1").Return(pending(), nil)
		regRepo.On("Promote", ctx, "req-1", mock.AnythingOfType("*domain.Employee")).Return(nil)
		actRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityEntry")).Return(nil)
		provider.On("IssueCredential", ctx, "alice@example.com").Return("", assert.AnError)

		emp, err := svc.Approve(ctx, manager, "req-1")
		assert.ErrorIs(t, err, domain.ErrCredentialIssuance)
		assert.NotNil(t, emp, "the committed employee record is still returned")
		assert.Equal(t, domain.EmployeeStatusActive, emp.Status)
	})
}

func TestRegistrationService_Reject(t *testing.T) {
	ctx := context.Background()
	manager := &domain.Principal{ID: "mgr-1", Role: domain.RoleManager, Restaurants: []string{"overtime-bar"}}

	t.Run("Deletes Pending Request", func(t *testing.T) {
		regRepo, _, _, actRepo, _, _, svc := newRegistrationFixture()
		regRepo.On("GetByID", ctx, "req-1").Return(&domain.RegistrationRequest{
			ID: "req-1", Email: "alice@example.com", RestaurantID: "overtime-bar",
		}, nil)
		regRepo.On("Delete", ctx, "req-1").Return(nil)
		actRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityEntry")).Return(nil)

		err := svc.Reject(ctx, manager, "req-1")
		assert.NoError(t, err)
		regRepo.AssertExpectations(t)
	})

	t.Run("Already Consumed", func(t *testing.T) {
		regRepo, _, _, _, _, _, svc := newRegistrationFixture()
		regRepo.On("GetByID", ctx, "req-1").Return(nil, domain.ErrNotFound)

		err := svc.Reject(ctx, manager, "req-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Out Of Scope Manager", func(t *testing.T) {
		regRepo, _, _, _, _, _, svc := newRegistrationFixture()
		regRepo.On("GetByID", ctx, "req-1").Return(&domain.RegistrationRequest{
			ID: "req-1", RestaurantID: "kelseys",
		}, nil)

		err := svc.Reject(ctx, manager, "req-1")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		regRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestRegistrationService_UpdateEmployeeStatus(t *testing.T) {
	ctx := context.Background()
	manager := &domain.Principal{ID: "mgr-1", Role: domain.RoleManager, Restaurants: []string{"montanas"}}
	active := func() *domain.Employee {
		return &domain.Employee{
			ID: "emp-1", Email: "carol@example.com", FirstName: "Carol", LastName: "Lee",
			RestaurantID: "montanas", Status: domain.EmployeeStatusActive,
		}
	}

	t.Run("Terminate", func(t *testing.T) {
		_, empRepo, _, actRepo, _, emailSvc, svc := newRegistrationFixture()
		empRepo.On("GetByID", ctx, "emp-1").Return(active(), nil)
		empRepo.On("Update", ctx, mock.AnythingOfType("*domain.Employee")).Return(nil)
		actRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityEntry")).Return(nil)
		emailSvc.On("SendStatusNotification", ctx, "carol@example.com", "Carol Lee", "Montana's", "terminated").Return(nil)

		emp, err := svc.UpdateEmployeeStatus(ctx, manager, "emp-1", domain.EmployeeStatusTerminated)
		assert.NoError(t, err)
		assert.Equal(t, domain.EmployeeStatusTerminated, emp.Status)
		assert.NotNil(t, emp.TerminatedAt)
		empRepo.AssertExpectations(t)
	})

	t.Run("Reinstate Clears Termination", func(t *testing.T) {
		_, empRepo, _, actRepo, _, emailSvc, svc := newRegistrationFixture()
		now := time.Now().UTC()
		terminated := active()
		terminated.Status = domain.EmployeeStatusTerminated
		terminated.TerminatedAt = &now
		empRepo.On("GetByID", ctx, "emp-1").Return(terminated, nil)
		empRepo.On("Update", ctx, mock.AnythingOfType("*domain.Employee")).Return(nil)
		actRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityEntry")).Return(nil)
		emailSvc.On("SendStatusNotification", ctx, mock.Anything, mock.Anything, mock.Anything, "active").Return(nil)

		emp, err := svc.UpdateEmployeeStatus(ctx, manager, "emp-1", domain.EmployeeStatusActive)
		assert.NoError(t, err)
		assert.Equal(t, domain.EmployeeStatusActive, emp.Status)
		assert.Nil(t, emp.TerminatedAt)
	})

	t.Run("Same Status Is A No-Op", func(t *testing.T) {
		_, empRepo, _, _, _, _, svc := newRegistrationFixture()
		empRepo.On("GetByID", ctx, "emp-1").Return(active(), nil)

		emp, err := svc.UpdateEmployeeStatus(ctx, manager, "emp-1", domain.EmployeeStatusActive)
		assert.NoError(t, err)
		assert.Equal(t, domain.EmployeeStatusActive, emp.Status)
		empRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Target Status", func(t *testing.T) {
		_, empRepo, _, _, _, _, svc := newRegistrationFixture()
		empRepo.On("GetByID", ctx, "emp-1").Return(active(), nil)

		_, err := svc.UpdateEmployeeStatus(ctx, manager, "emp-1", domain.EmployeeStatus("pending"))
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("Notification Failure Does Not Unwind", func(t *testing.T) {
		_, empRepo, _, actRepo, _, emailSvc, svc := newRegistrationFixture()
		empRepo.On("GetByID", ctx, "emp-1").Return(active(), nil)
		empRepo.On("Update", ctx, mock.AnythingOfType("*domain.Employee")).Return(nil)
		actRepo.On("Create", ctx, mock.AnythingOfType("*domain.ActivityEntry")).Return(nil)
		emailSvc.On("SendStatusNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		emp, err := svc.UpdateEmployeeStatus(ctx, manager, "emp-1", domain.EmployeeStatusTerminated)
		assert.NoError(t, err)
		assert.Equal(t, domain.EmployeeStatusTerminated, emp.Status)
	})
}

func TestRegistrationService_ListPending(t *testing.T) {
	ctx := context.Background()

	t.Run("Employee Denied", func(t *testing.T) {
		_, _, _, _, _, _, svc := newRegistrationFixture()
		_, err := svc.ListPending(ctx, &domain.Principal{ID: "emp-1", Role: domain.RoleEmployee}, nil)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Manager Defaults To Own Scope", func(t *testing.T) {
		regRepo, _, _, _, _, _, svc := newRegistrationFixture()
		manager := &domain.Principal{ID: "mgr-1", Role: domain.RoleManager, Restaurants: []string{"montanas", "kelseys"}}
		regRepo.On("ListByRestaurants", ctx, []string{"montanas", "kelseys"}).Return([]domain.RegistrationRequest{}, nil)

		_, err := svc.ListPending(ctx, manager, nil)
		assert.NoError(t, err)
		regRepo.AssertExpectations(t)
	})

	t.Run("Manager Cannot Widen Scope", func(t *testing.T) {
		_, _, _, _, _, _, svc := newRegistrationFixture()
		manager := &domain.Principal{ID: "mgr-1", Role: domain.RoleManager, Restaurants: []string{"montanas"}}

		_, err := svc.ListPending(ctx, manager, []string{"montanas", "kelseys"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Admin Defaults To Whole Catalog", func(t *testing.T) {
		regRepo, _, _, _, _, _, svc := newRegistrationFixture()
		regRepo.On("ListByRestaurants", ctx, []string{"montanas", "kelseys", "overtime-bar"}).Return([]domain.RegistrationRequest{}, nil)

		_, err := svc.ListPending(ctx, &domain.Principal{ID: "adm-1", Role: domain.RoleAdmin}, nil)
		assert.NoError(t, err)
		regRepo.AssertExpectations(t)
	})
}

func TestRegistrationService_ListEmployees(t *testing.T) {
	ctx := context.Background()
	manager := &domain.Principal{ID: "mgr-1", Role: domain.RoleManager, Restaurants: []string{"montanas"}}

	t.Run("Within Scope", func(t *testing.T) {
		_, empRepo, _, _, _, _, svc := newRegistrationFixture()
		empRepo.On("ListByRestaurant", ctx, "montanas").Return([]domain.Employee{{ID: "emp-1"}}, nil)

		emps, err := svc.ListEmployees(ctx, manager, "montanas")
		assert.NoError(t, err)
		assert.Len(t, emps, 1)
	})

	t.Run("Out Of Scope", func(t *testing.T) {
		_, _, _, _, _, _, svc := newRegistrationFixture()
		_, err := svc.ListEmployees(ctx, manager, "kelseys")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Unknown Restaurant", func(t *testing.T) {
		_, _, _, _, _, _, svc := newRegistrationFixture()
		admin := &domain.Principal{ID: "adm-1", Role: domain.RoleAdmin}
		_, err := svc.ListEmployees(ctx, admin, "burger-chain")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
