package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
	"github.com/Girthywoody/law-loyalty-backend/internal/service"
)

func newEmployeeFixture() (*MockEmployeeRepo, *MockVisitRepo, service.EmployeeService) {
	empRepo := new(MockEmployeeRepo)
	visitRepo := new(MockVisitRepo)
	svc := service.NewEmployeeService(empRepo, visitRepo, testCatalog())
	return empRepo, visitRepo, svc
}

func TestEmployeeService_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("Joins Catalog Data", func(t *testing.T) {
		empRepo, visitRepo, svc := newEmployeeFixture()
		empRepo.On("GetByID", ctx, "emp-1").Return(&domain.Employee{
			ID: "emp-1", Email: "alice@example.com",
			RestaurantID: "overtime-bar", LocationID: "overtime-sudbury",
			Status: domain.EmployeeStatusActive,
		}, nil)
		visitRepo.On("ListByEmployee", ctx, "emp-1", 10).Return([]domain.Visit{{ID: "v-1"}}, nil)

		profile, err := svc.Profile(ctx, &domain.Principal{ID: "emp-1", Role: domain.RoleEmployee})
		assert.NoError(t, err)
		assert.Equal(t, "Overtime Bar - Sudbury", profile.RestaurantName)
		assert.Equal(t, 20, profile.DiscountPercent)
		assert.Len(t, profile.RecentVisits, 1)
	})

	t.Run("Manager Has No Profile", func(t *testing.T) {
		_, _, svc := newEmployeeFixture()
		_, err := svc.Profile(ctx, &domain.Principal{ID: "mgr-1", Role: domain.RoleManager})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestEmployeeService_RecordVisit(t *testing.T) {
	ctx := context.Background()
	actor := &domain.Principal{ID: "emp-1", Role: domain.RoleEmployee}
	activeEmp := func() *domain.Employee {
		return &domain.Employee{
			ID: "emp-1", RestaurantID: "overtime-bar", LocationID: "overtime-sudbury",
			Status: domain.EmployeeStatusActive,
		}
	}

	t.Run("Defaults To Home Location", func(t *testing.T) {
		empRepo, visitRepo, svc := newEmployeeFixture()
		empRepo.On("GetByID", ctx, "emp-1").Return(activeEmp(), nil)
		visitRepo.On("Create", ctx, mock.AnythingOfType("*domain.Visit")).Return(nil)

		visit, err := svc.RecordVisit(ctx, actor, "")
		assert.NoError(t, err)
		assert.Equal(t, "overtime-bar", visit.RestaurantID)
		assert.Equal(t, "overtime-sudbury", visit.LocationID)
		assert.False(t, visit.VisitedAt.IsZero())
	})

	t.Run("Sibling Location Allowed", func(t *testing.T) {
		empRepo, visitRepo, svc := newEmployeeFixture()
		empRepo.On("GetByID", ctx, "emp-1").Return(activeEmp(), nil)
		visitRepo.On("Create", ctx, mock.AnythingOfType("*domain.Visit")).Return(nil)

		visit, err := svc.RecordVisit(ctx, actor, "overtime-val-caron")
		assert.NoError(t, err)
		assert.Equal(t, "overtime-val-caron", visit.LocationID)
	})

	t.Run("Unknown Location Rejected", func(t *testing.T) {
		empRepo, _, svc := newEmployeeFixture()
		empRepo.On("GetByID", ctx, "emp-1").Return(activeEmp(), nil)

		_, err := svc.RecordVisit(ctx, actor, "kelseys-downtown")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Terminated Employee Denied", func(t *testing.T) {
		empRepo, visitRepo, svc := newEmployeeFixture()
		emp := activeEmp()
		emp.Status = domain.EmployeeStatusTerminated
		empRepo.On("GetByID", ctx, "emp-1").Return(emp, nil)

		_, err := svc.RecordVisit(ctx, actor, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		visitRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Manager Cannot Record Visits", func(t *testing.T) {
		_, _, svc := newEmployeeFixture()
		_, err := svc.RecordVisit(ctx, &domain.Principal{ID: "mgr-1", Role: domain.RoleManager}, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestActivityService_ListRecent(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin Reads Log", func(t *testing.T) {
		actRepo := new(MockActivityRepo)
		svc := service.NewActivityService(actRepo)
		actRepo.On("ListRecent", ctx, 50).Return([]domain.ActivityEntry{{ID: "a-1"}}, nil)

		entries, err := svc.ListRecent(ctx, &domain.Principal{ID: "adm-1", Role: domain.RoleAdmin}, 0)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("Manager Denied", func(t *testing.T) {
		actRepo := new(MockActivityRepo)
		svc := service.NewActivityService(actRepo)

		_, err := svc.ListRecent(ctx, &domain.Principal{ID: "mgr-1", Role: domain.RoleManager}, 10)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
