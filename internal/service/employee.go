package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Girthywoody/law-loyalty-backend/internal/catalog"
	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

const recentVisitLimit = 10

type employeeService struct {
	empRepo   directory.EmployeeRepository
	visitRepo directory.VisitRepository
	catalog   *catalog.Catalog
}

func NewEmployeeService(
	empRepo directory.EmployeeRepository,
	visitRepo directory.VisitRepository,
	cat *catalog.Catalog,
) EmployeeService {
	return &employeeService{
		empRepo:   empRepo,
		visitRepo: visitRepo,
		catalog:   cat,
	}
}

func (s *employeeService) Profile(ctx context.Context, actor *domain.Principal) (*EmployeeProfile, error) {
	if actor.Role != domain.RoleEmployee {
		return nil, fmt.Errorf("%w: only employees have a benefit profile", domain.ErrUnauthorized)
	}

	emp, err := s.empRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	visits, err := s.visitRepo.ListByEmployee(ctx, emp.ID, recentVisitLimit)
	if err != nil {
		return nil, err
	}

	return &EmployeeProfile{
		Employee:        emp,
		RestaurantName:  s.catalog.FullName(emp.RestaurantID, emp.LocationID),
		DiscountPercent: s.catalog.Discount(emp.RestaurantID),
		RecentVisits:    visits,
	}, nil
}

func (s *employeeService) RecordVisit(ctx context.Context, actor *domain.Principal, locationID string) (*domain.Visit, error) {
	if actor.Role != domain.RoleEmployee {
		return nil, fmt.Errorf("%w: only employees record visits", domain.ErrUnauthorized)
	}

	emp, err := s.empRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if emp.Status != domain.EmployeeStatusActive {
		return nil, fmt.Errorf("%w: terminated employees cannot record visits", domain.ErrUnauthorized)
	}

	// Visits are always against the employee's own restaurant; the location
	// may differ from the home location for multi-location groups.
	if locationID == "" {
		locationID = emp.LocationID
	}
	if locationID != "" && s.catalog.Location(emp.RestaurantID, locationID) == nil {
		return nil, fmt.Errorf("%w: unknown location %q", domain.ErrValidation, locationID)
	}

	visit := &domain.Visit{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		RestaurantID: emp.RestaurantID,
		LocationID:   locationID,
		VisitedAt:    time.Now().UTC(),
	}
	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}
