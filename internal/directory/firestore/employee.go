package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

type employeeRepository struct {
	client *firestore.Client
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	snap, err := r.client.Collection(collEmployees).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	var emp domain.Employee
	if err := snap.DataTo(&emp); err != nil {
		return nil, fmt.Errorf("failed to decode employee: %w", err)
	}
	emp.ID = snap.Ref.ID
	return &emp, nil
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	iter := r.client.Collection(collEmployees).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee by email: %w", err)
	}
	var emp domain.Employee
	if err := snap.DataTo(&emp); err != nil {
		return nil, fmt.Errorf("failed to decode employee: %w", err)
	}
	emp.ID = snap.Ref.ID
	return &emp, nil
}

func (r *employeeRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Employee, error) {
	iter := r.client.Collection(collEmployees).
		Where("restaurantId", "==", restaurantID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var emps []domain.Employee
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
		var emp domain.Employee
		if err := snap.DataTo(&emp); err != nil {
			return nil, fmt.Errorf("failed to decode employee: %w", err)
		}
		emp.ID = snap.Ref.ID
		emps = append(emps, emp)
	}
	return emps, nil
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	_, err := r.client.Collection(collEmployees).Doc(emp.ID).Set(ctx, emp)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}
