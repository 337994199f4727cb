package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

type visitRepository struct {
	client *firestore.Client
}

func (r *visitRepository) Create(ctx context.Context, visit *domain.Visit) error {
	_, err := r.client.Collection(collVisits).Doc(visit.ID).Create(ctx, visit)
	if err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

func (r *visitRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]domain.Visit, error) {
	iter := r.client.Collection(collVisits).
		Where("employeeId", "==", employeeID).
		OrderBy("visitedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var visits []domain.Visit
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list visits: %w", err)
		}
		var visit domain.Visit
		if err := snap.DataTo(&visit); err != nil {
			return nil, fmt.Errorf("failed to decode visit: %w", err)
		}
		visit.ID = snap.Ref.ID
		visits = append(visits, visit)
	}
	return visits, nil
}
