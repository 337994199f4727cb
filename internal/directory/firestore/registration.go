package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

type registrationRepository struct {
	client *firestore.Client
}

func (r *registrationRepository) Create(ctx context.Context, req *domain.RegistrationRequest) error {
	regRef := r.client.Collection(collRegistrations).Doc(req.ID)
	idxRef := r.client.Collection(collIndex).Doc(indexKey(req.Email))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(idxRef); err == nil {
			return domain.ErrDuplicateEmail
		} else if !isNotFound(err) {
			return err
		}
		if err := tx.Create(regRef, req); err != nil {
			return err
		}
		return tx.Create(idxRef, &directory.EmailEntry{
			Email:    indexKey(req.Email),
			Kind:     domain.KindRegistration,
			RecordID: req.ID,
		})
	})
	if err != nil {
		if err == domain.ErrDuplicateEmail {
			return err
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.RegistrationRequest, error) {
	snap, err := r.client.Collection(collRegistrations).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	var req domain.RegistrationRequest
	if err := snap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("failed to decode registration: %w", err)
	}
	req.ID = snap.Ref.ID
	return &req, nil
}

func (r *registrationRepository) ListByRestaurants(ctx context.Context, restaurantIDs []string) ([]domain.RegistrationRequest, error) {
	if len(restaurantIDs) == 0 {
		return nil, nil
	}

	// Firestore caps "in" filters at 30 values; manager scopes are far
	// smaller, so a single query suffices.
	iter := r.client.Collection(collRegistrations).
		Where("restaurantId", "in", restaurantIDs).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var reqs []domain.RegistrationRequest
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list registrations: %w", err)
		}
		var req domain.RegistrationRequest
		if err := snap.DataTo(&req); err != nil {
			return nil, fmt.Errorf("failed to decode registration: %w", err)
		}
		req.ID = snap.Ref.ID
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (r *registrationRepository) Promote(ctx context.Context, requestID string, emp *domain.Employee) error {
	regRef := r.client.Collection(collRegistrations).Doc(requestID)
	empRef := r.client.Collection(collEmployees).Doc(emp.ID)
	idxRef := r.client.Collection(collIndex).Doc(indexKey(emp.Email))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(regRef); err != nil {
			if isNotFound(err) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Create(empRef, emp); err != nil {
			return err
		}
		if err := tx.Set(idxRef, &directory.EmailEntry{
			Email:    indexKey(emp.Email),
			Kind:     domain.KindEmployee,
			RecordID: emp.ID,
		}); err != nil {
			return err
		}
		return tx.Delete(regRef)
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to promote registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	regRef := r.client.Collection(collRegistrations).Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(regRef)
		if err != nil {
			if isNotFound(err) {
				return domain.ErrNotFound
			}
			return err
		}
		var req domain.RegistrationRequest
		if err := snap.DataTo(&req); err != nil {
			return err
		}
		if err := tx.Delete(r.client.Collection(collIndex).Doc(indexKey(req.Email))); err != nil {
			return err
		}
		return tx.Delete(regRef)
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	iter := r.client.Collection(collRegistrations).
		Where("createdAt", "<", cutoff).
		Documents(ctx)
	defer iter.Stop()

	deleted := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, fmt.Errorf("failed to scan stale registrations: %w", err)
		}
		if err := r.Delete(ctx, snap.Ref.ID); err != nil {
			if err == domain.ErrNotFound {
				continue
			}
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
