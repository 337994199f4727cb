package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

type managerRepository struct {
	client *firestore.Client
}

func (r *managerRepository) Create(ctx context.Context, mgr *domain.Manager) error {
	mgrRef := r.client.Collection(collManagers).Doc(mgr.ID)
	idxRef := r.client.Collection(collIndex).Doc(indexKey(mgr.Email))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(idxRef); err == nil {
			return domain.ErrDuplicateEmail
		} else if !isNotFound(err) {
			return err
		}
		if err := tx.Create(mgrRef, mgr); err != nil {
			return err
		}
		return tx.Create(idxRef, &directory.EmailEntry{
			Email:    indexKey(mgr.Email),
			Kind:     domain.KindManager,
			RecordID: mgr.ID,
		})
	})
	if err != nil {
		if err == domain.ErrDuplicateEmail {
			return err
		}
		return fmt.Errorf("failed to create manager: %w", err)
	}
	return nil
}

func (r *managerRepository) GetByID(ctx context.Context, id string) (*domain.Manager, error) {
	snap, err := r.client.Collection(collManagers).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	var mgr domain.Manager
	if err := snap.DataTo(&mgr); err != nil {
		return nil, fmt.Errorf("failed to decode manager: %w", err)
	}
	mgr.ID = snap.Ref.ID
	return &mgr, nil
}

func (r *managerRepository) List(ctx context.Context) ([]domain.Manager, error) {
	iter := r.client.Collection(collManagers).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var mgrs []domain.Manager
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list managers: %w", err)
		}
		var mgr domain.Manager
		if err := snap.DataTo(&mgr); err != nil {
			return nil, fmt.Errorf("failed to decode manager: %w", err)
		}
		mgr.ID = snap.Ref.ID
		mgrs = append(mgrs, mgr)
	}
	return mgrs, nil
}

func (r *managerRepository) Update(ctx context.Context, mgr *domain.Manager) error {
	_, err := r.client.Collection(collManagers).Doc(mgr.ID).Set(ctx, mgr)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update manager: %w", err)
	}
	return nil
}

func (r *managerRepository) Delete(ctx context.Context, id string) error {
	mgrRef := r.client.Collection(collManagers).Doc(id)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(mgrRef)
		if err != nil {
			if isNotFound(err) {
				return domain.ErrNotFound
			}
			return err
		}
		var mgr domain.Manager
		if err := snap.DataTo(&mgr); err != nil {
			return err
		}
		if err := tx.Delete(r.client.Collection(collIndex).Doc(indexKey(mgr.Email))); err != nil {
			return err
		}
		return tx.Delete(mgrRef)
	})
	if err != nil {
		if err == domain.ErrNotFound {
			return err
		}
		return fmt.Errorf("failed to delete manager: %w", err)
	}
	return nil
}
