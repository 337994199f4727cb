package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

type activityRepository struct {
	client *firestore.Client
}

func (r *activityRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	_, err := r.client.Collection(collActivity).Doc(entry.ID).Create(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to create activity entry: %w", err)
	}
	return nil
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	iter := r.client.Collection(collActivity).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var entries []domain.ActivityEntry
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list activity entries: %w", err)
		}
		var entry domain.ActivityEntry
		if err := snap.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode activity entry: %w", err)
		}
		entry.ID = snap.Ref.ID
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *activityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	iter := r.client.Collection(collActivity).
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
			return deleted, fmt.Errorf("failed to scan old activity entries: %w", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return deleted, fmt.Errorf("failed to delete activity entry: %w", err)
		}
		deleted++
	}
	return deleted, nil
}
