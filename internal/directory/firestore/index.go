package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

type emailIndex struct {
	client *firestore.Client
}

func (i *emailIndex) Lookup(ctx context.Context, email string) (*directory.EmailEntry, error) {
	snap, err := i.client.Collection(collIndex).Doc(indexKey(email)).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up email index: %w", err)
	}
	var entry directory.EmailEntry
	if err := snap.DataTo(&entry); err != nil {
		return nil, fmt.Errorf("failed to decode email index entry: %w", err)
	}
	return &entry, nil
}
