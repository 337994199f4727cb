package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Girthywoody/law-loyalty-backend/internal/config"
	"github.com/Girthywoody/law-loyalty-backend/internal/directory/memory"
	"github.com/Girthywoody/law-loyalty-backend/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Retention: config.RetentionConfig{
			PendingRegistrationDays: 30,
			ActivityLogDays:         30,
		},
	}
}

func TestExpirePendingRegistrations(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.NewDirectory())

	stale := &domain.RegistrationRequest{
		ID: "req-stale", Email: "stale@example.com", RestaurantID: "montanas",
		Status: domain.RegistrationStatusPending, CreatedAt: time.Now().UTC().AddDate(0, 0, -45),
	}
	fresh := &domain.RegistrationRequest{
		ID: "req-fresh", Email: "fresh@example.com", RestaurantID: "montanas",
		Status: domain.RegistrationStatusPending, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Registrations.Create(ctx, stale))
	require.NoError(t, store.Registrations.Create(ctx, fresh))

	runner := NewJobRunner(store, testConfig())
	runner.ExpirePendingRegistrations()

	_, err := store.Registrations.GetByID(ctx, "req-stale")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Registrations.GetByID(ctx, "req-fresh")
	assert.NoError(t, err)
}

func TestPruneActivityLogs(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.NewDirectory())

	require.NoError(t, store.Activity.Create(ctx, &domain.ActivityEntry{
		ID: "old", Type: domain.ActivityRegistrationSubmitted, SubjectID: "x",
		CreatedAt: time.Now().UTC().AddDate(0, 0, -60),
	}))
	require.NoError(t, store.Activity.Create(ctx, &domain.ActivityEntry{
		ID: "recent", Type: domain.ActivityRegistrationApproved, SubjectID: "x",
		CreatedAt: time.Now().UTC(),
	}))

	runner := NewJobRunner(store, testConfig())
	runner.PruneActivityLogs()

	entries, err := store.Activity.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "recent", entries[0].ID)
}

func TestRunWithRecovery(t *testing.T) {
	runner := NewJobRunner(memory.NewStore(memory.NewDirectory()), testConfig())

	assert.NotPanics(t, func() {
		runner.runWithRecovery("panicking-job", func() {
			panic("boom")
		})
	})
}
