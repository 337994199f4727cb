package jobs

import (
	"context"
	"time"

	"github.com/Girthywoody/law-loyalty-backend/internal/config"
	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	"github.com/Girthywoody/law-loyalty-backend/internal/logger"
)

// JobRunner coordinates all scheduled directory hygiene jobs
type JobRunner struct {
	store  *directory.Store
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *directory.Store, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:  store,
		config: cfg,
	}
}

// Config exposes the runner's configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// ExpirePendingRegistrations deletes registrations that have sat pending
// longer than the configured retention window.
func (jr *JobRunner) ExpirePendingRegistrations() {
	jr.runWithRecovery("expire-pending-registrations", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Retention.PendingRegistrationDays)

		deleted, err := jr.store.Registrations.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire pending registrations", "error", err)
			return
		}
		logger.Info("Expired stale pending registrations", "deleted", deleted, "cutoff", cutoff)
	})
}

// PruneActivityLogs removes audit entries past the retention window.
func (jr *JobRunner) PruneActivityLogs() {
	jr.runWithRecovery("prune-activity-logs", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Retention.ActivityLogDays)

		deleted, err := jr.store.Activity.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to prune activity logs", "error", err)
			return
		}
		logger.Info("Pruned activity logs", "deleted", deleted, "cutoff", cutoff)
	})
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.ExpirePendingRegistrations()
	jr.PruneActivityLogs()
}
