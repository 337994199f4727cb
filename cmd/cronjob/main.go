package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/Girthywoody/law-loyalty-backend/internal/config"
	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	firestoredir "github.com/Girthywoody/law-loyalty-backend/internal/directory/firestore"
	memorydir "github.com/Girthywoody/law-loyalty-backend/internal/directory/memory"
	"github.com/Girthywoody/law-loyalty-backend/internal/jobs"
	"github.com/Girthywoody/law-loyalty-backend/internal/logger"
	"github.com/Girthywoody/law-loyalty-backend/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expire-pending-registrations', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Loyalty Cronjob Runner...", "log_level", cfg.Log.Level)

	ctx := context.Background()

	// Initialize directory store
	var store *directory.Store
	if cfg.Directory.Type == "memory" {
		logger.Info("Using in-memory directory (no data is persisted)")
		store = memorydir.NewStore(memorydir.NewDirectory())
	} else {
		var opts []option.ClientOption
		if cfg.Firebase.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
		}
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
		if err != nil {
			logger.Error("Failed to initialize Firebase app", "error", err)
			log.Fatalf("Failed to initialize Firebase app: %v", err)
		}

		client, err := app.Firestore(ctx)
		if err != nil {
			logger.Error("Failed to connect to Firestore", "error", err)
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer client.Close()
		logger.Info("Firestore connection established")

		store = firestoredir.NewStore(client)
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "expire-pending-registrations":
		jobRunner.ExpirePendingRegistrations()
	case "prune-activity-logs":
		jobRunner.PruneActivityLogs()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - expire-pending-registrations\n")
		fmt.Printf("  - prune-activity-logs\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
