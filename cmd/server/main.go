package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	httpapi "github.com/Girthywoody/law-loyalty-backend/internal/api/http"
	"github.com/Girthywoody/law-loyalty-backend/internal/auth"
	firebaseauth "github.com/Girthywoody/law-loyalty-backend/internal/auth/firebase"
	memoryauth "github.com/Girthywoody/law-loyalty-backend/internal/auth/memory"
	"github.com/Girthywoody/law-loyalty-backend/internal/catalog"
	"github.com/Girthywoody/law-loyalty-backend/internal/config"
	"github.com/Girthywoody/law-loyalty-backend/internal/directory"
	firestoredir "github.com/Girthywoody/law-loyalty-backend/internal/directory/firestore"
	memorydir "github.com/Girthywoody/law-loyalty-backend/internal/directory/memory"
	"github.com/Girthywoody/law-loyalty-backend/internal/logger"
	"github.com/Girthywoody/law-loyalty-backend/internal/security"
	"github.com/Girthywoody/law-loyalty-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting JLaw Loyalty Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Directory configuration", "type", cfg.Directory.Type, "project_id", cfg.Firebase.ProjectID)

	ctx := context.Background()

	// Load the restaurant catalog
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Error("Failed to load restaurant catalog", "error", err, "path", cfg.Catalog.Path)
		log.Fatalf("Failed to load restaurant catalog: %v", err)
	}
	logger.Info("Restaurant catalog loaded", "restaurants", len(cat.Restaurants()))

	// Initialize directory store and auth provider
	var store *directory.Store
	var authProvider auth.Provider
	switch cfg.Directory.Type {
	case "memory":
		logger.Info("Using in-memory directory (no data is persisted)")
		store = memorydir.NewStore(memorydir.NewDirectory())
		authProvider = memoryauth.NewProvider()
	default:
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

		authProvider, err = firebaseauth.NewProvider(ctx, app, cfg.Firebase.WebAPIKey)
		if err != nil {
			logger.Error("Failed to initialize Firebase auth provider", "error", err)
			log.Fatalf("Failed to initialize Firebase auth provider: %v", err)
		}
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Initialize Services
	regSvc := service.NewRegistrationService(
		store.Registrations,
		store.Employees,
		store.Index,
		store.Activity,
		cat,
		authProvider,
		emailSvc,
	)
	mgrSvc := service.NewManagerService(
		store.Managers,
		store.Activity,
		cat,
		authProvider,
		emailSvc,
	)
	authSvc := service.NewAuthService(
		store.Index,
		store.Employees,
		store.Managers,
		authProvider,
		tokenManager,
		emailSvc,
	)
	empSvc := service.NewEmployeeService(store.Employees, store.Visits, cat)
	actSvc := service.NewActivityService(store.Activity)

	// Initialize HTTP handlers and router
	handlers := httpapi.NewHandlers(authSvc, regSvc, mgrSvc, empSvc, actSvc, cat)
	router := httpapi.NewRouter(handlers, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
