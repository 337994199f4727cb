package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	Directory DirectoryConfig `yaml:"directory"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	JWT       JWTConfig       `yaml:"jwt"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Retention RetentionConfig `yaml:"retention"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// FirebaseConfig contains Firebase project settings
type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	WebAPIKey       string `yaml:"web_api_key"`
}

// DirectoryConfig selects the identity directory and auth backend
type DirectoryConfig struct {
	Type string `yaml:"type"` // "firestore" or "memory"
}

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// JWTConfig contains session token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// CatalogConfig points at the static restaurant catalog file
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// RetentionConfig contains directory hygiene windows
type RetentionConfig struct {
	PendingRegistrationDays int `yaml:"pending_registration_days"`
	ActivityLogDays         int `yaml:"activity_log_days"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ExpirePendingRegistrations string `yaml:"expire_pending_registrations"`
	PruneActivityLogs          string `yaml:"prune_activity_logs"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Firebase
	if val := os.Getenv("FIREBASE_PROJECT_ID"); val != "" {
		c.Firebase.ProjectID = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Firebase.CredentialsFile = val
	}
	if val := os.Getenv("FIREBASE_WEB_API_KEY"); val != "" {
		c.Firebase.WebAPIKey = val
	}

	// Directory
	if val := os.Getenv("DIRECTORY_TYPE"); val != "" {
		c.Directory.Type = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("SENDGRID_FROM_EMAIL"); val != "" {
		c.SendGrid.FromEmail = val
	}
	if val := os.Getenv("SENDGRID_FROM_NAME"); val != "" {
		c.SendGrid.FromName = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Catalog
	if val := os.Getenv("CATALOG_PATH"); val != "" {
		c.Catalog.Path = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Directory validation
	if c.Directory.Type == "" {
		c.Directory.Type = "firestore"
	}
	if c.Directory.Type != "firestore" && c.Directory.Type != "memory" {
		return fmt.Errorf("unknown directory type: %s", c.Directory.Type)
	}
	if c.Directory.Type == "firestore" {
		if c.Firebase.ProjectID == "" {
			return fmt.Errorf("firebase project id is required")
		}
		if c.Firebase.WebAPIKey == "" {
			return fmt.Errorf("firebase web api key is required")
		}
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry <= 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	// Catalog validation
	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}

	// Retention defaults
	if c.Retention.PendingRegistrationDays == 0 {
		c.Retention.PendingRegistrationDays = 30
	}
	if c.Retention.ActivityLogDays == 0 {
		c.Retention.ActivityLogDays = 30
	}

	// Scheduler defaults
	if c.Scheduler.ExpirePendingRegistrations == "" {
		c.Scheduler.ExpirePendingRegistrations = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.PruneActivityLogs == "" {
		c.Scheduler.PruneActivityLogs = "0 30 2 * * *" // 2:30 AM UTC
	}

	return nil
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
