package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends supported by STORE_BACKEND.
const (
	StoreMemory  = "memory"
	StoreMongoDB = "mongodb"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Gemini   GeminiConfig
	Sheets   SheetsConfig
	Snapshot SnapshotConfig
	Recall   RecallConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StoreConfig selects and configures the batch system of record.
type StoreConfig struct {
	Backend string
	URI     string
	DBName  string
}

// GeminiConfig holds credentials and options for the text-generation API.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// SheetsConfig contains configuration for the compliance snapshot export.
// The export is disabled when SpreadsheetID is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// SnapshotConfig holds scheduler-related settings.
type SnapshotConfig struct {
	CronSchedule string
	Timezone     string
}

// RecallConfig controls recall workflow behavior.
type RecallConfig struct {
	// RollbackOnFailure keeps the workflow re-confirmable when the status
	// update fails; when false the orchestrator accepts eventual consistency
	// and completes anyway.
	RollbackOnFailure bool
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	rollback, err := parseBool(getenvWithDefault("RECALL_ROLLBACK_ON_FAILURE", "true"))
	if err != nil {
		return nil, fmt.Errorf("RECALL_ROLLBACK_ON_FAILURE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Store: StoreConfig{
			Backend: getenvWithDefault("STORE_BACKEND", StoreMemory),
			URI:     os.Getenv("MONGODB_URI"),
			DBName:  getenvWithDefault("MONGODB_DB_NAME", "ayurtrace"),
		},
		Gemini: GeminiConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getenvWithDefault("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: getenvWithDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
		Recall: RecallConfig{
			RollbackOnFailure: rollback,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongoDB:
		if c.Store.URI == "" {
			return errors.New("MONGODB_URI must be provided when STORE_BACKEND=mongodb")
		}
		if c.Store.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided when STORE_BACKEND=mongodb")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q", StoreMemory, StoreMongoDB)
	}

	if c.Gemini.APIKey == "" {
		return errors.New("GEMINI_API_KEY must be provided")
	}
	if c.Gemini.Model == "" {
		return errors.New("GEMINI_MODEL must not be empty")
	}
	if c.Gemini.BaseURL == "" {
		return errors.New("GEMINI_BASE_URL must not be empty")
	}

	if c.Sheets.SpreadsheetID != "" && c.Sheets.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when GOOGLE_SHEET_DATABASE_ID is set")
	}

	if c.Snapshot.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}
	if c.Snapshot.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

func parseBool(value string) (bool, error) {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", value)
	}
	return parsed, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
