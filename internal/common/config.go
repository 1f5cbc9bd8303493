package common

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Engine   EngineConfig
	Batch    BatchConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// EngineConfig holds the constants stamped on every output record
type EngineConfig struct {
	District    string
	Carrier     string
	MRN         string
	MSN         string
	Currency    string
	CatalogPath string
	DedupLines  bool
}

// BatchConfig controls document fan-out
type BatchConfig struct {
	Workers    int
	DocTimeout time.Duration
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	SQLitePath      string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
	WatchDir string
}

// LoadConfig loads configuration from an optional .env file and environment variables.
// Variables already set in the environment take precedence over the file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, NewAppError(CodeConfig, "load .env", err)
	}
	return &Config{
		Engine: EngineConfig{
			District:    strings.ToUpper(getEnv("ECUAPASS_DISTRICT", "TULCAN")),
			Carrier:     getEnv("ECUAPASS_CARRIER", "N.T.A."),
			MRN:         getEnv("ECUAPASS_MRN", "CEC202340350941"),
			MSN:         getEnv("ECUAPASS_MSN", "0001"),
			Currency:    getEnv("ECUAPASS_CURRENCY", "USD"),
			CatalogPath: getEnv("ECUAPASS_CATALOG", ""),
			DedupLines:  getEnvAsBool("ECUAPASS_DEDUP_LINES", false),
		},
		Batch: BatchConfig{
			Workers:    getEnvAsInt("ECUAPASS_WORKERS", 4),
			DocTimeout: getEnvAsDuration("ECUAPASS_DOC_TIMEOUT", 2*time.Minute),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			SQLitePath:      getEnv("SQLITE_PATH", "ecuapass.db"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":50051"),
			WatchDir: getEnv("WATCH_DIR", ""),
		},
	}, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("ECUAPASS_DISTRICT", c.Engine.District, Required).
		Field("ECUAPASS_CARRIER", c.Engine.Carrier, Required).
		Field("ECUAPASS_CURRENCY", c.Engine.Currency, CurrencyCode).
		Field("ECUAPASS_WORKERS", c.Batch.Workers, Positive).
		Field("ECUAPASS_DOC_TIMEOUT", c.Batch.DocTimeout, Positive)
	if c.Database.DSN == "" {
		v.Field("SQLITE_PATH", c.Database.SQLitePath, Required)
	}
	return v.Err(CodeConfig)
}
