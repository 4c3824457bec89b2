package config

import (
	"fmt"
	"os"
	"strings"

	"ledgerpro/internal/logger"

	"github.com/joho/godotenv"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type Config struct {
	// Storage
	StorageDriver string
	DataFile      string
	BackupDir     string
	DatabaseURL   string

	// OpenAI
	OpenAIAPIKey string
	OpenAIModel  string

	// HTTP server
	ServerPort     string
	AllowedOrigins string
	JWTSecret      string

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads .env (if present) and the process environment. Variables already
// set in the environment take precedence over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", DriverFile)),
		DataFile:       getEnv("DATA_FILE", "ledgerpro.json"),
		BackupDir:      getEnv("BACKUP_DIR", "backups"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required for the file driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverFile, DriverPostgres, c.StorageDriver)
	}
	return nil
}

// RequireJWTSecret is checked by the HTTP server only; the CLI never issues
// tokens.
func (c *Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required to run the server")
	}
	return nil
}

func (c *Config) LoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
