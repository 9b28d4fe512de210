package common

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/tabula-extract/constants"
)

// Config holds all application configuration
type Config struct {
	Tabula   TabulaConfig
	Database DatabaseConfig
	Server   ServerConfig
	LogLevel string
}

// TabulaConfig holds engine-related configuration
type TabulaConfig struct {
	Interpreter       string
	ArtifactPath      string
	ArtifactDir       string
	Encoding          string
	Timeout           time.Duration
	ReplicateFirstRow bool
}

// DatabaseConfig holds job-tracking database configuration.
// An empty DSN disables job tracking.
type DatabaseConfig struct {
	DSN         string
	MaxConns    int
	DialTimeout time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	GRPCAddr string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Tabula: TabulaConfig{
			Interpreter:       getEnv("TABULA_JAVA", constants.DefaultInterpreter),
			ArtifactPath:      getEnv("TABULA_JAR", ""),
			ArtifactDir:       getEnv("TABULA_ARTIFACT_DIR", filepath.Join(os.TempDir(), constants.ArtifactDirName)),
			Encoding:          getEnv("TABULA_ENCODING", constants.DefaultEncoding),
			Timeout:           getEnvAsDuration("TABULA_TIMEOUT", 0),
			ReplicateFirstRow: getEnvAsBool("TABULA_REPLICATE_FIRST_ROW", false),
		},
		Database: DatabaseConfig{
			DSN:         getEnv("DB_URL", ""),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 4),
			DialTimeout: getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			GRPCAddr: getEnv("GRPC_ADDR", ":8080"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
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
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
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
	if strings.TrimSpace(c.Tabula.Interpreter) == "" {
		return NewAppError("CONFIG_ERROR", "TABULA_JAVA must not be empty", ErrInvalidInput)
	}
	if c.Tabula.Timeout < 0 {
		return NewAppError("CONFIG_ERROR", "TABULA_TIMEOUT must not be negative", ErrInvalidInput)
	}
	if c.Server.GRPCAddr == "" {
		return NewAppError("CONFIG_ERROR", "GRPC_ADDR is required", ErrInvalidInput)
	}
	return nil
}
