package config

import (
	"os"
	"strconv"
	"time"

	"wavescope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Store  StoreConfig
	Demo   DemoConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// UploadConfig holds ingest limits
type UploadConfig struct {
	// MaxUploadBytes caps a single multipart upload
	MaxUploadBytes int64
	// ParseConcurrency bounds simultaneous file parses across requests
	ParseConcurrency int64
}

// StoreConfig holds dataset registry settings
type StoreConfig struct {
	// TTL after which an untouched dataset is evicted
	TTL time.Duration
	// Capacity caps the number of datasets held at once
	Capacity int
}

// DemoConfig controls the preloaded demonstration dataset
type DemoConfig struct {
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Upload: UploadConfig{
			MaxUploadBytes:   int64(getEnvIntOrDefault("WAVESCOPE_MAX_UPLOAD_MB", 50)) * 1024 * 1024,
			ParseConcurrency: int64(getEnvIntOrDefault("WAVESCOPE_PARSE_CONCURRENCY", 4)),
		},
		Store: StoreConfig{
			TTL:      getEnvDurationOrDefault("WAVESCOPE_DATASET_TTL", 2*time.Hour),
			Capacity: getEnvIntOrDefault("WAVESCOPE_DATASET_CAP", 16),
		},
		Demo: DemoConfig{
			Enabled: getEnvBoolOrDefault("WAVESCOPE_DEMO", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("upload size limit must be positive")
	}
	if config.Upload.ParseConcurrency < 1 {
		return errors.ConfigInvalid("parse concurrency must be at least 1")
	}
	if config.Store.TTL <= 0 {
		return errors.ConfigInvalid("dataset TTL must be positive")
	}
	if config.Store.Capacity < 1 {
		return errors.ConfigInvalid("dataset capacity must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
