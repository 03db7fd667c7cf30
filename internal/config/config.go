package config

import (
	"os"
	"strconv"

	"meterrecon/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Detect   DetectConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds run-history persistence settings. URL empty means run
// history is disabled.
type DatabaseConfig struct {
	URL string
}

// Enabled reports whether run history persistence is configured.
func (c DatabaseConfig) Enabled() bool { return c.URL != "" }

// DetectConfig holds schema detection tunables
type DetectConfig struct {
	HeaderScanLimit int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Detect: DetectConfig{
			HeaderScanLimit: getEnvIntOrDefault("HEADER_SCAN_LIMIT", 50),
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
	if config.Detect.HeaderScanLimit <= 0 {
		return errors.ConfigInvalid("HEADER_SCAN_LIMIT must be positive")
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
