// ABOUTME: Configuration loader for the mission planner service
// ABOUTME: Loads settings from environment variables and an optional .env file

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, comms analysis cache
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	MetricsEnabled     bool     // expose /metrics (default: true)
	RegistryMaxEntries int      // designs and plans kept each, oldest evicted (default: 1000)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitWrite   int  // Requests per minute for calculation endpoints (default: 30)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)

	// Energy model
	BatteryDepthOfDischarge float64 // fraction of rated capacity usable (default: 0.8)
	PowerEfficiency         float64 // drivetrain efficiency (default: 0.85)
	DefaultTemperatureC     float64 // used when a request omits temperature (default: 15)
}

// Load reads configuration from the environment. Values already set in the
// environment take precedence over those in the .env file named by ENV_FILE.
func Load() (*Config, error) {
	if err := loadEnvFile(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
		RegistryMaxEntries: getEnvInt("REGISTRY_MAX_ENTRIES", 1000),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitWrite:   getEnvInt("RATE_LIMIT_WRITE", 30),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),

		BatteryDepthOfDischarge: getEnvFloat("BATTERY_DEPTH_OF_DISCHARGE", 0.8),
		PowerEfficiency:         getEnvFloat("POWER_EFFICIENCY", 0.85),
		DefaultTemperatureC:     getEnvFloat("DEFAULT_TEMPERATURE_C", 15),
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}

	if cfg.RegistryMaxEntries < 1 || cfg.RegistryMaxEntries > 100000 {
		return nil, fmt.Errorf("REGISTRY_MAX_ENTRIES must be between 1 and 100000, got %d", cfg.RegistryMaxEntries)
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_WRITE", cfg.RateLimitWrite},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	// Validate energy model fractions
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"BATTERY_DEPTH_OF_DISCHARGE", cfg.BatteryDepthOfDischarge},
		{"POWER_EFFICIENCY", cfg.PowerEfficiency},
	} {
		if !(f.value > 0 && f.value <= 1) {
			return nil, fmt.Errorf("%s must be in (0, 1], got %v", f.name, f.value)
		}
	}

	if cfg.DefaultTemperatureC < -273.15 {
		return nil, fmt.Errorf("DEFAULT_TEMPERATURE_C must be above absolute zero, got %v", cfg.DefaultTemperatureC)
	}

	return cfg, nil
}

// loadEnvFile loads KEY=value pairs without overriding existing variables.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		slog.Debug("Loaded environment file", "path", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
