package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bandseeking/bandseeking-go/internal/constants"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Geocoding GeocodingConfig
	Location  LocationConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Addr           string
	Mode           string // gin mode: debug, release, test
	AllowedOrigins []string
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type GeocodingConfig struct {
	BaseURL           string
	UserAgent         string
	CountryCode       string
	Timeout           time.Duration
	RequestsPerSecond float64
	FailureThreshold  int
	ResetTimeout      time.Duration
}

type LocationConfig struct {
	LookupTimeout time.Duration
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:           getEnv("SERVER_ADDR", ":8080"),
			Mode:           getEnv("GIN_MODE", "release"),
			AllowedOrigins: parseCommaSeparated(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "postgres"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "require"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Geocoding: GeocodingConfig{
			BaseURL:           getEnv("GEOCODING_BASE_URL", constants.GeocodingConfig.BaseURL),
			UserAgent:         getEnv("GEOCODING_USER_AGENT", constants.GeocodingConfig.UserAgent),
			CountryCode:       getEnv("GEOCODING_COUNTRY", constants.GeocodingConfig.CountryCode),
			Timeout:           getEnvDuration("GEOCODING_TIMEOUT", constants.GeocodingConfig.Timeout),
			RequestsPerSecond: getEnvFloat("GEOCODING_RPS", constants.GeocodingConfig.RequestsPerSecond),
			FailureThreshold:  getEnvInt("GEOCODING_FAILURE_THRESHOLD", constants.CircuitBreakerConfig.FailureThreshold),
			ResetTimeout:      getEnvDuration("GEOCODING_RESET_TIMEOUT", constants.CircuitBreakerConfig.ResetTimeout),
		},
		Location: LocationConfig{
			LookupTimeout: getEnvDuration("LOCATION_LOOKUP_TIMEOUT", constants.LocationConfig.LookupTimeout),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}
	if c.Postgres.Host == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.Postgres.Database == "" {
		return fmt.Errorf("POSTGRES_DB is required")
	}
	if c.Geocoding.BaseURL == "" {
		return fmt.Errorf("GEOCODING_BASE_URL is required")
	}
	// Nominatim rejects anonymous clients.
	if strings.TrimSpace(c.Geocoding.UserAgent) == "" {
		return fmt.Errorf("GEOCODING_USER_AGENT is required")
	}
	if c.Geocoding.RequestsPerSecond <= 0 {
		return fmt.Errorf("GEOCODING_RPS must be positive")
	}
	if c.Geocoding.FailureThreshold <= 0 {
		return fmt.Errorf("GEOCODING_FAILURE_THRESHOLD must be positive")
	}
	return nil
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
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
