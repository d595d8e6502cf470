package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string
	CRMBaseURL            string
	CRMAPIToken           string
	CRMTimeout            time.Duration
	CRMRetryCount         int
	CRMRateInterval       time.Duration
	RedisAddr             string
	RedisKeyPrefix        string
	CacheTTL              time.Duration
	GRPCPort              int
	GRPCReflectionEnabled bool
	DefaultPageSize       int
}

// LoadFromEnv loads configuration from environment variables. Unparsable
// values fall back to their defaults.
func LoadFromEnv() *Config {
	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		CRMBaseURL:            getEnv("CRM_BASE_URL", "http://localhost:8080"),
		CRMAPIToken:           getEnv("CRM_API_TOKEN", ""),
		CRMTimeout:            getDuration("CRM_TIMEOUT", 30*time.Second),
		CRMRetryCount:         getInt("CRM_RETRY_COUNT", 2),
		CRMRateInterval:       getDuration("CRM_RATE_INTERVAL", 100*time.Millisecond),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisKeyPrefix:        getEnv("REDIS_KEY_PREFIX", "helpdesk:"),
		CacheTTL:              getDuration("CACHE_TTL", 10*time.Minute),
		GRPCPort:              getInt("GRPC_PORT", 50051),
		GRPCReflectionEnabled: getBool("GRPC_REFLECTION_ENABLED", false),
		DefaultPageSize:       getInt("DEFAULT_PAGE_SIZE", 20),
	}
}

// Validate reports settings the application cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.CRMBaseURL == "" {
		errs = append(errs, errors.New("CRM_BASE_URL is required"))
	}
	if c.CRMRetryCount < 0 {
		errs = append(errs, errors.New("CRM_RETRY_COUNT must not be negative"))
	}
	if c.CRMRateInterval <= 0 {
		errs = append(errs, errors.New("CRM_RATE_INTERVAL must be positive"))
	}
	if c.DefaultPageSize <= 0 || c.DefaultPageSize > 100 {
		errs = append(errs, errors.New("DEFAULT_PAGE_SIZE must be between 1 and 100"))
	}
	return errors.Join(errs...)
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}
