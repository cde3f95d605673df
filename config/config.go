package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	FeedbackPolicyReject    = "reject"
	FeedbackPolicyAllow     = "allow"
	FeedbackPolicyOverwrite = "overwrite"

	RevocationMemory = "memory"
	RevocationRedis  = "redis"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver string // sqlite | postgres
	DBSource string

	JWTSecret string
	JWTTTL    time.Duration

	RevocationBackend string
	RedisAddr         string

	FeedbackPolicy             string
	EnforceRestaurantOwnership bool

	SuperAdminEmail    string
	SuperAdminPassword string

	AdminLoginAttempts int
	AdminLoginWindow   time.Duration

	CORSOrigins []string
}

// Load reads configuration from the environment, after applying an optional
// .env file. A missing .env is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Port:                       getEnv("PORT", "8080"),
		GinMode:                    getEnv("GIN_MODE", "debug"),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		DBDriver:                   getEnv("DB_DRIVER", "sqlite"),
		DBSource:                   getEnv("DB_SOURCE", "food_ordering.db"),
		JWTSecret:                  getEnv("JWT_SECRET", "food_ordering_dev_secret"),
		JWTTTL:                     getEnvDuration("JWT_TTL", time.Hour),
		RevocationBackend:          getEnv("REVOCATION_BACKEND", RevocationMemory),
		RedisAddr:                  getEnv("REDIS_ADDR", "localhost:6379"),
		FeedbackPolicy:             getEnv("FEEDBACK_POLICY", FeedbackPolicyReject),
		EnforceRestaurantOwnership: getEnvBool("ENFORCE_RESTAURANT_OWNERSHIP", true),
		SuperAdminEmail:            os.Getenv("SUPER_ADMIN_EMAIL"),
		SuperAdminPassword:         os.Getenv("SUPER_ADMIN_PASSWORD"),
		AdminLoginAttempts:         getEnvInt("ADMIN_LOGIN_ATTEMPTS", 5),
		AdminLoginWindow:           getEnvDuration("ADMIN_LOGIN_WINDOW", 15*time.Minute),
		CORSOrigins:                strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the service cannot act on.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}
	switch c.FeedbackPolicy {
	case FeedbackPolicyReject, FeedbackPolicyAllow, FeedbackPolicyOverwrite:
	default:
		return fmt.Errorf("FEEDBACK_POLICY must be reject, allow or overwrite, got %q", c.FeedbackPolicy)
	}
	switch c.RevocationBackend {
	case RevocationMemory, RevocationRedis:
	default:
		return fmt.Errorf("REVOCATION_BACKEND must be memory or redis, got %q", c.RevocationBackend)
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.AdminLoginAttempts <= 0 || c.AdminLoginWindow <= 0 {
		return errors.New("ADMIN_LOGIN_ATTEMPTS and ADMIN_LOGIN_WINDOW must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
