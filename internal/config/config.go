package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Paystack PaystackConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	SiteName     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// PaystackConfig holds Paystack gateway configuration. Live and test
// credentials are both carried; the mode flag selects which pair is active.
type PaystackConfig struct {
	LiveMode      bool
	LiveSecretKey string
	LivePublicKey string
	TestSecretKey string
	TestPublicKey string
	BaseURL       string
	VerifyTimeout time.Duration
	SuccessURL    string
}

// SecretKey returns the secret key for the active mode.
func (c PaystackConfig) SecretKey() string {
	if c.LiveMode {
		return c.LiveSecretKey
	}
	return c.TestSecretKey
}

// PublicKey returns the public key for the active mode.
func (c PaystackConfig) PublicKey() string {
	if c.LiveMode {
		return c.LivePublicKey
	}
	return c.TestPublicKey
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			SiteName:     getEnv("SITE_NAME", "paygate"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "paygate"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "paystack-gateway-service"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Paystack: PaystackConfig{
			LiveMode:      getBoolEnv("PAYSTACK_LIVE_MODE", false),
			LiveSecretKey: getEnv("PAYSTACK_LIVE_SECRET_KEY", ""),
			LivePublicKey: getEnv("PAYSTACK_LIVE_PUBLIC_KEY", ""),
			TestSecretKey: getEnv("PAYSTACK_TEST_SECRET_KEY", ""),
			TestPublicKey: getEnv("PAYSTACK_TEST_PUBLIC_KEY", ""),
			BaseURL:       getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			VerifyTimeout: getDurationEnv("PAYSTACK_VERIFY_TIMEOUT", 15*time.Second),
			SuccessURL:    getEnv("PAYMENT_SUCCESS_URL", "/payment/success"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
