package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Application
	AppEnv      string
	LogLevel    string
	WorldID     uint
	CatalogPath string

	// Tick engine
	TickIntervalSeconds int
	TickGuardTTLSeconds int

	// Admin API
	AdminAddr           string
	AdminJWTSecret      string
	AdminRateLimitPerIP int

	// Alerting
	TelegramAlertToken  string
	TelegramAlertChatID int64
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "tribeland"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "tribeland_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		WorldID:     uint(getEnvInt("WORLD_ID", 1)),
		CatalogPath: getEnv("CATALOG_PATH", ""),

		TickIntervalSeconds: getEnvInt("TICK_INTERVAL_SECONDS", 30),
		TickGuardTTLSeconds: getEnvInt("TICK_GUARD_TTL_SECONDS", 0),

		AdminAddr:           getEnv("ADMIN_ADDR", ""),
		AdminJWTSecret:      getEnv("ADMIN_JWT_SECRET", ""),
		AdminRateLimitPerIP: getEnvInt("ADMIN_RATE_LIMIT_PER_IP", 60),
	}

	// Guard TTL defaults to the tick interval so the marker covers exactly
	// one scheduling window.
	if cfg.TickGuardTTLSeconds <= 0 {
		cfg.TickGuardTTLSeconds = cfg.TickIntervalSeconds
	}

	cfg.TelegramAlertToken = getEnv("TELEGRAM_ALERT_TOKEN", "")
	chatIDStr := getEnv("TELEGRAM_ALERT_CHAT_ID", "")
	if chatIDStr != "" {
		id, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALERT_CHAT_ID: %w", err)
		}
		cfg.TelegramAlertChatID = id
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.TickIntervalSeconds < 1 {
		return fmt.Errorf("TICK_INTERVAL_SECONDS must be >= 1")
	}
	if c.TickGuardTTLSeconds < 1 {
		return fmt.Errorf("TICK_GUARD_TTL_SECONDS must be >= 1")
	}
	if c.AdminAddr != "" {
		if c.AdminJWTSecret == "" {
			return fmt.Errorf("ADMIN_JWT_SECRET is required when ADMIN_ADDR is set")
		}
		if len(c.AdminJWTSecret) < 32 {
			return fmt.Errorf("ADMIN_JWT_SECRET must be at least 32 characters")
		}
	}
	if c.TelegramAlertToken != "" && c.TelegramAlertChatID == 0 {
		return fmt.Errorf("TELEGRAM_ALERT_CHAT_ID is required when TELEGRAM_ALERT_TOKEN is set")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.AdminJWTSecret == "change_this_admin_secret_at_least_32_chars" {
		return fmt.Errorf("ADMIN_JWT_SECRET must be changed from default in production")
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetTickInterval() time.Duration {
	return time.Duration(c.TickIntervalSeconds) * time.Second
}

func (c *Config) GetTickGuardTTL() time.Duration {
	return time.Duration(c.TickGuardTTLSeconds) * time.Second
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
