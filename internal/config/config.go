package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort          = "8000"
	defaultDatabaseURL   = "fileshare.db"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTAccessTTL  = "24h"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin_password"
	defaultUploadDir     = "./uploads"
	defaultMaxUploadSize = 50 << 20 // 50 MB
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTAccessTTL  time.Duration
	AdminUsername string
	AdminPassword string
	UploadDir     string
	MaxUploadSize int64
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", defaultPort),
		DatabaseURL:   getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:     strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		AdminUsername: getEnv("ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword: getEnv("ADMIN_PASSWORD", defaultAdminPassword),
		UploadDir:     getEnv("UPLOAD_DIR", defaultUploadDir),
	}

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	cfg.MaxUploadSize = defaultMaxUploadSize
	if raw := strings.TrimSpace(os.Getenv("MAX_UPLOAD_SIZE")); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE %q", raw)
		}
		cfg.MaxUploadSize = size
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, raw)
	}
	return d, nil
}
