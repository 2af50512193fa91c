package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

type HTTPConfig struct {
	Addr string
}

type JikanConfig struct {
	BaseURL   string
	PageDelay time.Duration
}

type AppConfig struct {
	ServiceName    string
	LogLevel       string
	HTTP           HTTPConfig
	DatabaseURL    string
	Jikan          JikanConfig
	NATSURL        string // optional; empty disables event publishing
	AdminJWTSecret string // optional; empty disables the admin routes
}

func Load() (AppConfig, error) {
	cfg := AppConfig{
		ServiceName: strings.TrimSpace(os.Getenv("SERVICE_NAME")),
		LogLevel:    strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		HTTP: HTTPConfig{
			Addr: strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		},
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Jikan: JikanConfig{
			BaseURL:   strings.TrimSpace(os.Getenv("JIKAN_BASE_URL")),
			PageDelay: envDuration("JIKAN_PAGE_DELAY", 500*time.Millisecond),
		},
		NATSURL:        strings.TrimSpace(os.Getenv("NATS_URL")),
		AdminJWTSecret: strings.TrimSpace(os.Getenv("ADMIN_JWT_SECRET")),
	}
	if cfg.DatabaseURL == "" {
		return AppConfig{}, errors.New("DATABASE_URL is required")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "otaku-insight"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
