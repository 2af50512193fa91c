package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/otaku")
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("JIKAN_PAGE_DELAY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServiceName != "otaku-insight" {
		t.Fatalf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.HTTP.Addr)
	}
	if cfg.Jikan.PageDelay != 500*time.Millisecond {
		t.Fatalf("expected 500ms page delay, got %s", cfg.Jikan.PageDelay)
	}
}

func TestEnvDuration_Invalid(t *testing.T) {
	t.Setenv("CONFIG_TEST_DUR", "not-a-duration")
	if d := envDuration("CONFIG_TEST_DUR", time.Second); d != time.Second {
		t.Fatalf("expected fallback 1s, got %s", d)
	}
}

func TestEnvDuration_Set(t *testing.T) {
	t.Setenv("CONFIG_TEST_DUR", "250ms")
	if d := envDuration("CONFIG_TEST_DUR", time.Second); d != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", d)
	}
}
