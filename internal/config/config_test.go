package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "SERVER_PORT", "DATABASE_URL", "DB_HOST", "DB_PORT",
		"DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSLMODE", "GOOGLE_CERTS_URL",
		"SESSION_TTL", "SESSION_COOKIE_NAME", "SESSION_ISSUER",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true for the development default")
	}
	if cfg.Session.TTL != 7*24*time.Hour {
		t.Errorf("Session.TTL = %v, want 7 days", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "session" {
		t.Errorf("Session.CookieName = %q, want session", cfg.Session.CookieName)
	}
	if cfg.Session.Issuer != "taskflow" {
		t.Errorf("Session.Issuer = %q, want taskflow", cfg.Session.Issuer)
	}
	if cfg.Google.CertsURL != "https://www.googleapis.com/oauth2/v1/certs" {
		t.Errorf("Google.CertsURL = %q", cfg.Google.CertsURL)
	}

	wantURL := "postgres://taskflow_user:@localhost:5432/taskflow_db?sslmode=disable"
	if cfg.Database.URL != wantURL {
		t.Errorf("Database.URL = %q, want %q", cfg.Database.URL, wantURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://u:p@db.internal:5432/app")
	t.Setenv("SESSION_TTL", "48h")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.IsProduction() {
		t.Error("IsProduction() = false with APP_ENV=production")
	}
	if cfg.Database.URL != "postgres://u:p@db.internal:5432/app" {
		t.Errorf("Database.URL = %q, want the explicit URL untouched", cfg.Database.URL)
	}
	if cfg.Session.TTL != 48*time.Hour {
		t.Errorf("Session.TTL = %v, want 48h", cfg.Session.TTL)
	}
	if cfg.Address() != "127.0.0.1:9090" {
		t.Errorf("Address() = %q, want 127.0.0.1:9090", cfg.Address())
	}
}

func TestDurationAcceptsBareSeconds(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Context.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s from a bare integer", cfg.Context.RequestTimeout)
	}
}

func TestSessionSecretFallback(t *testing.T) {
	t.Setenv("SESSION_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "legacy-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Session.Secret != "legacy-secret" {
		t.Errorf("Session.Secret = %q, want the JWT_SECRET fallback", cfg.Session.Secret)
	}
}
