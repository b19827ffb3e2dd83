package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "certs/private.pem")
	t.Setenv("REFRESH_TOKEN_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPAddress != ":8080" {
		t.Fatalf("HTTPAddress want :8080, got %s", cfg.HTTPAddress)
	}
	if cfg.Issuer != "auth-service" {
		t.Fatalf("Issuer want auth-service, got %s", cfg.Issuer)
	}
	if cfg.AccessTokenTTL != time.Hour {
		t.Fatalf("AccessTokenTTL want 1h, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 8760*time.Hour {
		t.Fatalf("RefreshTokenTTL want 8760h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Fatalf("BcryptCost want 10, got %d", cfg.BcryptCost)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("ACCESS_TOKEN_TTL", "2m")
	t.Setenv("REFRESH_TOKEN_TTL", "3h")
	t.Setenv("COOKIE_DOMAIN", "example.com")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddress != ":9090" {
		t.Fatalf("HTTPAddress want :9090, got %s", cfg.HTTPAddress)
	}
	if cfg.AccessTokenTTL != 2*time.Minute {
		t.Fatalf("AccessTokenTTL want 2m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 3*time.Hour {
		t.Fatalf("RefreshTokenTTL want 3h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.CookieDomain != "example.com" || !cfg.CookieSecure {
		t.Fatalf("cookie settings not applied: %+v", cfg)
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("BcryptCost want 12, got %d", cfg.BcryptCost)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "certs/private.pem")
	// REFRESH_TOKEN_SECRET deliberately unset

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing REFRESH_TOKEN_SECRET, got nil")
	}
}
