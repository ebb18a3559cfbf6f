package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOKEN_TTL_HOURS", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("LOG_RETENTION_DAYS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.TokenTTL != 720*time.Hour {
		t.Errorf("TokenTTL = %v, want 30 days", cfg.TokenTTL)
	}
	if cfg.JWTSecret != insecureDefaultSecret {
		t.Errorf("JWTSecret fallback not applied")
	}
	if cfg.LogRetentionDays != 90 {
		t.Errorf("LogRetentionDays = %d, want 90", cfg.LogRetentionDays)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Error("expected development CORS origins")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("TOKEN_TTL_HOURS", "24")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("LOG_RETENTION_DAYS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.ServerPort != 9001 {
		t.Errorf("ServerPort = %d, want 9001", cfg.ServerPort)
	}
	if cfg.JWTSecret != "real-secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://app.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid PORT")
	}

	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_TTL_HOURS", "-1")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative TOKEN_TTL_HOURS")
	}
}
