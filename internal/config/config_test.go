package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()

	if cfg.Addr() != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("expected 24h expiry, got %v", cfg.JWTExpiry)
	}
	if cfg.Timezone != "America/Fortaleza" {
		t.Errorf("unexpected timezone %q", cfg.Timezone)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("RESET_TOKEN_MINUTES", "15")
	t.Setenv("S3_BUCKET", "naf")
	t.Setenv("S3_ACCESS_KEY", "ak")
	t.Setenv("S3_SECRET_KEY", "sk")

	cfg := Load()

	if cfg.Addr() != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Addr())
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.ResetTokenTTL != 15*time.Minute {
		t.Errorf("expected 15m, got %v", cfg.ResetTokenTTL)
	}
	if !cfg.S3.Enabled() {
		t.Error("expected s3 to be enabled")
	}
}
