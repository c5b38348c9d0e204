package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected 2h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.Mongo.Database != "topicos_web" {
		t.Errorf("unexpected database: %q", cfg.Mongo.Database)
	}
	if cfg.Audit.Workers != 4 || cfg.Audit.QueueSize != 256 {
		t.Errorf("unexpected audit config: %+v", cfg.Audit)
	}
	if cfg.Redis.ReportCacheTTL != time.Minute {
		t.Errorf("unexpected report cache ttl: %v", cfg.Redis.ReportCacheTTL)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development env by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "s3cret",
		"TOKEN_TTL":        "30m",
		"AUDIT_WORKERS":    "2",
		"LOGIN_RATE_LIMIT": "1.5",
		"ENV":              "production",
	}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("expected 30m, got %v", cfg.TokenTTL)
	}
	if cfg.Audit.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Audit.Workers)
	}
	if cfg.RateLimit.LoginRate != 1.5 {
		t.Errorf("expected rate 1.5, got %v", cfg.RateLimit.LoginRate)
	}
	if cfg.IsDevelopment() {
		t.Errorf("production must not be development")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	if _, err := Load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}
