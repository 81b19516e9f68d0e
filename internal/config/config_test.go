package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseServer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")

		cfg, err := Parse[Server]()
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if cfg.Port != 8080 || cfg.TokenTTL != 24*time.Hour || cfg.LogFormat != "json" {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		os.Unsetenv("JWT_SECRET")

		if _, err := Parse[Server](); err == nil {
			t.Error("expected error for missing JWT_SECRET")
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "x")
		t.Setenv("PORT", "9090")
		t.Setenv("TOKEN_TTL", "90m")

		cfg, err := Parse[Server]()
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if cfg.Port != 9090 || cfg.TokenTTL != 90*time.Minute {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("VALUATOR_URL=http://example.test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VALUATOR_URL", "")
	os.Unsetenv("VALUATOR_URL")

	if err := LoadDotenv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotenv failed: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("VALUATOR_URL") })

	cfg, err := Parse[Client]()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.ServerURL != "http://example.test" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
}
