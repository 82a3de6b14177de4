package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Auth.JWTSecret != "" {
		t.Fatal("jwt secret must have no default")
	}
	if cfg.Auth.JWTAlgorithm != "HS256" {
		t.Fatalf("unexpected default algorithm: %q", cfg.Auth.JWTAlgorithm)
	}
	if cfg.Auth.JWTExpiry != 86400*time.Second {
		t.Fatalf("unexpected default expiry: %v", cfg.Auth.JWTExpiry)
	}
	if cfg.Rate.Limit != 120 || cfg.Rate.Window != 60*time.Second {
		t.Fatalf("unexpected rate defaults: %d/%v", cfg.Rate.Limit, cfg.Rate.Window)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", cfg.HTTP.Addr)
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("http:\n  addr: \":9090\"\nauth:\n  jwt_secret: from-yaml\nrate:\n  limit: 10\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("yaml addr not applied: %q", cfg.HTTP.Addr)
	}
	if cfg.Auth.JWTSecret != "from-yaml" {
		t.Fatalf("yaml secret not applied: %q", cfg.Auth.JWTSecret)
	}
	if cfg.Rate.Limit != 10 {
		t.Fatalf("yaml rate limit not applied: %d", cfg.Rate.Limit)
	}
	if cfg.Rate.Window != 60*time.Second {
		t.Fatalf("untouched default must survive partial yaml: %v", cfg.Rate.Window)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("JWT_EXPIRY", "3600")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_WINDOW", "30")
	t.Setenv("RATE_STORE", "memory")
	t.Setenv("MAX_FILE_SIZE", "1048576")
	t.Setenv("ALLOWED_FILE_TYPES", "pdf, mp3 ,png")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("JWT_SECRET not applied: %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.JWTAlgorithm != "HS512" {
		t.Fatalf("JWT_ALGORITHM not applied: %q", cfg.Auth.JWTAlgorithm)
	}
	if cfg.Auth.JWTExpiry != time.Hour {
		t.Fatalf("JWT_EXPIRY must be read as seconds: %v", cfg.Auth.JWTExpiry)
	}
	if cfg.Rate.Limit != 5 || cfg.Rate.Window != 30*time.Second || cfg.Rate.Store != "memory" {
		t.Fatalf("rate env not applied: %d/%v/%q", cfg.Rate.Limit, cfg.Rate.Window, cfg.Rate.Store)
	}
	if cfg.Storage.MaxUploadBytes != 1048576 {
		t.Fatalf("MAX_FILE_SIZE not applied: %d", cfg.Storage.MaxUploadBytes)
	}
	want := []string{"pdf", "mp3", "png"}
	if len(cfg.Storage.AllowedExtensions) != len(want) {
		t.Fatalf("ALLOWED_FILE_TYPES not applied: %v", cfg.Storage.AllowedExtensions)
	}
	for i, ext := range want {
		if cfg.Storage.AllowedExtensions[i] != ext {
			t.Fatalf("extension #%d mismatch: %v", i, cfg.Storage.AllowedExtensions)
		}
	}
}

func TestEnvOverrideParseErrors(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "one-day")
	if _, err := Load(""); err == nil {
		t.Fatal("expected parse error for non-numeric JWT_EXPIRY")
	}
}
