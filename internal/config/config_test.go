package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MEDIA_CONFIG_FILE", "DB_PATH", "GRPC_ADDRESS", "JWT_SECRET", "TOKEN_TTL",
		"ADMIN_USERNAME", "ADMIN_PASSWORD", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadWithDefaults_Succeeds(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults: %v", err)
	}
	if cfg.GRPC.Address == "" || cfg.Database.Path == "" || cfg.Auth.JWTSecret == "" {
		t.Fatalf("unexpected empty defaults: %+v", cfg)
	}
	if cfg.Bootstrap.AdminUsername != "admin" || cfg.Bootstrap.AdminPassword != "admin123" {
		t.Fatalf("unexpected bootstrap defaults: %+v", cfg.Bootstrap)
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("GRPC_ADDRESS", ":1234")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is not set")
	}
	t.Setenv("JWT_SECRET", "x")
	if _, err := Load(); err != nil {
		t.Fatalf("Load with secret set: %v", err)
	}
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
database:
  path: /data/users.db
auth:
  jwt_secret: from-file
  token_ttl: 30m
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("MEDIA_CONFIG_FILE", path)
	t.Setenv("DB_PATH", "/override.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/override.db" {
		t.Fatalf("env should override file: %q", cfg.Database.Path)
	}
	if cfg.Auth.JWTSecret != "from-file" || cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("file values not applied: %+v", cfg.Auth)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("log values not applied: %+v", cfg.Log)
	}
	if cfg.GRPC.Address != "127.0.0.1:50051" {
		t.Fatalf("default lost: %q", cfg.GRPC.Address)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("TOKEN_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad TOKEN_TTL")
	}
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("LOG_MAX_BACKUPS", "many")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad LOG_MAX_BACKUPS")
	}
}

func TestString_MasksSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "topsecret")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s := cfg.String()
	if strings.Contains(s, "topsecret") || strings.Contains(s, "hunter2") {
		t.Fatalf("secret leaked: %s", s)
	}
}

func TestLoad_TrimsBootstrapCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("ADMIN_USERNAME", " root ")
	t.Setenv("ADMIN_PASSWORD", "\tsecret ")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bootstrap.AdminUsername != "root" || cfg.Bootstrap.AdminPassword != "secret" {
		t.Fatalf("bootstrap not trimmed: %q / %q", cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
	}

	t.Setenv("ADMIN_PASSWORD", "   ")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for blank bootstrap password")
	}
}
