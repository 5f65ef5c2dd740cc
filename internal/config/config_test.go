package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFrom(t *testing.T) {
	t.Setenv("DEV_MODE", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[database]
connection_string = "libsql://example.turso.io"
auth_token = "secret"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.DB.ConnectionString != "libsql://example.turso.io" || cfg.DB.AuthToken != "secret" {
		t.Fatalf("database = %+v", cfg.DB)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("DEV_MODE", "")
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.DB.ConnectionString != "" {
		t.Fatalf("connection string = %q", cfg.DB.ConnectionString)
	}
}

func TestLoadConfigDevMode(t *testing.T) {
	t.Setenv("DEV_MODE", "true")
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DB.ConnectionString != "file:./local.db?cache=shared&mode=rwc" {
		t.Fatalf("connection string = %q", cfg.DB.ConnectionString)
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[database\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}
