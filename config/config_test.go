package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Timeout)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("expected file storage, got %q", cfg.Storage)
	}
	if filepath.Base(cfg.StorePath) != "store.json" {
		t.Errorf("expected store.json path, got %q", cfg.StorePath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CITYHOP_API_URL", "https://staging.cityhop.app")
	t.Setenv("CITYHOP_TIMEOUT", "5s")
	t.Setenv("CITYHOP_STORAGE", "sqlite")
	t.Setenv("CITYHOP_STORE_PATH", "/tmp/custom.db")
	t.Setenv("CITYHOP_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BaseURL != "https://staging.cityhop.app" {
		t.Errorf("unexpected base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout)
	}
	if cfg.StorePath != "/tmp/custom.db" {
		t.Errorf("explicit store path must win, got %q", cfg.StorePath)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled")
	}
}

func TestLoadSQLiteDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CITYHOP_STORAGE", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(cfg.StorePath) != "store.db" {
		t.Errorf("expected store.db for sqlite, got %q", cfg.StorePath)
	}
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("CITYHOP_STORAGE", "etcd")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}
