package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := validConfig()
	cfg.Queries.AdditionalTerms = []string{"syndic"}

	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.App.Port != cfg.App.Port {
		t.Errorf("port = %d, want %d", loaded.App.Port, cfg.App.Port)
	}
	if loaded.Queries.French != "immobilier" {
		t.Errorf("french query = %q", loaded.Queries.French)
	}
	if len(loaded.Queries.AdditionalTerms) != 1 || loaded.Queries.AdditionalTerms[0] != "syndic" {
		t.Errorf("additional terms = %v", loaded.Queries.AdditionalTerms)
	}
}

func TestSaveAtomicKeepsBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	first := validConfig()
	if err := SaveAtomic(path, first); err != nil {
		t.Fatal(err)
	}

	second := first
	second.App.Port = 40000
	if err := SaveAtomic(path, second); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("expected .bak after second save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.App.Port != 40000 {
		t.Errorf("port = %d, want 40000", loaded.App.Port)
	}
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	bad := validConfig()
	bad.Output.Filename = ""
	if err := SaveAtomic(path, bad); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid config must not reach disk")
	}
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default.yml")
	if err := os.WriteFile(defaultPath, []byte("app:\n  port: 38471\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dataDir := filepath.Join(dir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}

	userPath, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}
	if userPath != filepath.Join(dataDir, "config.yml") {
		t.Errorf("unexpected path %s", userPath)
	}

	// Second call must keep the existing copy untouched.
	if err := os.WriteFile(userPath, []byte("app:\n  port: 40000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	again, err := EnsureUserConfig(dataDir, defaultPath)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(again)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Port != 40000 {
		t.Errorf("user edits were overwritten, port = %d", cfg.App.Port)
	}
}
