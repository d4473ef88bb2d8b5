package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://ops.example.com/api"
	cfg.API.Token = "tok-123"
	cfg.Location.Enabled = true
	cfg.Location.Command = "CoreLocationCLI --json"
	cfg.Processes = []ProcessConfig{{Code: "CUTTING", Name: "Cutting"}}

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.API.BaseURL != "https://ops.example.com/api" {
		t.Errorf("BaseURL: got %q", loaded.API.BaseURL)
	}
	if loaded.API.Token != "tok-123" {
		t.Errorf("Token: got %q", loaded.API.Token)
	}
	if !loaded.Location.Enabled || loaded.Location.Command != "CoreLocationCLI --json" {
		t.Errorf("Location: got %+v", loaded.Location)
	}
	if len(loaded.Processes) != 1 || loaded.Processes[0].Code != "CUTTING" {
		t.Errorf("Processes: got %+v", loaded.Processes)
	}
}

func TestDefaultConfigPollInterval(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.PollInterval() != 5 {
		t.Errorf("default poll interval: got %d, want 5", cfg.PollInterval())
	}

	cfg.Poll.IntervalSeconds = 0
	if cfg.PollInterval() != 5 {
		t.Errorf("zero interval should fall back to 5, got %d", cfg.PollInterval())
	}

	cfg.Poll.IntervalSeconds = 30
	if cfg.PollInterval() != 30 {
		t.Errorf("configured interval: got %d, want 30", cfg.PollInterval())
	}
}

func TestDirHonorsEnvOverride(t *testing.T) {
	t.Setenv("SHOPFLOOR_CONFIG_DIR", "/tmp/sf-test")
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if dir != "/tmp/sf-test" {
		t.Errorf("Dir: got %q, want env override", dir)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := ReadConfig(t.TempDir()); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestConfigFilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	if err := WriteConfig(tmpDir, DefaultConfig()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	info, err := os.Stat(filepath.Join(tmpDir, "config.yaml"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config perms: got %o, want 0600", perm)
	}
}
