package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Defaults.ExchangeRate != 150 || cfg.Daemon.Addr != "127.0.0.1:8788" || cfg.Log.Level != "info" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if Exists() {
		t.Error("Exists() true before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.Defaults.Currency = "JPY"
	cfg.Defaults.ExchangeRate = 155.5
	cfg.Catalog.Path = "/tmp/catalog.yaml"
	cfg.Catalog.Watch = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() false after Save")
	}

	info, err := os.Stat(filepath.Join(dir, "agentcost", "config.toml"))
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadFilePartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[defaults]\nlanguage = \"en\"\n\n[log]\nformat = \"json\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Defaults.Language != "en" || cfg.Log.Format != "json" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Defaults.MonthlyWorkingDays != 20 || cfg.Log.Level != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFileParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[defaults\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("err = %v, want parsing config error", err)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Defaults.Language = "de"
	cfg.Defaults.Currency = "EUR"
	cfg.Defaults.SafetyMarginPercent = 120
	cfg.Daemon.RetentionDays = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	for _, want := range []string{"defaults.language", "defaults.currency", "safety_margin_percent", "retention_days"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestDBPath(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("AGENTCOST_DB", "")

	cfg := DefaultConfig()
	if got, want := DBPath(cfg), filepath.Join(data, "agentcost", "agentcost.db"); got != want {
		t.Errorf("default DBPath = %q, want %q", got, want)
	}

	cfg.Storage.DBPath = "/srv/costs.db"
	if got := DBPath(cfg); got != "/srv/costs.db" {
		t.Errorf("config DBPath = %q", got)
	}

	t.Setenv("AGENTCOST_DB", "/env/costs.db")
	if got := DBPath(cfg); got != "/env/costs.db" {
		t.Errorf("env DBPath = %q", got)
	}
}
