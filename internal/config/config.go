// Package config loads and saves the agentcost TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all agentcost configuration.
type Config struct {
	Defaults   DefaultsConfig   `toml:"defaults"`
	Catalog    CatalogConfig    `toml:"catalog"`
	Storage    StorageConfig    `toml:"storage"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// DefaultsConfig seeds estimate inputs the user does not specify.
type DefaultsConfig struct {
	Language            string  `toml:"language"`
	MonthlyWorkingDays  int     `toml:"monthly_working_days"`
	SafetyMarginPercent float64 `toml:"safety_margin_percent"`
	ExchangeRate        float64 `toml:"exchange_rate"`
	Currency            string  `toml:"currency"`
	PromptCaching       bool    `toml:"prompt_caching"`
}

// CatalogConfig points at an optional YAML catalog that replaces the
// built-in one.
type CatalogConfig struct {
	Path  string `toml:"path,omitempty"`
	Watch bool   `toml:"watch"`
}

// StorageConfig holds the sqlite location.
type StorageConfig struct {
	DBPath string `toml:"db_path,omitempty"`
}

// DaemonConfig holds HTTP API settings.
type DaemonConfig struct {
	Addr          string `toml:"addr"`
	EventsBuffer  int    `toml:"events_buffer"`
	RetentionDays int    `toml:"retention_days"`
	PruneSchedule string `toml:"prune_schedule"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Defaults: DefaultsConfig{
			Language:            "ja",
			MonthlyWorkingDays:  20,
			SafetyMarginPercent: 20,
			ExchangeRate:        150,
			Currency:            "USD",
		},
		Daemon: DaemonConfig{
			Addr:          "127.0.0.1:8788",
			EventsBuffer:  200,
			RetentionDays: 90,
			PruneSchedule: "0 3 * * *",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentcost")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "agentcost")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "agentcost")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "agentcost")
}

// DBPath returns the sqlite path from the AGENTCOST_DB env var, the config,
// or the data directory, in that order.
func DBPath(cfg Config) string {
	if p := os.Getenv("AGENTCOST_DB"); p != "" {
		return p
	}
	if cfg.Storage.DBPath != "" {
		return os.ExpandEnv(cfg.Storage.DBPath)
	}
	return filepath.Join(DataDir(), "agentcost.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Validate reports every out-of-range setting.
func (c Config) Validate() error {
	var errs []error

	switch c.Defaults.Language {
	case "ja", "en", "mixed":
	default:
		errs = append(errs, fmt.Errorf("defaults.language: unknown language %q", c.Defaults.Language))
	}
	switch c.Defaults.Currency {
	case "USD", "JPY":
	default:
		errs = append(errs, fmt.Errorf("defaults.currency: unknown currency %q", c.Defaults.Currency))
	}
	if c.Defaults.MonthlyWorkingDays < 0 {
		errs = append(errs, fmt.Errorf("defaults.monthly_working_days must be >= 0"))
	}
	if c.Defaults.SafetyMarginPercent < 0 || c.Defaults.SafetyMarginPercent > 100 {
		errs = append(errs, fmt.Errorf("defaults.safety_margin_percent must be within 0-100"))
	}
	if c.Defaults.ExchangeRate < 0 {
		errs = append(errs, fmt.Errorf("defaults.exchange_rate must be >= 0"))
	}
	if c.Daemon.EventsBuffer < 0 {
		errs = append(errs, fmt.Errorf("daemon.events_buffer must be >= 0"))
	}
	if c.Daemon.RetentionDays < 0 {
		errs = append(errs, fmt.Errorf("daemon.retention_days must be >= 0"))
	}

	return errors.Join(errs...)
}
