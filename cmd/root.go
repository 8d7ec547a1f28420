// Package cmd implements the agentcost CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/compare"
	"github.com/theirongolddev/agentcost/internal/config"
	"github.com/theirongolddev/agentcost/internal/logging"
	"github.com/theirongolddev/agentcost/internal/store"
	"github.com/theirongolddev/agentcost/internal/tui/theme"

	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagLogLevel string
	flagJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "agentcost",
	Short: "LLM agent running cost estimator",
	Long: "Estimate the monthly cost of running an LLM multi-agent application:\n" +
		"per-request step costs, monthly and annual totals, growth projections\n" +
		"and saved comparisons.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print JSON instead of tables")
}

// env bundles what most commands need: config, logger, catalog and,
// when opened, the comparison store.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	source   *catalog.Source
	pairs    catalog.Pairings
	presets  calc.Presets
	db       *store.DB
	compares *compare.Manager
}

// loadConfig reads --config, or the default config path.
func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openEnv loads config and the active catalog. withStore also opens the
// sqlite store, which the catalog lookup then consults.
func openEnv(ctx context.Context, withStore bool) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	theme.SetActive(cfg.Appearance.Theme)

	e := &env{
		cfg:     cfg,
		logger:  logger,
		pairs:   catalog.DefaultPairings(),
		presets: calc.DefaultPresets(),
	}

	if withStore {
		path := config.DBPath(cfg)
		db, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening store %s: %w", path, err)
		}
		logger.Debug("store opened", "path", path)
		e.db = db
		e.compares = compare.NewManager(db)
	}

	src, err := openSource(ctx, cfg, e.db)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.source = src
	logger.Debug("catalog loaded", "origin", src.Info().Origin, "models", src.Info().Models)
	return e, nil
}

// openSource picks the catalog: the configured YAML file, else a catalog
// imported into sqlite, else the built-in seed.
func openSource(ctx context.Context, cfg config.Config, db *store.DB) (*catalog.Source, error) {
	if cfg.Catalog.Path != "" {
		return catalog.NewSource(catalog.FileLoader(cfg.Catalog.Path))
	}
	if db != nil {
		c, err := db.LoadCatalog(ctx)
		switch {
		case err == nil:
			return catalog.Static(c, "sqlite"), nil
		case !errors.Is(err, store.ErrNotFound):
			return nil, fmt.Errorf("loading stored catalog: %w", err)
		}
	}
	return catalog.NewSource(catalog.SeedLoader())
}

// Close releases the store, if open.
func (e *env) Close() {
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			e.logger.Warn("closing store", "error", err)
		}
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
