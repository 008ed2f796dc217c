package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/vmunix/ps1db/internal/catalog"
	"github.com/vmunix/ps1db/internal/collection"
	"github.com/vmunix/ps1db/internal/config"
	"github.com/vmunix/ps1db/internal/migrations"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "ps1db",
	Short: "PlayStation disc dump catalog and collection tracker",
	Long: `ps1db - catalog, reconcile and track PlayStation disc dumps

Populate a catalog from the Wikipedia game lists, scan a directory of
disc images against it, and keep ownership and backup state per title.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("ps1db {{.Version}}\n")
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// env bundles everything a command needs: config, logger, database and the
// stores on top of it.
type env struct {
	cfg        *config.Config
	log        *slog.Logger
	db         *sql.DB
	catalog    *catalog.Store
	collection *collection.Store
}

func (e *env) Close() {
	_ = e.db.Close()
}

// openEnv loads config, opens the database and applies migrations. The
// schema is idempotent, so every command can run it.
func openEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &config.ConfigError{Path: configPath, Errors: errs}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", cfg.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &env{
		cfg:        cfg,
		log:        logger,
		db:         db,
		catalog:    catalog.NewStore(db),
		collection: collection.NewStore(db),
	}, nil
}
