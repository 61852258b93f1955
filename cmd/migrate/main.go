package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/chronicpal/backend/config"
	"github.com/chronicpal/backend/internal/database"
	"github.com/chronicpal/backend/internal/logging"
)

func main() {
	dir := flag.String("dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")
	flag.Parse()

	logging.Init(config.IsProduction(), slog.LevelInfo)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Init(config.IsProduction(), logging.ParseLevel(cfg.LogLevel))
	if *dir != "" {
		cfg.MigrationsDir = *dir
	}

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	slog.Info("all migrations applied", "dir", cfg.MigrationsDir)
}
