package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"localesite/internal/config"
	"localesite/internal/database"
	"localesite/internal/logging"
)

func main() {
	config.LoadDotEnvUp(6)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, closer, err := logging.New(logging.Options{Local: cfg.Local()})
	if err != nil {
		log.Fatalf("log setup error: %v", err)
	}
	defer closer.Close()
	defer func() { _ = logger.Sync() }()

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	var migrations fs.FS = database.EmbeddedMigrations()
	source := "embedded"
	if cfg.MigrationsDir != "" {
		migrations = os.DirFS(cfg.MigrationsDir)
		source = cfg.MigrationsDir
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.ApplyMigrations(ctx, db, migrations); err != nil {
		logger.Fatal("migration failed", zap.String("source", source), zap.Error(err))
	}

	logger.Info("migrations applied", zap.String("source", source))
}
