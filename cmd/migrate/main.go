package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/database"
	"github.com/pageza/nutriplan/backend/internal/logging"
)

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	list := flag.Bool("list", false, "List the embedded migrations and exit")
	flag.Parse()

	logger := logging.Setup(config.IsDevelopment())
	ctx := context.Background()

	if *list {
		migrations, err := database.Migrations()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to read migrations")
		}
		for _, m := range migrations {
			logger.Info().Str("version", m.Version).Str("name", m.Name).Msg("migration")
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Fatal().Err(err).Msg("DATABASE_URL is not set and configuration failed to load")
		}
		dsn = database.PostgresDSN(cfg)
	}

	db, err := database.OpenPostgres(ctx, dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if *rollback {
		name, err := database.RollbackLast(ctx, db)
		if errors.Is(err, database.ErrNoMigrations) {
			logger.Warn().Msg("no migrations to roll back")
			return
		}
		if err != nil {
			logger.Fatal().Err(err).Msg("rollback failed")
		}
		logger.Info().Str("migration", name).Msg("rolled back migration")
		return
	}

	applied, err := database.ApplyMigrations(ctx, db)
	if err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	for _, name := range applied {
		logger.Info().Str("migration", name).Msg("applied migration")
	}
	logger.Info().Int("applied", len(applied)).Msg("all migrations applied")
}
