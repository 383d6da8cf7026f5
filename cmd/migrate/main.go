package main

import (
	"context"

	"github.com/moringa/darasa-api/config"
	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/utils/logger"
)

// migrate creates or updates every table without starting the server
func main() {
	if err := config.LoadENV(); err != nil {
		logger.Warn().Err(err).Msg("no .env file found, using environment variables")
	}
	cfg, err := config.Get()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Configure(logger.Config{Level: cfg.LOG_LEVEL, Pretty: true})

	store, err := database.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}

	if err := store.HealthCheck(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("database not healthy after migration")
	}
	logger.Info().Str("driver", cfg.DB_DRIVER).Msg("migrations completed")
}
