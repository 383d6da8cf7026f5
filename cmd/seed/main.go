package main

import (
	"github.com/moringa/darasa-api/config"
	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/utils/logger"
)

func main() {
	if err := config.LoadENV(); err != nil {
		logger.Warn().Err(err).Msg(".env file not found, using system environment variables")
	}

	cfg, err := config.Get()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Configure(logger.Config{Level: cfg.LOG_LEVEL, Pretty: !cfg.IsProduction()})

	store, err := database.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	err = database.RunSeeds(store.GetDB(), database.SeedOptions{
		AdminEmail:    cfg.ADMIN_EMAIL,
		AdminPassword: cfg.ADMIN_PASSWORD,
		BcryptCost:    cfg.BCRYPT_COST,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
}
