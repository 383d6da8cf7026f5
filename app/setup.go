package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moringa/darasa-api/api"
	"github.com/moringa/darasa-api/config"
	"github.com/moringa/darasa-api/database"
	course_handlers "github.com/moringa/darasa-api/handlers/course"
	"github.com/moringa/darasa-api/router"
	"github.com/moringa/darasa-api/services/cron"
	"github.com/moringa/darasa-api/services/digitalocean"
	"github.com/moringa/darasa-api/services/payment"
	"github.com/moringa/darasa-api/services/receipt"
	"github.com/moringa/darasa-api/utils/auth"
	"github.com/moringa/darasa-api/utils/cache"
	"github.com/moringa/darasa-api/utils/logger"
	"github.com/moringa/darasa-api/utils/middleware"
)

func SetupAndRunServer() error {
	// Load ENV
	if err := config.LoadENV(); err != nil {
		logger.Warn().Err(err).Msg(".env file not loaded, using process environment")
	}

	cfg, err := config.Get()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Configure(logger.Config{Level: cfg.LOG_LEVEL, Pretty: !cfg.IsProduction()})

	store, err := database.Open(cfg)
	if err != nil {
		logger.Error().Msg("check that the database is running and the DB_* settings are correct")
		return err
	}

	if err := store.Init(); err != nil {
		logger.Error().Err(err).Msg("failed to run migrations")
		return err
	}

	db := store.GetDB()

	gateway, err := newGateway(cfg)
	if err != nil {
		logger.Error().Err(err).Str("currency", cfg.CHECKOUT_CURRENCY).Msg("invalid checkout settings")
		return err
	}

	var cronManager *cron.CronManager
	if cfg.CRON_ENABLED {
		cronManager = cron.NewCronManager(db, auth.NewBlacklistService(db))
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			logger.Warn().Err(err).Msg("failed to start cron jobs")
			cronManager = nil
		}
	}

	deps := router.Deps{
		Config:   cfg,
		Store:    store,
		Gateway:  gateway,
		Renderer: receipt.NewPDFRenderer(cfg.SCHOOL_NAME, cfg.RECEIPT_LOGO_PATH),
	}

	if spaces, err := digitalocean.NewSpacesClient(digitalocean.SpacesConfigFrom(cfg)); err != nil {
		logger.Warn().Err(err).Msg("thumbnail upload disabled")
	} else {
		deps.Storage = course_handlers.ObjectStore(spaces)
	}

	var redisCache *cache.RedisCache
	if cfg.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(cfg.REDIS_URL)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to Redis, brute force protection disabled")
		} else {
			deps.Attempts = middleware.AttemptStore(redisCache)
		}
	} else {
		logger.Warn().Msg("REDIS_URL not set, brute force protection disabled")
	}

	// Defer Closing DB, Redis and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	server := api.NewAPIServer(fmt.Sprintf(":%d", cfg.PORT))
	router.SetupRoutes(server.GetEngine(), deps)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func newGateway(cfg *config.Config) (payment.Gateway, error) {
	if cfg.MIDTRANS_SERVER_KEY == "" {
		logger.Warn().Msg("MIDTRANS_SERVER_KEY not set, using offline checkout")
		return payment.OfflineGateway{}, nil
	}
	g, err := payment.NewMidtransGateway(cfg.MIDTRANS_SERVER_KEY, cfg.MIDTRANS_PRODUCTION, cfg.CHECKOUT_CURRENCY)
	if err != nil {
		return nil, err
	}
	return g, nil
}
