package database

import (
	"context"
	"fmt"
	"time"

	"github.com/moringa/darasa-api/config"
	"github.com/moringa/darasa-api/model"
	applog "github.com/moringa/darasa-api/utils/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	Init() error
	Close() error
	HealthCheck(ctx context.Context) error
	GetDB() *gorm.DB
}

type GORMStore struct {
	db *gorm.DB
}

// Open picks the driver named by DB_DRIVER
func Open(cfg *config.Config) (*GORMStore, error) {
	if cfg.DB_DRIVER == "sqlite" {
		return StartSQLite(cfg.DB_PATH, gormConfig(cfg))
	}
	return StartGORM(cfg)
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM(cfg *config.Config) (*GORMStore, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DB_HOST,
		cfg.DB_USER_NAME,
		cfg.DB_PASSWORD,
		cfg.DB_NAME,
		cfg.DB_PORT,
		cfg.DB_SSL_MODE,
	)

	db, err := gorm.Open(postgres.Open(dsn), gormConfig(cfg))
	if err != nil {
		applog.Error().Err(err).Msg("unable to connect to PostgreSQL")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	applog.Info().Str("host", cfg.DB_HOST).Str("db", cfg.DB_NAME).Msg("connected to PostgreSQL")

	return &GORMStore{db: db}, nil
}

// StartSQLite opens a SQLite database with foreign keys enforced. Pass
// "file::memory:" for a throwaway in-process store. gcfg may be nil.
func StartSQLite(path string, gcfg *gorm.Config) (*GORMStore, error) {
	if gcfg == nil {
		gcfg = &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		}
	}

	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite allows one writer; a single connection also keeps an
	// in-memory database alive for the life of the pool.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return &GORMStore{db: db}, nil
}

func gormConfig(cfg *config.Config) *gorm.Config {
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	return &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            cfg.DB_DRIVER != "sqlite",
		TranslateError:         true,
	}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	applog.Info().Msg("running AutoMigrate")

	err := s.db.AutoMigrate(
		// Principals
		&model.Student{},
		&model.Admin{},

		// Catalogue
		&model.Course{},
		&model.Module{},
		&model.StudentCourse{},
		&model.AdminCourse{},

		// Messaging
		&model.Message{},

		// Payments
		&model.CheckoutSession{},

		// Token blacklist
		&model.RevokedToken{},

		// Audit & logging models
		&model.CronJobLog{},
		&model.AdminAuditLog{},
	)
	if err != nil {
		applog.Error().Err(err).Msg("AutoMigrate failed")
		return err
	}

	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in services and handlers
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
