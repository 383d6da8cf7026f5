package database

import (
	"errors"
	"fmt"

	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/auth"
	"github.com/moringa/darasa-api/utils/logger"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db         *gorm.DB
	bcryptCost int
}

// SeedOptions carries the bootstrap admin credentials
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
	BcryptCost    int
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, bcryptCost int) *Seeder {
	return &Seeder{db: db, bcryptCost: bcryptCost}
}

// SeedAll runs all seed functions. Every step is idempotent.
func (s *Seeder) SeedAll(adminEmail, adminPassword string) error {
	logger.Info().Msg("starting database seeding")

	admin, err := s.SeedAdmin(adminEmail, adminPassword)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if admin == nil {
		logger.Warn().Msg("ADMIN_EMAIL and ADMIN_PASSWORD not set, skipping admin and demo course")
		return nil
	}

	if err := s.SeedDemoCourse(admin); err != nil {
		return fmt.Errorf("failed to seed demo course: %w", err)
	}

	logger.Info().Msg("database seeding completed")
	return nil
}

// SeedAdmin creates the bootstrap admin unless it already exists. It
// returns nil when no credentials are configured.
func (s *Seeder) SeedAdmin(email, password string) (*model.Admin, error) {
	if email == "" || password == "" {
		return nil, nil
	}

	var admin model.Admin
	err := s.db.Where("email = ?", email).First(&admin).Error
	if err == nil {
		logger.Info().Str("email", email).Msg("admin already exists, skipping")
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin = model.Admin{Email: email, PasswordHash: hash}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}

	logger.Info().Str("email", admin.Email).Msg("created admin")
	return &admin, nil
}

// SeedDemoCourse gives a fresh admin one course to browse
func (s *Seeder) SeedDemoCourse(admin *model.Admin) error {
	var count int64
	if err := s.db.Model(&model.Course{}).Where("admin_id = ?", admin.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info().Int64("courses", count).Msg("admin already has courses, skipping demo course")
		return nil
	}

	course := model.Course{
		Title:       "Introduction to Programming",
		Description: "Variables, control flow and functions from first principles.",
		Price:       49.99,
		AdminID:     admin.ID,
		Modules: []model.Module{
			{Title: "Getting started", Media: "https://example.com/media/intro.mp4", Notes: "Install the toolchain."},
			{Title: "Control flow", Media: "https://example.com/media/control-flow.mp4"},
			{Title: "Functions", Media: "https://example.com/media/functions.mp4"},
		},
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		return tx.Create(&model.AdminCourse{AdminID: admin.ID, CourseID: course.ID}).Error
	})
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB, opts SeedOptions) error {
	return NewSeeder(db, opts.BcryptCost).SeedAll(opts.AdminEmail, opts.AdminPassword)
}
