package cron

import (
	"context"
	"time"

	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/auth"
	"github.com/moringa/darasa-api/utils/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	jobCleanupRevokedTokens = "cleanup_revoked_tokens"
	jobExpireCheckouts      = "expire_checkout_sessions"

	// Hosted checkout pages stop accepting payment after a day
	checkoutSessionTTL = 24 * time.Hour
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron      *cron.Cron
	db        *gorm.DB
	blacklist *auth.BlacklistService
	now       func() time.Time
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, blacklist *auth.BlacklistService) *CronManager {
	return &CronManager{
		cron:      cron.New(cron.WithSeconds()),
		db:        db,
		blacklist: blacklist,
		now:       time.Now,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	logger.Info().Int("jobs", len(m.cron.Entries())).Msg("cron jobs started")
	return nil
}

// Stop waits for running jobs to finish
func (m *CronManager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every hour: drop blacklist rows for tokens that have expired anyway
	if _, err := m.cron.AddFunc("0 0 * * * *", func() {
		m.run(jobCleanupRevokedTokens, m.CleanupRevokedTokens)
	}); err != nil {
		return err
	}

	// Every 30 minutes: close checkout sessions the gateway no longer honours
	if _, err := m.cron.AddFunc("0 */30 * * * *", func() {
		m.run(jobExpireCheckouts, m.ExpireCheckoutSessions)
	}); err != nil {
		return err
	}

	return nil
}

// CleanupRevokedTokens deletes expired blacklist entries
func (m *CronManager) CleanupRevokedTokens(ctx context.Context) (int64, error) {
	return m.blacklist.CleanupExpiredTokens(ctx)
}

// ExpireCheckoutSessions marks open sessions older than a day as expired
func (m *CronManager) ExpireCheckoutSessions(ctx context.Context) (int64, error) {
	cutoff := m.now().Add(-checkoutSessionTTL)
	result := m.db.WithContext(ctx).
		Model(&model.CheckoutSession{}).
		Where("status = ? AND created_at < ?", model.CheckoutStatusOpen, cutoff).
		Update("status", model.CheckoutStatusExpired)
	return result.RowsAffected, result.Error
}

// run executes job with a timeout and records the outcome in cron_job_logs
func (m *CronManager) run(name string, job func(ctx context.Context) (int64, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	entry := model.CronJobLog{JobName: name, Status: "running", StartedAt: m.now()}
	if err := m.db.WithContext(ctx).Create(&entry).Error; err != nil {
		logger.Warn().Err(err).Str("job", name).Msg("failed to record cron job start")
	}

	affected, err := job(ctx)

	completed := m.now()
	updates := map[string]interface{}{
		"completed_at": completed,
		"duration":     completed.Sub(entry.StartedAt).Milliseconds(),
		"affected":     affected,
	}
	if err != nil {
		updates["status"] = "failed"
		updates["error_msg"] = err.Error()
		logger.Error().Err(err).Str("job", name).Msg("cron job failed")
	} else {
		updates["status"] = "completed"
		logger.Info().Str("job", name).Int64("affected", affected).Msg("cron job completed")
	}

	if entry.ID != 0 {
		m.db.WithContext(ctx).Model(&model.CronJobLog{}).Where("id = ?", entry.ID).Updates(updates)
	}
}
