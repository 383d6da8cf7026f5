package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/utils/auth"
)

func newTestManager(t *testing.T) *CronManager {
	t.Helper()
	store, err := database.StartSQLite("file::memory:", nil)
	if err != nil {
		t.Fatalf("StartSQLite: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	db := store.GetDB()
	return NewCronManager(db, auth.NewBlacklistService(db))
}

func TestExpireCheckoutSessions(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	old := model.CheckoutSession{OrderID: "old", StudentID: 1, CourseID: 1, Amount: 500, Status: model.CheckoutStatusOpen}
	fresh := model.CheckoutSession{OrderID: "fresh", StudentID: 1, CourseID: 2, Amount: 500, Status: model.CheckoutStatusOpen}
	for _, s := range []*model.CheckoutSession{&old, &fresh} {
		if err := m.db.Create(s).Error; err != nil {
			t.Fatalf("create session: %v", err)
		}
	}
	if err := m.db.Model(&old).UpdateColumn("created_at", time.Now().Add(-48*time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	n, err := m.ExpireCheckoutSessions(ctx)
	if err != nil {
		t.Fatalf("ExpireCheckoutSessions: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 expired session, got %d", n)
	}

	var reloaded model.CheckoutSession
	m.db.Where("order_id = ?", "fresh").First(&reloaded)
	if reloaded.Status != model.CheckoutStatusOpen {
		t.Fatalf("fresh session should stay open, got %s", reloaded.Status)
	}
}

func TestRunRecordsJobLog(t *testing.T) {
	m := newTestManager(t)

	m.run("ok_job", func(ctx context.Context) (int64, error) { return 3, nil })
	m.run("bad_job", func(ctx context.Context) (int64, error) { return 0, errors.New("boom") })

	var logs []model.CronJobLog
	if err := m.db.Order("id").Find(&logs).Error; err != nil {
		t.Fatalf("load logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 log rows, got %d", len(logs))
	}
	if logs[0].Status != "completed" || logs[0].Affected != 3 || logs[0].CompletedAt == nil {
		t.Fatalf("unexpected ok log: %+v", logs[0])
	}
	if logs[1].Status != "failed" || logs[1].ErrorMsg != "boom" {
		t.Fatalf("unexpected failed log: %+v", logs[1])
	}
}

func TestRegisterJobs(t *testing.T) {
	m := newTestManager(t)
	if err := m.registerJobs(); err != nil {
		t.Fatalf("registerJobs: %v", err)
	}
	if got := len(m.cron.Entries()); got != 2 {
		t.Fatalf("expected 2 jobs, got %d", got)
	}
}
