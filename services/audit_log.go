package services

import (
	"context"
	"sync"
	"time"

	"food-ordering-api/models"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mock_audit_store_test.go -package=services food-ordering-api/services AuditStore

// AuditStore persists admin log entries.
type AuditStore interface {
	Create(ctx context.Context, l *models.AdminLog) error
	Recent(ctx context.Context, limit int) ([]models.AdminLog, error)
}

const (
	auditTimeout      = 5 * time.Second
	DefaultAuditLimit = 50
)

// AuditLog records privileged mutations without blocking the caller. A
// failed append is logged and dropped.
type AuditLog struct {
	store AuditStore
	log   *logrus.Entry
	wg    sync.WaitGroup
}

func NewAuditLog(store AuditStore, log *logrus.Entry) *AuditLog {
	return &AuditLog{store: store, log: log}
}

// Record appends an entry in the background. The request context only
// contributes its values; cancelling it does not abort the append.
func (a *AuditLog) Record(ctx context.Context, adminEmail, action string, target *uint) {
	entry := &models.AdminLog{AdminEmail: adminEmail, Action: action, TargetUserID: target}
	bg := context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ctx, cancel := context.WithTimeout(bg, auditTimeout)
		defer cancel()

		if err := a.store.Create(ctx, entry); err != nil {
			a.log.WithFields(logrus.Fields{
				"action":      "audit_append_failed",
				"admin_email": adminEmail,
				"audit":       action,
			}).WithError(err).Error("failed to record admin action")
		}
	}()
}

// Wait blocks until every pending append has finished.
func (a *AuditLog) Wait() {
	a.wg.Wait()
}

func (a *AuditLog) Recent(ctx context.Context, limit int) ([]models.AdminLog, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	logs, err := a.store.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.AdminLog{}
	}
	return logs, nil
}
