package repositories

import (
	"context"

	"github.com/qmc/portal/internal/app/models"
)

// AuditRepository stores the audit trail, newest entry first
type AuditRepository struct {
	docs *Documents
}

func NewAuditRepository(docs *Documents) *AuditRepository {
	return &AuditRepository{docs: docs}
}

func (r *AuditRepository) List(ctx context.Context) ([]models.LogEntry, error) {
	return loadOr(ctx, r.docs, models.KeyAuditLogs, func() []models.LogEntry {
		return []models.LogEntry{}
	})
}

func (r *AuditRepository) Save(ctx context.Context, entries []models.LogEntry) error {
	return r.docs.Save(ctx, models.KeyAuditLogs, entries)
}

// Clear removes the trail entirely
func (r *AuditRepository) Clear(ctx context.Context) error {
	return r.docs.Delete(ctx, models.KeyAuditLogs)
}
