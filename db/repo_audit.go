package db

import (
	"context"

	"asset_circulation_engine/models"

	"github.com/google/uuid"
)

// LogAudit appends an audit entry. Callers invoke it after a successful
// commit and ignore the error; a failed operation leaves no trail and a
// failed audit write never fails the operation.
func (r *Repo) LogAudit(ctx context.Context, action, entityType, entityID, details, actorID string) error {
	actorName := ""
	if actorID != "" {
		if u, err := r.FindUserByID(ctx, actorID); err == nil {
			actorName = u.Username
		}
	}
	return r.DB.WithContext(ctx).Create(&models.AuditLog{
		ID:         uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		ActorID:    actorID,
		ActorName:  actorName,
	}).Error
}

func (r *Repo) ListAuditLogs(ctx context.Context, entityType string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	tx := r.DB.WithContext(ctx).Model(&models.AuditLog{}).Order("created_at DESC").Limit(limit)
	if entityType != "" {
		tx = tx.Where("entity_type = ?", entityType)
	}
	var logs []models.AuditLog
	err := tx.Find(&logs).Error
	return logs, err
}
