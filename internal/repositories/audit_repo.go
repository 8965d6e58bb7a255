package repositories

import (
	"context"
	"time"

	"github.com/questboard/backend/internal/models"
	"go.uber.org/zap"
)

// AuditRepo writes audit entries as structured log lines under the
// "audit" logger.
type AuditRepo struct {
	log *zap.Logger
}

func NewAuditRepo(log *zap.Logger) *AuditRepo {
	return &AuditRepo{log: log.Named("audit")}
}

func (r *AuditRepo) Log(_ context.Context, entry models.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	fields := []zap.Field{
		zap.String("actor_type", entry.ActorType),
		zap.String("entity_type", entry.EntityType),
		zap.Time("created_at", entry.CreatedAt),
	}
	if entry.EntityID != "" {
		fields = append(fields, zap.String("entity_id", entry.EntityID))
	}
	if entry.RequestID != "" {
		fields = append(fields, zap.String("request_id", entry.RequestID))
	}
	if len(entry.Meta) > 0 {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}

	r.log.Info(entry.Action, fields...)
	return nil
}
