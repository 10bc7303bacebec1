package repository

import (
	"context"

	"gorm.io/gorm"

	"frota-service/internal/model"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create insere a entrada e descarta as mais antigas além do teto do escopo.
func (r *AuditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(
		`DELETE FROM audit_logs
		 WHERE scope = ? AND id NOT IN (
			SELECT id FROM audit_logs WHERE scope = ? ORDER BY id DESC LIMIT ?
		 )`,
		entry.Scope, entry.Scope, entry.Scope.Cap(),
	).Error
}

func (r *AuditRepository) List(ctx context.Context, scope model.AuditScope, limit int) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	query := r.db.WithContext(ctx).
		Where("scope = ?", scope).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
