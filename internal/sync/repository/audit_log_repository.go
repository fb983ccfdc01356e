package repository

import (
	"context"

	"gcc-market-sync/internal/entity"

	"gorm.io/gorm"
)

// AuditLogRepository records administrative actions.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
}

// NewAuditLogRepository creates a new instance of AuditLogRepository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

type auditLogRepository struct {
	db *gorm.DB
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
