package repository

import (
	"context"
	"time"

	"gcc-market-sync/internal/entity"

	"gorm.io/gorm"
)

// AlertsRepository defines access to user-defined alerts.
type AlertsRepository interface {
	GetActive(ctx context.Context, alertType string) ([]entity.UserAlert, error)
	MarkTriggered(ctx context.Context, alertID int64, triggeredAt time.Time) error
}

// NewAlertsRepository creates a new instance of AlertsRepository.
func NewAlertsRepository(db *gorm.DB) AlertsRepository {
	return &alertsRepository{db: db}
}

type alertsRepository struct {
	db *gorm.DB
}

// GetActive returns active alerts of the given type with their owning
// user and company preloaded.
func (r *alertsRepository) GetActive(ctx context.Context, alertType string) ([]entity.UserAlert, error) {
	var alerts []entity.UserAlert
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Company").
		Where("is_active = ? AND alert_type = ?", true, alertType).
		Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// MarkTriggered stamps last_triggered_at.
func (r *alertsRepository) MarkTriggered(ctx context.Context, alertID int64, triggeredAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.UserAlert{}).
		Where("id = ?", alertID).
		Update("last_triggered_at", triggeredAt).Error
}
