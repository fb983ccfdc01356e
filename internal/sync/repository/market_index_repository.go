package repository

import (
	"context"
	"errors"

	"gcc-market-sync/internal/entity"

	"gorm.io/gorm"
)

// MarketIndexRepository defines access to the append-only index snapshot
// series.
type MarketIndexRepository interface {
	GetLatestByName(ctx context.Context, name string) (*entity.MarketIndex, error)
	Append(ctx context.Context, snapshot *entity.MarketIndex) error
}

// NewMarketIndexRepository creates a new instance of MarketIndexRepository.
func NewMarketIndexRepository(db *gorm.DB) MarketIndexRepository {
	return &marketIndexRepository{db: db}
}

type marketIndexRepository struct {
	db *gorm.DB
}

// GetLatestByName returns the most recent snapshot for an index, or nil
// when the series is empty.
func (r *marketIndexRepository) GetLatestByName(ctx context.Context, name string) (*entity.MarketIndex, error) {
	var snapshot entity.MarketIndex
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("timestamp DESC").
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Append inserts a new snapshot.
func (r *marketIndexRepository) Append(ctx context.Context, snapshot *entity.MarketIndex) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}
