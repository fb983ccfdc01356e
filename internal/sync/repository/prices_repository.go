package repository

import (
	"context"

	"gcc-market-sync/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PricesRepository defines write/read access to daily OHLC bars.
type PricesRepository interface {
	UpsertDailyBar(ctx context.Context, bar *entity.PriceOHLC) error
	GetLatestClose(ctx context.Context, companyID int64) (float64, error)
}

// NewPricesRepository creates a new instance of PricesRepository.
func NewPricesRepository(db *gorm.DB) PricesRepository {
	return &pricesRepository{db: db}
}

type pricesRepository struct {
	db *gorm.DB
}

// UpsertDailyBar inserts or updates the bar keyed on
// (company_id, trade_date). Re-ingesting the same date overwrites close
// and volume but widens high/low to the running extremes. The widening
// happens inside the upsert statement so concurrent writers cannot race a
// read-modify-write.
func (r *pricesRepository) UpsertDailyBar(ctx context.Context, bar *entity.PriceOHLC) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "company_id"}, {Name: "trade_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"close_price": bar.ClosePrice,
			"volume":      bar.Volume,
			"high_price":  gorm.Expr("GREATEST(prices_ohlc.high_price, EXCLUDED.high_price)"),
			"low_price":   gorm.Expr("LEAST(prices_ohlc.low_price, EXCLUDED.low_price)"),
		}),
	}).Create(bar).Error
}

// GetLatestClose returns the most recent close price for a company.
// Returns gorm.ErrRecordNotFound when no bars exist.
func (r *pricesRepository) GetLatestClose(ctx context.Context, companyID int64) (float64, error) {
	var bar entity.PriceOHLC
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("trade_date DESC").
		First(&bar).Error
	if err != nil {
		return 0, err
	}
	return bar.ClosePrice, nil
}
