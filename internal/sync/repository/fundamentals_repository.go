package repository

import (
	"context"

	"gcc-market-sync/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FundamentalsRepository defines write access to reported financials.
type FundamentalsRepository interface {
	Upsert(ctx context.Context, fundamental *entity.Fundamental) error
}

// NewFundamentalsRepository creates a new instance of
// FundamentalsRepository.
func NewFundamentalsRepository(db *gorm.DB) FundamentalsRepository {
	return &fundamentalsRepository{db: db}
}

type fundamentalsRepository struct {
	db *gorm.DB
}

// Upsert inserts or updates a period keyed on
// (company_id, period_type, fiscal_year, fiscal_quarter).
func (r *fundamentalsRepository) Upsert(ctx context.Context, fundamental *entity.Fundamental) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "company_id"},
			{Name: "period_type"},
			{Name: "fiscal_year"},
			{Name: "fiscal_quarter"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"revenue", "net_income", "eps", "total_assets", "published_at",
		}),
	}).Create(fundamental).Error
}
