package entity

import (
	"time"
)

// Fundamental is one reported financial period for a company, unique per
// (company_id, period_type, fiscal_year, fiscal_quarter).
type Fundamental struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	CompanyID     int64      `gorm:"not null;uniqueIndex:uq_fundamentals_period" json:"company_id"`
	PeriodType    string     `gorm:"column:period_type;not null;uniqueIndex:uq_fundamentals_period" json:"period_type"`
	FiscalYear    int        `gorm:"column:fiscal_year;not null;uniqueIndex:uq_fundamentals_period" json:"fiscal_year"`
	FiscalQuarter *int       `gorm:"column:fiscal_quarter;uniqueIndex:uq_fundamentals_period" json:"fiscal_quarter,omitempty"`
	Revenue       *float64   `json:"revenue,omitempty"`
	NetIncome     *float64   `gorm:"column:net_income" json:"net_income,omitempty"`
	EPS           *float64   `gorm:"column:eps" json:"eps,omitempty"`
	TotalAssets   *float64   `gorm:"column:total_assets" json:"total_assets,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Fundamental model.
func (Fundamental) TableName() string {
	return "fundamentals"
}
