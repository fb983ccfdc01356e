package entity

import (
	"time"
)

// Company is a listed company on one of the tracked GCC markets.
type Company struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Ticker    string    `gorm:"unique;not null" json:"ticker"`
	NameEn    string    `gorm:"column:name_en;not null" json:"name_en"`
	NameAr    *string   `gorm:"column:name_ar" json:"name_ar,omitempty"`
	Market    string    `gorm:"not null" json:"market"`
	Sector    *string   `json:"sector,omitempty"`
	Industry  *string   `json:"industry,omitempty"`
	MarketCap *float64  `json:"market_cap,omitempty"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Company model.
func (Company) TableName() string {
	return "companies"
}
