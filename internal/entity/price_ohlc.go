package entity

import (
	"time"
)

// PriceOHLC is one day's open/high/low/close/volume bar for a company,
// unique per (company_id, trade_date).
type PriceOHLC struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	CompanyID  int64     `gorm:"not null;uniqueIndex:uq_prices_company_date" json:"company_id"`
	TradeDate  time.Time `gorm:"type:date;not null;uniqueIndex:uq_prices_company_date" json:"trade_date"`
	OpenPrice  float64   `gorm:"column:open_price" json:"open_price"`
	HighPrice  float64   `gorm:"column:high_price" json:"high_price"`
	LowPrice   float64   `gorm:"column:low_price" json:"low_price"`
	ClosePrice float64   `gorm:"column:close_price" json:"close_price"`
	Volume     int64     `json:"volume"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the PriceOHLC model.
func (PriceOHLC) TableName() string {
	return "prices_ohlc"
}
