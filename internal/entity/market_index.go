package entity

import (
	"time"
)

// MarketIndex is one snapshot of an index value. The series is append
// only; change fields are computed against the previous snapshot with the
// same name at insert time.
type MarketIndex struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;index" json:"name"`
	Market        string    `gorm:"not null" json:"market"`
	Value         float64   `gorm:"not null" json:"value"`
	ChangeValue   float64   `gorm:"column:change_value" json:"change_value"`
	ChangePercent float64   `gorm:"column:change_percent" json:"change_percent"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `gorm:"not null;index" json:"timestamp"`
}

// TableName specifies the table name for the MarketIndex model.
func (MarketIndex) TableName() string {
	return "market_indices"
}
