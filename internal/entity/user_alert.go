package entity

import (
	"time"
)

// Alert condition operators.
const (
	AlertOperatorGT = "gt"
	AlertOperatorLT = "lt"
	AlertOperatorEQ = "eq"
)

// AlertTypePrice is the only alert type the evaluator currently handles.
const AlertTypePrice = "price"

// UserAlert is a user-defined alert evaluated on every pipeline cycle.
// LastTriggeredAt is stamped when the alert fires.
type UserAlert struct {
	ID                int64      `gorm:"primaryKey" json:"id"`
	UserID            int64      `gorm:"not null;index" json:"user_id"`
	AlertType         string     `gorm:"column:alert_type;not null" json:"alert_type"`
	CompanyID         int64      `gorm:"not null;index" json:"company_id"`
	ConditionOperator string     `gorm:"column:condition_operator" json:"condition_operator"`
	ConditionValue    float64    `gorm:"column:condition_value" json:"condition_value"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`
	LastTriggeredAt   *time.Time `gorm:"column:last_triggered_at" json:"last_triggered_at,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// TableName specifies the table name for the UserAlert model.
func (UserAlert) TableName() string {
	return "user_alerts"
}
