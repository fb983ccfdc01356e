package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records administrative actions such as manual sync triggers.
type AuditLog struct {
	ID         int64          `gorm:"primaryKey" json:"id"`
	UserID     *int64         `gorm:"index" json:"user_id,omitempty"`
	Action     string         `gorm:"not null" json:"action"`
	EntityType string         `gorm:"column:entity_type" json:"entity_type"`
	EntityID   *int64         `gorm:"column:entity_id" json:"entity_id,omitempty"`
	Details    datatypes.JSON `json:"details,omitempty"`
	IPAddress  string         `gorm:"column:ip_address" json:"ip_address,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the AuditLog model.
func (AuditLog) TableName() string {
	return "audit_logs"
}
