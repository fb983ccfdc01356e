package entity

import (
	"time"
)

// User is a registered account. The pipeline only reads users to resolve
// alert ownership and admin roles; account management lives elsewhere.
type User struct {
	ID                 int64      `gorm:"primaryKey" json:"id"`
	Email              string     `gorm:"unique;not null" json:"email"`
	PasswordHash       string     `gorm:"column:password_hash" json:"-"`
	FullName           string     `gorm:"column:full_name" json:"full_name"`
	Role               string     `gorm:"default:registered" json:"role"`
	SubscriptionTier   string     `gorm:"column:subscription_tier;default:free" json:"subscription_tier"`
	LanguagePreference string     `gorm:"column:language_preference;default:en" json:"language_preference"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt        *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
