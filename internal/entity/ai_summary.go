package entity

import (
	"time"

	"github.com/lib/pq"
)

// AISummary stores a machine-generated summary for a piece of content,
// unique per (content_type, content_id). High-confidence summaries are
// auto-approved; the rest wait for moderation.
type AISummary struct {
	ID              int64         `gorm:"primaryKey" json:"id"`
	ContentType     string        `gorm:"column:content_type;not null;uniqueIndex:uq_ai_summaries_content" json:"content_type"`
	ContentID       int64         `gorm:"column:content_id;not null;uniqueIndex:uq_ai_summaries_content" json:"content_id"`
	SummaryEn       string        `gorm:"column:summary_en" json:"summary_en"`
	ConfidenceScore float64       `gorm:"column:confidence_score" json:"confidence_score"`
	ModelName       string        `gorm:"column:model_name" json:"model_name"`
	SourceIDs       pq.Int64Array `gorm:"column:source_ids;type:integer[]" json:"source_ids"`
	IsApproved      bool          `gorm:"column:is_approved;default:false" json:"is_approved"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the AISummary model.
func (AISummary) TableName() string {
	return "ai_summaries"
}

// ModerationItem is a pending review entry for low-confidence content.
type ModerationItem struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	ContentType   string    `gorm:"column:content_type;not null" json:"content_type"`
	ContentID     int64     `gorm:"column:content_id;not null" json:"content_id"`
	Status        string    `gorm:"default:pending" json:"status"`
	RiskLevel     string    `gorm:"column:risk_level" json:"risk_level"`
	FlaggedReason string    `gorm:"column:flagged_reason" json:"flagged_reason"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the ModerationItem model.
func (ModerationItem) TableName() string {
	return "moderation_queue"
}
