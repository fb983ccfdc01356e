package repository

import (
	"context"

	"gcc-market-sync/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AISummaryRepository defines access to generated summaries and the
// moderation queue.
type AISummaryRepository interface {
	UpsertSummary(ctx context.Context, summary *entity.AISummary) error
	EnqueueModeration(ctx context.Context, item *entity.ModerationItem) error
}

// NewAISummaryRepository creates a new instance of AISummaryRepository.
func NewAISummaryRepository(db *gorm.DB) AISummaryRepository {
	return &aiSummaryRepository{db: db}
}

type aiSummaryRepository struct {
	db *gorm.DB
}

// UpsertSummary inserts or refreshes the summary keyed on
// (content_type, content_id).
func (r *aiSummaryRepository) UpsertSummary(ctx context.Context, summary *entity.AISummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "content_type"}, {Name: "content_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"summary_en", "confidence_score", "model_name", "is_approved",
		}),
	}).Create(summary).Error
}

// EnqueueModeration adds a pending review entry.
func (r *aiSummaryRepository) EnqueueModeration(ctx context.Context, item *entity.ModerationItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}
