package repository

import (
	"context"
	"fmt"

	"gcc-market-sync/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsRepository defines write access to news items and their company
// links.
type NewsRepository interface {
	// CreateWithLinks inserts the article and its company links in one
	// transaction. Returns false when the article already exists (matched
	// on original_url), in which case nothing is written.
	CreateWithLinks(ctx context.Context, item *entity.NewsItem, companyIDs []int64, relevance float64) (bool, error)
}

// NewNewsRepository creates a new instance of NewsRepository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

type newsRepository struct {
	db *gorm.DB
}

func (r *newsRepository) CreateWithLinks(ctx context.Context, item *entity.NewsItem, companyIDs []int64, relevance float64) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txInner := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "original_url"}},
			DoNothing: true,
		}).Create(item)
		if txInner.Error != nil {
			return txInner.Error
		}

		// Already ingested; re-runs within the same day must not duplicate
		// rows or links.
		if txInner.RowsAffected == 0 {
			return nil
		}
		created = true

		if len(companyIDs) == 0 {
			return nil
		}

		links := make([]entity.NewsCompany, 0, len(companyIDs))
		for _, companyID := range companyIDs {
			links = append(links, entity.NewsCompany{
				NewsID:         item.ID,
				CompanyID:      companyID,
				RelevanceScore: relevance,
			})
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return fmt.Errorf("insert news_companies: %w", err)
		}
		return nil
	})
	return created, err
}
