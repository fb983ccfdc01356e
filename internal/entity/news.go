package entity

import (
	"time"
)

// NewsItem is an ingested news article with its sentiment annotation.
// Immutable once published except for moderation fields.
type NewsItem struct {
	ID              int64         `gorm:"primaryKey" json:"id"`
	TitleEn         string        `gorm:"column:title_en;not null" json:"title_en"`
	TitleAr         *string       `gorm:"column:title_ar" json:"title_ar,omitempty"`
	SummaryEn       string        `gorm:"column:summary_en" json:"summary_en"`
	ContentEn       string        `gorm:"column:content_en" json:"content_en"`
	SourceName      string        `gorm:"column:source_name" json:"source_name"`
	OriginalURL     string        `gorm:"column:original_url" json:"original_url"`
	PublishedAt     time.Time     `gorm:"not null" json:"published_at"`
	Sentiment       string        `json:"sentiment"`
	SentimentScore  float64       `json:"sentiment_score"`
	ConfidenceScore float64       `json:"confidence_score"`
	IsPublished     bool          `gorm:"default:false" json:"is_published"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	Companies       []NewsCompany `gorm:"foreignKey:NewsID" json:"companies,omitempty"`
}

// TableName specifies the table name for the NewsItem model.
func (NewsItem) TableName() string {
	return "news_items"
}

// NewsCompany links a news item to a mentioned company with a relevance
// score. Composite primary key (news_id, company_id).
type NewsCompany struct {
	NewsID         int64   `gorm:"primaryKey" json:"news_id"`
	CompanyID      int64   `gorm:"primaryKey" json:"company_id"`
	RelevanceScore float64 `json:"relevance_score"`
}

// TableName specifies the table name for the NewsCompany model.
func (NewsCompany) TableName() string {
	return "news_companies"
}
