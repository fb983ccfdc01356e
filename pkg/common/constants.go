package common

const (
	// RedisKeyLastPrice caches the most recent quote per ticker.
	RedisKeyLastPrice = "last_price:%s"

	// Content types for AI summaries and the moderation queue.
	ContentTypeNews = "news"

	// Moderation risk levels.
	RiskLevelMedium = "medium"

	// Markets tracked by the pipeline.
	MarketSaudi = "saudi"
)
