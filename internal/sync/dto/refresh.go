package dto

import (
	"time"
)

// StockQuote is a normalized quote produced by a StockSource.
type StockQuote struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// NewsArticle is a normalized article produced by a NewsSource. Tickers
// lists the companies the article mentions; unknown tickers are ignored
// during linking.
type NewsArticle struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	SourceName  string    `json:"source_name"`
	PublishedAt time.Time `json:"published_at"`
	Tickers     []string  `json:"tickers"`
}

// IndexQuote is a snapshot value for a market index as read from a
// provider, before change computation.
type IndexQuote struct {
	Name   string  `json:"name"`
	Market string  `json:"market"`
	Value  float64 `json:"value"`
	Volume int64   `json:"volume"`
}

// RefreshResult aggregates one refresh cycle. Success is true iff the
// error list is empty; counts reflect rows actually written.
type RefreshResult struct {
	Success       bool     `json:"success"`
	StocksUpdated int      `json:"stocksUpdated"`
	NewsAdded     int      `json:"newsAdded"`
	Errors        []string `json:"errors"`
}
