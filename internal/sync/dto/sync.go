package dto

import (
	"time"
)

// SyncResponse is the response body of both refresh entry points.
type SyncResponse struct {
	Success   bool        `json:"success"`
	Timestamp time.Time   `json:"timestamp"`
	Results   SyncResults `json:"results"`
}

// SyncResults carries the per-cycle counts.
type SyncResults struct {
	StocksUpdated int      `json:"stocksUpdated"`
	NewsAdded     int      `json:"newsAdded"`
	Errors        []string `json:"errors"`
}

// SyncErrorResponse is returned when a cycle fails unexpectedly.
type SyncErrorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
