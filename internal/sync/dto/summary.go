package dto

// SummaryResult is a generated summary with the provider's confidence.
type SummaryResult struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Model      string  `json:"model"`
}
