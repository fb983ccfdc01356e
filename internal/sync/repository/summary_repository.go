package repository

import (
	"context"
	"strings"

	"gcc-market-sync/internal/sync/dto"
)

// Summary confidence above this threshold is auto-approved; anything
// lower is queued for moderation.
const SummaryApprovalThreshold = 0.8

// SummaryRepository generates a summary for a piece of content. The
// contract stays stable whether backed by an AI provider or the
// deterministic fallback.
type SummaryRepository interface {
	GenerateSummary(ctx context.Context, title, content string) (*dto.SummaryResult, error)
}

// truncationSummaryRepository summarizes by truncating to the first 50
// words. Deterministic stand-in used when no AI provider is configured.
type truncationSummaryRepository struct{}

// NewTruncationSummaryRepository creates the fallback summarizer.
func NewTruncationSummaryRepository() SummaryRepository {
	return truncationSummaryRepository{}
}

func (truncationSummaryRepository) GenerateSummary(_ context.Context, title, content string) (*dto.SummaryResult, error) {
	words := strings.Fields(title + " " + content)
	if len(words) > 50 {
		words = words[:50]
	}

	return &dto.SummaryResult{
		Text:       strings.Join(words, " ") + "...",
		Confidence: 0.85,
		Model:      "truncation",
	}, nil
}
