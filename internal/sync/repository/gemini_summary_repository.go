package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gcc-market-sync/internal/sync/config"
	"gcc-market-sync/internal/sync/dto"
	"gcc-market-sync/pkg/logger"
	"gcc-market-sync/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiSummaryRepository generates summaries with the Google Gemini API,
// throttled against both request and token quotas.
type geminiSummaryRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	genAiClient    *genai.Client
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
}

// NewGeminiSummaryRepository creates a Gemini-backed SummaryRepository.
func NewGeminiSummaryRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) SummaryRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)

	return &geminiSummaryRepository{
		cfg:            cfg,
		logger:         log,
		genAiClient:    genAiClient,
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

type geminiSummaryPayload struct {
	Summary    string  `json:"summary"`
	Confidence float64 `json:"confidence"`
}

func buildSummaryPrompt(title, content string) string {
	return fmt.Sprintf(`Summarize ONLY what exists in the following article. No assumptions.
Respond with a JSON object: {"summary": "<3 sentences max>", "confidence": <0..1>}

Title: %s

%s`, title, content)
}

// GenerateSummary asks Gemini for a summary and a self-reported
// confidence.
func (r *geminiSummaryRepository) GenerateSummary(ctx context.Context, title, content string) (*dto.SummaryResult, error) {
	prompt := buildSummaryPrompt(title, content)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}

	if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
		return nil, fmt.Errorf("failed to wait for token limit: %w", err)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	r.logger.Debug("Requesting Gemini summary",
		logger.IntField("total_tokens", int(tokenResp.TotalTokens)),
		logger.IntField("tokens_remaining", r.tokenLimiter.GetRemaining()))

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	payload, err := parseGeminiSummary(resp.Text())
	if err != nil {
		return nil, err
	}

	return &dto.SummaryResult{
		Text:       payload.Summary,
		Confidence: payload.Confidence,
		Model:      r.cfg.Gemini.Model,
	}, nil
}

// parseGeminiSummary tolerates markdown code fences around the JSON body.
func parseGeminiSummary(text string) (*geminiSummaryPayload, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload geminiSummaryPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}
	if payload.Summary == "" {
		return nil, fmt.Errorf("gemini response missing summary")
	}
	return &payload, nil
}
