package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gcc-market-sync/internal/sync/dto"
	"gcc-market-sync/pkg/logger"

	"golang.org/x/time/rate"
)

// HTTPQuoteSource fetches quotes from an Alpha Vantage style HTTP API.
// Per-ticker failures are collected so one bad symbol cannot sink the
// batch; auth and rate-limit responses abort early since retrying the
// remaining symbols would only burn quota.
type HTTPQuoteSource struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewHTTPQuoteSource creates a quote source against the given base URL.
func NewHTTPQuoteSource(name, baseURL, apiKey string, maxRequestsPerMinute int, log *logger.Logger) *HTTPQuoteSource {
	if maxRequestsPerMinute <= 0 {
		maxRequestsPerMinute = 60
	}
	return &HTTPQuoteSource{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxRequestsPerMinute)), 1),
		logger:  log,
	}
}

// Name implements StockSource.
func (s *HTTPQuoteSource) Name() string {
	return s.name
}

type quotePayload struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// FetchQuotes requests one quote per ticker, rate limited against the
// provider quota.
func (s *HTTPQuoteSource) FetchQuotes(ctx context.Context, tickers []string) ([]dto.StockQuote, error) {
	var (
		quotes  []dto.StockQuote
		lastErr error
	)

	for _, ticker := range tickers {
		if err := s.limiter.Wait(ctx); err != nil {
			return quotes, &SourceError{Source: s.name, Kind: KindUnavailable, Err: err}
		}

		quote, err := s.fetchQuote(ctx, ticker)
		if err != nil {
			kind := KindOf(err)
			if kind == KindAuth || kind == KindRateLimited {
				return quotes, err
			}
			s.logger.Error("Failed to fetch quote",
				logger.ErrorField(err), logger.StringField("ticker", ticker))
			lastErr = err
			continue
		}
		quotes = append(quotes, *quote)
	}

	return quotes, lastErr
}

func (s *HTTPQuoteSource) fetchQuote(ctx context.Context, ticker string) (*dto.StockQuote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s&apikey=%s",
		s.baseURL, url.QueryEscape(ticker), url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &SourceError{Source: s.name, Kind: KindUnavailable, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &SourceError{Source: s.name, Kind: KindAuth, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &SourceError{Source: s.name, Kind: KindRateLimited, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return nil, &SourceError{Source: s.name, Kind: KindUnavailable, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var payload quotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &SourceError{Source: s.name, Kind: KindUnavailable, Err: fmt.Errorf("decode quote: %w", err)}
	}

	return &dto.StockQuote{
		Ticker:        ticker,
		Price:         payload.Price,
		Open:          payload.Open,
		High:          payload.High,
		Low:           payload.Low,
		Change:        payload.Change,
		ChangePercent: payload.ChangePercent,
		Volume:        payload.Volume,
	}, nil
}

var _ StockSource = (*HTTPQuoteSource)(nil)
