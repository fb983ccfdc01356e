package fetcher

import (
	"context"
	"math/rand"
	"sync"

	"gcc-market-sync/internal/sync/dto"
	"gcc-market-sync/pkg/common"
	"gcc-market-sync/pkg/utils"
)

// MockSource generates plausible market data without touching any external
// service. Seeded so repeat runs and tests are reproducible. Implements
// StockSource, NewsSource and IndexSource.
type MockSource struct {
	mu  sync.Mutex
	rng *rand.Rand

	indexBase map[string]float64
}

// NewMockSource creates a seeded mock source.
func NewMockSource(seed int64) *MockSource {
	return &MockSource{
		rng: rand.New(rand.NewSource(seed)),
		indexBase: map[string]float64{
			"TASI": 12450.75,
			"NOMU": 25680.20,
			"MT30": 1850.40,
		},
	}
}

// Name implements the source interfaces.
func (m *MockSource) Name() string {
	return "mock"
}

// FetchQuotes generates one quote per requested ticker.
func (m *MockSource) FetchQuotes(ctx context.Context, tickers []string) ([]dto.StockQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	quotes := make([]dto.StockQuote, 0, len(tickers))
	for _, ticker := range tickers {
		basePrice := 100 + m.rng.Float64()*400
		change := (m.rng.Float64() - 0.5) * 10
		quotes = append(quotes, dto.StockQuote{
			Ticker:        ticker,
			Price:         basePrice,
			Open:          basePrice - change,
			High:          basePrice + m.rng.Float64()*2,
			Low:           basePrice - m.rng.Float64()*2,
			Change:        change,
			ChangePercent: (change / basePrice) * 100,
			Volume:        int64(1_000_000 + m.rng.Float64()*10_000_000),
		})
	}
	return quotes, nil
}

// FetchArticles returns a fixed set of article templates tagged with the
// tickers they mention.
func (m *MockSource) FetchArticles(ctx context.Context, _ []string) ([]dto.NewsArticle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := utils.TimeNowRiyadh()
	return []dto.NewsArticle{
		{
			Title:       "Saudi Market Shows Strong Performance in Q4",
			Summary:     "The Saudi stock market demonstrated robust growth in the final quarter.",
			Content:     "The Saudi stock market demonstrated robust growth in the final quarter, with major indices posting significant gains. Strong performance in the energy and banking sectors drove the overall market upward.",
			URL:         "https://example.com/news/saudi-market-q4",
			SourceName:  "Auto-Scraped",
			PublishedAt: now,
			Tickers:     []string{"2222.SR", "1120.SR"},
		},
		{
			Title:       "Major Bank Reports Quarterly Earnings Beat",
			Summary:     "Leading financial institution exceeds analyst expectations.",
			Content:     "A leading Saudi bank reported quarterly earnings that exceeded analyst expectations, driven by strong loan growth and improved net interest margins. Digital banking initiatives contributed to reduced operational costs.",
			URL:         "https://example.com/news/bank-earnings-beat",
			SourceName:  "Auto-Scraped",
			PublishedAt: now,
			Tickers:     []string{"1120.SR"},
		},
	}, nil
}

// FetchIndices random-walks the tracked Saudi indices around their base
// values.
func (m *MockSource) FetchIndices(ctx context.Context) ([]dto.IndexQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return []dto.IndexQuote{
		{Name: "TASI", Market: common.MarketSaudi, Value: m.indexBase["TASI"] + (m.rng.Float64()*200 - 100), Volume: 8_500_000_000},
		{Name: "NOMU", Market: common.MarketSaudi, Value: m.indexBase["NOMU"] + (m.rng.Float64()*100 - 50), Volume: 450_000_000},
		{Name: "MT30", Market: common.MarketSaudi, Value: m.indexBase["MT30"] + (m.rng.Float64()*30 - 15), Volume: 3_200_000_000},
	}, nil
}

// interface checks
var (
	_ StockSource = (*MockSource)(nil)
	_ NewsSource  = (*MockSource)(nil)
	_ IndexSource = (*MockSource)(nil)
)
