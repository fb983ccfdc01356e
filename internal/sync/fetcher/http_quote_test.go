package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gcc-market-sync/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuoteTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return log
}

func quoteServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestHTTPQuoteSourceFetchesQuotes(t *testing.T) {
	server := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))

		json.NewEncoder(w).Encode(quotePayload{
			Symbol: r.URL.Query().Get("symbol"),
			Price:  31.5,
			Open:   31.0,
			High:   32.0,
			Low:    30.8,
			Volume: 1_000_000,
		})
	})

	source := NewHTTPQuoteSource("test", server.URL, "test-key", 600, newQuoteTestLogger(t))
	quotes, err := source.FetchQuotes(context.Background(), []string{"2222.SR", "1120.SR"})

	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, "2222.SR", quotes[0].Ticker)
	assert.Equal(t, 31.5, quotes[0].Price)
	assert.Equal(t, int64(1_000_000), quotes[0].Volume)
}

func TestHTTPQuoteSourceAbortsOnAuthFailure(t *testing.T) {
	var requests int
	server := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	})

	source := NewHTTPQuoteSource("test", server.URL, "bad-key", 600, newQuoteTestLogger(t))
	quotes, err := source.FetchQuotes(context.Background(), []string{"2222.SR", "1120.SR", "7010.SR"})

	require.Error(t, err)
	assert.Equal(t, KindAuth, KindOf(err))
	assert.Empty(t, quotes)
	// The remaining symbols are not attempted once auth fails.
	assert.Equal(t, 1, requests)
}

func TestHTTPQuoteSourceAbortsOnRateLimit(t *testing.T) {
	server := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	source := NewHTTPQuoteSource("test", server.URL, "key", 600, newQuoteTestLogger(t))
	_, err := source.FetchQuotes(context.Background(), []string{"2222.SR"})

	require.Error(t, err)
	assert.Equal(t, KindRateLimited, KindOf(err))
}

func TestHTTPQuoteSourceCollectsPerTickerFailures(t *testing.T) {
	server := quoteServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") == "BAD.SR" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(quotePayload{Price: 10})
	})

	source := NewHTTPQuoteSource("test", server.URL, "key", 600, newQuoteTestLogger(t))
	quotes, err := source.FetchQuotes(context.Background(), []string{"2222.SR", "BAD.SR", "1120.SR"})

	// One bad symbol does not sink the batch; the failure is still surfaced.
	require.Error(t, err)
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.Len(t, quotes, 2)
}

func TestMatchTickers(t *testing.T) {
	tickers := []string{"2222.SR", "1120.SR", "QNBK.QA"}

	cases := []struct {
		name string
		text string
		want []string
	}{
		{"full symbol", "Aramco (2222.SR) rallies", []string{"2222.SR"}},
		{"exchange-less prefix", "Al Rajhi 1120 posts earnings", []string{"1120.SR"}},
		{"multiple mentions", "2222.SR and QNBK both moved", []string{"2222.SR", "QNBK.QA"}},
		{"no mention", "Oil prices steady", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, matchTickers(tc.text, tickers))
		})
	}
}
