package fetcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSourceQuotesDeterministic(t *testing.T) {
	tickers := []string{"2222.SR", "1120.SR", "7010.SR"}

	first, err := NewMockSource(42).FetchQuotes(context.Background(), tickers)
	require.NoError(t, err)
	second, err := NewMockSource(42).FetchQuotes(context.Background(), tickers)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	other, err := NewMockSource(43).FetchQuotes(context.Background(), tickers)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestMockSourceQuotesShape(t *testing.T) {
	quotes, err := NewMockSource(1).FetchQuotes(context.Background(), []string{"2222.SR", "1120.SR"})
	require.NoError(t, err)
	require.Len(t, quotes, 2)

	for _, quote := range quotes {
		assert.NotEmpty(t, quote.Ticker)
		assert.GreaterOrEqual(t, quote.Price, 100.0)
		assert.LessOrEqual(t, quote.Price, 500.0)
		assert.GreaterOrEqual(t, quote.High, quote.Price-2)
		assert.LessOrEqual(t, quote.Low, quote.Price)
		assert.Greater(t, quote.Volume, int64(0))
	}
}

func TestMockSourceArticles(t *testing.T) {
	articles, err := NewMockSource(1).FetchArticles(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Contains(t, articles[0].Tickers, "2222.SR")
	assert.Contains(t, articles[1].Tickers, "1120.SR")
	for _, article := range articles {
		assert.NotEmpty(t, article.Title)
		assert.NotEmpty(t, article.URL)
		assert.False(t, article.PublishedAt.IsZero())
	}
}

func TestMockSourceIndices(t *testing.T) {
	indices, err := NewMockSource(1).FetchIndices(context.Background())
	require.NoError(t, err)
	require.Len(t, indices, 3)

	names := make(map[string]bool)
	for _, index := range indices {
		names[index.Name] = true
		assert.Equal(t, "saudi", index.Market)
		assert.Greater(t, index.Value, 0.0)
	}
	assert.True(t, names["TASI"])
	assert.True(t, names["NOMU"])
	assert.True(t, names["MT30"])
}

func TestMockSourceHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockSource(1).FetchQuotes(ctx, []string{"2222.SR"})
	assert.Error(t, err)
}
