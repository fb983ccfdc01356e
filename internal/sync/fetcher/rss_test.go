package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><title>Article</title></head><body>
<div id="content">
<p>Saudi Aramco reported a sharp rise in quarterly profit on higher production volumes and stronger refining margins across its downstream business.</p>
<p>The company said output will remain elevated through the rest of the year while capital spending stays within its announced range.</p>
<p>Analysts pointed to resilient demand in Asia as the main driver behind the result, with several raising their price targets after the release.</p>
</div>
</body></html>`

func feedXML(items string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Gulf Markets Wire</title><link>https://example.com</link>
<description>Market news</description>` + items + `</channel></rss>`
}

func feedItem(title, link, description string) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><description>%s</description>
<pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate></item>`, title, link, description)
}

func TestRSSNewsSourceParsesFeed(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	articleURL := server.URL + "/article"
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, articlePage)
	})
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedXML(
			feedItem("Aramco 2222.SR profit jumps", articleURL, "Aramco beats estimates")))
	})

	source := NewRSSNewsSource(server.URL+"/feed", 0, newQuoteTestLogger(t))
	articles, err := source.FetchArticles(context.Background(), []string{"2222.SR", "1120.SR"})

	require.NoError(t, err)
	require.Len(t, articles, 1)

	article := articles[0]
	assert.Equal(t, "Aramco 2222.SR profit jumps", article.Title)
	assert.Equal(t, articleURL, article.URL)
	assert.Equal(t, "Aramco beats estimates", article.Summary)
	assert.Equal(t, "Gulf Markets Wire", article.SourceName)
	assert.NotEmpty(t, article.Content)
	assert.Equal(t, 2006, article.PublishedAt.Year())
	assert.Equal(t, []string{"2222.SR"}, article.Tickers)
}

func TestRSSNewsSourceFallsBackToDescription(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	// Links point at a port nothing listens on, so extraction fails and
	// the feed description carries the content.
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedXML(
			feedItem("Al Rajhi 1120.SR earnings", "http://127.0.0.1:1/gone", "Bank posts record earnings")))
	})

	source := NewRSSNewsSource(server.URL+"/feed", 0, newQuoteTestLogger(t))
	articles, err := source.FetchArticles(context.Background(), []string{"1120.SR"})

	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Bank posts record earnings", articles[0].Content)
	assert.Equal(t, []string{"1120.SR"}, articles[0].Tickers)
}

func TestRSSNewsSourceCapsItemCount(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	items := ""
	for i := 0; i < 5; i++ {
		items += feedItem(fmt.Sprintf("Story %d", i), "http://127.0.0.1:1/gone", "desc")
	}
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, feedXML(items))
	})

	source := NewRSSNewsSource(server.URL+"/feed", 2, newQuoteTestLogger(t))
	articles, err := source.FetchArticles(context.Background(), nil)

	require.NoError(t, err)
	assert.Len(t, articles, 2)
}

func TestRSSNewsSourceUnreachableFeed(t *testing.T) {
	source := NewRSSNewsSource("http://127.0.0.1:1/feed", 0, newQuoteTestLogger(t))

	articles, err := source.FetchArticles(context.Background(), nil)

	require.Error(t, err)
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.Empty(t, articles)
}
