package fetcher

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"gcc-market-sync/internal/sync/dto"
	"gcc-market-sync/pkg/logger"
	"gcc-market-sync/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

// RSSNewsSource pulls articles from an RSS feed and extracts readable
// content from each linked page. Tickers are tagged by scanning the
// article text for mentions.
type RSSNewsSource struct {
	feedURL  string
	client   *http.Client
	parser   *gofeed.Parser
	logger   *logger.Logger
	maxItems int
}

// NewRSSNewsSource creates an RSS-backed news source.
func NewRSSNewsSource(feedURL string, maxItems int, log *logger.Logger) *RSSNewsSource {
	if maxItems <= 0 {
		maxItems = 20
	}
	return &RSSNewsSource{
		feedURL:  feedURL,
		client:   &http.Client{Timeout: 20 * time.Second},
		parser:   gofeed.NewParser(),
		logger:   log,
		maxItems: maxItems,
	}
}

// Name implements NewsSource.
func (s *RSSNewsSource) Name() string {
	return "rss"
}

// FetchArticles parses the feed and extracts content per item. Items that
// fail extraction fall back to the feed description rather than being
// dropped.
func (s *RSSNewsSource) FetchArticles(ctx context.Context, tickers []string) ([]dto.NewsArticle, error) {
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		return nil, &SourceError{Source: s.Name(), Kind: KindUnavailable, Err: err}
	}

	var articles []dto.NewsArticle
	for i, item := range feed.Items {
		if i >= s.maxItems {
			break
		}
		if !utils.ShouldContinue(ctx) {
			break
		}

		content := item.Description
		if extracted, err := s.extractContent(ctx, item.Link); err != nil {
			s.logger.Debug("Failed to extract article content",
				logger.ErrorField(err), logger.StringField("link", item.Link))
		} else if extracted != "" {
			content = extracted
		}

		publishedAt := utils.TimeNowRiyadh()
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}

		articles = append(articles, dto.NewsArticle{
			Title:       item.Title,
			Summary:     item.Description,
			Content:     content,
			URL:         item.Link,
			SourceName:  feed.Title,
			PublishedAt: publishedAt,
			Tickers:     matchTickers(item.Title+" "+content, tickers),
		})
	}

	return articles, nil
}

func (s *RSSNewsSource) extractContent(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", err
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", err
	}

	// readability returns HTML; reduce to plain text.
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Content()))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(parsed.Text()), nil
}

// matchTickers returns the subset of tickers mentioned in the text. A
// ticker counts as mentioned if its symbol or its exchange-less prefix
// appears.
func matchTickers(text string, tickers []string) []string {
	var matched []string
	for _, ticker := range tickers {
		prefix := ticker
		if idx := strings.Index(ticker, "."); idx > 0 {
			prefix = ticker[:idx]
		}
		if strings.Contains(text, ticker) || strings.Contains(text, prefix) {
			matched = append(matched, ticker)
		}
	}
	return matched
}

var _ NewsSource = (*RSSNewsSource)(nil)
