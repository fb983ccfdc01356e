package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"gcc-market-sync/internal/entity"
	"gcc-market-sync/internal/sync/config"
	"gcc-market-sync/internal/sync/dto"
	"gcc-market-sync/internal/sync/fetcher"
	"gcc-market-sync/internal/sync/repository"
	"gcc-market-sync/internal/sync/sentiment"
	"gcc-market-sync/pkg/common"
	"gcc-market-sync/pkg/logger"
	"gcc-market-sync/pkg/utils"

	"gorm.io/gorm"
)

// After this many consecutive store failures the stage assumes a total
// outage and stops instead of spinning through the rest of the batch.
const storeOutageThreshold = 3

// RefreshService runs one end-to-end refresh cycle: prices, news with
// sentiment and summaries, index snapshots, then cache invalidation. The
// service holds no cross-run state; everything is re-derived from the
// store, so cycles are restartable and re-runnable at any point.
type RefreshService interface {
	RefreshAll(ctx context.Context) *dto.RefreshResult
}

// NewRefreshService creates a refresh orchestrator with injected sources
// and repositories.
func NewRefreshService(
	cfg *config.Config,
	log *logger.Logger,
	stockSource fetcher.StockSource,
	newsSource fetcher.NewsSource,
	indexSource fetcher.IndexSource,
	classifier sentiment.Classifier,
	companiesRepo repository.CompaniesRepository,
	pricesRepo repository.PricesRepository,
	newsRepo repository.NewsRepository,
	indexRepo repository.MarketIndexRepository,
	summaryRepo repository.SummaryRepository,
	aiSummaryRepo repository.AISummaryRepository,
	cache Cache,
) RefreshService {
	return &refreshService{
		cfg:           cfg,
		logger:        log,
		stockSource:   stockSource,
		newsSource:    newsSource,
		indexSource:   indexSource,
		classifier:    classifier,
		companiesRepo: companiesRepo,
		pricesRepo:    pricesRepo,
		newsRepo:      newsRepo,
		indexRepo:     indexRepo,
		summaryRepo:   summaryRepo,
		aiSummaryRepo: aiSummaryRepo,
		cache:         cache,
	}
}

type refreshService struct {
	cfg           *config.Config
	logger        *logger.Logger
	stockSource   fetcher.StockSource
	newsSource    fetcher.NewsSource
	indexSource   fetcher.IndexSource
	classifier    sentiment.Classifier
	companiesRepo repository.CompaniesRepository
	pricesRepo    repository.PricesRepository
	newsRepo      repository.NewsRepository
	indexRepo     repository.MarketIndexRepository
	summaryRepo   repository.SummaryRepository
	aiSummaryRepo repository.AISummaryRepository
	cache         Cache
}

// RefreshAll executes the three stages. A stage failure never prevents
// the others from attempting; the result aggregates per-stage errors and
// success is true iff the error list is empty.
func (s *refreshService) RefreshAll(ctx context.Context) *dto.RefreshResult {
	result := &dto.RefreshResult{Errors: []string{}}

	s.logger.Info("Starting refresh cycle")

	stocksUpdated, err := s.refreshPrices(ctx)
	result.StocksUpdated = stocksUpdated
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Stock update failed: %v", err))
	}

	newsAdded, newsErrs := s.refreshNews(ctx)
	result.NewsAdded = newsAdded
	result.Errors = append(result.Errors, newsErrs...)

	if err := s.refreshIndices(ctx); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Index update failed: %v", err))
	}

	// Invalidation runs regardless of stage outcomes and never fails the
	// cycle.
	if err := s.cache.FlushAll(ctx); err != nil {
		s.logger.Error("Failed to flush cache", logger.ErrorField(err))
	}

	result.Success = len(result.Errors) == 0
	s.logger.Info("Refresh cycle completed",
		logger.IntField("stocks_updated", result.StocksUpdated),
		logger.IntField("news_added", result.NewsAdded),
		logger.IntField("errors", len(result.Errors)))

	return result
}

// refreshPrices fetches quotes for all active companies and upserts the
// day's bars with bounded parallelism. The returned count is rows
// actually written, not quotes attempted.
func (s *refreshService) refreshPrices(ctx context.Context) (int, error) {
	companies, err := s.companiesRepo.GetActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("load companies: %w", err)
	}

	tickers := make([]string, 0, len(companies))
	for _, company := range companies {
		tickers = append(tickers, company.Ticker)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.Sync.FetchTimeout)
	defer cancel()

	quotes, fetchErr := s.stockSource.FetchQuotes(fetchCtx, tickers)
	if len(quotes) == 0 && fetchErr != nil {
		return 0, fmt.Errorf("fetch quotes from %s: %w", s.stockSource.Name(), fetchErr)
	}
	if fetchErr != nil {
		// Partial result; persist what we got and surface the failure.
		s.logger.Warn("Quote fetch partially failed",
			logger.ErrorField(fetchErr), logger.IntField("quotes", len(quotes)))
	}

	var (
		updated       atomic.Int64
		storeFailures atomic.Int64
		wg            sync.WaitGroup
	)
	sem := make(chan struct{}, s.cfg.Sync.MaxConcurrent)
	tradeDate := utils.TradeDate(utils.TimeNowRiyadh())

	for _, quote := range quotes {
		if !utils.ShouldContinue(ctx) {
			break
		}
		if storeFailures.Load() >= storeOutageThreshold {
			break
		}

		wg.Add(1)
		quote := quote
		utils.GoSafe(func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			written, failed := s.upsertQuote(ctx, quote, tradeDate)
			if written {
				updated.Add(1)
			}
			if failed {
				storeFailures.Add(1)
			} else {
				storeFailures.Store(0)
			}
		})
	}
	wg.Wait()

	if storeFailures.Load() >= storeOutageThreshold {
		return int(updated.Load()), errors.New("price store unavailable, stage aborted")
	}
	if fetchErr != nil {
		return int(updated.Load()), fetchErr
	}
	return int(updated.Load()), nil
}

// upsertQuote writes one quote's daily bar. Unknown tickers are skipped
// silently since the company may have been deactivated between fetch and
// persist. Returns whether a row was written and whether the store
// failed.
func (s *refreshService) upsertQuote(ctx context.Context, quote dto.StockQuote, tradeDate time.Time) (written, failed bool) {
	company, err := s.companiesRepo.FindByTicker(ctx, quote.Ticker)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.DebugContext(ctx, "Skipping unknown ticker", logger.StringField("ticker", quote.Ticker))
		return false, false
	}
	if err != nil {
		s.logger.Error("Failed to resolve ticker",
			logger.ErrorField(err), logger.StringField("ticker", quote.Ticker))
		return false, true
	}

	bar := quoteToBar(company.ID, quote, tradeDate)
	if err := s.pricesRepo.UpsertDailyBar(ctx, bar); err != nil {
		s.logger.Error("Failed to upsert price bar",
			logger.ErrorField(err), logger.StringField("ticker", quote.Ticker))
		return false, true
	}

	if err := s.cache.SetLastPrice(ctx, quote.Ticker, quote.Price, utils.TimeNowRiyadh()); err != nil {
		s.logger.Error("Failed to cache last price",
			logger.ErrorField(err), logger.StringField("ticker", quote.Ticker))
	}
	return true, false
}

// quoteToBar maps a quote onto a daily bar, falling back to the last
// price when the provider gives no intraday open/high/low.
func quoteToBar(companyID int64, quote dto.StockQuote, tradeDate time.Time) *entity.PriceOHLC {
	open, high, low := quote.Open, quote.High, quote.Low
	if open == 0 {
		open = quote.Price
	}
	if high == 0 {
		high = quote.Price
	}
	if low == 0 {
		low = quote.Price
	}
	return &entity.PriceOHLC{
		CompanyID:  companyID,
		TradeDate:  tradeDate,
		OpenPrice:  open,
		HighPrice:  high,
		LowPrice:   low,
		ClosePrice: quote.Price,
		Volume:     quote.Volume,
	}
}

// refreshNews fetches articles, classifies sentiment, persists each with
// its company links and generates an AI summary for newly ingested
// items.
func (s *refreshService) refreshNews(ctx context.Context) (int, []string) {
	var stageErrors []string

	companies, err := s.companiesRepo.GetActive(ctx)
	if err != nil {
		return 0, []string{fmt.Sprintf("News update failed: load companies: %v", err)}
	}
	tickers := make([]string, 0, len(companies))
	for _, company := range companies {
		tickers = append(tickers, company.Ticker)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.Sync.FetchTimeout)
	defer cancel()

	articles, err := s.newsSource.FetchArticles(fetchCtx, tickers)
	if err != nil {
		return 0, []string{fmt.Sprintf("News update failed: fetch from %s: %v", s.newsSource.Name(), err)}
	}

	added := 0
	for _, article := range articles {
		if !utils.ShouldContinue(ctx) {
			break
		}

		created, err := s.ingestArticle(ctx, article)
		if err != nil {
			s.logger.Error("Failed to save news article",
				logger.ErrorField(err), logger.StringField("url", article.URL))
			stageErrors = append(stageErrors, fmt.Sprintf("News item failed: %v", err))
			continue
		}
		if created {
			added++
		}
	}

	return added, stageErrors
}

func (s *refreshService) ingestArticle(ctx context.Context, article dto.NewsArticle) (bool, error) {
	classification := s.classifier.Classify(article.Content)

	item := &entity.NewsItem{
		TitleEn:         article.Title,
		SummaryEn:       article.Summary,
		ContentEn:       article.Content,
		SourceName:      article.SourceName,
		OriginalURL:     article.URL,
		PublishedAt:     article.PublishedAt,
		Sentiment:       classification.Sentiment,
		SentimentScore:  classification.Score,
		ConfidenceScore: classification.Confidence,
		IsPublished:     true,
	}

	// Unknown tickers are ignored rather than failing the article.
	var companyIDs []int64
	for _, ticker := range article.Tickers {
		company, err := s.companiesRepo.FindByTicker(ctx, ticker)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("resolve ticker %s: %w", ticker, err)
		}
		companyIDs = append(companyIDs, company.ID)
	}

	created, err := s.newsRepo.CreateWithLinks(ctx, item, companyIDs, 0.8)
	if err != nil {
		return false, err
	}
	if !created {
		return false, nil
	}

	if err := s.summarizeArticle(ctx, item); err != nil {
		// Summary generation is best effort; the article itself is already
		// durable.
		s.logger.Error("Failed to generate news summary",
			logger.ErrorField(err), logger.Field("news_id", item.ID))
	}
	return true, nil
}

// summarizeArticle stores a generated summary, auto-approving only when
// the provider is confident enough; everything else lands in the
// moderation queue.
func (s *refreshService) summarizeArticle(ctx context.Context, item *entity.NewsItem) error {
	summary, err := s.summaryRepo.GenerateSummary(ctx, item.TitleEn, item.ContentEn)
	if err != nil {
		return err
	}

	approved := summary.Confidence > repository.SummaryApprovalThreshold
	err = s.aiSummaryRepo.UpsertSummary(ctx, &entity.AISummary{
		ContentType:     common.ContentTypeNews,
		ContentID:       item.ID,
		SummaryEn:       summary.Text,
		ConfidenceScore: summary.Confidence,
		ModelName:       summary.Model,
		IsApproved:      approved,
	})
	if err != nil {
		return err
	}

	if !approved {
		return s.aiSummaryRepo.EnqueueModeration(ctx, &entity.ModerationItem{
			ContentType:   common.ContentTypeNews,
			ContentID:     item.ID,
			RiskLevel:     common.RiskLevelMedium,
			FlaggedReason: "Low AI confidence score",
		})
	}
	return nil
}

// refreshIndices appends one snapshot per tracked index, computing the
// change against the previous snapshot with the same name. The first
// snapshot of a series has a zero delta.
func (s *refreshService) refreshIndices(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.Sync.FetchTimeout)
	defer cancel()

	indices, err := s.indexSource.FetchIndices(fetchCtx)
	if err != nil {
		return fmt.Errorf("fetch indices from %s: %w", s.indexSource.Name(), err)
	}

	for _, index := range indices {
		if !utils.ShouldContinue(ctx) {
			break
		}

		prev, err := s.indexRepo.GetLatestByName(ctx, index.Name)
		if err != nil {
			return fmt.Errorf("read previous snapshot for %s: %w", index.Name, err)
		}

		prevValue := index.Value
		if prev != nil {
			prevValue = prev.Value
		}
		change := index.Value - prevValue
		changePercent := 0.0
		if prevValue != 0 {
			changePercent = change / prevValue * 100
		}

		snapshot := &entity.MarketIndex{
			Name:          index.Name,
			Market:        index.Market,
			Value:         index.Value,
			ChangeValue:   change,
			ChangePercent: changePercent,
			Volume:        index.Volume,
			Timestamp:     utils.TimeNowRiyadh(),
		}
		if err := s.indexRepo.Append(ctx, snapshot); err != nil {
			return fmt.Errorf("append snapshot for %s: %w", index.Name, err)
		}
	}
	return nil
}
