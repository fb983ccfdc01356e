package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gcc-market-sync/internal/sync/config"
	delivery "gcc-market-sync/internal/sync/delivery/http"
	"gcc-market-sync/internal/sync/fetcher"
	"gcc-market-sync/internal/sync/repository"
	"gcc-market-sync/internal/sync/sentiment"
	"gcc-market-sync/internal/sync/service"
	"gcc-market-sync/pkg/auth"
	"gcc-market-sync/pkg/logger"
	"gcc-market-sync/pkg/postgres"
	"gcc-market-sync/pkg/redis"
	"gcc-market-sync/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the sync service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Sync Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize cache; absence of Redis degrades to a no-op cache.
	cache := service.NewNoopCache()
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		cache = service.NewRedisCache(redisClient, cfg.Sync.LastPriceTTL)
	} else {
		appLogger.Warn("Redis disabled, cache invalidation is a no-op")
	}

	// Initialize repositories
	companiesRepo := repository.NewCompaniesRepository(db.DB)
	pricesRepo := repository.NewPricesRepository(db.DB)
	newsRepo := repository.NewNewsRepository(db.DB)
	indexRepo := repository.NewMarketIndexRepository(db.DB)
	alertsRepo := repository.NewAlertsRepository(db.DB)
	aiSummaryRepo := repository.NewAISummaryRepository(db.DB)
	auditLogRepo := repository.NewAuditLogRepository(db.DB)

	// Initialize data sources; real providers replace the mocks when
	// credentials are configured.
	mockSource := fetcher.NewMockSource(cfg.Sync.MockSeed)

	var stockSource fetcher.StockSource = mockSource
	if cfg.Providers.QuoteBaseURL != "" && cfg.Providers.AlphaVantageKey != "" {
		stockSource = fetcher.NewHTTPQuoteSource(
			"alpha_vantage",
			cfg.Providers.QuoteBaseURL,
			cfg.Providers.AlphaVantageKey,
			cfg.Providers.MaxRequestsPerMinute,
			appLogger,
		)
	}

	var newsSource fetcher.NewsSource = mockSource
	if cfg.Providers.NewsFeedURL != "" {
		newsSource = fetcher.NewRSSNewsSource(cfg.Providers.NewsFeedURL, 20, appLogger)
	}

	var indexSource fetcher.IndexSource = mockSource

	// Initialize summary provider
	summaryRepo := repository.NewTruncationSummaryRepository()
	if cfg.Gemini.APIKey != "" {
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.Gemini.APIKey})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini client", logger.ErrorField(err))
		}
		summaryRepo = repository.NewGeminiSummaryRepository(cfg, appLogger, genAiClient)
	}

	// Initialize notifier
	notifier := telegram.NewNoopNotifier()
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	classifier := sentiment.NewLexiconClassifier()
	refreshSvc := service.NewRefreshService(cfg, appLogger,
		stockSource, newsSource, indexSource, classifier,
		companiesRepo, pricesRepo, newsRepo, indexRepo,
		summaryRepo, aiSummaryRepo, cache)
	alertSvc := service.NewAlertService(cfg, appLogger, alertsRepo, pricesRepo, notifier)
	schedulerSvc := service.NewSchedulerService(cfg, appLogger, refreshSvc, alertSvc)

	// Start scheduler
	go schedulerSvc.Start(ctx)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	syncHandler := delivery.NewSyncHandler(cfg, appLogger, refreshSvc, cache, tokens, auditLogRepo)
	syncHandler.RegisterRoutes(e)

	healthHandler := delivery.NewHealthHandler(cfg)
	healthHandler.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "sync-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-sync.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing sync-service CLI: %s\n", err)
		os.Exit(1)
	}
}
