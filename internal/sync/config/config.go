package config

import (
	"time"

	"gcc-market-sync/pkg/config"
)

// Sync holds refresh-pipeline configuration.
type Sync struct {
	// CronSecret authenticates the cron refresh endpoint.
	CronSecret string `mapstructure:"cron_secret"`
	// RefreshSchedule is a cron expression for the automatic refresh cadence.
	RefreshSchedule string `mapstructure:"refresh_schedule"`
	// AlertSchedule is a cron expression for alert evaluation.
	AlertSchedule string `mapstructure:"alert_schedule"`
	// CycleTimeout caps the wall clock of one refresh cycle.
	CycleTimeout time.Duration `mapstructure:"cycle_timeout"`
	// FetchTimeout bounds each external fetch call independently.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	// MaxConcurrent bounds intra-stage parallelism.
	MaxConcurrent int `mapstructure:"max_concurrent"`
	// LastPriceTTL bounds the Redis last-price keys.
	LastPriceTTL time.Duration `mapstructure:"last_price_ttl"`
	// MockSeed seeds the deterministic mock fetchers.
	MockSeed int64 `mapstructure:"mock_seed"`
}

// Alert holds alert-evaluation configuration.
type Alert struct {
	// TriggerPolicy is one of "edge", "cooldown", "always".
	TriggerPolicy string `mapstructure:"trigger_policy"`
	// Cooldown is the minimum re-notify interval for the cooldown policy.
	Cooldown time.Duration `mapstructure:"cooldown"`
}

// Auth holds token verification configuration.
type Auth struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// Providers holds external data-provider credentials. Empty keys leave the
// deterministic mock fetchers in place.
type Providers struct {
	AlphaVantageKey      string `mapstructure:"alpha_vantage_key"`
	NewsAPIKey           string `mapstructure:"news_api_key"`
	QuoteBaseURL         string `mapstructure:"quote_base_url"`
	NewsFeedURL          string `mapstructure:"news_feed_url"`
	MaxRequestsPerMinute int    `mapstructure:"max_requests_per_minute"`
}

// Gemini holds the configuration for the Gemini summary provider.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the sync service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	Sync      Sync            `mapstructure:"sync"`
	Alert     Alert           `mapstructure:"alert"`
	Auth      Auth            `mapstructure:"auth"`
	Providers Providers       `mapstructure:"providers"`
	Gemini    Gemini          `mapstructure:"gemini"`
	Telegram  Telegram        `mapstructure:"telegram"`
}

// Load loads the sync service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Sync.CycleTimeout == 0 {
		cfg.Sync.CycleTimeout = 5 * time.Minute
	}
	if cfg.Sync.FetchTimeout == 0 {
		cfg.Sync.FetchTimeout = 30 * time.Second
	}
	if cfg.Sync.MaxConcurrent == 0 {
		cfg.Sync.MaxConcurrent = 4
	}
	if cfg.Sync.LastPriceTTL == 0 {
		cfg.Sync.LastPriceTTL = 10 * time.Minute
	}
	if cfg.Alert.TriggerPolicy == "" {
		cfg.Alert.TriggerPolicy = "edge"
	}
	if cfg.Alert.Cooldown == 0 {
		cfg.Alert.Cooldown = time.Hour
	}
}
