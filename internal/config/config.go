// Package config provides configuration management for the swarm bot.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	MarketData MarketDataConfig `mapstructure:"market_data"`
	Filings    FilingsConfig    `mapstructure:"filings"`
	News       NewsConfig       `mapstructure:"news"`
	Scanner    ScannerConfig    `mapstructure:"scanner"`
	Alerts     AlertsConfig     `mapstructure:"alerts"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// MarketDataConfig holds market data provider configuration.
type MarketDataConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// FilingsConfig holds local filing storage configuration.
type FilingsConfig struct {
	Dir string `mapstructure:"dir"`
}

// NewsConfig holds the news urgency feed configuration.
type NewsConfig struct {
	FeedPath string `mapstructure:"feed_path"`
}

// ScannerConfig holds the alert-check loop configuration.
type ScannerConfig struct {
	Schedule    string   `mapstructure:"schedule"`     // cron spec, e.g. "@every 5m"
	WatchFiles  []string `mapstructure:"watch_files"`  // scanner output CSVs to ingest
	Concurrency int      `mapstructure:"concurrency"`  // tickers evaluated in parallel per run
	MinScore    int      `mapstructure:"min_score"`    // below this, never routed
}

// AlertsConfig holds alert routing and deduplication configuration.
type AlertsConfig struct {
	DedupWindowHours int            `mapstructure:"dedup_window_hours"`
	DedupDelta       int            `mapstructure:"dedup_delta"`
	Webhooks         WebhooksConfig `mapstructure:"webhooks"`
}

// WebhooksConfig maps channel tiers to webhook URLs.
type WebhooksConfig struct {
	Critical  string `mapstructure:"critical"`
	Active    string `mapstructure:"active"`
	Watchlist string `mapstructure:"watchlist"`
}

// DatabaseConfig holds persistence configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/swarm-bot"
	}
	return filepath.Join(home, ".config", "swarm-bot")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// Missing config is fine; defaults plus env cover development use.
		if err := writeTemplate(configDir); err == nil {
			_ = v.ReadInConfig()
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	home, _ := os.UserHomeDir()

	v.SetDefault("market_data.base_url", "https://www.alphavantage.co/query")
	v.SetDefault("market_data.timeout", 10*time.Second)
	v.SetDefault("market_data.cache_ttl", 15*time.Minute)
	v.SetDefault("filings.dir", filepath.Join(home, "SEC", "Swarm", "Filings"))
	v.SetDefault("news.feed_path", filepath.Join(home, "SEC", "Swarm", "Nest", "news_urgency.json"))
	v.SetDefault("scanner.schedule", "@every 5m")
	v.SetDefault("scanner.watch_files", []string{
		filepath.Join(home, "SEC", "Swarm", "Nest", "filtered_tickers.csv"),
		filepath.Join(home, "SEC", "Swarm", "Nest", "filtered_tickers_breakout.csv"),
		filepath.Join(home, "SEC", "Swarm", "Nest", "filtered_tickers_swing.csv"),
		filepath.Join(home, "SEC", "Swarm", "Nest", "filtered_tickers_bounce.csv"),
	})
	v.SetDefault("scanner.concurrency", 1)
	v.SetDefault("scanner.min_score", 60)
	v.SetDefault("alerts.dedup_window_hours", 4)
	v.SetDefault("alerts.dedup_delta", 5)
	v.SetDefault("database.path", filepath.Join(configDir, "swarm.db"))
	v.SetDefault("logging.level", "info")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		cfg.MarketData.APIKey = v
	}
	if v := os.Getenv("SWARM_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("SWARM_WEBHOOK_CRITICAL"); v != "" {
		cfg.Alerts.Webhooks.Critical = v
	}
	if v := os.Getenv("SWARM_WEBHOOK_ACTIVE"); v != "" {
		cfg.Alerts.Webhooks.Active = v
	}
	if v := os.Getenv("SWARM_WEBHOOK_WATCHLIST"); v != "" {
		cfg.Alerts.Webhooks.Watchlist = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Scanner.MinScore < 0 || c.Scanner.MinScore > 100 {
		return fmt.Errorf("scanner.min_score must be between 0 and 100")
	}
	if c.Scanner.Concurrency < 1 {
		return fmt.Errorf("scanner.concurrency must be at least 1")
	}
	if c.Alerts.DedupWindowHours < 0 {
		return fmt.Errorf("alerts.dedup_window_hours must be non-negative")
	}
	if c.Alerts.DedupDelta < 0 {
		return fmt.Errorf("alerts.dedup_delta must be non-negative")
	}
	if c.MarketData.Timeout <= 0 {
		return fmt.Errorf("market_data.timeout must be positive")
	}
	return nil
}

const configTemplate = `# Swarm bot configuration

[market_data]
# api_key = "YOUR_ALPHA_VANTAGE_KEY"   # or set ALPHA_VANTAGE_API_KEY
base_url = "https://www.alphavantage.co/query"
timeout = "10s"
cache_ttl = "15m"

[filings]
# dir = "/home/you/SEC/Swarm/Filings"

[news]
# feed_path = "/home/you/SEC/Swarm/Nest/news_urgency.json"

[scanner]
schedule = "@every 5m"
concurrency = 1
min_score = 60

[alerts]
dedup_window_hours = 4
dedup_delta = 5

[alerts.webhooks]
# critical = "https://discord.com/api/webhooks/..."
# active = "https://discord.com/api/webhooks/..."
# watchlist = "https://discord.com/api/webhooks/..."

[logging]
level = "info"
`

func writeTemplate(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
