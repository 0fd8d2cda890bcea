package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	envTelegramToken  = "CLAC_TELEGRAM_BOT_TOKEN"
	envDeepSeekAPIKey = "CLAC_DEEPSEEK_API_KEY"
)

type Config struct {
	Web      WebConfig      `yaml:"web"`
	Upbit    UpbitConfig    `yaml:"upbit"`
	Yahoo    YahooConfig    `yaml:"yahoo"`
	Stocks   StocksConfig   `yaml:"stocks"`
	History  HistoryConfig  `yaml:"history"`
	Telegram TelegramConfig `yaml:"telegram"`
	DeepSeek DeepSeekConfig `yaml:"deepseek"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type WebConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type UpbitConfig struct {
	BaseURL                string `yaml:"base_url"`
	TimeoutSeconds         int    `yaml:"timeout_seconds"`
	MarketsCacheMinutes    int    `yaml:"markets_cache_minutes"`
	RefreshInterval        string `yaml:"refresh_interval"`
	RetryMaxElapsedSeconds int    `yaml:"retry_max_elapsed_seconds"` // negative disables retries
}

type YahooConfig struct {
	BaseURL                string `yaml:"base_url"`
	TimeoutSeconds         int    `yaml:"timeout_seconds"`
	Concurrency            int    `yaml:"concurrency"`
	RetryMaxElapsedSeconds int    `yaml:"retry_max_elapsed_seconds"`
}

type StocksConfig struct {
	CatalogPath string `yaml:"catalog_path"` // empty uses the embedded list
	SearchLimit int    `yaml:"search_limit"`
}

type HistoryConfig struct {
	DBPath   string `yaml:"db_path"`
	MaxItems int    `yaml:"max_items"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type DeepSeekConfig struct {
	Enabled        bool   `yaml:"enabled"`
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML file at path. When optional is true a missing file is
// not an error and defaults are used. Secrets from the environment (and a
// .env file in the working directory, if any) override the file.
func Load(path string, optional bool) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	applyEnv(cfg)
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration built from defaults only. The defaults
// pass Validate, so callers can skip it.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envTelegramToken); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv(envDeepSeekAPIKey); v != "" {
		cfg.DeepSeek.APIKey = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if len(cfg.Web.AllowedOrigins) == 0 {
		cfg.Web.AllowedOrigins = []string{"*"}
	}
	if cfg.Upbit.BaseURL == "" {
		cfg.Upbit.BaseURL = "https://api.upbit.com"
	}
	if cfg.Upbit.TimeoutSeconds == 0 {
		cfg.Upbit.TimeoutSeconds = 10
	}
	if cfg.Upbit.MarketsCacheMinutes == 0 {
		cfg.Upbit.MarketsCacheMinutes = 60
	}
	if cfg.Upbit.RefreshInterval == "" {
		cfg.Upbit.RefreshInterval = "1h"
	}
	if cfg.Upbit.RetryMaxElapsedSeconds == 0 {
		cfg.Upbit.RetryMaxElapsedSeconds = 5
	}
	if cfg.Yahoo.BaseURL == "" {
		cfg.Yahoo.BaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.Yahoo.TimeoutSeconds == 0 {
		cfg.Yahoo.TimeoutSeconds = 20
	}
	if cfg.Yahoo.Concurrency == 0 {
		cfg.Yahoo.Concurrency = 4
	}
	if cfg.Yahoo.RetryMaxElapsedSeconds == 0 {
		cfg.Yahoo.RetryMaxElapsedSeconds = 5
	}
	if cfg.Stocks.SearchLimit == 0 {
		cfg.Stocks.SearchLimit = 10
	}
	if cfg.History.DBPath == "" {
		cfg.History.DBPath = "data/clac.db"
	}
	if cfg.History.MaxItems == 0 {
		cfg.History.MaxItems = 10
	}
	if cfg.DeepSeek.BaseURL == "" {
		cfg.DeepSeek.BaseURL = "https://api.deepseek.com/v1"
	}
	if cfg.DeepSeek.Model == "" {
		cfg.DeepSeek.Model = "deepseek-chat"
	}
	if cfg.DeepSeek.TimeoutSeconds == 0 {
		cfg.DeepSeek.TimeoutSeconds = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func (c *Config) Validate() error {
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web.port %d", c.Web.Port)
	}
	if _, err := time.ParseDuration(c.Upbit.RefreshInterval); err != nil {
		return fmt.Errorf("invalid upbit.refresh_interval %q: %w", c.Upbit.RefreshInterval, err)
	}
	if c.History.MaxItems < 0 {
		return fmt.Errorf("history.max_items must not be negative")
	}
	if c.Yahoo.Concurrency < 0 {
		return fmt.Errorf("yahoo.concurrency must not be negative")
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	if c.DeepSeek.Enabled && c.DeepSeek.APIKey == "" {
		return fmt.Errorf("deepseek.api_key is required when deepseek is enabled")
	}
	return nil
}

func (c *Config) UpbitTimeout() time.Duration {
	return time.Duration(c.Upbit.TimeoutSeconds) * time.Second
}

func (c *Config) MarketsCacheTTL() time.Duration {
	return time.Duration(c.Upbit.MarketsCacheMinutes) * time.Minute
}

func (c *Config) MarketsRefreshInterval() time.Duration {
	d, _ := time.ParseDuration(c.Upbit.RefreshInterval)
	return d
}

func (c *Config) UpbitRetryMaxElapsed() time.Duration {
	return time.Duration(c.Upbit.RetryMaxElapsedSeconds) * time.Second
}

func (c *Config) YahooTimeout() time.Duration {
	return time.Duration(c.Yahoo.TimeoutSeconds) * time.Second
}

func (c *Config) YahooRetryMaxElapsed() time.Duration {
	return time.Duration(c.Yahoo.RetryMaxElapsedSeconds) * time.Second
}

func (c *Config) DeepSeekTimeout() time.Duration {
	return time.Duration(c.DeepSeek.TimeoutSeconds) * time.Second
}
