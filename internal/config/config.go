package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"ChartAI/internal/logging"
	"ChartAI/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr" toml:"addr"`
	} `yaml:"server" toml:"server"`
	Relay struct {
		BaseURL string `yaml:"base_url" toml:"base_url"`
	} `yaml:"relay" toml:"relay"`
	Quote struct {
		ChartURL         string `yaml:"chart_url" toml:"chart_url"`
		DefaultSymbol    string `yaml:"default_symbol" toml:"default_symbol"`
		DefaultTimeframe string `yaml:"default_timeframe" toml:"default_timeframe"`
		RefreshCron      string `yaml:"refresh_cron" toml:"refresh_cron"`
	} `yaml:"quote" toml:"quote"`
	Search struct {
		URL         string `yaml:"url" toml:"url"`
		CacheTTLSec int    `yaml:"cache_ttl_sec" toml:"cache_ttl_sec"`
	} `yaml:"search" toml:"search"`
	Assistant struct {
		Endpoint       string `yaml:"endpoint" toml:"endpoint"`
		APIKey         string `yaml:"api_key" toml:"api_key"`
		TextMaxTokens  int    `yaml:"text_max_tokens" toml:"text_max_tokens"`
		ImageMaxTokens int    `yaml:"image_max_tokens" toml:"image_max_tokens"`
	} `yaml:"assistant" toml:"assistant"`
	Capture struct {
		URL        string `yaml:"url" toml:"url"`
		Selector   string `yaml:"selector" toml:"selector"`
		Width      int    `yaml:"width" toml:"width"`
		Height     int    `yaml:"height" toml:"height"`
		TimeoutSec int    `yaml:"timeout_sec" toml:"timeout_sec"`
	} `yaml:"capture" toml:"capture"`
	Telegram struct {
		BotToken string `yaml:"bot_token" toml:"bot_token"`
		ChatID   string `yaml:"chat_id" toml:"chat_id"`
	} `yaml:"telegram" toml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" toml:"sqlite_path"`
	} `yaml:"database" toml:"database"`
	Logging logging.Config `yaml:"logging" toml:"logging"`
	Proxy   string         `yaml:"proxy" toml:"proxy"`
}

// Load reads config from a YAML (or .toml) file, then applies environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if strings.EqualFold(filepath.Ext(path), ".toml") {
			err = toml.Unmarshal(data, cfg)
		} else {
			err = yaml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("RELAY_URL"); v != "" {
		cfg.Relay.BaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Assistant.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CAPTURE_URL"); v != "" {
		cfg.Capture.URL = v
	}
	if v := os.Getenv("DEFAULT_SYMBOL"); v != "" {
		cfg.Quote.DefaultSymbol = v
	}
	if v := os.Getenv("DEFAULT_TIMEFRAME"); v != "" {
		cfg.Quote.DefaultTimeframe = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Relay.BaseURL == "" {
		cfg.Relay.BaseURL = "https://api.allorigins.win/get"
	}
	if cfg.Quote.ChartURL == "" {
		cfg.Quote.ChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	}
	if cfg.Quote.DefaultSymbol == "" {
		cfg.Quote.DefaultSymbol = "^NSEI"
	}
	if cfg.Quote.DefaultTimeframe == "" {
		cfg.Quote.DefaultTimeframe = string(model.Timeframe1M)
	}
	if cfg.Quote.RefreshCron == "" {
		cfg.Quote.RefreshCron = "0 * * * * *"
	}
	if cfg.Search.URL == "" {
		cfg.Search.URL = "https://query1.finance.yahoo.com/v1/finance/search"
	}
	if cfg.Search.CacheTTLSec == 0 {
		cfg.Search.CacheTTLSec = 300
	}
	if cfg.Assistant.Endpoint == "" {
		cfg.Assistant.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"
	}
	if cfg.Assistant.TextMaxTokens == 0 {
		cfg.Assistant.TextMaxTokens = 300
	}
	if cfg.Assistant.ImageMaxTokens == 0 {
		cfg.Assistant.ImageMaxTokens = 1024
	}
	if cfg.Capture.URL == "" {
		cfg.Capture.URL = "http://localhost" + cfg.Server.Addr + "/"
		if !strings.HasPrefix(cfg.Server.Addr, ":") {
			cfg.Capture.URL = "http://" + cfg.Server.Addr + "/"
		}
	}
	if cfg.Capture.Selector == "" {
		cfg.Capture.Selector = "#chart-panel"
	}
	if cfg.Capture.Width == 0 {
		cfg.Capture.Width = 1440
	}
	if cfg.Capture.Height == 0 {
		cfg.Capture.Height = 900
	}
	if cfg.Capture.TimeoutSec == 0 {
		cfg.Capture.TimeoutSec = 45
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.Relay.BaseURL); err != nil {
		return fmt.Errorf("relay.base_url is invalid: %w", err)
	}
	if _, err := url.ParseRequestURI(c.Quote.ChartURL); err != nil {
		return fmt.Errorf("quote.chart_url is invalid: %w", err)
	}
	if _, err := url.ParseRequestURI(c.Search.URL); err != nil {
		return fmt.Errorf("search.url is invalid: %w", err)
	}
	if _, err := url.ParseRequestURI(c.Assistant.Endpoint); err != nil {
		return fmt.Errorf("assistant.endpoint is invalid: %w", err)
	}
	if _, err := model.ParseTimeframe(c.Quote.DefaultTimeframe); err != nil {
		return fmt.Errorf("quote.default_timeframe: %w", err)
	}
	if c.Quote.DefaultSymbol == "" {
		return fmt.Errorf("quote.default_symbol is required")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if c.Assistant.TextMaxTokens < 0 || c.Assistant.ImageMaxTokens < 0 {
		return fmt.Errorf("assistant max tokens must be positive")
	}
	return nil
}

// TelegramEnabled reports whether the Telegram front-end should run.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
