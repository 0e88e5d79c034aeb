package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Provider credentials and the
// default symbol list live here and are handed to constructors explicitly.
type Config struct {
	Server struct {
		Addr           string        `yaml:"addr"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
	} `yaml:"server"`
	DataSource struct {
		Provider          string        `yaml:"provider"` // twelvedata | yahoo | mock
		BaseURL           string        `yaml:"base_url"`
		APIKey            string        `yaml:"api_key"`
		OutputSize        int           `yaml:"output_size"`
		RequestsPerMinute int           `yaml:"requests_per_minute"`
		Timeout           time.Duration `yaml:"timeout"`
	} `yaml:"data_source"`
	Symbols []string `yaml:"symbols"`
	Scan    struct {
		Cron    string `yaml:"cron"`
		TopN    int    `yaml:"top_n"`
		Workers int    `yaml:"workers"`
	} `yaml:"scan"`
	Strategy struct {
		OBVLookback int `yaml:"obv_lookback"`
	} `yaml:"strategy"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string        `yaml:"sqlite_path"`
		CacheTTL   time.Duration `yaml:"cache_ttl"`
	} `yaml:"database"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads an optional .env file and the YAML config at path, then applies
// environment variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("TWELVEDATA_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("TWELVEDATA_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.Symbols = splitList(v)
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		c.Scan.Cron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("OBV_LOOKBACK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Strategy.OBVLookback = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = time.Minute
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "twelvedata"
	}
	if c.DataSource.BaseURL == "" && c.DataSource.Provider == "twelvedata" {
		c.DataSource.BaseURL = "https://api.twelvedata.com"
	}
	if c.DataSource.OutputSize == 0 {
		c.DataSource.OutputSize = 300
	}
	if c.DataSource.RequestsPerMinute == 0 {
		c.DataSource.RequestsPerMinute = 8
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 15 * time.Second
	}
	if len(c.Symbols) == 0 {
		c.Symbols = []string{"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL"}
	}
	if c.Scan.TopN == 0 {
		c.Scan.TopN = 5
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = 4
	}
	if c.Strategy.OBVLookback == 0 {
		c.Strategy.OBVLookback = 1
	}
	if c.Database.CacheTTL == 0 {
		c.Database.CacheTTL = 6 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "twelvedata":
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for twelvedata")
		}
	case "yahoo", "mock":
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if c.DataSource.OutputSize < 200 {
		return fmt.Errorf("data_source.output_size must be at least 200")
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must not be negative")
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be positive")
	}
	if c.Strategy.OBVLookback < 1 {
		return fmt.Errorf("strategy.obv_lookback must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether scan notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
