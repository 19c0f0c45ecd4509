package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"IDXScreener/internal/collector"
	"IDXScreener/internal/model"
)

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultCapital   = 10_000_000
	MinCapital       = 1_000_000
	MaxCapital       = 1e15
	DefaultDailyCron = "0 30 16 * * 1-5"
)

// Config holds all application configuration.
type Config struct {
	Capital        float64 `yaml:"capital" validate:"gte=1000000,lte=1000000000000000"`
	RecipientEmail string  `yaml:"recipient_email"`
	Mode           string  `yaml:"mode" validate:"oneof=single screening"`

	Market struct {
		Provider         string         `yaml:"provider" validate:"oneof=yahoo polygon mock"`
		PolygonAPIKey    string         `yaml:"polygon_api_key" validate:"required_if=Provider polygon"`
		Symbols          []string       `yaml:"symbols"`
		Suffix           string         `yaml:"suffix"`
		UniverseURL      string         `yaml:"universe_url" validate:"omitempty,url"`
		DailyPeriod      model.Period   `yaml:"daily_period" validate:"oneof=1d 7d 1mo 3mo"`
		IntradayPeriod   model.Period   `yaml:"intraday_period" validate:"oneof=1d 7d 1mo 3mo"`
		IntradayInterval model.Interval `yaml:"intraday_interval" validate:"oneof=1m 5m 1d"`
		Workers          int            `yaml:"workers" validate:"gte=1,lte=32"`
	} `yaml:"market"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port" validate:"gte=1,lte=65535"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from" validate:"omitempty,email"`
	} `yaml:"smtp"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id" validate:"required_with=BotToken"`
	} `yaml:"telegram"`

	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level" validate:"oneof=debug info warn error"`
	} `yaml:"log"`

	OutputDir string `yaml:"output_dir"`
	Proxy     string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
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

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TRADING_CAPITAL"); v != "" {
		var capital float64
		if _, err := fmt.Sscanf(v, "%f", &capital); err != nil {
			return fmt.Errorf("TRADING_CAPITAL %q: %w", v, err)
		}
		c.Capital = capital
	}
	if v := os.Getenv("RECIPIENT_EMAIL"); v != "" {
		c.RecipientEmail = v
	}
	if v := os.Getenv("SCREEN_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("EMAIL_SENDER"); v != "" {
		c.SMTP.From = v
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		c.Market.PolygonAPIKey = v
	}
	if v := os.Getenv("UNIVERSE_URL"); v != "" {
		c.Market.UniverseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		c.Schedule.DailyCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Capital == 0 {
		c.Capital = DefaultCapital
	}
	if c.Mode == "" {
		c.Mode = string(model.ModeScreening)
	}
	if c.Market.Provider == "" {
		c.Market.Provider = "yahoo"
	}
	if c.Market.Suffix == "" {
		c.Market.Suffix = collector.DefaultSuffix
	}
	if c.Market.DailyPeriod == "" {
		c.Market.DailyPeriod = model.Period3Mo
	}
	if c.Market.IntradayPeriod == "" {
		c.Market.IntradayPeriod = model.Period1D
	}
	if c.Market.IntradayInterval == "" {
		c.Market.IntradayInterval = model.Interval5Min
	}
	if c.Market.Workers == 0 {
		c.Market.Workers = 1
	}
	if c.SMTP.Host == "" {
		c.SMTP.Host = "smtp.gmail.com"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.SMTP.Username == "" {
		c.SMTP.Username = c.SMTP.From
	}
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = DefaultDailyCron
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.OutputDir == "" {
		c.OutputDir = "reports"
	}
}

// Validate checks field ranges and cross-field requirements.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RunConfig projects the settings a pipeline run needs.
func (c *Config) RunConfig() model.RunConfig {
	return model.RunConfig{
		Capital:        c.Capital,
		RecipientEmail: c.RecipientEmail,
		Mode:           model.Mode(c.Mode),
	}
}

// EmailEnabled reports whether SMTP delivery can be attempted.
func (c *Config) EmailEnabled() bool {
	return c.SMTP.From != "" && c.SMTP.Password != ""
}

// TelegramEnabled reports whether the Telegram bot is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
