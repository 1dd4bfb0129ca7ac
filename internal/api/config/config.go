package config

import (
	"go-stock-dashboard/pkg/config"
)

// Gemini holds the configuration for the Gemini API. An empty APIKey disables
// the provider and narrative generation falls back to templated text.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// News holds the news aggregation configuration.
type News struct {
	RSSFeeds []string `mapstructure:"rss_feeds"`
}

// Scheduler holds the scheduled refresh configuration. An empty CronSpec
// disables the background refresh.
type Scheduler struct {
	CronSpec string `mapstructure:"cron_spec"`
}

// Telegram holds configuration for the optional refresh digest notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the dashboard API service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Gemini       Gemini          `mapstructure:"gemini"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	News         News            `mapstructure:"news"`
	Scheduler    Scheduler       `mapstructure:"scheduler"`
	Telegram     Telegram        `mapstructure:"telegram"`
}

// Load loads the API service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
