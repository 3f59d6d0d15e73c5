// Package config は環境変数からアプリケーション設定を読み込む。
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config はアプリケーション全体の設定。
type Config struct {
	// LINE Messaging API
	ChannelSecret string `env:"LINE_CHANNEL_SECRET"`
	ChannelToken  string `env:"LINE_CHANNEL_ACCESS_TOKEN"`

	// OpenWeather ジオコーディング
	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY"`

	// サーバー
	ListenAddr string `env:"OTENKIBOT_ADDR" envDefault:":8080"`

	// 永続化
	DatabasePath string `env:"OTENKIBOT_DB_PATH" envDefault:"otenkibot.db"`

	// 外部API共通のタイムアウト
	HTTPTimeout time.Duration `env:"OTENKIBOT_HTTP_TIMEOUT" envDefault:"10s"`

	// デイリー通知のcron式。notifierのデーモンモードで使う。
	NotifyCron string `env:"OTENKIBOT_NOTIFY_CRON" envDefault:"0 7 * * *"`

	// ログ
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load は環境変数から設定を読み込んで検証する。
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate は必須項目の検証。
func (c *Config) Validate() error {
	if c.ChannelSecret == "" {
		return fmt.Errorf("LINE_CHANNEL_SECRET is required")
	}
	if c.ChannelToken == "" {
		return fmt.Errorf("LINE_CHANNEL_ACCESS_TOKEN is required")
	}
	if c.OpenWeatherAPIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid OTENKIBOT_HTTP_TIMEOUT: %s", c.HTTPTimeout)
	}
	return nil
}
