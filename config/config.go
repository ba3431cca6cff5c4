// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration for the link sender.
// Values are loaded once at startup and read-only afterwards.
type Config struct {
	// TelegramToken is the bot token authorizing every send (required).
	TelegramToken string `json:"telegram_token"`
	// TelegramChatID is the fixed destination chat (required).
	TelegramChatID string `json:"telegram_chat_id"`

	// YtdlpPath is the path to the yt-dlp executable (default: "yt-dlp")
	YtdlpPath string `json:"ytdlp_path"`
	// FetchTimeout is the maximum time for a single metadata fetch call
	FetchTimeout time.Duration `json:"fetch_timeout"`

	// SendInterval is the minimum spacing between Telegram sends
	SendInterval time.Duration `json:"send_interval"`

	// APIKey switches metadata fetching to the YouTube Data API when set
	APIKey string `json:"api_key"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns configuration with safe defaults. The Telegram
// credentials have no default and must come from the file or the
// environment.
func DefaultConfig() *Config {
	return &Config{
		YtdlpPath:    "yt-dlp",
		FetchTimeout: 5 * time.Minute,
		SendInterval: 500 * time.Millisecond,
		LogLevel:     "info",
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
// A .env file in the working directory feeds the environment first;
// its absence is not an error.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from linksend.json in current directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"linksend.json",
		filepath.Join(os.Getenv("HOME"), ".config", "linksend", "linksend.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("LINKSEND_TELEGRAM_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("LINKSEND_TELEGRAM_CHAT_ID"); v != "" {
		c.TelegramChatID = v
	}
	if v := os.Getenv("LINKSEND_YTDLP_PATH"); v != "" {
		c.YtdlpPath = v
	}
	if v := os.Getenv("LINKSEND_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.FetchTimeout = d
		}
	}
	if v := os.Getenv("LINKSEND_SEND_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SendInterval = d
		}
	}
	if v := os.Getenv("LINKSEND_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("LINKSEND_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid. Error
// messages name the variable to set, never the credential values.
func (c *Config) Validate() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("telegram_token is required (set LINKSEND_TELEGRAM_TOKEN)")
	}
	if c.TelegramChatID == "" {
		return fmt.Errorf("telegram_chat_id is required (set LINKSEND_TELEGRAM_CHAT_ID)")
	}
	if c.YtdlpPath == "" {
		return fmt.Errorf("ytdlp_path must not be empty")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	if c.SendInterval < 0 {
		return fmt.Errorf("send_interval must be non-negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	return nil
}

// SlogLevel maps the configured log level onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
