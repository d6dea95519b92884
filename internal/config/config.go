// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the oBlog configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/oblog/internal/scheduler"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"OBLOG_DB_PATH" envDefault:"./data/oblog.db"`
	ServerHost string `env:"OBLOG_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"OBLOG_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"OBLOG_ENV" envDefault:"development"`
	LogLevel   string `env:"OBLOG_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"OBLOG_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"OBLOG_CACHE_PREFIX" envDefault:"oblog:"`  // Redis key prefix
	CacheTTL     int    `env:"OBLOG_CACHE_TTL" envDefault:"3600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"OBLOG_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Post history
	HistoryCap           int  `env:"OBLOG_HISTORY_CAP" envDefault:"50"`                // Content revisions kept per post, 0 keeps all
	PurgeHistoryOnDelete bool `env:"OBLOG_PURGE_HISTORY_ON_DELETE" envDefault:"false"` // Drop history logs with the post

	PreviewTTL time.Duration `env:"OBLOG_PREVIEW_TTL" envDefault:"1h"`

	// Scheduled jobs
	SchedulerSpec  string        `env:"OBLOG_SCHEDULER_SPEC" envDefault:"* * * * *"`
	EventRetention time.Duration `env:"OBLOG_EVENT_RETENTION" envDefault:"720h"`

	// HTTP
	ReadRateLimit  float64       `env:"OBLOG_READ_RATE_LIMIT" envDefault:"10"` // Public read requests per second per client
	ReadRateBurst  int           `env:"OBLOG_READ_RATE_BURST" envDefault:"20"`
	RequestTimeout time.Duration `env:"OBLOG_REQUEST_TIMEOUT" envDefault:"30s"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// SlogLevel maps LogLevel onto a slog level.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("OBLOG_SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}

	level := strings.ToLower(c.LogLevel)
	valid := false
	for _, l := range validLogLevels {
		if level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("OBLOG_LOG_LEVEL must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.LogLevel)
	}

	if c.CacheTTL <= 0 {
		return fmt.Errorf("OBLOG_CACHE_TTL must be positive, got %d", c.CacheTTL)
	}
	if c.CacheMaxSize < 0 {
		return fmt.Errorf("OBLOG_CACHE_MAX_SIZE must not be negative, got %d", c.CacheMaxSize)
	}
	if c.HistoryCap < 0 {
		return fmt.Errorf("OBLOG_HISTORY_CAP must not be negative, got %d", c.HistoryCap)
	}
	if c.PreviewTTL <= 0 {
		return fmt.Errorf("OBLOG_PREVIEW_TTL must be positive, got %s", c.PreviewTTL)
	}
	if err := scheduler.ValidateSchedule(c.SchedulerSpec); err != nil {
		return fmt.Errorf("OBLOG_SCHEDULER_SPEC: %w", err)
	}
	if c.EventRetention <= 0 {
		return fmt.Errorf("OBLOG_EVENT_RETENTION must be positive, got %s", c.EventRetention)
	}
	if c.ReadRateLimit <= 0 {
		return fmt.Errorf("OBLOG_READ_RATE_LIMIT must be positive, got %g", c.ReadRateLimit)
	}
	if c.ReadRateBurst < 1 {
		return fmt.Errorf("OBLOG_READ_RATE_BURST must be at least 1, got %d", c.ReadRateBurst)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("OBLOG_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}

	if !c.IsDevelopment() && !c.UseRedisCache() {
		slog.Warn("OBLOG_REDIS_URL is not set; using the in-process memory cache")
	}

	return nil
}
