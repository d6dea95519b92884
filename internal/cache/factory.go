// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"net/url"
	"time"
)

// Backend names reported by Info.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNoop   = "noop"
)

// Config holds configuration for cache creation.
type Config struct {
	// Type is the cache backend type: "memory", "redis" or "noop".
	Type string

	// RedisURL is the Redis connection URL (only for redis type)
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis (only for redis type)
	Prefix string

	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for memory cache (0 = unlimited)
	MaxSize int

	CleanupInterval time.Duration

	// FallbackToMemory selects the memory backend when Redis is unreachable.
	FallbackToMemory bool
}

// Info describes the backend NewCache actually built.
type Info struct {
	Backend    string
	IsFallback bool
}

// DefaultConfig returns default cache configuration.
func DefaultConfig() Config {
	return Config{
		Type:             BackendMemory,
		Prefix:           "oblog:",
		DefaultTTL:       DefaultTTL,
		MaxSize:          10000,
		CleanupInterval:  time.Minute,
		FallbackToMemory: true,
	}
}

// NewCache creates a cache based on the provided configuration.
// A Redis connection failure is returned as an error unless FallbackToMemory is set,
// in which case a memory cache is returned and Info reports the fallback.
func NewCache(cfg Config) (Cacher, Info, error) {
	switch cfg.Type {
	case BackendNoop:
		return NewNoopCache(), Info{Backend: BackendNoop}, nil
	case BackendRedis:
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		opts.Prefix = cfg.Prefix
		opts.DefaultTTL = cfg.DefaultTTL
		rc, err := NewRedisCache(opts)
		if err == nil {
			return rc, Info{Backend: BackendRedis}, nil
		}
		if !cfg.FallbackToMemory {
			return nil, Info{}, err
		}
		slog.Warn("redis cache unavailable, falling back to memory",
			"url", SanitizeRedisURL(cfg.RedisURL), "error", err)
		return newMemoryFromConfig(cfg), Info{Backend: BackendMemory, IsFallback: true}, nil
	default:
		return newMemoryFromConfig(cfg), Info{Backend: BackendMemory}, nil
	}
}

func newMemoryFromConfig(cfg Config) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}

// SanitizeRedisURL masks the password in a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "***")
		}
	}
	return u.String()
}
