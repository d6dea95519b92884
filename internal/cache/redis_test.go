// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	url := os.Getenv("OBLOG_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: OBLOG_TEST_REDIS_URL not set")
	}
	return url
}

func testRedisOptions(url string) RedisCacheOptions {
	opts := DefaultRedisCacheOptions()
	opts.URL = url
	opts.Prefix = "oblogtest:"
	opts.DefaultTTL = time.Minute
	return opts
}

func newTestRedisCache(t *testing.T) *RedisCache {
	url := skipIfNoRedis(t)

	cache, err := NewRedisCache(testRedisOptions(url))
	if err != nil {
		t.Fatalf("failed to create Redis cache: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.Clear(context.Background())
		_ = cache.Close()
	})
	_ = cache.Clear(context.Background())
	return cache
}

func TestRedisCache_Basic(t *testing.T) {
	cache := newTestRedisCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "post:hello", []byte("snapshot"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "post:hello")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "snapshot" {
		t.Errorf("Get returned %q, want %q", got, "snapshot")
	}

	exists, err := cache.Has(ctx, "post:hello")
	if err != nil || !exists {
		t.Errorf("Has = %v, %v; want true, nil", exists, err)
	}

	if err := cache.Delete(ctx, "post:hello"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "post:hello"); err != ErrCacheMiss {
		t.Errorf("Get after Delete = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_TTL(t *testing.T) {
	cache := newTestRedisCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "preview:x", []byte("v"), time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	if _, err := cache.Get(ctx, "preview:x"); err != ErrCacheMiss {
		t.Errorf("Get after TTL = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_DeleteByPattern(t *testing.T) {
	cache := newTestRedisCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "posts:list:1", []byte("a"), 0)
	_ = cache.Set(ctx, "posts:list:2", []byte("b"), 0)
	_ = cache.Set(ctx, "posts:categories", []byte("c"), 0)

	n, err := cache.DeleteByPattern(ctx, "posts:list:*")
	if err != nil {
		t.Fatalf("DeleteByPattern failed: %v", err)
	}
	if n != 2 {
		t.Errorf("removed %d keys, want 2", n)
	}
	if _, err := cache.Get(ctx, "posts:categories"); err != nil {
		t.Errorf("posts:categories should survive, got %v", err)
	}
}

func TestRedisCache_SetMany(t *testing.T) {
	cache := newTestRedisCache(t)
	ctx := context.Background()

	err := cache.SetMany(ctx, []Item{
		{Key: "post:a", Value: []byte("a")},
		{Key: "post:b", Value: []byte("b")},
	})
	if err != nil {
		t.Fatalf("SetMany failed: %v", err)
	}

	stats := cache.Stats()
	if stats.Items != 2 || stats.Sets != 2 {
		t.Errorf("stats = %+v, want items=2 sets=2", stats)
	}
}

func TestRedisCache_Close(t *testing.T) {
	url := skipIfNoRedis(t)

	cache, err := NewRedisCache(testRedisOptions(url))
	if err != nil {
		t.Fatalf("failed to create Redis cache: %v", err)
	}

	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := cache.Ping(context.Background()); err != ErrCacheClosed {
		t.Errorf("Ping after Close = %v, want ErrCacheClosed", err)
	}
}

func TestRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(testRedisOptions("invalid-url"))
	if err == nil {
		t.Error("expected error with invalid URL, got nil")
	}
}

func TestRedisCache_EmptyURL(t *testing.T) {
	_, err := NewRedisCache(testRedisOptions(""))
	if err == nil {
		t.Error("expected error with empty URL, got nil")
	}
}
