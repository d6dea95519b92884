// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestMemoryCache() *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      time.Hour,
		MaxSize:         100,
		CleanupInterval: 0, // No background cleanup for tests
	})
}

func TestMemoryCache_BasicOperations(t *testing.T) {
	cache := newTestMemoryCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "post:hello-world", []byte("v1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "post:hello-world")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "v1" {
		t.Errorf("expected v1, got %s", string(val))
	}

	has, err := cache.Has(ctx, "post:hello-world")
	if err != nil || !has {
		t.Errorf("Has = %v, %v; want true, nil", has, err)
	}

	if err := cache.Delete(ctx, "post:hello-world"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "post:hello-world"); err != ErrCacheMiss {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := newTestMemoryCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "preview:abc", []byte("html"), 30*time.Millisecond)

	if _, err := cache.Get(ctx, "preview:abc"); err != nil {
		t.Fatalf("Get immediately after Set failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := cache.Get(ctx, "preview:abc"); err != ErrCacheMiss {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}
	if has, _ := cache.Has(ctx, "preview:abc"); has {
		t.Error("Has should report false for an expired key")
	}
}

func TestMemoryCache_DeleteByPattern(t *testing.T) {
	cache := newTestMemoryCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "posts:list:1", []byte("a"), 0)
	_ = cache.Set(ctx, "posts:list:2", []byte("b"), 0)
	_ = cache.Set(ctx, "posts:categories", []byte("c"), 0)
	_ = cache.Set(ctx, "post:hello", []byte("d"), 0)

	n, err := cache.DeleteByPattern(ctx, "posts:list:*")
	if err != nil {
		t.Fatalf("DeleteByPattern failed: %v", err)
	}
	if n != 2 {
		t.Errorf("removed %d keys, want 2", n)
	}

	for _, key := range []string{"posts:list:1", "posts:list:2"} {
		if _, err := cache.Get(ctx, key); err != ErrCacheMiss {
			t.Errorf("%s should be deleted", key)
		}
	}
	for _, key := range []string{"posts:categories", "post:hello"} {
		if _, err := cache.Get(ctx, key); err != nil {
			t.Errorf("%s should survive, got %v", key, err)
		}
	}
}

func TestMemoryCache_DeleteByPatternInvalid(t *testing.T) {
	cache := newTestMemoryCache()
	defer func() { _ = cache.Close() }()

	if _, err := cache.DeleteByPattern(context.Background(), "posts:[list"); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestMemoryCache_SetMany(t *testing.T) {
	cache := newTestMemoryCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	err := cache.SetMany(ctx, []Item{
		{Key: "post:a", Value: []byte("a")},
		{Key: "post:b", Value: []byte("b"), TTL: time.Minute},
	})
	if err != nil {
		t.Fatalf("SetMany failed: %v", err)
	}

	for _, key := range []string{"post:a", "post:b"} {
		if _, err := cache.Get(ctx, key); err != nil {
			t.Errorf("Get(%s) failed: %v", key, err)
		}
	}
	if got := cache.Stats().Sets; got != 2 {
		t.Errorf("Sets = %d, want 2", got)
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	cache := newTestMemoryCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	for i := range 5 {
		_ = cache.Set(ctx, fmt.Sprintf("post:%d", i), []byte("x"), 0)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if stats := cache.Stats(); stats.Items != 0 || stats.Size != 0 {
		t.Errorf("after Clear: items=%d size=%d, want 0/0", stats.Items, stats.Size)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := newTestMemoryCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("12345"), 0)
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "missing")

	stats := cache.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("stats = %+v, want hits=2 misses=1 sets=1", stats)
	}
	if stats.Size != 5 {
		t.Errorf("Size = %d, want 5", stats.Size)
	}
	if stats.HitRate < 66 || stats.HitRate > 67 {
		t.Errorf("HitRate = %f, want ~66.7", stats.HitRate)
	}

	cache.ResetStats()
	stats = cache.Stats()
	if stats.Hits != 0 || stats.Misses != 0 || stats.ResetAt == nil {
		t.Errorf("after reset: %+v", stats)
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := newTestMemoryCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("posts:list:%d", n%5)
			_ = cache.Set(ctx, key, []byte("v"), 0)
			_, _ = cache.Get(ctx, key)
			_, _ = cache.DeleteByPattern(ctx, "posts:list:*")
		}(i)
	}
	wg.Wait()
}

func TestMemoryCache_ValueCopy(t *testing.T) {
	cache := newTestMemoryCache()
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	original := []byte("snapshot")
	_ = cache.Set(ctx, "k", original, 0)
	original[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	if string(got) != "snapshot" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := cache.Get(ctx, "k")
	if string(again) != "snapshot" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestMemoryCache_Close(t *testing.T) {
	cache := NewSimpleMemoryCache(time.Hour)
	ctx := context.Background()

	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Second close is a no-op
	if err := cache.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if _, err := cache.Get(ctx, "k"); err != ErrCacheClosed {
		t.Errorf("Get after Close = %v, want ErrCacheClosed", err)
	}
	if err := cache.Set(ctx, "k", nil, 0); err != ErrCacheClosed {
		t.Errorf("Set after Close = %v, want ErrCacheClosed", err)
	}
	if _, err := cache.DeleteByPattern(ctx, "*"); err != ErrCacheClosed {
		t.Errorf("DeleteByPattern after Close = %v, want ErrCacheClosed", err)
	}
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("v"), 0)
	if _, err := c.Get(ctx, "k"); err != ErrCacheMiss {
		t.Errorf("Get = %v, want ErrCacheMiss", err)
	}
	if n, err := c.DeleteByPattern(ctx, "*"); n != 0 || err != nil {
		t.Errorf("DeleteByPattern = %d, %v", n, err)
	}
}
