// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testSnapshot struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Version int      `json:"version"`
}

func TestTypedCache_BasicOperations(t *testing.T) {
	memCache := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = memCache.Close() }()

	cache := NewTypedCache[testSnapshot](memCache, time.Hour)
	ctx := context.Background()

	snap := &testSnapshot{ID: "1", Title: "Hello", Tags: []string{"go", "cache"}, Version: 3}

	if err := cache.Set(ctx, "post:1", snap); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := cache.Get(ctx, "post:1")
	if !found {
		t.Fatal("expected to find post:1")
	}
	if got.Title != snap.Title || got.Version != 3 || len(got.Tags) != 2 {
		t.Errorf("got %+v, want %+v", got, snap)
	}

	if err := cache.Delete(ctx, "post:1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := cache.Get(ctx, "post:1"); found {
		t.Error("expected post:1 to be deleted")
	}
}

func TestTypedCache_LookupMiss(t *testing.T) {
	memCache := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = memCache.Close() }()

	cache := NewTypedCache[testSnapshot](memCache, time.Hour)

	_, err := cache.Lookup(context.Background(), "nonexistent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Lookup = %v, want ErrCacheMiss", err)
	}
}

func TestTypedCache_CorruptSnapshotIsMiss(t *testing.T) {
	memCache := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = memCache.Close() }()
	ctx := context.Background()

	_ = memCache.Set(ctx, "post:bad", []byte("{not json"), 0)

	cache := NewTypedCache[testSnapshot](memCache, time.Hour)
	if _, err := cache.Lookup(ctx, "post:bad"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Lookup = %v, want ErrCacheMiss", err)
	}
	if has, _ := memCache.Has(ctx, "post:bad"); has {
		t.Error("corrupt snapshot should be evicted")
	}
}

func TestTypedCache_LookupAdapterError(t *testing.T) {
	memCache := NewSimpleMemoryCache(time.Hour)
	_ = memCache.Close()

	cache := NewTypedCache[testSnapshot](memCache, time.Hour)
	if _, err := cache.Lookup(context.Background(), "post:1"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Lookup = %v, want ErrCacheClosed", err)
	}
}

func TestTypedCache_SetWithTTL(t *testing.T) {
	memCache := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = memCache.Close() }()

	cache := NewTypedCache[testSnapshot](memCache, time.Hour)
	ctx := context.Background()

	if err := cache.SetWithTTL(ctx, "post:1", &testSnapshot{ID: "1"}, 50*time.Millisecond); err != nil {
		t.Fatalf("SetWithTTL failed: %v", err)
	}
	if _, found := cache.Get(ctx, "post:1"); !found {
		t.Error("expected post:1 to exist immediately")
	}

	time.Sleep(60 * time.Millisecond)

	if _, found := cache.Get(ctx, "post:1"); found {
		t.Error("expected post:1 to be expired")
	}
}

func TestTypedCache_SetMultiple(t *testing.T) {
	memCache := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = memCache.Close() }()

	cache := NewTypedCache[testSnapshot](memCache, time.Hour)
	ctx := context.Background()

	err := cache.SetMultiple(ctx, map[string]*testSnapshot{
		"post:1": {ID: "1"},
		"post:2": {ID: "2"},
	})
	if err != nil {
		t.Fatalf("SetMultiple failed: %v", err)
	}

	for _, key := range []string{"post:1", "post:2"} {
		if _, found := cache.Get(ctx, key); !found {
			t.Errorf("expected %s to exist", key)
		}
	}
}
