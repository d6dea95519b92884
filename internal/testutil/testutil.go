// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the oBlog project.
package testutil

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/olegiv/oblog/internal/cache"
	"github.com/olegiv/oblog/internal/store"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a logger that discards everything.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "oblog-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}
}

// ErrCacheDown is returned by every FailingCache call.
var ErrCacheDown = errors.New("cache unavailable")

// FailingCache is a cache.Cacher whose every operation fails, as a cache
// server that went away would.
type FailingCache struct {
	Calls atomic.Int64
}

var _ cache.Cacher = (*FailingCache)(nil)

func (c *FailingCache) fail() error {
	c.Calls.Add(1)
	return ErrCacheDown
}

func (c *FailingCache) Get(context.Context, string) ([]byte, error) { return nil, c.fail() }

func (c *FailingCache) Set(context.Context, string, []byte, time.Duration) error { return c.fail() }

func (c *FailingCache) SetMany(context.Context, []cache.Item) error { return c.fail() }

func (c *FailingCache) Delete(context.Context, string) error { return c.fail() }

func (c *FailingCache) DeleteByPattern(context.Context, string) (int, error) { return 0, c.fail() }

func (c *FailingCache) Clear(context.Context) error { return c.fail() }

func (c *FailingCache) Has(context.Context, string) (bool, error) { return false, c.fail() }

func (c *FailingCache) Close() error { return nil }
