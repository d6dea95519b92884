// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"
)

// NoopCache never stores anything. Every Get is a miss.
// Use it to run the service with caching disabled.
type NoopCache struct{}

// NewNoopCache returns a cache that stores nothing.
func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NoopCache) SetMany(context.Context, []Item) error { return nil }

func (NoopCache) Delete(context.Context, string) error { return nil }

func (NoopCache) DeleteByPattern(context.Context, string) (int, error) { return 0, nil }

func (NoopCache) Clear(context.Context) error { return nil }

func (NoopCache) Has(context.Context, string) (bool, error) { return false, nil }

func (NoopCache) Close() error { return nil }

var _ Cacher = NoopCache{}
