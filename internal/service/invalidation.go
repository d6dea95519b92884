// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/oblog/internal/cache"
)

// markerTTL bounds how long an invalidation marker outlives its write.
// It must exceed the slowest repository read a cache fill can overlap.
const markerTTL = time.Minute

// Mutation names a write whose cache effects are described by invalidationKeys.
type Mutation int

const (
	MutationCreate Mutation = iota
	MutationUpdate
	MutationUntrackedUpdate
	MutationDelete
	MutationView
)

func (m Mutation) String() string {
	switch m {
	case MutationCreate:
		return "create"
	case MutationUpdate:
		return "update"
	case MutationUntrackedUpdate:
		return "untracked_update"
	case MutationDelete:
		return "delete"
	case MutationView:
		return "view"
	default:
		return "unknown"
	}
}

// Invalidation lists the cache entries a mutation makes stale.
// Marked invalidations also record a fresh generation per key and pattern
// so fills that overlap the write can detect it.
type Invalidation struct {
	Keys     []string
	Patterns []string
	Marked   bool
}

// invalidationKeys is the single source of truth for which entries each
// mutation evicts. Empty identifiers are skipped.
func invalidationKeys(m Mutation, id, slug, oldSlug string) Invalidation {
	inv := Invalidation{Marked: m != MutationView}
	addPost := func(identifiers ...string) {
		seen := make(map[string]bool, len(identifiers))
		for _, ident := range identifiers {
			if ident == "" || seen[ident] {
				continue
			}
			seen[ident] = true
			inv.Keys = append(inv.Keys, postKey(ident))
		}
	}

	switch m {
	case MutationCreate:
		inv.Keys = append(inv.Keys, categoriesKey)
		inv.Patterns = append(inv.Patterns, listKeyPattern)
	case MutationUpdate:
		addPost(id, slug, oldSlug)
		inv.Keys = append(inv.Keys, categoriesKey)
		inv.Patterns = append(inv.Patterns, listKeyPattern)
	case MutationUntrackedUpdate:
		addPost(id, slug)
	case MutationDelete:
		addPost(id, slug)
		inv.Keys = append(inv.Keys, categoriesKey)
		inv.Patterns = append(inv.Patterns, listKeyPattern)
	case MutationView:
		addPost(id)
	}
	return inv
}

// invalidator executes invalidations against the cache. Failures are
// logged and never returned: the write they follow has already succeeded.
type invalidator struct {
	cache  cache.Cacher
	logger *slog.Logger
}

func (iv invalidator) run(ctx context.Context, m Mutation, id, slug, oldSlug string) {
	inv := invalidationKeys(m, id, slug, oldSlug)
	if inv.Marked {
		iv.mark(ctx, m, id, append(slices.Clone(inv.Keys), inv.Patterns...))
	}
	for _, key := range inv.Keys {
		if err := iv.cache.Delete(ctx, key); err != nil {
			iv.logger.Warn("cache invalidation failed",
				"mutation", m.String(), "key", key, "post_id", id, "error", err)
		}
	}
	for _, pattern := range inv.Patterns {
		if _, err := iv.cache.DeleteByPattern(ctx, pattern); err != nil {
			iv.logger.Warn("cache invalidation failed",
				"mutation", m.String(), "pattern", pattern, "post_id", id, "error", err)
		}
	}
}

// mark stores one new generation for every target. It runs before any
// eviction so a fill that checks after its write sees either the marker
// or an eviction that follows its write.
func (iv invalidator) mark(ctx context.Context, m Mutation, id string, targets []string) {
	gen := []byte(uuid.NewString())
	for _, target := range targets {
		if err := iv.cache.Set(ctx, markerKey(target), gen, markerTTL); err != nil {
			iv.logger.Warn("cache invalidation marker failed",
				"mutation", m.String(), "key", target, "post_id", id, "error", err)
		}
	}
}

// generation returns the current marker of target, empty when none is set
// or the cache cannot be read.
func (iv invalidator) generation(ctx context.Context, target string) string {
	data, err := iv.cache.Get(ctx, markerKey(target))
	if err != nil {
		return ""
	}
	return string(data)
}
