// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"
	"testing"
	"time"

	"github.com/olegiv/oblog/internal/model"
)

func TestListKey(t *testing.T) {
	base := listKey(model.PostFilter{})

	if !strings.HasPrefix(base, "posts:list:") {
		t.Fatalf("listKey = %q, want posts:list: prefix", base)
	}

	same := []model.PostFilter{
		{Page: 1, Limit: model.DefaultPageLimit},
		{Page: -3, SortBy: model.SortByDate, Desc: true},
		{Now: time.Now()},
	}
	for _, f := range same {
		if got := listKey(f); got != base {
			t.Errorf("listKey(%+v) = %q, want %q", f, got, base)
		}
	}

	if listKey(model.PostFilter{Tags: []string{"go", "go"}}) != listKey(model.PostFilter{Tags: []string{"go"}}) {
		t.Error("duplicate tags should not change the key")
	}

	different := []model.PostFilter{
		{Page: 2},
		{Status: model.PostStatusDraft},
		{Category: "tech"},
		{Tags: []string{"go"}},
		{Search: "hello"},
		{PublicOnly: true},
		{SortBy: model.SortByViews, Desc: true},
		{Limit: 20},
	}
	seen := map[string]bool{base: true}
	for _, f := range different {
		key := listKey(f)
		if seen[key] {
			t.Errorf("listKey(%+v) = %q collides with another filter", f, key)
		}
		seen[key] = true
	}
}

func TestInvalidationKeys(t *testing.T) {
	tests := []struct {
		name     string
		mutation Mutation
		id       string
		slug     string
		oldSlug  string
		keys     []string
		patterns []string
		marked   bool
	}{
		{
			name:     "create",
			mutation: MutationCreate,
			id:       "p1",
			slug:     "hello",
			keys:     []string{"posts:categories"},
			patterns: []string{"posts:list:*"},
			marked:   true,
		},
		{
			name:     "update with rename",
			mutation: MutationUpdate,
			id:       "p1",
			slug:     "new",
			oldSlug:  "old",
			keys:     []string{"post:p1", "post:new", "post:old", "posts:categories"},
			patterns: []string{"posts:list:*"},
			marked:   true,
		},
		{
			name:     "update keeping slug",
			mutation: MutationUpdate,
			id:       "p1",
			slug:     "same",
			oldSlug:  "same",
			keys:     []string{"post:p1", "post:same", "posts:categories"},
			patterns: []string{"posts:list:*"},
			marked:   true,
		},
		{
			name:     "untracked update",
			mutation: MutationUntrackedUpdate,
			id:       "p1",
			slug:     "same",
			oldSlug:  "same",
			keys:     []string{"post:p1", "post:same"},
			marked:   true,
		},
		{
			name:     "delete",
			mutation: MutationDelete,
			id:       "p1",
			slug:     "gone",
			keys:     []string{"post:p1", "post:gone", "posts:categories"},
			patterns: []string{"posts:list:*"},
			marked:   true,
		},
		{
			name:     "view",
			mutation: MutationView,
			id:       "p1",
			keys:     []string{"post:p1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := invalidationKeys(tt.mutation, tt.id, tt.slug, tt.oldSlug)
			if strings.Join(inv.Keys, ",") != strings.Join(tt.keys, ",") {
				t.Errorf("Keys = %v, want %v", inv.Keys, tt.keys)
			}
			if strings.Join(inv.Patterns, ",") != strings.Join(tt.patterns, ",") {
				t.Errorf("Patterns = %v, want %v", inv.Patterns, tt.patterns)
			}
			if inv.Marked != tt.marked {
				t.Errorf("Marked = %v, want %v", inv.Marked, tt.marked)
			}
		})
	}
}
