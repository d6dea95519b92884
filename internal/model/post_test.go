// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func TestPostIsVisibleAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		status    string
		scheduled *time.Time
		want      bool
	}{
		{"draft", PostStatusDraft, nil, false},
		{"published", PostStatusPublished, nil, true},
		{"archived", PostStatusArchived, nil, false},
		{"scheduled in past", PostStatusScheduled, &past, true},
		{"scheduled exactly now", PostStatusScheduled, &now, true},
		{"scheduled in future", PostStatusScheduled, &future, false},
		{"scheduled without date", PostStatusScheduled, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Status: tt.status, ScheduledPublishDate: tt.scheduled}
			if got := p.IsVisibleAt(now); got != tt.want {
				t.Errorf("IsVisibleAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidPostStatus(t *testing.T) {
	for _, s := range []string{"draft", "published", "scheduled", "archived"} {
		if !ValidPostStatus(s) {
			t.Errorf("ValidPostStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "Draft", "deleted"} {
		if ValidPostStatus(s) {
			t.Errorf("ValidPostStatus(%q) = true, want false", s)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" go ", "cache", "", "go", "redis", "cache"})
	want := []string{"go", "cache", "redis"}

	if len(got) != len(want) {
		t.Fatalf("NormalizeTags() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NormalizeTags()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := NormalizeTags(nil); got == nil || len(got) != 0 {
		t.Errorf("NormalizeTags(nil) = %#v, want empty slice", got)
	}
}

func TestActorLabel(t *testing.T) {
	tests := []struct {
		actor Actor
		want  string
	}{
		{Actor{ID: "u1", Name: "Alice"}, "Alice"},
		{Actor{ID: "u1"}, "u1"},
		{SystemActor, "scheduler"},
	}
	for _, tt := range tests {
		if got := tt.actor.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}

	if !SystemActor.IsAdmin() {
		t.Error("system actor should be admin")
	}
	if !(Actor{}).IsAnonymous() {
		t.Error("zero actor should be anonymous")
	}
}

func TestEventCategoriesUnique(t *testing.T) {
	categories := []string{
		EventCategoryPost,
		EventCategoryCache,
		EventCategoryConfig,
		EventCategoryScheduler,
		EventCategorySystem,
	}

	seen := make(map[string]bool)
	for _, cat := range categories {
		if seen[cat] {
			t.Errorf("duplicate category: %q", cat)
		}
		seen[cat] = true
	}
}
