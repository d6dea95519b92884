// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the store, service and API layers.
package model

import (
	"strings"
	"time"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusScheduled = "scheduled"
	PostStatusArchived  = "archived"
)

// ValidPostStatus reports whether s is a known post status.
func ValidPostStatus(s string) bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusScheduled, PostStatusArchived:
		return true
	}
	return false
}

// Post is a blog post together with its bookkeeping logs.
type Post struct {
	ID                   string     `json:"id"`
	Slug                 string     `json:"slug"`
	Title                string     `json:"title"`
	Content              string     `json:"content"`
	Excerpt              string     `json:"excerpt"`
	Tags                 []string   `json:"tags"`
	Category             string     `json:"category"`
	Status               string     `json:"status"`
	ScheduledPublishDate *time.Time `json:"scheduled_publish_date,omitempty"`
	Date                 time.Time  `json:"date"`
	PublishedAt          *time.Time `json:"published_at,omitempty"`
	ReadTime             string     `json:"read_time"`
	Views                int64      `json:"views"`
	SEO                  SEO        `json:"seo"`

	Version         int            `json:"version"`
	LastModified    time.Time      `json:"last_modified"`
	StatusHistory   []StatusChange `json:"status_history"`
	History         []Revision     `json:"history,omitempty"`
	AutoSaveContent string         `json:"autosave_content,omitempty"`
	AutoSaveDate    *time.Time     `json:"autosave_date,omitempty"`

	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SEO holds optional search-engine metadata for a post.
type SEO struct {
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

// StatusChange is one entry of a post's status history.
type StatusChange struct {
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
	UpdatedBy string    `json:"updated_by"`
}

// Revision is a committed content snapshot.
type Revision struct {
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
	Version int       `json:"version"`
}

// IsVisibleAt reports whether an anonymous reader may see the post at now.
// Published posts are visible, and so are scheduled posts whose publish date has passed.
func (p *Post) IsVisibleAt(now time.Time) bool {
	switch p.Status {
	case PostStatusPublished:
		return true
	case PostStatusScheduled:
		return p.ScheduledPublishDate != nil && !p.ScheduledPublishDate.After(now)
	}
	return false
}

// NormalizeTags trims tags and drops empty and duplicate entries,
// keeping the first occurrence of each.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
