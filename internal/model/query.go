// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Listing limits
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

// Sort fields accepted by PostFilter.
const (
	SortByDate         = "date"
	SortByViews        = "views"
	SortByTitle        = "title"
	SortByLastModified = "last_modified"
)

// PostFilter selects a page of posts.
type PostFilter struct {
	Status   string   `json:"status,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"` // any-of
	AuthorID string   `json:"author_id,omitempty"`
	Search   string   `json:"search,omitempty"`

	// PublicOnly restricts results to posts an anonymous reader may see at Now.
	PublicOnly bool      `json:"public_only,omitempty"`
	Now        time.Time `json:"-"`

	SortBy string `json:"sort_by,omitempty"`
	Desc   bool   `json:"desc"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

// Normalize fills defaults and clamps paging. The result is canonical:
// equal filters normalize to identical values.
func (f PostFilter) Normalize() PostFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	switch f.SortBy {
	case SortByDate, SortByViews, SortByTitle, SortByLastModified:
	case "":
		f.SortBy = SortByDate
		f.Desc = true
	default:
		f.SortBy = SortByDate
	}
	f.Tags = NormalizeTags(f.Tags)
	return f
}

// Offset returns the row offset of the filter's page.
func (f PostFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// PostPage is one page of a listing.
type PostPage struct {
	Items []Post `json:"items"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// PostPatch is a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title                *string
	Slug                 *string
	Content              *string
	Excerpt              *string
	Tags                 *[]string
	Category             *string
	Status               *string
	ScheduledPublishDate *time.Time
	ClearScheduledDate   bool
	PublishedAt          *time.Time
	ReadTime             *string
	SEO                  *SEO
	Version              *int
	LastModified         *time.Time
	AutoSaveContent      *string
	AutoSaveDate         *time.Time

	// Appended to the post's logs in the same write.
	StatusEntries []StatusChange
	Revisions     []Revision

	// HistoryCap trims content history to the newest N revisions (0 keeps all).
	HistoryCap int
}

// Empty reports whether applying the patch would change nothing.
func (p PostPatch) Empty() bool {
	return !p.Trackable() && p.AutoSaveContent == nil && p.AutoSaveDate == nil
}

// Trackable reports whether the patch touches anything a listing or a
// reader can observe. Autosave buffers are the only untracked fields.
func (p PostPatch) Trackable() bool {
	return p.Title != nil || p.Slug != nil || p.Content != nil || p.Excerpt != nil ||
		p.Tags != nil || p.Category != nil || p.Status != nil ||
		p.ScheduledPublishDate != nil || p.ClearScheduledDate || p.PublishedAt != nil ||
		p.ReadTime != nil || p.SEO != nil || p.Version != nil || p.LastModified != nil ||
		len(p.StatusEntries) > 0 || len(p.Revisions) > 0
}

// PostUpdate is a proposed change to a post. Nil fields are not part of the update.
type PostUpdate struct {
	Title                *string    `json:"title,omitempty"`
	Content              *string    `json:"content,omitempty"`
	Excerpt              *string    `json:"excerpt,omitempty"`
	Tags                 *[]string  `json:"tags,omitempty"`
	Category             *string    `json:"category,omitempty"`
	Status               *string    `json:"status,omitempty"`
	ScheduledPublishDate *time.Time `json:"scheduled_publish_date,omitempty"`
	SEO                  *SEO       `json:"seo,omitempty"`
}
