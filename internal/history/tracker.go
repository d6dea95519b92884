// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package history decides the version and history bookkeeping of post writes.
// Everything here is pure: no I/O, and time is passed in.
package history

import (
	"slices"
	"time"

	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/util"
)

// DefaultCap is the number of content revisions kept per post.
const DefaultCap = 50

// Options tune the tracker.
type Options struct {
	// HistoryCap keeps only the newest N content revisions. 0 keeps all.
	HistoryCap int
}

// Track compares a proposed update with the stored post and returns the
// fields to persist together with the log entries to append.
//
// Content changes bump the version and record a revision. Status changes
// record a status entry attributed to actor. A missing excerpt is derived
// from the content. Input is assumed validated: a move to scheduled carries
// a publish date.
func Track(current *model.Post, u model.PostUpdate, actor model.Actor, now time.Time, opts Options) model.PostPatch {
	var p model.PostPatch

	if u.Title != nil && *u.Title != current.Title {
		p.Title = u.Title
	}

	content := current.Content
	if u.Content != nil && *u.Content != current.Content {
		content = *u.Content
		version := current.Version + 1
		readTime := util.ReadTime(content)

		p.Content = &content
		p.Version = &version
		p.LastModified = &now
		p.ReadTime = &readTime
		p.Revisions = []model.Revision{{Content: content, Date: now, Version: version}}
		p.HistoryCap = opts.HistoryCap
	}

	switch {
	case u.Excerpt != nil && *u.Excerpt != "" && *u.Excerpt != current.Excerpt:
		p.Excerpt = u.Excerpt
	case current.Excerpt == "" && (u.Excerpt == nil || *u.Excerpt == ""):
		excerpt := util.Excerpt(content)
		p.Excerpt = &excerpt
	}

	if u.Tags != nil {
		tags := model.NormalizeTags(*u.Tags)
		if !slices.Equal(tags, current.Tags) {
			p.Tags = &tags
		}
	}

	if u.Category != nil && *u.Category != current.Category {
		p.Category = u.Category
	}

	status := current.Status
	if u.Status != nil && *u.Status != current.Status {
		status = *u.Status
		p.Status = u.Status
		p.StatusEntries = []model.StatusChange{{Status: status, Date: now, UpdatedBy: actor.Label()}}

		if status == model.PostStatusPublished && current.PublishedAt == nil {
			p.PublishedAt = &now
		}
		if current.Status == model.PostStatusScheduled {
			p.ClearScheduledDate = true
		}
	}

	// The publish date only exists while the post is scheduled.
	if status == model.PostStatusScheduled && u.ScheduledPublishDate != nil {
		if current.ScheduledPublishDate == nil || !current.ScheduledPublishDate.Equal(*u.ScheduledPublishDate) {
			p.ScheduledPublishDate = u.ScheduledPublishDate
		}
	}

	if u.SEO != nil && !seoEqual(*u.SEO, current.SEO) {
		p.SEO = u.SEO
	}

	return p
}

// Initialize fills the bookkeeping fields of a post about to be created.
// The initial status is recorded as the first status history entry; the
// content history starts empty.
func Initialize(p *model.Post, actor model.Actor, now time.Time) {
	p.Version = 1
	p.LastModified = now
	p.Date = now
	p.ReadTime = util.ReadTime(p.Content)
	p.Tags = model.NormalizeTags(p.Tags)
	if p.Excerpt == "" {
		p.Excerpt = util.Excerpt(p.Content)
	}
	if p.Status == model.PostStatusPublished {
		p.PublishedAt = &now
	}
	if p.Status != model.PostStatusScheduled {
		p.ScheduledPublishDate = nil
	}
	p.StatusHistory = []model.StatusChange{{Status: p.Status, Date: now, UpdatedBy: actor.Label()}}
	p.History = nil
}

// AutoSave returns the patch that stores content in the autosave buffer.
// It never touches the committed content or the version.
func AutoSave(content string, now time.Time) model.PostPatch {
	return model.PostPatch{AutoSaveContent: &content, AutoSaveDate: &now}
}

func seoEqual(a, b model.SEO) bool {
	return a.MetaTitle == b.MetaTitle &&
		a.MetaDescription == b.MetaDescription &&
		slices.Equal(a.Keywords, b.Keywords)
}
