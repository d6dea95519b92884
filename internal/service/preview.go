// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/oblog/internal/cache"
	"github.com/olegiv/oblog/internal/model"
)

// DefaultPreviewTTL is how long a rendered preview stays retrievable.
const DefaultPreviewTTL = time.Hour

// previewSanitizer strips scripts, event handlers and the like from rendered
// markdown while keeping the usual user-generated content tags.
var previewSanitizer = bluemonday.UGCPolicy()

// Preview is a rendered, sanitized draft held in the cache until it expires.
type Preview struct {
	ID        string    `json:"id"`
	Markdown  string    `json:"markdown"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PreviewService renders markdown previews and keeps them under preview:{id}.
type PreviewService struct {
	previews *cache.TypedCache[Preview]
	md       goldmark.Markdown
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewPreviewService creates a PreviewService. A zero ttl uses DefaultPreviewTTL.
func NewPreviewService(c cache.Cacher, ttl time.Duration, logger *slog.Logger) *PreviewService {
	if ttl <= 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewService{
		previews: cache.NewTypedCache[Preview](c, ttl),
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Render converts markdown to sanitized HTML.
func (s *PreviewService) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return previewSanitizer.Sanitize(buf.String()), nil
}

// RenderPost renders the committed content of a post.
func (s *PreviewService) RenderPost(p *model.Post) (string, error) {
	return s.Render(p.Content)
}

// CreatePreview renders markdown and stores the result.
//
// Unlike post entries, a preview exists only in the cache, so a failed
// cache write is returned to the caller.
func (s *PreviewService) CreatePreview(ctx context.Context, markdown string) (*Preview, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, &ValidationError{Field: "content", Message: "is required"}
	}

	html, err := s.Render(markdown)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := &Preview{
		ID:        uuid.NewString(),
		Markdown:  markdown,
		HTML:      html,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.previews.SetWithTTL(ctx, previewKey(p.ID), p, s.ttl); err != nil {
		s.logger.Warn("cache write failed", "key", previewKey(p.ID), "error", err)
		return nil, fmt.Errorf("storing preview: %w", err)
	}

	return p, nil
}

// GetPreview returns a stored preview, or NotFoundError once it has expired.
func (s *PreviewService) GetPreview(ctx context.Context, id string) (*Preview, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, &NotFoundError{Resource: "preview", Identifier: id}
	}

	p, err := s.previews.Lookup(ctx, previewKey(id))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("cache read failed", "key", previewKey(id), "error", err)
		}
		return nil, &NotFoundError{Resource: "preview", Identifier: id}
	}
	return p, nil
}
