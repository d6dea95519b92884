// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/olegiv/oblog/internal/cache"
	"github.com/olegiv/oblog/internal/history"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/store"
	"github.com/olegiv/oblog/internal/util"
)

const (
	// maxSlugSuffix bounds the -1, -2, ... search for a free slug.
	maxSlugSuffix = 100
	// maxInsertAttempts bounds retries when a concurrent insert takes the slug.
	maxInsertAttempts = 3
	// maxUpdateAttempts bounds optimistic-concurrency retries.
	maxUpdateAttempts = 3
)

// PostRepository is the post persistence used by PostService.
type PostRepository interface {
	FindBySlugOrID(ctx context.Context, identifier string) (*model.Post, error)
	FindMany(ctx context.Context, f model.PostFilter) ([]model.Post, int, error)
	Insert(ctx context.Context, p *model.Post) (*model.Post, error)
	UpdateByID(ctx context.Context, id string, expectedVersion int, patch model.PostPatch) (*model.Post, error)
	IncrementViews(ctx context.Context, id string) (int64, error)
	DeleteByID(ctx context.Context, id string, purgeHistory bool) (*model.Post, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	FindDueScheduled(ctx context.Context, now time.Time) ([]model.Post, error)
	LoadStatusHistory(ctx context.Context, postID string) ([]model.StatusChange, error)
	LoadRevisions(ctx context.Context, postID string) ([]model.Revision, error)
}

// PostServiceConfig holds the tunables of PostService.
type PostServiceConfig struct {
	// CacheTTL applies to post, list and category entries. Zero uses cache.DefaultTTL.
	CacheTTL time.Duration
	// HistoryCap keeps the newest N content revisions per post. Zero keeps all.
	HistoryCap int
	// PurgeHistoryOnDelete removes the history logs together with the post.
	PurgeHistoryOnDelete bool
	// Authorizer decides who may mutate a post. Nil means OwnerOrAdmin.
	Authorizer Authorizer
	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

// CreatePostInput is the data an author submits for a new post.
type CreatePostInput struct {
	Title                string     `json:"title"`
	Content              string     `json:"content"`
	Excerpt              string     `json:"excerpt,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	Category             string     `json:"category"`
	Status               string     `json:"status,omitempty"`
	ScheduledPublishDate *time.Time `json:"scheduled_publish_date,omitempty"`
	SEO                  model.SEO  `json:"seo"`
}

// PostHistory is the audit trail of a post.
// Deleted is set when the logs outlived the post itself.
type PostHistory struct {
	PostID        string               `json:"post_id"`
	Version       int                  `json:"version"`
	Deleted       bool                 `json:"deleted,omitempty"`
	StatusHistory []model.StatusChange `json:"status_history"`
	Revisions     []model.Revision     `json:"revisions"`
}

// PostService implements cache-aside reads and invalidating writes for posts.
type PostService struct {
	repo       PostRepository
	cache      cache.Cacher
	posts      *cache.TypedCache[model.Post]
	pages      *cache.TypedCache[model.PostPage]
	categories *cache.TypedCache[[]string]
	inv        invalidator
	authz      Authorizer
	logger     *slog.Logger

	historyCap   int
	purgeHistory bool
	now          func() time.Time
}

// NewPostService creates a PostService.
func NewPostService(repo PostRepository, c cache.Cacher, logger *slog.Logger, cfg PostServiceConfig) *PostService {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	authz := cfg.Authorizer
	if authz == nil {
		authz = OwnerOrAdmin{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &PostService{
		repo:         repo,
		cache:        c,
		posts:        cache.NewTypedCache[model.Post](c, ttl),
		pages:        cache.NewTypedCache[model.PostPage](c, ttl),
		categories:   cache.NewTypedCache[[]string](c, ttl),
		inv:          invalidator{cache: c, logger: logger},
		authz:        authz,
		logger:       logger,
		historyCap:   cfg.HistoryCap,
		purgeHistory: cfg.PurgeHistoryOnDelete,
		now:          now,
	}
}

// GetPost returns the post with the given id or slug.
//
// A regular read consults the cache, hides posts an anonymous reader may not
// see, counts a view and evicts the post's id entry so the next read carries
// the new count. A preview read always goes to the repository, counts
// nothing and shows drafts.
func (s *PostService) GetPost(ctx context.Context, identifier string, preview bool) (*model.Post, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, &ValidationError{Field: "identifier", Message: "is required"}
	}
	// Ids and slugs share one alphabet; anything else cannot name a post.
	if !util.IsValidSlug(identifier) {
		return nil, &NotFoundError{Resource: "post", Identifier: identifier}
	}

	if preview {
		return s.findPost(ctx, identifier)
	}

	p, err := s.loadPost(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if !p.IsVisibleAt(s.now()) {
		return nil, &NotFoundError{Resource: "post", Identifier: identifier}
	}

	wctx := context.WithoutCancel(ctx)
	views, err := s.repo.IncrementViews(wctx, p.ID)
	if err != nil {
		return nil, s.repoError("increment views", identifier, err)
	}
	p.Views = views
	s.inv.run(wctx, MutationView, p.ID, "", "")

	return p, nil
}

// ListPosts returns one page of posts matching f.
func (s *PostService) ListPosts(ctx context.Context, f model.PostFilter) (*model.PostPage, error) {
	f = f.Normalize()
	if f.Status != "" && !model.ValidPostStatus(f.Status) {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", f.Status)}
	}
	if f.PublicOnly && f.Now.IsZero() {
		f.Now = s.now()
	}

	key := listKey(f)
	if page, err := s.pages.Lookup(ctx, key); err == nil {
		return page, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("cache read failed", "key", key, "error", err)
	}

	gen := s.inv.generation(ctx, listKeyPattern)
	items, total, err := s.repo.FindMany(ctx, f)
	if err != nil {
		return nil, &DatabaseError{Op: "list posts", Err: err}
	}
	page := &model.PostPage{Items: items, Total: total, Page: f.Page, Limit: f.Limit}
	if page.Items == nil {
		page.Items = []model.Post{}
	}
	s.fill(ctx, listKeyPattern, gen, []string{key}, func() error { return s.pages.Set(ctx, key, page) })

	return page, nil
}

// Categories returns the categories in use.
func (s *PostService) Categories(ctx context.Context) ([]string, error) {
	if cats, err := s.categories.Lookup(ctx, categoriesKey); err == nil {
		return *cats, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("cache read failed", "key", categoriesKey, "error", err)
	}

	gen := s.inv.generation(ctx, categoriesKey)
	cats, err := s.repo.DistinctCategories(ctx)
	if err != nil {
		return nil, &DatabaseError{Op: "list categories", Err: err}
	}
	s.fill(ctx, categoriesKey, gen, []string{categoriesKey}, func() error {
		return s.categories.Set(ctx, categoriesKey, &cats)
	})

	return cats, nil
}

// CreatePost validates and stores a new post owned by actor.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput, actor model.Actor) (*model.Post, error) {
	if actor.IsAnonymous() {
		return nil, &ForbiddenError{Action: "create"}
	}
	if err := validateCreate(&in, s.now()); err != nil {
		return nil, err
	}

	now := s.now()
	p := &model.Post{
		Title:                in.Title,
		Content:              in.Content,
		Excerpt:              in.Excerpt,
		Tags:                 in.Tags,
		Category:             in.Category,
		Status:               in.Status,
		ScheduledPublishDate: in.ScheduledPublishDate,
		SEO:                  in.SEO,
		AuthorID:             actor.ID,
	}
	history.Initialize(p, actor, now)

	wctx := context.WithoutCancel(ctx)
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		slug, err := s.uniqueSlug(wctx, p.Title, "")
		if err != nil {
			return nil, err
		}
		p.Slug = slug

		created, err := s.repo.Insert(wctx, p)
		if errors.Is(err, store.ErrDuplicateSlug) {
			s.logger.Debug("slug taken concurrently, retrying", "slug", slug, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, &DatabaseError{Op: "create post", Err: err}
		}

		s.inv.run(wctx, MutationCreate, created.ID, created.Slug, "")
		s.logger.Info("post created", "post_id", created.ID, "slug", created.Slug, "actor_id", actor.ID)
		return created, nil
	}

	return nil, &ConflictError{Message: fmt.Sprintf("could not reserve a unique slug for %q", p.Title)}
}

// UpdatePost applies u to the post on behalf of actor.
//
// The write carries the version that was read. When another writer got in
// first the post is reloaded from the repository and the update recomputed,
// up to maxUpdateAttempts times.
func (s *PostService) UpdatePost(ctx context.Context, id string, u model.PostUpdate, actor model.Actor) (*model.Post, error) {
	if err := validateUpdate(&u); err != nil {
		return nil, err
	}

	wctx := context.WithoutCancel(ctx)
	return s.mutate(ctx, id, actor, "update", func(current *model.Post, now time.Time) (model.PostPatch, error) {
		if err := validateTransition(current, u, now); err != nil {
			return model.PostPatch{}, err
		}
		patch := history.Track(current, u, actor, now, history.Options{HistoryCap: s.historyCap})
		if patch.Title != nil {
			slug, err := s.uniqueSlug(wctx, *patch.Title, current.ID)
			if err != nil {
				return model.PostPatch{}, err
			}
			if slug != current.Slug {
				patch.Slug = &slug
			}
		}
		return patch, nil
	})
}

// AutoSave stores content in the post's draft buffer. The committed
// content, the version and the listings are left alone.
func (s *PostService) AutoSave(ctx context.Context, id, content string, actor model.Actor) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Field: "content", Message: "is required"}
	}

	return s.mutate(ctx, id, actor, "autosave", func(_ *model.Post, now time.Time) (model.PostPatch, error) {
		return history.AutoSave(content, now), nil
	})
}

// mutate runs the load, authorize, persist and invalidate cycle shared by
// every update. build computes the patch from a fresh snapshot on each attempt.
func (s *PostService) mutate(ctx context.Context, id string, actor model.Actor, action string,
	build func(current *model.Post, now time.Time) (model.PostPatch, error)) (*model.Post, error) {
	wctx := context.WithoutCancel(ctx)

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		var (
			current *model.Post
			err     error
		)
		if attempt == 1 {
			current, err = s.loadPost(ctx, id)
		} else {
			current, err = s.findPost(wctx, id)
		}
		if err != nil {
			return nil, err
		}

		if !s.authz.CanModify(actor, current) {
			return nil, &ForbiddenError{ActorID: actor.ID, Action: action}
		}

		patch, err := build(current, s.now())
		if err != nil {
			return nil, err
		}
		if patch.Empty() {
			return current, nil
		}

		updated, err := s.repo.UpdateByID(wctx, current.ID, current.Version, patch)
		switch {
		case errors.Is(err, store.ErrVersionConflict), errors.Is(err, store.ErrDuplicateSlug):
			s.logger.Debug("concurrent post write, retrying",
				"post_id", current.ID, "attempt", attempt, "error", err)
			continue
		case err != nil:
			return nil, s.repoError(action+" post", id, err)
		}

		mutation := MutationUpdate
		if !patch.Trackable() {
			mutation = MutationUntrackedUpdate
		}
		s.inv.run(wctx, mutation, updated.ID, updated.Slug, current.Slug)

		if patch.Trackable() {
			s.logger.Info("post updated", "post_id", updated.ID, "version", updated.Version, "actor_id", actor.ID)
		}
		return updated, nil
	}

	return nil, &ConflictError{Message: fmt.Sprintf("post %q was modified concurrently, retry the %s", id, action)}
}

// DeletePost removes the post on behalf of actor.
func (s *PostService) DeletePost(ctx context.Context, id string, actor model.Actor) error {
	current, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if !s.authz.CanModify(actor, current) {
		return &ForbiddenError{ActorID: actor.ID, Action: "delete"}
	}

	wctx := context.WithoutCancel(ctx)
	deleted, err := s.repo.DeleteByID(wctx, current.ID, s.purgeHistory)
	if err != nil {
		return s.repoError("delete post", id, err)
	}

	s.inv.run(wctx, MutationDelete, deleted.ID, deleted.Slug, "")
	s.logger.Info("post deleted", "post_id", deleted.ID, "slug", deleted.Slug, "actor_id", actor.ID)
	return nil
}

// History returns the status and content logs of a post. Administrators
// can also read the logs a deleted post left behind, by its id.
func (s *PostService) History(ctx context.Context, id string, actor model.Actor) (*PostHistory, error) {
	current, err := s.findPost(ctx, id)
	if errors.Is(err, ErrNotFound) && actor.IsAdmin() {
		return s.retainedHistory(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if !s.authz.CanModify(actor, current) {
		return nil, &ForbiddenError{ActorID: actor.ID, Action: "view the history of"}
	}

	revisions := current.History
	if revisions == nil {
		revisions = []model.Revision{}
	}
	statuses := current.StatusHistory
	if statuses == nil {
		statuses = []model.StatusChange{}
	}
	return &PostHistory{
		PostID:        current.ID,
		Version:       current.Version,
		StatusHistory: statuses,
		Revisions:     revisions,
	}, nil
}

// retainedHistory reads the logs of a post that no longer exists. The
// version is the one of the last recorded revision.
func (s *PostService) retainedHistory(ctx context.Context, id string) (*PostHistory, error) {
	statuses, err := s.repo.LoadStatusHistory(ctx, id)
	if err != nil {
		return nil, &DatabaseError{Op: "load status history", Err: err}
	}
	revisions, err := s.repo.LoadRevisions(ctx, id)
	if err != nil {
		return nil, &DatabaseError{Op: "load content history", Err: err}
	}
	if len(statuses) == 0 && len(revisions) == 0 {
		return nil, &NotFoundError{Resource: "post", Identifier: id}
	}

	version := 0
	if n := len(revisions); n > 0 {
		version = revisions[n-1].Version
	}
	return &PostHistory{
		PostID:        id,
		Version:       version,
		Deleted:       true,
		StatusHistory: statuses,
		Revisions:     revisions,
	}, nil
}

// PublishDue publishes every scheduled post whose publish date is at or
// before now. It returns the ids it published; failures on individual posts
// are joined into the error without stopping the run.
func (s *PostService) PublishDue(ctx context.Context, now time.Time) ([]string, error) {
	due, err := s.repo.FindDueScheduled(ctx, now)
	if err != nil {
		return nil, &DatabaseError{Op: "find due posts", Err: err}
	}

	published := make([]string, 0, len(due))
	var errs []error
	status := model.PostStatusPublished
	for _, p := range due {
		if _, err := s.UpdatePost(ctx, p.ID, model.PostUpdate{Status: &status}, model.SystemActor); err != nil {
			s.logger.Warn("failed to publish scheduled post", "post_id", p.ID, "error", err)
			errs = append(errs, fmt.Errorf("publishing %s: %w", p.ID, err))
			continue
		}
		published = append(published, p.ID)
	}

	return published, errors.Join(errs...)
}

// CacheStats returns the cache statistics when the backend keeps them.
func (s *PostService) CacheStats() (cache.Stats, bool) {
	sp, ok := s.cache.(cache.StatsProvider)
	if !ok {
		return cache.Stats{}, false
	}
	return sp.Stats(), true
}

// ClearCache empties the whole cache. Only administrators may do this.
func (s *PostService) ClearCache(ctx context.Context, actor model.Actor) error {
	if !actor.IsAdmin() {
		return &ForbiddenError{ActorID: actor.ID, Action: "clear the cache for"}
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("cache clear failed", "error", err)
	}
	s.logger.Info("cache cleared", "actor_id", actor.ID)
	return nil
}

// loadPost reads through the cache. Cache failures fall back to the repository.
// A miss warms the id and the slug entry of the post together.
func (s *PostService) loadPost(ctx context.Context, identifier string) (*model.Post, error) {
	key := postKey(identifier)
	if p, err := s.posts.Lookup(ctx, key); err == nil {
		return p, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("cache read failed", "key", key, "error", err)
	}

	gen := s.inv.generation(ctx, key)
	p, err := s.findPost(ctx, identifier)
	if err != nil {
		return nil, err
	}

	entries := map[string]*model.Post{postKey(p.ID): p, postKey(p.Slug): p}
	s.fill(ctx, key, gen, slices.Collect(maps.Keys(entries)), func() error {
		return s.posts.SetMultiple(ctx, entries)
	})

	return p, nil
}

// findPost reads from the repository only.
func (s *PostService) findPost(ctx context.Context, identifier string) (*model.Post, error) {
	p, err := s.repo.FindBySlugOrID(ctx, identifier)
	if err != nil {
		return nil, s.repoError("find post", identifier, err)
	}
	return p, nil
}

// fill runs a cache write of values just read from the repository. When
// target was invalidated after gen was taken the values may predate that
// write, so keys are evicted again. Failures are logged.
func (s *PostService) fill(ctx context.Context, target, gen string, keys []string, set func() error) {
	if err := set(); err != nil {
		s.logger.Warn("cache write failed", "key", target, "error", err)
		return
	}
	if s.inv.generation(ctx, target) == gen {
		return
	}

	s.logger.Debug("cache fill overlapped a write, evicting", "key", target)
	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("cache eviction failed", "key", key, "error", err)
		}
	}
}

// repoError maps repository errors onto the service taxonomy.
func (s *PostService) repoError(op, identifier string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Resource: "post", Identifier: identifier}
	}
	return &DatabaseError{Op: op, Err: err}
}

// uniqueSlug derives a slug from title that no post other than excludeID uses.
func (s *PostService) uniqueSlug(ctx context.Context, title, excludeID string) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		base = util.DefaultSlug
	}

	for i := 0; i <= maxSlugSuffix; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := s.repo.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", &DatabaseError{Op: "check slug", Err: err}
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", &ConflictError{Message: fmt.Sprintf("no free slug for %q after %d attempts", base, maxSlugSuffix)}
}

func validateCreate(in *CreatePostInput, now time.Time) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)

	if in.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if strings.TrimSpace(in.Content) == "" {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	if in.Category == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	if in.Status == "" {
		in.Status = model.PostStatusDraft
	}
	if !model.ValidPostStatus(in.Status) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", in.Status)}
	}
	if in.Status == model.PostStatusScheduled {
		if in.ScheduledPublishDate == nil {
			return &ValidationError{Field: "scheduled_publish_date", Message: "is required for scheduled posts"}
		}
		if !in.ScheduledPublishDate.After(now) {
			return &ValidationError{Field: "scheduled_publish_date", Message: "must be in the future"}
		}
	}
	return nil
}

func validateUpdate(u *model.PostUpdate) error {
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return &ValidationError{Field: "title", Message: "must not be empty"}
		}
		u.Title = &title
	}
	if u.Content != nil && strings.TrimSpace(*u.Content) == "" {
		return &ValidationError{Field: "content", Message: "must not be empty"}
	}
	if u.Category != nil {
		category := strings.TrimSpace(*u.Category)
		if category == "" {
			return &ValidationError{Field: "category", Message: "must not be empty"}
		}
		u.Category = &category
	}
	if u.Status != nil && !model.ValidPostStatus(*u.Status) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", *u.Status)}
	}
	return nil
}

// validateTransition checks the rules that depend on the stored post.
func validateTransition(current *model.Post, u model.PostUpdate, now time.Time) error {
	if u.Status == nil || *u.Status != model.PostStatusScheduled || current.Status == model.PostStatusScheduled {
		return nil
	}
	if u.ScheduledPublishDate == nil {
		return &ValidationError{Field: "scheduled_publish_date", Message: "is required for scheduled posts"}
	}
	if !u.ScheduledPublishDate.After(now) {
		return &ValidationError{Field: "scheduled_publish_date", Message: "must be in the future"}
	}
	return nil
}
