// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/oblog/internal/model"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostStore implements the post repository on SQLite.
type PostStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostStore creates a PostStore over an open, migrated database.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db, now: time.Now}
}

const postColumns = `id, slug, title, content, excerpt, category, status,
	scheduled_publish_date, date, published_at, read_time, views,
	meta_title, meta_description, meta_keywords, version, last_modified,
	autosave_content, autosave_date, author_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// postRow mirrors the posts table.
type postRow struct {
	ID, Slug, Title, Content, Excerpt, Category, Status string
	ScheduledPublishDate                                sql.NullString
	Date                                                string
	PublishedAt                                         sql.NullString
	ReadTime                                            string
	Views                                               int64
	MetaTitle, MetaDescription, MetaKeywords            string
	Version                                             int
	LastModified                                        string
	AutoSaveContent, AutoSaveDate                       sql.NullString
	AuthorID, CreatedAt, UpdatedAt                      string
}

func scanPost(s rowScanner) (*model.Post, error) {
	var r postRow
	err := s.Scan(
		&r.ID, &r.Slug, &r.Title, &r.Content, &r.Excerpt, &r.Category, &r.Status,
		&r.ScheduledPublishDate, &r.Date, &r.PublishedAt, &r.ReadTime, &r.Views,
		&r.MetaTitle, &r.MetaDescription, &r.MetaKeywords, &r.Version, &r.LastModified,
		&r.AutoSaveContent, &r.AutoSaveDate, &r.AuthorID, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r.toModel()
}

func (r *postRow) toModel() (*model.Post, error) {
	p := &model.Post{
		ID:              r.ID,
		Slug:            r.Slug,
		Title:           r.Title,
		Content:         r.Content,
		Excerpt:         r.Excerpt,
		Tags:            []string{},
		Category:        r.Category,
		Status:          r.Status,
		ReadTime:        r.ReadTime,
		Views:           r.Views,
		SEO:             model.SEO{MetaTitle: r.MetaTitle, MetaDescription: r.MetaDescription},
		Version:         r.Version,
		StatusHistory:   []model.StatusChange{},
		AutoSaveContent: r.AutoSaveContent.String,
		AuthorID:        r.AuthorID,
	}

	if r.MetaKeywords != "" {
		if err := json.Unmarshal([]byte(r.MetaKeywords), &p.SEO.Keywords); err != nil {
			return nil, fmt.Errorf("decoding meta keywords of %s: %w", r.ID, err)
		}
	}

	var err error
	if p.ScheduledPublishDate, err = parseNullTime(r.ScheduledPublishDate); err != nil {
		return nil, err
	}
	if p.PublishedAt, err = parseNullTime(r.PublishedAt); err != nil {
		return nil, err
	}
	if p.AutoSaveDate, err = parseNullTime(r.AutoSaveDate); err != nil {
		return nil, err
	}
	if p.Date, err = parseTime(r.Date); err != nil {
		return nil, err
	}
	if p.LastModified, err = parseTime(r.LastModified); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// FindBySlugOrID loads a post with its tags and history logs.
// UUID-shaped identifiers are tried as ids first, then as slugs.
func (s *PostStore) FindBySlugOrID(ctx context.Context, identifier string) (*model.Post, error) {
	return s.findOne(ctx, s.db, identifier)
}

func (s *PostStore) findOne(ctx context.Context, q querier, identifier string) (*model.Post, error) {
	if _, err := uuid.Parse(identifier); err == nil {
		p, err := s.findBy(ctx, q, "id", identifier)
		if !errors.Is(err, ErrNotFound) {
			return p, err
		}
	}
	return s.findBy(ctx, q, "slug", identifier)
}

func (s *PostStore) findBy(ctx context.Context, q querier, column, value string) (*model.Post, error) {
	row := q.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE `+column+` = ?`, value)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading post by %s: %w", column, err)
	}

	if err := s.loadLogs(ctx, q, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostStore) loadLogs(ctx context.Context, q querier, p *model.Post) error {
	tags, err := loadTags(ctx, q, []string{p.ID})
	if err != nil {
		return err
	}
	if t, ok := tags[p.ID]; ok {
		p.Tags = t
	}

	if p.StatusHistory, err = loadStatusHistory(ctx, q, p.ID); err != nil {
		return err
	}
	p.History, err = loadRevisions(ctx, q, p.ID)
	return err
}

func loadStatusHistory(ctx context.Context, q querier, postID string) ([]model.StatusChange, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT status, date, updated_by FROM post_status_history WHERE post_id = ? ORDER BY id`, postID)
	if err != nil {
		return nil, fmt.Errorf("loading status history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]model.StatusChange, 0)
	for rows.Next() {
		var sc model.StatusChange
		var date string
		if err := rows.Scan(&sc.Status, &date, &sc.UpdatedBy); err != nil {
			return nil, fmt.Errorf("scanning status history: %w", err)
		}
		if sc.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		entries = append(entries, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status history: %w", err)
	}
	return entries, nil
}

// LoadRevisions returns the content history of a post, oldest first.
// It also works for deleted posts whose history was retained.
func (s *PostStore) LoadRevisions(ctx context.Context, postID string) ([]model.Revision, error) {
	return loadRevisions(ctx, s.db, postID)
}

// LoadStatusHistory returns the status log of a post, oldest first.
// Like LoadRevisions it reads retained logs of deleted posts.
func (s *PostStore) LoadStatusHistory(ctx context.Context, postID string) ([]model.StatusChange, error) {
	return loadStatusHistory(ctx, s.db, postID)
}

func loadRevisions(ctx context.Context, q querier, postID string) ([]model.Revision, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT content, date, version FROM post_content_history WHERE post_id = ? ORDER BY version, id`, postID)
	if err != nil {
		return nil, fmt.Errorf("loading content history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	revs := make([]model.Revision, 0)
	for rows.Next() {
		var rev model.Revision
		var date string
		if err := rows.Scan(&rev.Content, &date, &rev.Version); err != nil {
			return nil, fmt.Errorf("scanning content history: %w", err)
		}
		if rev.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content history: %w", err)
	}
	return revs, nil
}

// loadTags returns tags per post id, in display order.
func loadTags(ctx context.Context, q querier, ids []string) (map[string][]string, error) {
	out := make(map[string][]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := q.QueryContext(ctx,
		`SELECT post_id, tag FROM post_tags WHERE post_id IN (`+placeholders(len(ids))+`) ORDER BY post_id, position`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("loading tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		out[id] = append(out[id], tag)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// escapeLike escapes LIKE wildcards so the term matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

var sortColumns = map[string]string{
	model.SortByDate:         "date",
	model.SortByViews:        "views",
	model.SortByTitle:        "title COLLATE NOCASE",
	model.SortByLastModified: "last_modified",
}

// FindMany returns one page of posts matching f and the total match count.
// Listed posts carry tags but not their history logs.
func (s *PostStore) FindMany(ctx context.Context, f model.PostFilter) ([]model.Post, int, error) {
	f = f.Normalize()

	var where []string
	var args []any

	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.AuthorID != "" {
		where = append(where, "author_id = ?")
		args = append(args, f.AuthorID)
	}
	if len(f.Tags) > 0 {
		where = append(where, `EXISTS (SELECT 1 FROM post_tags t WHERE t.post_id = posts.id AND t.tag IN (`+placeholders(len(f.Tags))+`))`)
		for _, tag := range f.Tags {
			args = append(args, tag)
		}
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + escapeLike(strings.ToLower(term)) + "%"
		where = append(where, `(`+lowerFunc+`(title) LIKE ? ESCAPE '\' OR `+lowerFunc+`(content) LIKE ? ESCAPE '\'
			OR EXISTS (SELECT 1 FROM post_tags t WHERE t.post_id = posts.id AND `+lowerFunc+`(t.tag) LIKE ? ESCAPE '\'))`)
		args = append(args, like, like, like)
	}
	if f.PublicOnly {
		now := f.Now
		if now.IsZero() {
			now = s.now()
		}
		where = append(where, `(status = 'published' OR (status = 'scheduled' AND scheduled_publish_date <= ?))`)
		args = append(args, formatTime(now))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}

	dir := "ASC"
	if f.Desc {
		dir = "DESC"
	}
	query := `SELECT ` + postColumns + ` FROM posts` + clause +
		` ORDER BY ` + sortColumns[f.SortBy] + ` ` + dir + `, id ` + dir +
		` LIMIT ? OFFSET ?`

	rows, err := s.db.QueryContext(ctx, query, append(args, f.Limit, f.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}
	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := s.attachTags(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func collectPosts(rows *sql.Rows) ([]model.Post, error) {
	defer func() { _ = rows.Close() }()

	posts := make([]model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning post row: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating post rows: %w", err)
	}
	return posts, nil
}

func (s *PostStore) attachTags(ctx context.Context, posts []model.Post) error {
	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	tags, err := loadTags(ctx, s.db, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		if t, ok := tags[posts[i].ID]; ok {
			posts[i].Tags = t
		}
	}
	return nil
}

// Insert stores a new post, assigning its id and timestamps.
// The post's status history and revisions are written with it.
func (s *PostStore) Insert(ctx context.Context, p *model.Post) (*model.Post, error) {
	now := s.now().UTC()
	id := uuid.NewString()

	date := p.Date
	if date.IsZero() {
		date = now
	}
	lastModified := p.LastModified
	if lastModified.IsZero() {
		lastModified = now
	}
	version := p.Version
	if version < 1 {
		version = 1
	}
	keywords, err := encodeKeywords(p.SEO.Keywords)
	if err != nil {
		return nil, err
	}

	var autosave any
	if p.AutoSaveContent != "" {
		autosave = p.AutoSaveContent
	}

	var created *model.Post
	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO posts (`+postColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, p.Slug, p.Title, p.Content, p.Excerpt, p.Category, p.Status,
			formatNullTime(p.ScheduledPublishDate), formatTime(date), formatNullTime(p.PublishedAt),
			p.ReadTime, p.Views,
			p.SEO.MetaTitle, p.SEO.MetaDescription, keywords, version, formatTime(lastModified),
			autosave, formatNullTime(p.AutoSaveDate), p.AuthorID, formatTime(now), formatTime(now),
		)
		if err != nil {
			if isUniqueSlugViolation(err) {
				return ErrDuplicateSlug
			}
			return fmt.Errorf("inserting post: %w", err)
		}

		if err := replaceTags(ctx, tx, id, p.Tags); err != nil {
			return err
		}
		if err := appendStatusHistory(ctx, tx, id, p.StatusHistory); err != nil {
			return err
		}
		if err := appendRevisions(ctx, tx, id, p.History); err != nil {
			return err
		}

		created, err = s.findBy(ctx, tx, "id", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateByID applies patch to the post if its stored version still equals
// expectedVersion. Logs are appended and trimmed in the same transaction.
func (s *PostStore) UpdateByID(ctx context.Context, id string, expectedVersion int, patch model.PostPatch) (*model.Post, error) {
	now := s.now().UTC()

	sets := []string{"updated_at = ?"}
	args := []any{formatTime(now)}
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Slug != nil {
		set("slug", *patch.Slug)
	}
	if patch.Content != nil {
		set("content", *patch.Content)
	}
	if patch.Excerpt != nil {
		set("excerpt", *patch.Excerpt)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	if patch.ClearScheduledDate {
		set("scheduled_publish_date", nil)
	} else if patch.ScheduledPublishDate != nil {
		set("scheduled_publish_date", formatTime(*patch.ScheduledPublishDate))
	}
	if patch.PublishedAt != nil {
		set("published_at", formatTime(*patch.PublishedAt))
	}
	if patch.ReadTime != nil {
		set("read_time", *patch.ReadTime)
	}
	if patch.SEO != nil {
		keywords, err := encodeKeywords(patch.SEO.Keywords)
		if err != nil {
			return nil, err
		}
		set("meta_title", patch.SEO.MetaTitle)
		set("meta_description", patch.SEO.MetaDescription)
		set("meta_keywords", keywords)
	}
	if patch.Version != nil {
		set("version", *patch.Version)
	}
	if patch.LastModified != nil {
		set("last_modified", formatTime(*patch.LastModified))
	}
	if patch.AutoSaveContent != nil {
		set("autosave_content", *patch.AutoSaveContent)
	}
	if patch.AutoSaveDate != nil {
		set("autosave_date", formatTime(*patch.AutoSaveDate))
	}

	var updated *model.Post
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE posts SET `+strings.Join(sets, ", ")+` WHERE id = ? AND version = ?`,
			append(args, id, expectedVersion)...)
		if err != nil {
			if isUniqueSlugViolation(err) {
				return ErrDuplicateSlug
			}
			return fmt.Errorf("updating post: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking update result: %w", err)
		}
		if n == 0 {
			var exists int
			err := tx.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE id = ?`, id).Scan(&exists)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("checking post: %w", err)
			}
			return ErrVersionConflict
		}

		if patch.Tags != nil {
			if err := replaceTags(ctx, tx, id, *patch.Tags); err != nil {
				return err
			}
		}
		if err := appendStatusHistory(ctx, tx, id, patch.StatusEntries); err != nil {
			return err
		}
		if err := appendRevisions(ctx, tx, id, patch.Revisions); err != nil {
			return err
		}
		if patch.HistoryCap > 0 && len(patch.Revisions) > 0 {
			if err := trimRevisions(ctx, tx, id, patch.HistoryCap); err != nil {
				return err
			}
		}

		updated, err = s.findBy(ctx, tx, "id", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func encodeKeywords(keywords []string) (string, error) {
	if len(keywords) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(keywords)
	if err != nil {
		return "", fmt.Errorf("encoding meta keywords: %w", err)
	}
	return string(b), nil
}

func replaceTags(ctx context.Context, tx *sql.Tx, postID string, tags []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("clearing tags: %w", err)
	}
	for i, tag := range model.NormalizeTags(tags) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag, position) VALUES (?, ?, ?)`, postID, tag, i); err != nil {
			return fmt.Errorf("inserting tag %q: %w", tag, err)
		}
	}
	return nil
}

func appendStatusHistory(ctx context.Context, tx *sql.Tx, postID string, entries []model.StatusChange) error {
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_status_history (post_id, status, date, updated_by) VALUES (?, ?, ?, ?)`,
			postID, e.Status, formatTime(e.Date), e.UpdatedBy); err != nil {
			return fmt.Errorf("appending status history: %w", err)
		}
	}
	return nil
}

func appendRevisions(ctx context.Context, tx *sql.Tx, postID string, revs []model.Revision) error {
	for _, r := range revs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_content_history (post_id, content, date, version) VALUES (?, ?, ?, ?)`,
			postID, r.Content, formatTime(r.Date), r.Version); err != nil {
			return fmt.Errorf("appending content history: %w", err)
		}
	}
	return nil
}

// trimRevisions keeps only the newest keep revisions of a post.
func trimRevisions(ctx context.Context, tx *sql.Tx, postID string, keep int) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM post_content_history
		WHERE post_id = ? AND id NOT IN (
			SELECT id FROM post_content_history
			WHERE post_id = ?
			ORDER BY version DESC, id DESC
			LIMIT ?
		)`, postID, postID, keep)
	if err != nil {
		return fmt.Errorf("trimming content history: %w", err)
	}
	return nil
}

// IncrementViews atomically adds one view and returns the new count.
func (s *PostStore) IncrementViews(ctx context.Context, id string) (int64, error) {
	var views int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE posts SET views = views + 1 WHERE id = ? RETURNING views`, id).Scan(&views)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("incrementing views: %w", err)
	}
	return views, nil
}

// DeleteByID removes a post and returns it as it was before deletion.
// History logs are kept unless purgeHistory is set.
func (s *PostStore) DeleteByID(ctx context.Context, id string, purgeHistory bool) (*model.Post, error) {
	var deleted *model.Post
	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := s.findBy(ctx, tx, "id", id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = ?`, id); err != nil {
			return fmt.Errorf("deleting tags: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting post: %w", err)
		}

		if purgeHistory {
			if _, err := tx.ExecContext(ctx, `DELETE FROM post_status_history WHERE post_id = ?`, id); err != nil {
				return fmt.Errorf("purging status history: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM post_content_history WHERE post_id = ?`, id); err != nil {
				return fmt.Errorf("purging content history: %w", err)
			}
		}

		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// DistinctCategories returns every category in use, sorted.
func (s *PostStore) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM posts ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// SlugTaken reports whether slug belongs to a post other than excludeID.
func (s *PostStore) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = ? AND id <> ?)`, slug, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("checking slug: %w", err)
	}
	return taken, nil
}

// FindDueScheduled returns scheduled posts whose publish date is at or before now.
func (s *PostStore) FindDueScheduled(ctx context.Context, now time.Time) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE status = 'scheduled' AND scheduled_publish_date <= ?
		ORDER BY scheduled_publish_date`, formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("listing due posts: %w", err)
	}
	posts, err := collectPosts(rows)
	if err != nil {
		return nil, err
	}
	if err := s.attachTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}
