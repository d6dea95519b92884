// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog/internal/middleware"
	"github.com/olegiv/oblog/internal/model"
	"github.com/olegiv/oblog/internal/service"
)

// PostResponse is a post, optionally with its rendered HTML.
type PostResponse struct {
	*model.Post
	HTML string `json:"html,omitempty"`
}

// AutoSaveRequest is the body of an autosave.
type AutoSaveRequest struct {
	Content *string `json:"content"`
}

// ListPosts handles GET /api/v1/posts.
// Only admins and authors listing their own posts (?author=<own id>) see
// unpublished posts; everyone else gets the posts that are visible now.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := parsePostFilter(r)
	if len(fieldErrors) > 0 {
		WriteBadRequest(w, "Invalid query parameters", fieldErrors)
		return
	}
	filter.PublicOnly = !canListUnpublished(middleware.GetActor(r), filter)

	page, err := h.posts.ListPosts(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	pages := 0
	if page.Limit > 0 {
		pages = (page.Total + page.Limit - 1) / page.Limit
	}
	WriteSuccess(w, page.Items, &Meta{
		Total:   int64(page.Total),
		Page:    page.Page,
		PerPage: page.Limit,
		Pages:   pages,
	})
}

func canListUnpublished(actor model.Actor, f model.PostFilter) bool {
	if actor.IsAdmin() {
		return true
	}
	return !actor.IsAnonymous() && f.AuthorID == actor.ID
}

// parsePostFilter reads the listing query string.
func parsePostFilter(r *http.Request) (model.PostFilter, map[string]string) {
	q := r.URL.Query()
	errs := map[string]string{}

	f := model.PostFilter{
		Status:   q.Get("status"),
		Category: strings.TrimSpace(q.Get("category")),
		AuthorID: strings.TrimSpace(q.Get("author")),
		Search:   strings.TrimSpace(q.Get("search")),
		SortBy:   q.Get("sort"),
	}

	for _, v := range q["tag"] {
		f.Tags = append(f.Tags, strings.Split(v, ",")...)
	}

	for name, dst := range map[string]*int{"page": &f.Page, "limit": &f.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errs[name] = "must be a positive integer"
			continue
		}
		*dst = n
	}

	switch strings.ToLower(q.Get("order")) {
	case "":
	case "asc":
		f.Desc = false
		if f.SortBy == "" {
			f.SortBy = model.SortByDate
		}
	case "desc":
		f.Desc = true
		if f.SortBy == "" {
			f.SortBy = model.SortByDate
		}
	default:
		errs["order"] = "must be asc or desc"
	}

	switch f.SortBy {
	case "", model.SortByDate, model.SortByViews, model.SortByTitle, model.SortByLastModified:
	default:
		errs["sort"] = "unknown sort field"
	}

	return f, errs
}

// GetPost handles GET /api/v1/posts/{id}, where id may also be a slug.
//
// ?preview=true reads the stored post without counting a view and shows
// drafts; only the author or an admin may preview. ?render=true adds the
// sanitized HTML of the content.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "id")

	preview, err := queryBool(r, "preview")
	if err != nil {
		WriteBadRequest(w, "Invalid preview flag", map[string]string{"preview": "must be a boolean"})
		return
	}
	render, err := queryBool(r, "render")
	if err != nil {
		WriteBadRequest(w, "Invalid render flag", map[string]string{"render": "must be a boolean"})
		return
	}

	actor := middleware.GetActor(r)
	if preview && actor.IsAnonymous() {
		WriteUnauthorized(w, "Preview requires an identified actor")
		return
	}

	post, err := h.posts.GetPost(r.Context(), identifier, preview)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if preview && !(service.OwnerOrAdmin{}).CanModify(actor, post) {
		WriteNotFound(w, "Post not found")
		return
	}

	resp := PostResponse{Post: post}
	if render {
		html, err := h.previews.RenderPost(post)
		if err != nil {
			h.writeServiceError(w, r, err)
			return
		}
		resp.HTML = html
	}
	WriteSuccess(w, resp, nil)
}

// CreatePost handles POST /api/v1/posts.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in service.CreatePostInput
	if !decodeJSON(w, r, &in) {
		return
	}

	post, err := h.posts.CreatePost(r.Context(), in, middleware.GetActor(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, post)
}

// UpdatePost handles PUT /api/v1/posts/{id}.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var u model.PostUpdate
	if !decodeJSON(w, r, &u) {
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), chi.URLParam(r, "id"), u, middleware.GetActor(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, post, nil)
}

// AutoSave handles PUT /api/v1/posts/{id}/autosave.
func (h *Handler) AutoSave(w http.ResponseWriter, r *http.Request) {
	var req AutoSaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == nil {
		WriteValidationError(w, map[string]string{"content": "is required"})
		return
	}

	post, err := h.posts.AutoSave(r.Context(), chi.URLParam(r, "id"), *req.Content, middleware.GetActor(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, post, nil)
}

// DeletePost handles DELETE /api/v1/posts/{id}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.DeletePost(r.Context(), chi.URLParam(r, "id"), middleware.GetActor(r)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteNoContent(w)
}

// PostHistory handles GET /api/v1/posts/{id}/history.
func (h *Handler) PostHistory(w http.ResponseWriter, r *http.Request) {
	hist, err := h.posts.History(r.Context(), chi.URLParam(r, "id"), middleware.GetActor(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, hist, nil)
}

// Categories handles GET /api/v1/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.posts.Categories(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, cats, &Meta{Total: int64(len(cats))})
}

func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
