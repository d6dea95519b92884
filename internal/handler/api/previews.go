// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CreatePreviewRequest is the body of POST /api/v1/previews.
type CreatePreviewRequest struct {
	Content string `json:"content"`
}

// CreatePreview handles POST /api/v1/previews.
func (h *Handler) CreatePreview(w http.ResponseWriter, r *http.Request) {
	var req CreatePreviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.previews.CreatePreview(r.Context(), req.Content)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteCreated(w, p)
}

// GetPreview handles GET /api/v1/previews/{id}.
func (h *Handler) GetPreview(w http.ResponseWriter, r *http.Request) {
	p, err := h.previews.GetPreview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, p, nil)
}
