// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/oblog/internal/cache"
	"github.com/olegiv/oblog/internal/middleware"
	"github.com/olegiv/oblog/internal/scheduler"
)

// Event listing limits
const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// CacheStatsResponse reports cache statistics when the backend keeps them.
type CacheStatsResponse struct {
	Supported bool         `json:"supported"`
	Stats     *cache.Stats `json:"stats,omitempty"`
}

// UpdateScheduleRequest is the body of PUT /api/v1/jobs/{source}/{name}.
type UpdateScheduleRequest struct {
	Schedule string `json:"schedule"`
}

// CacheStats handles GET /api/v1/cache/stats.
func (h *Handler) CacheStats(w http.ResponseWriter, _ *http.Request) {
	stats, ok := h.posts.CacheStats()
	resp := CacheStatsResponse{Supported: ok}
	if ok {
		resp.Stats = &stats
	}
	WriteSuccess(w, resp, nil)
}

// ClearCache handles DELETE /api/v1/cache.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.posts.ClearCache(r.Context(), middleware.GetActor(r)); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteNoContent(w)
}

// ListEvents handles GET /api/v1/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteBadRequest(w, "Invalid query parameters", map[string]string{"limit": "must be a positive integer"})
			return
		}
		limit = min(n, maxEventLimit)
	}

	events, err := h.events.ListEvents(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")), limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	WriteSuccess(w, events, &Meta{Total: int64(len(events)), PerPage: limit})
}

// ListJobs handles GET /api/v1/jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, _ *http.Request) {
	if h.jobs == nil {
		WriteSuccess(w, []scheduler.JobInfo{}, nil)
		return
	}
	jobs := h.jobs.List()
	WriteSuccess(w, jobs, &Meta{Total: int64(len(jobs))})
}

// TriggerJob handles POST /api/v1/jobs/{source}/{name}/trigger.
// The job runs synchronously; its error is reported as a 500.
func (h *Handler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	source, name, ok := h.requireJob(w, r)
	if !ok {
		return
	}

	if err := h.jobs.TriggerNow(source, name); err != nil {
		h.logger.Error("manual job run failed", "source", source, "name", name, "error", err)
		WriteInternalError(w, "Job failed")
		return
	}
	WriteSuccess(w, map[string]string{"status": "completed"}, nil)
}

// UpdateJobSchedule handles PUT /api/v1/jobs/{source}/{name}.
func (h *Handler) UpdateJobSchedule(w http.ResponseWriter, r *http.Request) {
	source, name, ok := h.requireJob(w, r)
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.jobs.UpdateSchedule(source, name, strings.TrimSpace(req.Schedule)); err != nil {
		WriteValidationError(w, map[string]string{"schedule": err.Error()})
		return
	}
	h.writeJob(w, source, name)
}

// ResetJobSchedule handles DELETE /api/v1/jobs/{source}/{name}/schedule.
func (h *Handler) ResetJobSchedule(w http.ResponseWriter, r *http.Request) {
	source, name, ok := h.requireJob(w, r)
	if !ok {
		return
	}

	if err := h.jobs.ResetSchedule(source, name); err != nil {
		h.logger.Error("resetting job schedule failed", "source", source, "name", name, "error", err)
		WriteInternalError(w, "Failed to reset schedule")
		return
	}
	h.writeJob(w, source, name)
}

// requireJob resolves the job named in the URL, writing a 404 when it is unknown.
func (h *Handler) requireJob(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	source, name := chi.URLParam(r, "source"), chi.URLParam(r, "name")
	if _, ok := h.findJob(source, name); !ok {
		WriteNotFound(w, "Job not found")
		return "", "", false
	}
	return source, name, true
}

func (h *Handler) findJob(source, name string) (scheduler.JobInfo, bool) {
	if h.jobs == nil {
		return scheduler.JobInfo{}, false
	}
	for _, j := range h.jobs.List() {
		if j.Source == source && j.Name == name {
			return j, true
		}
	}
	return scheduler.JobInfo{}, false
}

func (h *Handler) writeJob(w http.ResponseWriter, source, name string) {
	job, _ := h.findJob(source, name)
	WriteSuccess(w, job, nil)
}
