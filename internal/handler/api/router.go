// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/oblog/internal/middleware"
)

// RouterConfig holds the HTTP settings of the router.
type RouterConfig struct {
	IsDevelopment  bool
	RequestTimeout time.Duration
	ReadRateLimit  float64 // requests per second per client on public reads
	ReadRateBurst  int
	AccessLog      bool
}

// NewRouter wires the API and health handlers into a chi router.
func NewRouter(h *Handler, health *HealthHandler, cfg RouterConfig) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.AccessLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(chimw.StripSlashes)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment)))
	r.Use(middleware.Actor)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	if health != nil {
		r.Get("/health", health.Health)
		r.Get("/health/live", health.Liveness)
		r.Get("/health/ready", health.Readiness)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", h.Status)

		// Public reads, rate limited per client
		r.Group(func(r chi.Router) {
			if cfg.ReadRateLimit > 0 {
				r.Use(middleware.NewClientRateLimiter(cfg.ReadRateLimit, cfg.ReadRateBurst).Middleware())
			}
			r.Get("/posts", h.ListPosts)
			r.Get("/posts/{id}", h.GetPost)
			r.Get("/categories", h.Categories)
			r.Get("/previews/{id}", h.GetPreview)
		})

		// Writes need an identified actor
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireActor)
			r.Post("/posts", h.CreatePost)
			r.Put("/posts/{id}", h.UpdatePost)
			r.Delete("/posts/{id}", h.DeletePost)
			r.Put("/posts/{id}/autosave", h.AutoSave)
			r.Get("/posts/{id}/history", h.PostHistory)
			r.Post("/previews", h.CreatePreview)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/cache/stats", h.CacheStats)
			r.Delete("/cache", h.ClearCache)
			r.Get("/events", h.ListEvents)
			r.Get("/jobs", h.ListJobs)
			r.Put("/jobs/{source}/{name}", h.UpdateJobSchedule)
			r.Delete("/jobs/{source}/{name}/schedule", h.ResetJobSchedule)
			r.Post("/jobs/{source}/{name}/trigger", h.TriggerJob)
		})
	})

	return r
}
