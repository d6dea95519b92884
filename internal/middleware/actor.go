// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/oblog/internal/model"
)

// ContextKeyActor is the context key for the acting user.
const ContextKeyActor ContextKey = "actor"

// Headers set by the authenticating proxy in front of the API.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorName = "X-Actor-Name"
	HeaderActorRole = "X-Actor-Role"
)

// maxActorHeaderLen bounds identity header values.
const maxActorHeaderLen = 256

// Actor loads the acting user from the identity headers into the request
// context. Requests without an actor id are anonymous. An unknown role
// degrades to author.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := model.Actor{
			ID:   headerValue(r, HeaderActorID),
			Name: headerValue(r, HeaderActorName),
			Role: strings.ToLower(headerValue(r, HeaderActorRole)),
		}

		if actor.ID == "" {
			actor = model.Actor{}
		} else if !model.ValidRole(actor.Role) {
			if actor.Role != "" {
				slog.Debug("unknown actor role, treating as author", "actor_id", actor.ID, "role", actor.Role)
			}
			actor.Role = model.RoleAuthor
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

func headerValue(r *http.Request, name string) string {
	v := strings.TrimSpace(r.Header.Get(name))
	if len(v) > maxActorHeaderLen {
		v = v[:maxActorHeaderLen]
	}
	return v
}

// WithActor returns a context carrying actor.
func WithActor(ctx context.Context, actor model.Actor) context.Context {
	return context.WithValue(ctx, ContextKeyActor, actor)
}

// GetActor returns the acting user, or the anonymous actor when none is set.
func GetActor(r *http.Request) model.Actor {
	return ActorFromContext(r.Context())
}

// ActorFromContext returns the actor stored by the Actor middleware.
func ActorFromContext(ctx context.Context) model.Actor {
	actor, _ := ctx.Value(ContextKeyActor).(model.Actor)
	return actor
}

// RequireActor rejects anonymous requests with 401.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetActor(r).IsAnonymous() {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r)
		if actor.IsAnonymous() {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
			return
		}
		if !actor.IsAdmin() {
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Administrator role required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
