// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Actor roles
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
)

// Actor is the identity performing an operation.
// It is supplied by the upstream identity provider, never resolved here.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// SystemActor is used for writes made by background jobs.
var SystemActor = Actor{ID: "system", Name: "scheduler", Role: RoleAdmin}

// IsAdmin returns true if the actor has admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsAnonymous reports whether no identity was supplied.
func (a Actor) IsAnonymous() bool {
	return a.ID == ""
}

// Label returns the value recorded as updated_by in status history.
func (a Actor) Label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// ValidRole reports whether r is a known actor role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleAuthor
}
