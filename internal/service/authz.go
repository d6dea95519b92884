// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import "github.com/olegiv/oblog/internal/model"

// Authorizer decides whether an actor may mutate a post.
type Authorizer interface {
	CanModify(actor model.Actor, post *model.Post) bool
}

// OwnerOrAdmin allows the post's author and administrators.
type OwnerOrAdmin struct{}

// CanModify implements Authorizer.
func (OwnerOrAdmin) CanModify(actor model.Actor, post *model.Post) bool {
	if actor.IsAnonymous() {
		return false
	}
	return actor.IsAdmin() || actor.ID == post.AuthorID
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(actor model.Actor, post *model.Post) bool

// CanModify implements Authorizer.
func (f AuthorizerFunc) CanModify(actor model.Actor, post *model.Post) bool {
	return f(actor, post)
}
