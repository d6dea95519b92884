// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"encoding/json"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/olegiv/oblog/internal/model"
)

// Cache key layout.
const (
	postKeyPrefix    = "post:"
	listKeyPrefix    = "posts:list:"
	listKeyPattern   = listKeyPrefix + "*"
	categoriesKey    = "posts:categories"
	previewKeyPrefix = "preview:"
	markerKeyPrefix  = "invalidated:"
)

func postKey(identifier string) string {
	return postKeyPrefix + identifier
}

func previewKey(id string) string {
	return previewKeyPrefix + id
}

// markerKey names the invalidation marker of a key or pattern.
func markerKey(target string) string {
	return markerKeyPrefix + target
}

// listKey hashes the canonical form of the filter, so equal queries share
// an entry and the key length stays bounded.
func listKey(f model.PostFilter) string {
	f = f.Normalize()
	// Now is not serialized. Scheduled posts becoming due are handled by
	// the publish job invalidating the list namespace.
	b, _ := json.Marshal(f)
	return listKeyPrefix + strconv.FormatUint(xxhash.Sum64(b), 16)
}
