// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"strings"
)

const (
	// WordsPerMinute is the reading speed used by ReadTime.
	WordsPerMinute = 200

	// ExcerptLength is the number of characters kept by Excerpt.
	ExcerptLength = 200
)

// ReadTime estimates reading time as "N min read", rounding up, never below 1.
func ReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Excerpt returns the first ExcerptLength characters of content followed by "...".
// Truncation counts runes so multibyte text is never split mid-character.
func Excerpt(content string) string {
	r := []rune(content)
	if len(r) > ExcerptLength {
		r = r[:ExcerptLength]
	}
	return string(r) + "..."
}
