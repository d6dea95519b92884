// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/oblog/internal/model"
)

// EventStore persists the event log.
type EventStore struct {
	db *sql.DB
}

// NewEventStore creates an EventStore.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

// CreateEvent appends an event. A zero CreatedAt is stamped with the current time.
func (s *EventStore) CreateEvent(ctx context.Context, e model.Event) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Metadata == "" {
		e.Metadata = "{}"
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, actor_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Level, e.Category, e.Message, e.ActorID, e.Metadata, formatTime(e.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("creating event: %w", err)
	}
	return res.LastInsertId()
}

// ListEvents returns the newest events first, optionally restricted to a category.
func (s *EventStore) ListEvents(ctx context.Context, category string, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, level, category, message, actor_id, metadata, created_at FROM events`
	args := []any{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		var created string
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.ActorID, &e.Metadata, &created); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if e.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// DeleteEventsBefore removes events created before cutoff and returns how many were removed.
func (s *EventStore) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("deleting old events: %w", err)
	}
	return res.RowsAffected()
}
