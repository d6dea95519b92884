// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/olegiv/oblog/internal/model"
)

// EventRepository is the event log persistence used by EventService.
type EventRepository interface {
	CreateEvent(ctx context.Context, e model.Event) (int64, error)
	ListEvents(ctx context.Context, category string, limit int) ([]model.Event, error)
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// EventService provides event logging functionality.
type EventService struct {
	events EventRepository
	logger *slog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(events EventRepository, logger *slog.Logger) *EventService {
	return &EventService{events: events, logger: logger}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message, actorID string, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		jsonBytes, err := json.Marshal(metadata)
		if err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	_, err := s.events.CreateEvent(ctx, model.Event{
		Level:     level,
		Category:  category,
		Message:   message,
		ActorID:   actorID,
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		// Info level: a warning here would loop back into the event log.
		s.logger.Info("failed to log event", "error", err, "message", message)
		return err
	}

	return nil
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message, actorID string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, actorID, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message, actorID string, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, actorID, metadata)
}

// ListEvents returns recent events, newest first.
func (s *EventService) ListEvents(ctx context.Context, category string, limit int) ([]model.Event, error) {
	events, err := s.events.ListEvents(ctx, category, limit)
	if err != nil {
		return nil, &DatabaseError{Op: "list events", Err: err}
	}
	return events, nil
}

// DeleteOldEvents removes events older than the specified duration.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	n, err := s.events.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, &DatabaseError{Op: "delete old events", Err: err}
	}
	return n, nil
}
