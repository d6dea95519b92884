// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/olegiv/oblog/internal/model"
)

// recordingWriter keeps events in memory.
type recordingWriter struct {
	mu     sync.Mutex
	events []model.Event
}

func (w *recordingWriter) CreateEvent(_ context.Context, e model.Event) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, e)
	return int64(len(w.events)), nil
}

func (w *recordingWriter) all() []model.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]model.Event(nil), w.events...)
}

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func TestEventLogHandler_Levels(t *testing.T) {
	tests := []struct {
		name      string
		log       func(*slog.Logger)
		wantLevel string
		captured  bool
	}{
		{"error", func(l *slog.Logger) { l.Error("boom") }, model.EventLevelError, true},
		{"warn", func(l *slog.Logger) { l.Warn("careful") }, model.EventLevelWarning, true},
		{"info", func(l *slog.Logger) { l.Info("fyi") }, "", false},
		{"debug", func(l *slog.Logger) { l.Debug("noise") }, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &recordingWriter{}
			tt.log(slog.New(NewEventLogHandler(discardHandler{}, w)))

			events := w.all()
			if !tt.captured {
				if len(events) != 0 {
					t.Errorf("expected no events, got %d", len(events))
				}
				return
			}
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", events[0].Level, tt.wantLevel)
			}
		})
	}
}

func TestEventLogHandler_CustomLevel(t *testing.T) {
	w := &recordingWriter{}
	logger := slog.New(NewEventLogHandlerWithLevel(discardHandler{}, w, slog.LevelInfo))

	logger.Info("post published", "post_id", "abc")

	events := w.all()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Level != model.EventLevelInfo {
		t.Errorf("Level = %q, want %q", events[0].Level, model.EventLevelInfo)
	}
}

func TestEventLogHandler_CategoryInference(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"cache invalidation failed", model.EventCategoryCache},
		{"redis unavailable", model.EventCategoryCache},
		{"scheduled publish failed", model.EventCategoryScheduler},
		{"post update retried", model.EventCategoryPost},
		{"invalid config value", model.EventCategoryConfig},
		{"something odd", model.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := &recordingWriter{}
			slog.New(NewEventLogHandler(discardHandler{}, w)).Warn(tt.message)

			events := w.all()
			if len(events) != 1 {
				t.Fatalf("expected 1 event, got %d", len(events))
			}
			if events[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", events[0].Category, tt.want)
			}
		})
	}
}

func TestEventLogHandler_ExplicitCategoryAndMetadata(t *testing.T) {
	w := &recordingWriter{}
	logger := slog.New(NewEventLogHandler(discardHandler{}, w)).With("actor_id", "u1")

	logger.Warn("something odd", "category", model.EventCategoryPost, "key", `va"lue`)

	events := w.all()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Category != model.EventCategoryPost {
		t.Errorf("Category = %q, want %q", e.Category, model.EventCategoryPost)
	}
	if e.ActorID != "u1" {
		t.Errorf("ActorID = %q, want u1", e.ActorID)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(e.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not valid JSON: %v (%s)", err, e.Metadata)
	}
	if meta["key"] != `va"lue` {
		t.Errorf("metadata key = %q", meta["key"])
	}
	if _, ok := meta["category"]; ok {
		t.Error("category should not be repeated in metadata")
	}
}

func TestEventLogHandler_EmptyMetadata(t *testing.T) {
	w := &recordingWriter{}
	slog.New(NewEventLogHandler(discardHandler{}, w)).Error("bare")

	if got := w.all()[0].Metadata; got != "{}" {
		t.Errorf("Metadata = %q, want {}", got)
	}
}
