// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic jobs: publishing due posts and
// pruning the event log.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/oblog/internal/model"
)

const (
	// DefaultPublishSchedule checks for due posts every minute.
	DefaultPublishSchedule = "* * * * *"
	// DefaultCleanupSchedule prunes the event log daily at 03:00.
	DefaultCleanupSchedule = "0 3 * * *"
	// DefaultEventRetention keeps thirty days of events.
	DefaultEventRetention = 30 * 24 * time.Hour

	sourceCore     = "core"
	jobPublish     = "publish_scheduled"
	jobEventPruner = "prune_events"

	// jobTimeout bounds a single run of any job.
	jobTimeout = 5 * time.Minute
)

// Publisher promotes scheduled posts whose date has passed.
type Publisher interface {
	PublishDue(ctx context.Context, now time.Time) ([]string, error)
}

// EventLog is the part of the event service the jobs use.
type EventLog interface {
	LogInfo(ctx context.Context, category, message, actorID string, metadata map[string]any) error
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Config selects job schedules.
type Config struct {
	PublishSchedule string
	CleanupSchedule string
	EventRetention  time.Duration
}

// Scheduler handles scheduled tasks like publishing posts.
type Scheduler struct {
	cron      *cron.Cron
	registry  *Registry
	publisher Publisher
	events    EventLog
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a new scheduler instance. Empty config fields take the defaults.
func New(publisher Publisher, events EventLog, logger *slog.Logger, cfg Config) *Scheduler {
	if cfg.PublishSchedule == "" {
		cfg.PublishSchedule = DefaultPublishSchedule
	}
	if cfg.CleanupSchedule == "" {
		cfg.CleanupSchedule = DefaultCleanupSchedule
	}
	if cfg.EventRetention <= 0 {
		cfg.EventRetention = DefaultEventRetention
	}

	return &Scheduler{
		cron:      cron.New(),
		registry:  NewRegistry(logger),
		publisher: publisher,
		events:    events,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Registry returns the job registry, for listing and manual triggers.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	jobs := []struct {
		name        string
		description string
		schedule    string
		run         func(context.Context) error
	}{
		{jobPublish, "Publish scheduled posts whose date has passed", s.cfg.PublishSchedule, s.PublishDue},
		{jobEventPruner, "Delete events older than the retention period", s.cfg.CleanupSchedule, s.PruneEvents},
	}

	for _, job := range jobs {
		if err := ValidateSchedule(job.schedule); err != nil {
			return fmt.Errorf("job %s: %w", job.name, err)
		}

		run := job.run
		name := job.name
		jobFunc := func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if err := run(ctx); err != nil {
				s.logger.Error("scheduled job failed", "job", name, "error", err)
			}
		}
		trigger := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			return run(ctx)
		}

		entryID, err := s.cron.AddFunc(job.schedule, jobFunc)
		if err != nil {
			return fmt.Errorf("adding job %s: %w", job.name, err)
		}
		s.registry.Register(sourceCore, job.name, job.description, job.schedule, s.cron, entryID, jobFunc, trigger)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PublishDue publishes every scheduled post that is due and records an event
// for each run that published something.
func (s *Scheduler) PublishDue(ctx context.Context) error {
	now := s.now()
	published, err := s.publisher.PublishDue(ctx, now)
	if len(published) > 0 {
		s.logger.Info("published scheduled posts", "count", len(published))

		metadata := map[string]any{
			"post_ids":     published,
			"published_at": now.UTC().Format(time.RFC3339),
		}
		msg := fmt.Sprintf("Scheduler published %d post(s)", len(published))
		if logErr := s.events.LogInfo(ctx, model.EventCategoryScheduler, msg, model.SystemActor.ID, metadata); logErr != nil {
			s.logger.Warn("failed to log scheduled publish event", "error", logErr)
		}
	}
	return err
}

// PruneEvents deletes events older than the configured retention.
func (s *Scheduler) PruneEvents(ctx context.Context) error {
	n, err := s.events.DeleteOldEvents(ctx, s.cfg.EventRetention)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("pruned old events", "count", n, "retention", s.cfg.EventRetention.String())
	}
	return nil
}
