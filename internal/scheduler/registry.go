// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// registeredJob holds metadata about a registered cron job.
type registeredJob struct {
	source          string
	name            string
	description     string
	defaultSchedule string
	schedule        string // effective schedule
	cronInstance    *cron.Cron
	entryID         cron.EntryID
	jobFunc         func()
	triggerFunc     func() error // nil if manual trigger not allowed
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Source          string    `json:"source"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DefaultSchedule string    `json:"default_schedule"`
	Schedule        string    `json:"schedule"`
	IsOverridden    bool      `json:"is_overridden"`
	LastRun         time.Time `json:"last_run"`
	NextRun         time.Time `json:"next_run"`
	CanTrigger      bool      `json:"can_trigger"`
}

// Registry tracks the scheduled jobs. Schedule changes last for the life of
// the process; the configured schedule applies again after a restart.
type Registry struct {
	logger *slog.Logger
	mu     sync.RWMutex
	jobs   map[string]*registeredJob // key: "source:name"
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger,
		jobs:   make(map[string]*registeredJob),
	}
}

func jobKey(source, name string) string {
	return source + ":" + name
}

// Register records a job in the registry after it has been added to a cron instance.
func (r *Registry) Register(source, name, description, schedule string, cronInst *cron.Cron, entryID cron.EntryID, jobFunc func(), triggerFunc func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[jobKey(source, name)] = &registeredJob{
		source:          source,
		name:            name,
		description:     description,
		defaultSchedule: schedule,
		schedule:        schedule,
		cronInstance:    cronInst,
		entryID:         entryID,
		jobFunc:         jobFunc,
		triggerFunc:     triggerFunc,
	}

	r.logger.Debug("registered scheduled job", "source", source, "name", name, "schedule", schedule)
}

// List returns all registered jobs sorted by source then name.
func (r *Registry) List() []JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]JobInfo, 0, len(r.jobs))
	for _, job := range r.jobs {
		info := JobInfo{
			Source:          job.source,
			Name:            job.name,
			Description:     job.description,
			DefaultSchedule: job.defaultSchedule,
			Schedule:        job.schedule,
			IsOverridden:    job.schedule != job.defaultSchedule,
			CanTrigger:      job.triggerFunc != nil,
		}

		if job.cronInstance != nil {
			entry := job.cronInstance.Entry(job.entryID)
			info.NextRun = entry.Next
			info.LastRun = entry.Prev
		}

		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Source != result[j].Source {
			return result[i].Source < result[j].Source
		}
		return result[i].Name < result[j].Name
	})

	return result
}

// TriggerNow manually executes a job immediately.
func (r *Registry) TriggerNow(source, name string) error {
	r.mu.RLock()
	job, ok := r.jobs[jobKey(source, name)]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job not found: %s:%s", source, name)
	}

	if job.triggerFunc == nil {
		return fmt.Errorf("manual trigger not available for: %s:%s", source, name)
	}

	r.logger.Info("manually triggering job", "source", source, "name", name)
	return job.triggerFunc()
}

// UpdateSchedule changes the schedule for a job by replacing its cron entry.
func (r *Registry) UpdateSchedule(source, name, newSchedule string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobKey(source, name)]
	if !ok {
		return fmt.Errorf("job not found: %s:%s", source, name)
	}

	if job.cronInstance == nil || job.jobFunc == nil {
		return fmt.Errorf("job cannot be rescheduled: %s:%s", source, name)
	}

	if err := ValidateSchedule(newSchedule); err != nil {
		return err
	}

	if err := r.reschedule(job, newSchedule); err != nil {
		return err
	}

	r.logger.Info("updated job schedule", "source", source, "name", name, "schedule", newSchedule)
	return nil
}

// ResetSchedule restores the schedule the job was registered with.
func (r *Registry) ResetSchedule(source, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[jobKey(source, name)]
	if !ok {
		return fmt.Errorf("job not found: %s:%s", source, name)
	}

	if job.schedule == job.defaultSchedule {
		return nil // Already at default
	}

	if job.cronInstance == nil || job.jobFunc == nil {
		return fmt.Errorf("job cannot be rescheduled: %s:%s", source, name)
	}

	if err := r.reschedule(job, job.defaultSchedule); err != nil {
		return err
	}

	r.logger.Info("reset job schedule to default", "source", source, "name", name, "schedule", job.defaultSchedule)
	return nil
}

// reschedule swaps the job's cron entry. On failure the old entry is restored.
func (r *Registry) reschedule(job *registeredJob, schedule string) error {
	job.cronInstance.Remove(job.entryID)
	newEntryID, err := job.cronInstance.AddFunc(schedule, job.jobFunc)
	if err != nil {
		fallbackID, fallbackErr := job.cronInstance.AddFunc(job.schedule, job.jobFunc)
		if fallbackErr != nil {
			return fmt.Errorf("critical: failed to restore schedule after update failure: %w (original: %w)", fallbackErr, err)
		}
		job.entryID = fallbackID
		return fmt.Errorf("failed to apply new schedule: %w", err)
	}

	job.entryID = newEntryID
	job.schedule = schedule
	return nil
}

// Unregister removes a job from the registry and stops its cron entry.
func (r *Registry) Unregister(source, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := jobKey(source, name)
	job, ok := r.jobs[key]
	if !ok {
		return
	}

	if job.cronInstance != nil {
		job.cronInstance.Remove(job.entryID)
	}
	delete(r.jobs, key)

	r.logger.Debug("unregistered scheduled job", "source", source, "name", name)
}
