// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/leadpoint-go/internal/store"
)

// EventRetention is how long event log entries are kept. The email log
// is never purged; it is the audit trail for outbound mail.
const EventRetention = 90 * 24 * time.Hour

// Scheduler handles scheduled maintenance tasks like event log pruning.
type Scheduler struct {
	db     *sql.DB
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:     db,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins the scheduler with a nightly event log pruning job.
func (s *Scheduler) Start() error {
	// Run at 03:00 every night
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.PruneEvents(context.Background()); err != nil {
			s.logger.Error("failed to prune event log", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PruneEvents deletes event log entries older than the retention window.
func (s *Scheduler) PruneEvents(ctx context.Context) error {
	queries := store.New(s.db)
	cutoff := time.Now().Add(-EventRetention)

	deleted, err := queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if deleted > 0 {
		s.logger.Info("pruned event log", "deleted", deleted, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}
