// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides HTTP handlers for the lead-capture API:
// login, bookings, contact messages, outbound email and health.
package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/olegiv/leadpoint-go/internal/config"
	"github.com/olegiv/leadpoint-go/internal/mailer"
	"github.com/olegiv/leadpoint-go/internal/middleware"
	"github.com/olegiv/leadpoint-go/internal/store"
)

// Mailer dispatches outbound email. Satisfied by *mailer.Dispatcher.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) (mailer.Result, error)
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	cfg       *config.Config
	mailer    Mailer
	logger    *slog.Logger
	loginGate *middleware.LoginProtection
	startTime time.Time
}

// New creates a new API handler.
func New(db *sql.DB, cfg *config.Config, m Mailer, logger *slog.Logger, lp *middleware.LoginProtection) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		db:        db,
		queries:   store.New(db),
		cfg:       cfg,
		mailer:    m,
		logger:    logger,
		loginGate: lp,
		startTime: time.Now(),
	}
}
