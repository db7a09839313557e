// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer sends outbound email through one of two transports:
// a direct SMTP relay, with the Resend transactional API as fallback.
// Input validation is the caller's responsibility; the dispatcher only
// delivers.
package mailer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when neither the SMTP relay nor the Resend
// API transport is configured.
var ErrNotConfigured = errors.New("email service not configured")

// Message is an outbound email.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string // derived from HTML when empty
	ReplyTo string
	CC      []string
	BCC     []string
}

// Result reports a completed send.
type Result struct {
	MessageID string // set by the Resend transport; empty for SMTP
	Transport string // "smtp", "resend" or "skipped"
}

// Config holds delivery configuration. Constructed once at startup and
// injected; the dispatcher never reads the environment itself.
type Config struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	ResendAPIKey  string
	ResendBaseURL string // defaults to the public Resend API

	From    string
	ReplyTo string

	// SkipSend suppresses all outbound email (development mode).
	SkipSend bool
}

// SMTPConfigured reports whether the SMTP relay transport is usable.
func (c Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

// ResendConfigured reports whether the Resend API transport is usable.
func (c Config) ResendConfigured() bool {
	return c.ResendAPIKey != ""
}

const resendDefaultBaseURL = "https://api.resend.com"

// Dispatcher delivers email through the configured transports.
type Dispatcher struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// New creates a Dispatcher.
func New(cfg Config, logger *slog.Logger) *Dispatcher {
	if cfg.ResendBaseURL == "" {
		cfg.ResendBaseURL = resendDefaultBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// Send delivers a message. The SMTP relay is tried first when configured;
// on SMTP failure (or when SMTP is absent) delivery falls back to the
// Resend API. Returns ErrNotConfigured when neither transport is set up.
func (d *Dispatcher) Send(ctx context.Context, msg Message) (Result, error) {
	if d.cfg.SkipSend {
		d.logger.Info("email send skipped", "subject", msg.Subject, "to", msg.To)
		return Result{MessageID: "dev-skipped", Transport: "skipped"}, nil
	}

	if msg.Text == "" {
		msg.Text = HTMLToText(msg.HTML)
	}
	if msg.ReplyTo == "" {
		msg.ReplyTo = d.cfg.ReplyTo
	}

	if d.cfg.SMTPConfigured() {
		smtpErr := d.sendSMTP(msg)
		if smtpErr == nil {
			return Result{Transport: "smtp"}, nil
		}
		d.logger.Warn("smtp delivery failed, trying fallback", "error", smtpErr, "subject", msg.Subject)
		// Without a fallback the real delivery failure is the answer,
		// not a configuration error.
		if !d.cfg.ResendConfigured() {
			return Result{}, smtpErr
		}
	}

	if d.cfg.ResendConfigured() {
		id, err := d.sendResend(ctx, msg)
		if err != nil {
			return Result{}, err
		}
		return Result{MessageID: id, Transport: "resend"}, nil
	}

	return Result{}, ErrNotConfigured
}
