// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/leadpoint-go/internal/model"
)

// DefaultEmailLogLimit caps the email audit listing.
const DefaultEmailLogLimit = 100

// CreateEmailParams holds the fields for recording an email send attempt.
type CreateEmailParams struct {
	To        string
	Subject   string
	HTML      string
	Text      string
	SentBy    string
	Status    string
	MessageID string
}

// CreateEmail records an outbound send attempt in the audit log. Records
// are append-only and never updated.
func (q *Queries) CreateEmail(ctx context.Context, arg CreateEmailParams) (model.Email, error) {
	email := model.Email{
		ID:        uuid.New().String(),
		To:        arg.To,
		Subject:   arg.Subject,
		HTML:      arg.HTML,
		Text:      arg.Text,
		SentBy:    arg.SentBy,
		Status:    arg.Status,
		MessageID: arg.MessageID,
		CreatedAt: time.Now().UTC(),
	}

	// Emails triggered by public form submissions have no sending user.
	sentBy := sql.NullString{String: email.SentBy, Valid: email.SentBy != ""}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO emails (id, to_addr, subject, html, text, sent_by, status, message_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		email.ID, email.To, email.Subject, email.HTML, email.Text, sentBy,
		email.Status, email.MessageID, email.CreatedAt,
	)
	if err != nil {
		return model.Email{}, err
	}
	return email, nil
}

// ListEmails returns up to limit audit records, newest first.
func (q *Queries) ListEmails(ctx context.Context, limit int64) ([]model.Email, error) {
	if limit <= 0 {
		limit = DefaultEmailLogLimit
	}

	rows, err := q.db.QueryContext(ctx,
		`SELECT id, to_addr, subject, html, text, sent_by, status, message_id, created_at
		 FROM emails ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []model.Email{}
	for rows.Next() {
		var e model.Email
		var sentBy sql.NullString
		if err := rows.Scan(&e.ID, &e.To, &e.Subject, &e.HTML, &e.Text, &sentBy,
			&e.Status, &e.MessageID, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.SentBy = sentBy.String
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
