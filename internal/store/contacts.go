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

const contactColumns = "id, name, email, phone, subject, message, created_at"

// CreateContactParams holds the fields for creating a contact message.
type CreateContactParams struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// CreateContact inserts a new contact message and returns the created record.
func (q *Queries) CreateContact(ctx context.Context, arg CreateContactParams) (model.Contact, error) {
	contact := model.Contact{
		ID:        uuid.New().String(),
		Name:      arg.Name,
		Email:     arg.Email,
		Phone:     arg.Phone,
		Subject:   arg.Subject,
		Message:   arg.Message,
		CreatedAt: time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, email, phone, subject, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		contact.ID, contact.Name, contact.Email, contact.Phone, contact.Subject,
		contact.Message, contact.CreatedAt,
	)
	if err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

// ListContacts returns all contact messages, newest first.
func (q *Queries) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject,
			&c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// GetContactByID fetches a contact message by primary key.
func (q *Queries) GetContactByID(ctx context.Context, id string) (model.Contact, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)
	var c model.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt)
	return c, err
}

// DeleteContact removes a contact message by id. Returns sql.ErrNoRows if
// the id does not exist.
func (q *Queries) DeleteContact(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
