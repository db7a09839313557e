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

const bookingColumns = "id, first_name, last_name, email, phone, service_type, message, status, created_at, updated_at"

// CreateBookingParams holds the fields for creating a booking.
type CreateBookingParams struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	ServiceType string
	Message     string
}

// CreateBooking inserts a new booking in PENDING status and returns the
// created record.
func (q *Queries) CreateBooking(ctx context.Context, arg CreateBookingParams) (model.Booking, error) {
	now := time.Now().UTC()
	booking := model.Booking{
		ID:          uuid.New().String(),
		FirstName:   arg.FirstName,
		LastName:    arg.LastName,
		Email:       arg.Email,
		Phone:       arg.Phone,
		ServiceType: arg.ServiceType,
		Message:     arg.Message,
		Status:      model.BookingPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := q.db.ExecContext(ctx,
		`INSERT INTO bookings (id, first_name, last_name, email, phone, service_type, message, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.ID, booking.FirstName, booking.LastName, booking.Email, booking.Phone,
		booking.ServiceType, booking.Message, booking.Status, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}

// ListBookings returns all bookings, newest first.
func (q *Queries) ListBookings(ctx context.Context) ([]model.Booking, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
			&b.ServiceType, &b.Message, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// GetBookingByID fetches a booking by primary key.
func (q *Queries) GetBookingByID(ctx context.Context, id string) (model.Booking, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	var b model.Booking
	err := row.Scan(&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.Phone,
		&b.ServiceType, &b.Message, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// UpdateBookingStatus transitions a booking to the given status and
// returns the updated record. Returns sql.ErrNoRows if the id does not
// exist. Concurrent updates are last-write-wins; no versioning.
func (q *Queries) UpdateBookingStatus(ctx context.Context, id, status string) (model.Booking, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`, status, now, id)
	if err != nil {
		return model.Booking{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Booking{}, err
	} else if n == 0 {
		return model.Booking{}, sql.ErrNoRows
	}

	return q.GetBookingByID(ctx, id)
}

// DeleteBooking removes a booking by id. Returns sql.ErrNoRows if the id
// does not exist.
func (q *Queries) DeleteBooking(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
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
