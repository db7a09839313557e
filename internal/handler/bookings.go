// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/leadpoint-go/internal/mailer"
	"github.com/olegiv/leadpoint-go/internal/model"
	"github.com/olegiv/leadpoint-go/internal/store"
)

// CreateBookingRequest is the POST /api/bookings body.
type CreateBookingRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ServiceType string `json:"serviceType"`
	Message     string `json:"message"`
}

// UpdateBookingRequest is the PATCH /api/bookings/{id} body.
type UpdateBookingRequest struct {
	Status string `json:"status"`
}

// ListBookings handles GET /api/bookings.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.queries.ListBookings(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// CreateBooking handles POST /api/bookings. Public endpoint.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	required := []struct{ name, value string }{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
		{"phone", req.Phone},
		{"serviceType", req.ServiceType},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			h.writeError(w, http.StatusBadRequest, "Missing required field: "+f.name, nil)
			return
		}
	}

	email := normalizeEmail(req.Email)
	if !validEmailAddress(email) {
		h.writeError(w, http.StatusBadRequest, "Invalid email address", nil)
		return
	}
	if !model.ValidServiceType(req.ServiceType) {
		h.writeError(w, http.StatusBadRequest, "Invalid serviceType", nil)
		return
	}

	booking, err := h.queries.CreateBooking(r.Context(), store.CreateBookingParams{
		FirstName:   sanitizeText(req.FirstName, maxNameLen),
		LastName:    sanitizeText(req.LastName, maxNameLen),
		Email:       email,
		Phone:       sanitizeText(req.Phone, maxPhoneLen),
		ServiceType: req.ServiceType,
		Message:     sanitizeText(req.Message, maxMessageLen),
	})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to create booking", err)
		return
	}

	h.logger.Info("booking created",
		"id", booking.ID,
		"service_type", booking.ServiceType,
	)

	// Best-effort notifications. A delivery failure never affects the 201.
	go h.sendBookingEmails(booking)

	writeJSON(w, http.StatusCreated, map[string]any{"booking": booking})
}

// sendBookingEmails sends the admin notification and customer
// confirmation for a new booking.
func (h *Handler) sendBookingEmails(booking model.Booking) {
	ctx := context.Background()

	if _, err := h.mailer.Send(ctx, mailer.BookingNotification(h.cfg.NotificationEmail(), booking)); err != nil {
		h.logger.Error("booking notification email failed", "booking_id", booking.ID, "error", err)
	}
	if _, err := h.mailer.Send(ctx, mailer.BookingConfirmation(booking)); err != nil {
		h.logger.Error("booking confirmation email failed", "booking_id", booking.ID, "error", err)
	}
}

// UpdateBooking handles PATCH /api/bookings/{id}.
func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateBookingRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if !model.ValidBookingStatus(req.Status) {
		h.writeError(w, http.StatusBadRequest, "Invalid status", nil)
		return
	}

	booking, err := h.queries.UpdateBookingStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Booking not found", nil)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "Failed to update booking", err)
		return
	}

	h.logger.Info("booking status updated", "id", booking.ID, "status", booking.Status)
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

// DeleteBooking handles DELETE /api/bookings/{id}.
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.queries.DeleteBooking(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Booking not found", nil)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "Failed to delete booking", err)
		return
	}

	h.logger.Info("booking deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Booking deleted"})
}
