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

// CreateContactRequest is the POST /api/contact body.
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ListContacts handles GET /api/contact.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.queries.ListContacts(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list contacts", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

// CreateContact handles POST /api/contact. Public endpoint.
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req CreateContactRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	required := []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"subject", req.Subject},
		{"message", req.Message},
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
	// The subject becomes a mail header in the admin notification.
	if containsHeaderInjection(req.Subject) {
		h.writeError(w, http.StatusBadRequest, "Invalid subject", nil)
		return
	}

	contact, err := h.queries.CreateContact(r.Context(), store.CreateContactParams{
		Name:    sanitizeText(req.Name, maxNameLen),
		Email:   email,
		Phone:   sanitizeText(req.Phone, maxPhoneLen),
		Subject: sanitizeText(req.Subject, maxSubjectLen),
		Message: sanitizeText(req.Message, maxMessageLen),
	})
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to create contact", err)
		return
	}

	h.logger.Info("contact message created", "id", contact.ID)

	// Best-effort notification. A delivery failure never affects the 201.
	go h.sendContactEmail(contact)

	writeJSON(w, http.StatusCreated, map[string]any{"contact": contact})
}

// sendContactEmail sends the admin notification for a new contact message.
func (h *Handler) sendContactEmail(contact model.Contact) {
	if _, err := h.mailer.Send(context.Background(), mailer.ContactNotification(h.cfg.NotificationEmail(), contact)); err != nil {
		h.logger.Error("contact notification email failed", "contact_id", contact.ID, "error", err)
	}
}

// DeleteContact handles DELETE /api/contact/{id}.
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.queries.DeleteContact(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "Contact not found", nil)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "Failed to delete contact", err)
		return
	}

	h.logger.Info("contact message deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{"message": "Contact deleted"})
}
