// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/olegiv/leadpoint-go/internal/mailer"
	"github.com/olegiv/leadpoint-go/internal/middleware"
	"github.com/olegiv/leadpoint-go/internal/model"
	"github.com/olegiv/leadpoint-go/internal/store"
)

// stringList accepts either a JSON string or an array of strings, the
// two shapes clients send for recipient fields.
type stringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *stringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = []string{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// SendEmailRequest is the POST /api/email/send body.
type SendEmailRequest struct {
	To      stringList `json:"to"`
	Subject string     `json:"subject"`
	HTML    string     `json:"html"`
	Text    string     `json:"text"`
	ReplyTo string     `json:"replyTo"`
	CC      stringList `json:"cc"`
	BCC     stringList `json:"bcc"`
}

// ListEmails handles GET /api/email. Returns the newest send-log
// records, capped at 100.
func (h *Handler) ListEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.queries.ListEmails(r.Context(), store.DefaultEmailLogLimit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list emails", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"emails": emails})
}

// SendEmail handles POST /api/email/send.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req SendEmailRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if msg, ok := h.validateSendRequest(&req); !ok {
		h.writeError(w, http.StatusBadRequest, msg, nil)
		return
	}

	message := mailer.Message{
		To:      req.To,
		Subject: req.Subject,
		HTML:    req.HTML,
		Text:    req.Text,
		ReplyTo: req.ReplyTo,
		CC:      req.CC,
		BCC:     req.BCC,
	}

	result, sendErr := h.mailer.Send(r.Context(), message)

	// The send log is written for every attempt, success or failure.
	// A log-write failure never changes the response.
	status := model.EmailSent
	if sendErr != nil {
		status = model.EmailFailed
	}
	if _, logErr := h.queries.CreateEmail(r.Context(), store.CreateEmailParams{
		To:        strings.Join(req.To, ", "),
		Subject:   req.Subject,
		HTML:      req.HTML,
		Text:      req.Text,
		SentBy:    claims.UserID,
		Status:    status,
		MessageID: result.MessageID,
	}); logErr != nil {
		h.logger.Error("failed to record email log", "error", logErr)
	}

	if sendErr != nil {
		if errors.Is(sendErr, mailer.ErrNotConfigured) {
			h.writeError(w, http.StatusInternalServerError, "Email service not configured", nil)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "Failed to send email", sendErr)
		return
	}

	h.logger.Info("email sent",
		"to", strings.Join(req.To, ", "),
		"transport", result.Transport,
		"sent_by", claims.Email,
	)

	resp := map[string]any{
		"success": true,
		"message": "Email sent successfully",
	}
	if result.MessageID != "" {
		resp["messageId"] = result.MessageID
	}
	writeJSON(w, http.StatusOK, resp)
}

// validateSendRequest normalizes and validates an outbound email request
// in place. Returns a client-facing message and false when invalid.
func (h *Handler) validateSendRequest(req *SendEmailRequest) (string, bool) {
	if len(req.To) == 0 {
		return "Recipient list is required", false
	}
	if len(req.To) > maxRecipients {
		return "Too many recipients", false
	}

	for i, addr := range req.To {
		req.To[i] = strings.TrimSpace(addr)
		if !validEmailAddress(req.To[i]) {
			return "Invalid recipient address: " + req.To[i], false
		}
	}
	for _, list := range []stringList{req.CC, req.BCC} {
		for i, addr := range list {
			list[i] = strings.TrimSpace(addr)
			if !validEmailAddress(list[i]) {
				return "Invalid recipient address: " + list[i], false
			}
		}
	}
	if req.ReplyTo != "" && !validEmailAddress(strings.TrimSpace(req.ReplyTo)) {
		return "Invalid replyTo address", false
	}
	req.ReplyTo = strings.TrimSpace(req.ReplyTo)

	req.Subject = sanitizeText(req.Subject, maxSubjectLen)
	if req.Subject == "" {
		return "Subject is required", false
	}
	if containsHeaderInjection(req.Subject) {
		return "Invalid subject", false
	}

	if len(req.HTML) < minContentLen {
		return "Email content is too short", false
	}
	if len(req.HTML) > maxContentLen {
		return "Email content is too long", false
	}

	return "", true
}
