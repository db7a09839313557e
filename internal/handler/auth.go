// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/olegiv/leadpoint-go/internal/auth"
	"github.com/olegiv/leadpoint-go/internal/middleware"
)

// loginFailedMessage is returned for unknown emails and wrong passwords
// alike, so the response does not leak account existence.
const loginFailedMessage = "Invalid email or password"

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "Email and password are required", nil)
		return
	}

	email := normalizeEmail(req.Email)

	if h.loginGate != nil {
		if locked, remaining := h.loginGate.IsAccountLocked(email); locked {
			h.logger.Warn("login attempt on locked account", "email", email)
			h.writeError(w, http.StatusTooManyRequests,
				"Account temporarily locked, try again in "+remaining.Round(time.Second).String(), nil)
			return
		}
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusInternalServerError, "Login failed", err)
			return
		}
		h.recordLoginFailure(w, email)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		h.recordLoginFailure(w, email)
		return
	}

	if h.loginGate != nil {
		h.loginGate.RecordSuccessfulLogin(email)
	}

	token, err := auth.IssueToken(user.ID, user.Email, user.Role, []byte(h.cfg.JWTSecret))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Login failed", err)
		return
	}

	h.logger.Info("login succeeded", "email", user.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

// recordLoginFailure tracks the failed attempt and writes the generic
// 401 response, or 429 once the failure locks the account.
func (h *Handler) recordLoginFailure(w http.ResponseWriter, email string) {
	h.logger.Warn("login failed", "email", email)

	if h.loginGate != nil {
		if locked, duration := h.loginGate.RecordFailedAttempt(email); locked {
			h.writeError(w, http.StatusTooManyRequests,
				"Account temporarily locked, try again in "+duration.String(), nil)
			return
		}
	}

	h.writeError(w, http.StatusUnauthorized, loginFailedMessage, nil)
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		h.writeError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "User not found", nil)
			return
		}
		h.writeError(w, http.StatusInternalServerError, "Failed to load user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
