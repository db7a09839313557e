// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, CORS, and login abuse protection.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/olegiv/leadpoint-go/internal/auth"
	"github.com/olegiv/leadpoint-go/internal/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyClaims is the context key for verified session claims.
const ContextKeyClaims ContextKey = "claims"

// writeJSONMessage writes a JSON {message} error response.
func writeJSONMessage(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{"message": message})
}

// bearerToken extracts the token from an Authorization header of the form
// "Bearer <token>". Returns "" when the header is missing or malformed.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth creates middleware that requires a valid session token of
// any role. Verified claims are stored in the request context.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verifyRequest(w, r, secret)
			if !ok {
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin creates middleware that requires a valid session token
// carrying the ADMIN role. Missing or invalid tokens get 401; a valid
// token without the admin role gets 403. This is uniform across all
// protected routes.
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := verifyRequest(w, r, secret)
			if !ok {
				return
			}

			if claims.Role != model.RoleAdmin {
				writeJSONMessage(w, http.StatusForbidden, "Forbidden: Admin access required")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifyRequest extracts and verifies the bearer token, writing a 401
// response on failure.
func verifyRequest(w http.ResponseWriter, r *http.Request, secret []byte) (*auth.Claims, bool) {
	token := bearerToken(r)
	if token == "" {
		writeJSONMessage(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	claims, err := auth.VerifyToken(token, secret)
	if err != nil {
		writeJSONMessage(w, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}
	return claims, true
}

// GetClaims retrieves the verified session claims from the request
// context. Returns nil if the request did not pass an auth middleware.
func GetClaims(r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(ContextKeyClaims).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
