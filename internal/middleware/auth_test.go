// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/leadpoint-go/internal/auth"
	"github.com/olegiv/leadpoint-go/internal/model"
)

var testSecret = []byte("middleware-test-secret-0123456789abcdef")

func issueTestToken(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.IssueToken("user-1", "admin@example.com", role, testSecret)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	return token
}

func TestRequireAdmin(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r)
		if claims == nil {
			t.Error("GetClaims() returned nil inside protected handler")
		}
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RequireAdmin(testSecret)(handler)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not.a.token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid admin token",
			authHeader: "Bearer " + issueTestToken(t, model.RoleAdmin),
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid non-admin token",
			authHeader: "Bearer " + issueTestToken(t, model.RoleUser),
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			wrapped.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q, want application/json", ct)
				}
				if !strings.Contains(rr.Body.String(), "message") {
					t.Errorf("error body = %q, want a message field", rr.Body.String())
				}
			}
		})
	}
}

func TestRequireAuthStoresClaims(t *testing.T) {
	var got *auth.Claims
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r)
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RequireAuth(testSecret)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, model.RoleUser))
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got == nil {
		t.Fatal("GetClaims() returned nil for authenticated request")
	}
	if got.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", got.UserID)
	}
	if got.Email != "admin@example.com" {
		t.Errorf("Email = %q, want admin@example.com", got.Email)
	}
	if got.Role != model.RoleUser {
		t.Errorf("Role = %q, want %q", got.Role, model.RoleUser)
	}
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	token, err := auth.IssueToken("user-1", "admin@example.com", model.RoleAdmin, []byte("some-other-secret-0123456789abcdef"))
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := RequireAuth(testSecret)(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestGetClaimsWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if claims := GetClaims(req); claims != nil {
		t.Errorf("GetClaims() = %v, want nil", claims)
	}
}
